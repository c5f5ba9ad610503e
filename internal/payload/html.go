package payload

import (
	"io"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/pipeline"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var voidElements = []atom.Atom{
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img, atom.Input,
	atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr,
}

// Elements whose end tag may be omitted.
var optionalEndTag = []atom.Atom{
	atom.P, atom.Li, atom.Dt, atom.Dd, atom.Option, atom.Optgroup, atom.Rt, atom.Rp,
	atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Td, atom.Th, atom.Colgroup, atom.Caption,
}

// CheckWellFormed reports whether s is an HTML document whose elements are all properly closed.
func CheckWellFormed(s string) error {
	z := html.NewTokenizer(strings.NewReader(s))
	var open []string
	elements := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return pipeline.WrapError(pipeline.MalformedHTML, err, "invalid HTML payload")
			}
			if elements == 0 {
				return pipeline.NewError(pipeline.MalformedHTML, "invalid HTML payload: no HTML elements found")
			}
			if unclosed := strictlyOpen(open); len(unclosed) > 0 {
				return pipeline.NewError(pipeline.MalformedHTML, "invalid HTML payload: missing closing tags for %s", describe(unclosed))
			}
			return nil
		case html.StartTagToken:
			elements++
			name := tagName(z)
			if !isVoid(name) {
				open = append(open, name)
			}
		case html.SelfClosingTagToken:
			elements++
		case html.EndTagToken:
			name := tagName(z)
			if isVoid(name) {
				continue
			}
			idx := lastIndex(open, name)
			if idx < 0 {
				return pipeline.NewError(pipeline.MalformedHTML, "invalid HTML payload: unexpected closing tag </%s>", name)
			}
			for _, inner := range open[idx+1:] {
				if !hasOptionalEnd(inner) {
					return pipeline.NewError(pipeline.MalformedHTML, "invalid HTML payload: closing tag </%s> found while <%s> is still open", name, inner)
				}
			}
			open = open[:idx]
		}
	}
}

func lastIndex(open []string, name string) int {
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == name {
			return i
		}
	}
	return -1
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return strings.ToLower(string(name))
}

func isVoid(name string) bool {
	return slices.Contains(voidElements, atom.Lookup([]byte(name)))
}

func hasOptionalEnd(name string) bool {
	return slices.Contains(optionalEndTag, atom.Lookup([]byte(name)))
}

func strictlyOpen(open []string) []string {
	var out []string
	for i := len(open) - 1; i >= 0; i-- {
		if !hasOptionalEnd(open[i]) {
			out = append(out, open[i])
		}
	}
	return out
}

func describe(names []string) string {
	tags := make([]string, len(names))
	for i, n := range names {
		tags[i] = "<" + n + ">"
	}
	return strings.Join(tags, ", ")
}
