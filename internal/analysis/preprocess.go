package analysis

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/sootra/accessibility-app/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markers of the preprocessed text layout.
const (
	markerSource       = "SOURCE:"
	markerTitle        = "TITLE:"
	markerLang         = "LANG:"
	markerRequirements = "REQUIREMENTS:"

	requirementsFormKey = "requirementsForm"
	truncatedSuffix     = "\n\n[...truncated...]"
	maxDepth            = 100
)

// DefaultMaxContentChars bounds the content section of the preprocessed text.
const DefaultMaxContentChars = 50000

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)

	labelReplacer = strings.NewReplacer("[", "(", "]", ")", "\n", " ", "\r", " ")
	hrefReplacer  = strings.NewReplacer("(", "%28", ")", "%29", " ", "%20", "\n", "")
)

// TextPreprocessor renders payloads into a markdown-like text layout:
//
//	SOURCE: html+json
//	TITLE: <document title>
//	LANG: <html lang attribute>
//
//	# headings, paragraphs, ![alt](src) images and [text](href) links
//
//	REQUIREMENTS:
//	- path.to.key: value
type TextPreprocessor struct {
	MaxContentChars int
}

// NewTextPreprocessor returns a TextPreprocessor with the default content limit.
func NewTextPreprocessor() *TextPreprocessor {
	return &TextPreprocessor{MaxContentChars: DefaultMaxContentChars}
}

func (p *TextPreprocessor) Preprocess(payload models.Payload) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", markerSource, payload.Kind)

	if payload.HasHTML() {
		doc, err := html.Parse(strings.NewReader(payload.HTML))
		if err != nil {
			return "", errors.Wrap(err, "failed to parse HTML document")
		}
		fmt.Fprintf(&sb, "%s %s\n", markerTitle, singleLine(textContent(find(doc, atom.Title))))
		fmt.Fprintf(&sb, "%s %s\n", markerLang, attr(find(doc, atom.Html), "lang"))

		var content strings.Builder
		render(doc, &content, 0)
		text := clean(content.String())
		if p.MaxContentChars > 0 && len(text) > p.MaxContentChars {
			text = helpers.Truncate(text, p.MaxContentChars) + truncatedSuffix
		}
		sb.WriteString("\n")
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if payload.HasJSON() {
		sb.WriteString("\n")
		sb.WriteString(markerRequirements)
		sb.WriteString("\n")
		for _, line := range flatten("", requirements(payload.JSON)) {
			sb.WriteString("- ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func requirements(obj map[string]any) map[string]any {
	if form, ok := obj[requirementsFormKey].(map[string]any); ok {
		return form
	}
	return obj
}

func flatten(prefix string, v any) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var out []string
		for _, k := range keys {
			out = append(out, flatten(join(prefix, k), t[k])...)
		}
		if len(out) == 0 && prefix != "" {
			out = append(out, prefix+": {}")
		}
		return out
	case []any:
		var out []string
		for i, item := range t {
			out = append(out, flatten(fmt.Sprintf("%s[%d]", prefix, i), item)...)
		}
		if len(out) == 0 {
			out = append(out, prefix+": []")
		}
		return out
	case nil:
		return []string{prefix + ": null"}
	default:
		return []string{fmt.Sprintf("%s: %s", prefix, singleLine(fmt.Sprint(t)))}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func render(n *html.Node, sb *strings.Builder, depth int) {
	if depth > maxDepth {
		return
	}

	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg:
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			level := int(n.Data[1] - '0')
			fmt.Fprintf(sb, "\n\n%s %s\n\n", strings.Repeat("#", level), singleLine(textContent(n)))
			return
		case atom.Img:
			alt, hasAlt := lookupAttr(n, "alt")
			if hasAlt && strings.TrimSpace(alt) == "" {
				// decorative
				return
			}
			fmt.Fprintf(sb, " ![%s](%s) ", labelReplacer.Replace(strings.TrimSpace(alt)), hrefReplacer.Replace(attr(n, "src")))
			return
		case atom.A:
			if _, ok := lookupAttr(n, "href"); ok {
				fmt.Fprintf(sb, " [%s](%s) ", labelReplacer.Replace(singleLine(textContent(n))), hrefReplacer.Replace(attr(n, "href")))
				return
			}
		case atom.P, atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer, atom.Nav, atom.Table, atom.Tr:
			sb.WriteString("\n\n")
		case atom.Br:
			sb.WriteString("\n")
		case atom.Li:
			sb.WriteString("\n- ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		render(c, sb, depth+1)
	}
}

// textContent returns the visible text of n, using image alt text in place of images.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node, int)
	walk = func(n *html.Node, depth int) {
		if depth > maxDepth {
			return
		}
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Img:
			sb.WriteString(" " + attr(n, "alt") + " ")
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return sb.String()
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return strings.TrimSpace(v)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clean(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
