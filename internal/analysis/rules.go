package analysis

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/models"
)

// Severity of an accessibility issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifiers reported by the RuleAnalyzer.
const (
	RuleDocumentTitle = "document-title"
	RuleHTMLLang      = "html-lang"
	RulePageHeading   = "page-heading"
	RuleHeadingOrder  = "heading-order"
	RuleImageAlt      = "image-alt"
	RuleLinkName      = "link-name"
	RuleLinkPurpose   = "link-purpose"
)

// Issue is a single accessibility finding.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

var (
	headingPattern = regexp.MustCompile(`^(#{1,6}) (.*)$`)
	mediaPattern   = regexp.MustCompile(`!?\[([^\]]*)\]\(([^)]*)\)`)

	genericLinkTexts = []string{"click here", "here", "read more", "more", "learn more", "link", "this link"}
)

// RuleAnalyzer checks preprocessed text against a fixed set of accessibility rules.
type RuleAnalyzer struct{}

// NewRuleAnalyzer returns the default analyzer.
func NewRuleAnalyzer() *RuleAnalyzer {
	return &RuleAnalyzer{}
}

type document struct {
	source       string
	title        string
	lang         string
	headings     []int
	images       []string
	links        []string
	words        int
	requirements []string
}

func (a *RuleAnalyzer) Analyze(ctx context.Context, text string) (models.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "analysis cancelled")
	}
	doc, err := scan(text)
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0)
	if strings.Contains(doc.source, "html") {
		issues = append(issues, documentIssues(doc)...)
	}

	var errorCount, warningCount int
	for _, i := range issues {
		if i.Severity == SeverityError {
			errorCount++
		} else {
			warningCount++
		}
	}
	score := max(0, 100-10*errorCount-3*warningCount)

	return models.Results{
		"source": doc.source,
		"summary": map[string]any{
			"headings": len(doc.headings),
			"images":   len(doc.images),
			"links":    len(doc.links),
			"words":    doc.words,
			"errors":   errorCount,
			"warnings": warningCount,
		},
		"issues": issues,
		"score":  score,
		"requirements": map[string]any{
			"count": len(doc.requirements),
			"keys":  doc.requirements,
		},
	}, nil
}

func scan(text string) (*document, error) {
	doc := &document{requirements: make([]string, 0)}
	s := bufio.NewScanner(strings.NewReader(text))
	s.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	inHeader, inRequirements := true, false
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		switch {
		case inHeader:
			switch {
			case line == "":
				inHeader = false
			case strings.HasPrefix(line, markerSource):
				doc.source = strings.TrimSpace(strings.TrimPrefix(line, markerSource))
			case strings.HasPrefix(line, markerTitle):
				doc.title = strings.TrimSpace(strings.TrimPrefix(line, markerTitle))
			case strings.HasPrefix(line, markerLang):
				doc.lang = strings.TrimSpace(strings.TrimPrefix(line, markerLang))
			}
		case line == markerRequirements:
			inRequirements = true
		case inRequirements:
			if key, _, ok := strings.Cut(strings.TrimPrefix(line, "- "), ":"); ok {
				doc.requirements = append(doc.requirements, key)
			}
		default:
			if m := headingPattern.FindStringSubmatch(line); m != nil {
				doc.headings = append(doc.headings, len(m[1]))
			}
			for _, m := range mediaPattern.FindAllStringSubmatch(line, -1) {
				if strings.HasPrefix(m[0], "!") {
					doc.images = append(doc.images, strings.TrimSpace(m[1]))
				} else {
					doc.links = append(doc.links, strings.TrimSpace(m[1]))
				}
			}
			doc.words += len(strings.Fields(mediaPattern.ReplaceAllString(strings.TrimLeft(line, "#- "), "$1")))
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read preprocessed text")
	}
	return doc, nil
}

func documentIssues(doc *document) []Issue {
	var issues []Issue
	if doc.title == "" {
		issues = append(issues, Issue{RuleDocumentTitle, SeverityError, "document has no <title>"})
	}
	if doc.lang == "" {
		issues = append(issues, Issue{RuleHTMLLang, SeverityError, "<html> element has no lang attribute"})
	}
	if !slices.Contains(doc.headings, 1) {
		issues = append(issues, Issue{RulePageHeading, SeverityWarning, "document has no level-one heading"})
	}
	for i := 1; i < len(doc.headings); i++ {
		if prev, cur := doc.headings[i-1], doc.headings[i]; cur > prev+1 {
			issues = append(issues, Issue{RuleHeadingOrder, SeverityWarning,
				fmt.Sprintf("heading level jumps from h%d to h%d", prev, cur)})
		}
	}
	for i, alt := range doc.images {
		if alt == "" {
			issues = append(issues, Issue{RuleImageAlt, SeverityError, fmt.Sprintf("image #%d has no alt text", i+1)})
		}
	}
	for i, text := range doc.links {
		switch {
		case text == "":
			issues = append(issues, Issue{RuleLinkName, SeverityError, fmt.Sprintf("link #%d has no accessible name", i+1)})
		case slices.Contains(genericLinkTexts, strings.ToLower(text)):
			issues = append(issues, Issue{RuleLinkPurpose, SeverityWarning, fmt.Sprintf("link #%d text %q does not describe its purpose", i+1, text)})
		}
	}
	return issues
}
