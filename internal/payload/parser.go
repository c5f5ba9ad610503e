// Package payload parses accessibility request bodies into HTML and JSON segments.
//
// Two body formats are understood: a single JSON object, and an HTML document
// optionally followed by a blank line and a JSON object.
package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sootra/accessibility-app/internal/models"
	"github.com/sootra/accessibility-app/internal/pipeline"
)

// CheckNotEmpty rejects bodies that hold nothing but whitespace.
func CheckNotEmpty(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return pipeline.NewError(pipeline.EmptyBody, "request body is empty")
	}
	return nil
}

// Parse classifies and validates a non-empty request body.
func Parse(body []byte) (*models.Payload, error) {
	text := strings.ReplaceAll(string(body), "\r\n", "\n")
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, pipeline.NewError(pipeline.EmptyBody, "request body is empty")
	}

	if looksLikeJSON(trimmed) {
		obj, err := decodeObject(trimmed)
		if err != nil {
			return nil, err
		}
		return &models.Payload{Kind: models.JSONOnly, JSON: obj}, nil
	}

	htmlPart, jsonPart, found := split(trimmed)
	if found {
		obj, err := decodeObject(jsonPart)
		if err != nil {
			return nil, err
		}
		return &models.Payload{Kind: models.HTMLJSONPair, HTML: htmlPart, JSON: obj}, nil
	}

	if err := CheckWellFormed(trimmed); err != nil {
		return nil, err
	}
	return &models.Payload{Kind: models.HTMLOnly, HTML: trimmed}, nil
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// split separates the HTML head from the JSON tail. The tail starts at a blank line followed by
// a JSON object and only where everything before it is a complete HTML document, so blank lines
// inside scripts or unclosed elements never end the document.
func split(s string) (htmlPart, jsonPart string, found bool) {
	for offset := 0; ; {
		i := strings.Index(s[offset:], "\n\n")
		if i < 0 {
			return "", "", false
		}
		i += offset
		offset = i + 2
		rest := strings.TrimSpace(s[i:])
		if !strings.HasPrefix(rest, "{") {
			continue
		}
		head := strings.TrimSpace(s[:i])
		if CheckWellFormed(head) == nil {
			return head, rest, true
		}
	}
}

func decodeObject(s string) (map[string]any, error) {
	var v any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, pipeline.WrapError(pipeline.MalformedJSON, err, "invalid JSON payload")
	}
	if dec.More() {
		return nil, pipeline.NewError(pipeline.MalformedJSON, "invalid JSON payload: unexpected data after the JSON object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, pipeline.NewError(pipeline.MalformedJSON, "invalid JSON payload: expected an object, got %T", v)
	}
	return obj, nil
}
