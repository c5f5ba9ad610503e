// Package models provides the core data structures for handling accessibility requests and responses.
package models

import "strings"

// Request represents an incoming client request containing a body and associated headers.
// Header keys may use any case; use Header to look them up.
type Request struct {
	ID      string
	Body    []byte
	Headers map[string]string
}

// Header returns the value of the named header, matching the name case-insensitively.
func (r Request) Header(name string) (string, bool) {
	if v, ok := r.Headers[strings.ToLower(name)]; ok {
		return v, true
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
