// Package validation provides the header checks applied to incoming accessibility requests.
package validation

import (
	"mime"
	"net/url"
	"slices"
	"strings"

	"github.com/sootra/accessibility-app/internal/models"
	"github.com/sootra/accessibility-app/internal/pipeline"
)

const (
	// ContentTypeHeader is the Content-Type header name.
	ContentTypeHeader = "Content-Type"
	// DefaultRequirementsDocHeader is the header carrying the requirements document reference.
	DefaultRequirementsDocHeader = "X-Requirements-Doc"

	mediaTypePlain = "text/plain"
)

// DefaultContentTypes is the set of media types accepted when none is configured.
var DefaultContentTypes = []string{mediaTypePlain, "text/html", "application/json"}

var requirementsDocSchemes = []string{"http", "https", "s3"}

// Policy describes which headers an accessibility request must carry.
type Policy struct {
	ContentTypes          []string
	RequirementsDocHeader string
}

// NewPolicy returns a Policy, falling back to the defaults for empty values.
func NewPolicy(contentTypes []string, requirementsDocHeader string) *Policy {
	p := &Policy{RequirementsDocHeader: requirementsDocHeader}
	for _, ct := range contentTypes {
		if ct = strings.ToLower(strings.TrimSpace(ct)); ct != "" {
			p.ContentTypes = append(p.ContentTypes, ct)
		}
	}
	if len(p.ContentTypes) == 0 {
		p.ContentTypes = slices.Clone(DefaultContentTypes)
	}
	if p.RequirementsDocHeader == "" {
		p.RequirementsDocHeader = DefaultRequirementsDocHeader
	}
	return p
}

// ContentType returns the raw Content-Type header of the request.
func (p *Policy) ContentType(req models.Request) (string, error) {
	raw, found := req.Header(ContentTypeHeader)
	if !found || strings.TrimSpace(raw) == "" {
		return "", pipeline.NewError(pipeline.HeaderMissing, "missing required header: Content-Type")
	}
	return raw, nil
}

// MediaType returns the media type of a Content-Type value, without parameters.
// Unparsable values and media types outside the accepted set are rejected.
func (p *Policy) MediaType(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", pipeline.NewError(pipeline.UnsupportedMediaType, "unsupported content type: %s", contentType)
	}
	if !slices.Contains(p.ContentTypes, mediaType) {
		return "", pipeline.NewError(pipeline.UnsupportedMediaType, "unsupported content type: %s", mediaType)
	}
	return mediaType, nil
}

// RequirementsDoc returns the requirements document reference carried by the request.
// A missing reference is a missing header, except for plain text bodies: plain text only
// describes a two-part payload when a requirements document accompanies it, so it is
// rejected as an unsupported media type instead.
func (p *Policy) RequirementsDoc(req models.Request, contentType string) (string, error) {
	raw, found := req.Header(p.RequirementsDocHeader)
	raw = strings.TrimSpace(raw)
	if !found || raw == "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == mediaTypePlain {
			return "", pipeline.NewError(pipeline.UnsupportedMediaType,
				"unsupported content type: %s requires the %s header", mediaType, p.RequirementsDocHeader)
		}
		return "", pipeline.NewError(pipeline.HeaderMissing, "missing required header: %s", p.RequirementsDocHeader)
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || !slices.Contains(requirementsDocSchemes, strings.ToLower(u.Scheme)) {
		return "", pipeline.NewError(pipeline.InvalidHeader, "invalid %s reference: %s", p.RequirementsDocHeader, raw)
	}
	return raw, nil
}
