package pipeline

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies why a request was rejected.
type Kind string

const (
	HeaderMissing           Kind = "header_missing"
	InvalidHeader           Kind = "invalid_header"
	UnsupportedMediaType    Kind = "unsupported_media_type"
	EmptyBody               Kind = "empty_body"
	MalformedJSON           Kind = "malformed_json"
	MalformedHTML           Kind = "malformed_html"
	PayloadTooLarge         Kind = "payload_too_large"
	SizeGuardFailure        Kind = "size_guard_failure"
	InternalAnalysisFailure Kind = "internal_analysis_failure"
)

// AnalysisFailurePrefix starts the detail of every analysis failure response.
const AnalysisFailurePrefix = "Error processing accessibility part 1"

// Error is a request rejection carrying the HTTP status and the response field it is reported under.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error kind onto an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case UnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case SizeGuardFailure, InternalAnalysisFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Field is the response body key the message is reported under.
// Malformed HTML is reported under "error", everything else under "detail".
func (e *Error) Field() string {
	if e.Kind == MalformedHTML {
		return "error"
	}
	return "detail"
}

// Message is the human-readable text returned to the client.
func (e *Error) Message() string {
	if e.Kind == InternalAnalysisFailure {
		return fmt.Sprintf("%s: %v", AnalysisFailurePrefix, e.Cause)
	}
	return e.Cause.Error()
}

// NewError builds an Error of the given kind with a formatted cause.
func NewError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Cause: errors.Errorf(format, args...)}
}

// WrapError builds an Error of the given kind around an existing cause.
func WrapError(kind Kind, cause error, message string) error {
	return &Error{Kind: kind, Cause: errors.Wrap(cause, message)}
}

// AsError extracts a pipeline error from err. Errors of any other type are treated as analysis failures.
func AsError(err error) *Error {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr
	}
	return &Error{Kind: InternalAnalysisFailure, Cause: err}
}
