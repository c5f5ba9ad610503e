package models

// PayloadKind identifies which shape a parsed request body has.
type PayloadKind int

const (
	// HTMLJSONPair is an HTML document followed by a blank line and a JSON object.
	HTMLJSONPair PayloadKind = iota + 1
	// JSONOnly is a body made of a single JSON object.
	JSONOnly
	// HTMLOnly is a bare HTML document without a trailing JSON object.
	HTMLOnly
)

func (k PayloadKind) String() string {
	switch k {
	case HTMLJSONPair:
		return "html+json"
	case JSONOnly:
		return "json"
	case HTMLOnly:
		return "html"
	default:
		return "unknown"
	}
}

// Payload is a validated request body. It is immutable once built by the payload parser.
type Payload struct {
	Kind PayloadKind
	HTML string
	JSON map[string]any
}

// HasHTML reports whether the payload carries an HTML document.
func (p Payload) HasHTML() bool {
	return p.Kind == HTMLJSONPair || p.Kind == HTMLOnly
}

// HasJSON reports whether the payload carries a JSON object.
func (p Payload) HasJSON() bool {
	return p.Kind == HTMLJSONPair || p.Kind == JSONOnly
}

// Results is the mapping produced by the analysis collaborator.
type Results = map[string]any
