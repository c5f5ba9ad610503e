// Package analysis provides the accessibility analysis collaborator: a preprocessor turning validated
// payloads into LLM-ready text and an analyzer turning that text into a results mapping.
package analysis

import (
	"context"

	"github.com/sootra/accessibility-app/internal/models"
)

// Preprocessor converts a validated payload into the text handed to an Analyzer.
type Preprocessor interface {
	Preprocess(payload models.Payload) (string, error)
}

// Analyzer produces the accessibility results for preprocessed text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (models.Results, error)
}

// PreprocessorFunc adapts a function to the Preprocessor interface.
type PreprocessorFunc func(payload models.Payload) (string, error)

func (f PreprocessorFunc) Preprocess(payload models.Payload) (string, error) {
	return f(payload)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, text string) (models.Results, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, text string) (models.Results, error) {
	return f(ctx, text)
}
