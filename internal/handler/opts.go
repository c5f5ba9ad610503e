package handler

import (
	"context"
	"log/slog"

	"github.com/sootra/accessibility-app/internal/analysis"
	"github.com/sootra/accessibility-app/internal/handler/processor"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithContext sets the context used when a request carries none.
func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

// WithContentTypes sets the accepted request media types.
func WithContentTypes(contentTypes []string) Option {
	return func(h *Handler) {
		h.contentTypes = contentTypes
	}
}

// WithRequirementsDocHeader sets the name of the header carrying the requirements document reference.
func WithRequirementsDocHeader(name string) Option {
	return func(h *Handler) {
		h.requirementsDocHeader = name
	}
}

// WithMaxPayloadBytes sets the largest accepted request body.
func WithMaxPayloadBytes(n int) Option {
	return func(h *Handler) {
		h.maxPayloadBytes = n
	}
}

// WithPreprocessor replaces the default text preprocessor.
func WithPreprocessor(p analysis.Preprocessor) Option {
	return func(h *Handler) {
		h.preprocessor = p
	}
}

// WithAnalyzer replaces the default rule analyzer.
func WithAnalyzer(a analysis.Analyzer) Option {
	return func(h *Handler) {
		h.analyzer = a
	}
}

// WithReportStore enables the upload of analysis reports to the given bucket.
func WithReportStore(store processor.ReportStore, bucket string) Option {
	return func(h *Handler) {
		h.reportStore = store
		h.reportBucket = bucket
	}
}
