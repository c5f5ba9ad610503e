package processor

import (
	"context"
	"log/slog"

	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/sootra/accessibility-app/internal/pipeline"
)

type sizeGuardProcessor struct {
	maxBytes int
}

// NewSizeGuardProcessor rejects bodies larger than maxBytes.
func NewSizeGuardProcessor(maxBytes int) Processor {
	return &sizeGuardProcessor{maxBytes: maxBytes}
}

func (p *sizeGuardProcessor) Name() string {
	return "pre-processor:size"
}

func (p *sizeGuardProcessor) Process(_ context.Context, logger *slog.Logger, bus *pipeline.Bus) error {
	if p.maxBytes <= 0 {
		logger.Error("size guard is misconfigured", slog.Int("maxBytes", p.maxBytes))
		return pipeline.NewError(pipeline.SizeGuardFailure, "payload size limit is not configured")
	}
	if size := len(bus.Request.Body); size > p.maxBytes {
		helpers.OnceAMinute.Do(func() {
			logger.Warn("rejecting oversized payload", slog.Int("bytes", size), slog.Int("maxBytes", p.maxBytes))
		})
		return pipeline.NewError(pipeline.PayloadTooLarge, "payload of %d bytes exceeds the limit of %d bytes", size, p.maxBytes)
	}
	bus.Advance(pipeline.SizeChecked)
	return nil
}
