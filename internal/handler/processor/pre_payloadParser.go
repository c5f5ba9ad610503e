package processor

import (
	"context"
	"log/slog"

	"github.com/sootra/accessibility-app/internal/payload"
	"github.com/sootra/accessibility-app/internal/pipeline"
)

type payloadParserProcessor struct{}

// NewPayloadParserProcessor rejects empty bodies and parses the others into HTML and JSON segments.
func NewPayloadParserProcessor() Processor {
	return &payloadParserProcessor{}
}

func (p *payloadParserProcessor) Name() string {
	return "pre-processor:payload"
}

func (p *payloadParserProcessor) Process(_ context.Context, logger *slog.Logger, bus *pipeline.Bus) error {
	if err := payload.CheckNotEmpty(bus.Request.Body); err != nil {
		logger.Warn("rejecting request", slog.Any("error", err))
		return err
	}
	bus.Advance(pipeline.NonEmptyChecked)

	parsed, err := payload.Parse(bus.Request.Body)
	if err != nil {
		logger.Warn("rejecting request", slog.Any("error", err))
		return err
	}
	bus.Payload = parsed
	bus.Advance(pipeline.Parsed)

	logger.Debug("payload parsed", slog.String("kind", parsed.Kind.String()))
	return nil
}
