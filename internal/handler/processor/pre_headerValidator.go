package processor

import (
	"context"
	"log/slog"

	"github.com/sootra/accessibility-app/internal/pipeline"
	"github.com/sootra/accessibility-app/internal/validation"
)

type headerValidatorProcessor struct {
	policy *validation.Policy
}

// NewHeaderValidatorProcessor checks the Content-Type and requirements document headers.
func NewHeaderValidatorProcessor(policy *validation.Policy) Processor {
	return &headerValidatorProcessor{policy: policy}
}

func (p *headerValidatorProcessor) Name() string {
	return "pre-processor:headers"
}

// Process checks that both required headers are present before judging the media type.
func (p *headerValidatorProcessor) Process(_ context.Context, logger *slog.Logger, bus *pipeline.Bus) error {
	contentType, err := p.policy.ContentType(bus.Request)
	if err != nil {
		logger.Warn("rejecting request", slog.Any("error", err))
		return err
	}
	doc, err := p.policy.RequirementsDoc(bus.Request, contentType)
	if err != nil {
		logger.Warn("rejecting request", slog.Any("error", err))
		return err
	}
	bus.RequirementsDoc = doc
	bus.Advance(pipeline.HeaderChecked)

	mediaType, err := p.policy.MediaType(contentType)
	if err != nil {
		logger.Warn("rejecting request", slog.Any("error", err))
		return err
	}
	bus.ContentType = mediaType
	bus.Advance(pipeline.ContentTypeChecked)

	logger.Debug("headers are valid", slog.String("contentType", mediaType), slog.String("requirementsDoc", doc))
	return nil
}
