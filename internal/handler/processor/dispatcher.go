package processor

import (
	"context"
	"log/slog"

	"github.com/sootra/accessibility-app/internal/analysis"
	"github.com/sootra/accessibility-app/internal/models"
	"github.com/sootra/accessibility-app/internal/pipeline"
)

type dispatcherProcessor struct {
	preprocessor analysis.Preprocessor
	analyzer     analysis.Analyzer
}

// NewDispatcherProcessor hands validated payloads to the analysis collaborator.
func NewDispatcherProcessor(preprocessor analysis.Preprocessor, analyzer analysis.Analyzer) Processor {
	return &dispatcherProcessor{preprocessor: preprocessor, analyzer: analyzer}
}

func (p *dispatcherProcessor) Name() string {
	return "processor:dispatch"
}

func (p *dispatcherProcessor) Process(ctx context.Context, logger *slog.Logger, bus *pipeline.Bus) (err error) {
	if bus.Payload == nil {
		return pipeline.NewError(pipeline.InternalAnalysisFailure, "no parsed payload to analyse")
	}
	bus.Advance(pipeline.Dispatched)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("analysis panicked", slog.Any("panic", r))
			err = pipeline.NewError(pipeline.InternalAnalysisFailure, "%v", r)
		}
	}()

	text, err := p.preprocessor.Preprocess(*bus.Payload)
	if err != nil {
		logger.Error("failed to preprocess payload", slog.Any("error", err))
		return &pipeline.Error{Kind: pipeline.InternalAnalysisFailure, Cause: err}
	}
	bus.Text = text

	results, err := p.analyzer.Analyze(ctx, text)
	if err != nil {
		logger.Error("failed to analyse payload", slog.Any("error", err))
		return &pipeline.Error{Kind: pipeline.InternalAnalysisFailure, Cause: err}
	}
	if results == nil {
		results = models.Results{}
	}
	bus.Results = results

	logger.Info("analysis complete", slog.Int("textLength", len(text)))
	return nil
}
