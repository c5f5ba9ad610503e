// Package processor provides the stages a request goes through, chained by Process.
package processor

import (
	"context"
	"log/slog"

	"github.com/sootra/accessibility-app/internal/pipeline"
)

// Processor is an interface that defines a method to process a request bus.
// Processors are shared between requests and must not keep per-request state.
type Processor interface {
	Name() string
	Process(ctx context.Context, logger *slog.Logger, bus *pipeline.Bus) error
}

// Process runs the processors in order and stops at the first failure, which is recorded on the bus.
func Process(ctx context.Context, logger *slog.Logger, bus *pipeline.Bus, processors ...Processor) error {
	for _, p := range processors {
		if err := p.Process(ctx, logger.WithGroup(p.Name()), bus); err != nil {
			bus.Error = err
			bus.Advance(pipeline.Rejected)
			return err
		}
	}
	return nil
}
