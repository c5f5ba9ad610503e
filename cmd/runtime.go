package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/config"
	"github.com/sootra/accessibility-app/internal/controllers/aws"
	"github.com/sootra/accessibility-app/internal/handler"
	"github.com/sootra/accessibility-app/internal/runtime"
)

// newRuntime wires the accessibility handler from the loaded configuration.
func newRuntime(ctx context.Context) (*runtime.Runtime, error) {
	logger.Debug("creating accessibility handler...")
	opts := []handler.Option{
		handler.WithContext(ctx),
		handler.WithContentTypes(config.Accessibility.ContentTypes),
		handler.WithRequirementsDocHeader(config.Accessibility.RequirementsDocHeader),
		handler.WithMaxPayloadBytes(config.Accessibility.MaxPayloadBytes),
		handler.WithLogger(logger.With("component", "accessibility-handler")),
	}

	if upload := config.Global.S3.Upload; upload.Enabled {
		logger.Debug("creating report store...", "bucket", upload.BucketName)
		ctl, err := aws.NewController(
			aws.WithContext(ctx),
			aws.WithLogger(logger.With("component", "report-store")))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create report store")
		}
		opts = append(opts, handler.WithReportStore(ctl, upload.BucketName))
	}

	hdl, err := handler.NewAccessibilityHandler(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create accessibility handler")
	}

	logger.Debug("creating runtime...")
	return runtime.NewRuntime(hdl,
		runtime.WithLogger(logger.With("component", "runtime"))), nil
}
