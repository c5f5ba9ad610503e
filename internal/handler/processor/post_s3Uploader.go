package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sootra/accessibility-app/internal/pipeline"
)

// ReportStore persists analysis reports.
type ReportStore interface {
	PutS3Object(ctx context.Context, id string, bucket string, body []byte) (string, error)
}

type report struct {
	RequestID       string         `json:"requestId"`
	ReceivedAt      time.Time      `json:"receivedAt"`
	RequirementsDoc string         `json:"requirementsDoc"`
	ContentType     string         `json:"contentType"`
	Payload         string         `json:"payload"`
	Bytes           int            `json:"bytes"`
	Results         map[string]any `json:"results"`
}

type s3UploaderPostProcessor struct {
	store  ReportStore
	bucket string
}

// NewS3UploaderPostProcessor uploads a report of every analysed request. Upload failures never fail the request.
func NewS3UploaderPostProcessor(store ReportStore, bucket string) Processor {
	return &s3UploaderPostProcessor{store: store, bucket: bucket}
}

func (p *s3UploaderPostProcessor) Name() string {
	return "post-processor:s3"
}

func (p *s3UploaderPostProcessor) Process(ctx context.Context, logger *slog.Logger, bus *pipeline.Bus) error {
	if p.store == nil || p.bucket == "" {
		logger.Debug("s3 upload is disabled")
		return nil
	}
	r := report{
		RequestID:       bus.Request.ID,
		ReceivedAt:      bus.Received.UTC(),
		RequirementsDoc: bus.RequirementsDoc,
		ContentType:     bus.ContentType,
		Bytes:           len(bus.Request.Body),
		Results:         bus.Results,
	}
	if bus.Payload != nil {
		r.Payload = bus.Payload.Kind.String()
	}
	body, err := json.Marshal(r)
	if err != nil {
		logger.Warn("failed to encode report", slog.Any("error", err))
		return nil
	}
	key, err := p.store.PutS3Object(ctx, bus.Request.ID, p.bucket, body)
	if err != nil {
		logger.Warn("failed to store report in S3", slog.Any("error", err))
		return nil
	}
	logger.Info("report stored", slog.String("bucket", p.bucket), slog.String("key", key))
	return nil
}
