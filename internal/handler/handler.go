// Package handler provides the accessibility part 1 request handler: it validates a raw request and dispatches it to analysis.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/analysis"
	"github.com/sootra/accessibility-app/internal/handler/processor"
	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/sootra/accessibility-app/internal/models"
	"github.com/sootra/accessibility-app/internal/pipeline"
	"github.com/sootra/accessibility-app/internal/validation"
)

// DefaultMaxPayloadBytes is the request body limit used when none is configured.
const DefaultMaxPayloadBytes = 512 << 10

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-Id"

// Client supplied request IDs are kept only when they are short and safe to embed in logs and object keys.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// Option is a function that configures a Handler.
type Option func(*Handler)

// Handler validates accessibility requests and dispatches them to the analysis collaborator.
type Handler struct {
	ctx    context.Context
	logger *slog.Logger

	contentTypes          []string
	requirementsDocHeader string
	maxPayloadBytes       int

	preprocessor analysis.Preprocessor
	analyzer     analysis.Analyzer

	reportStore  processor.ReportStore
	reportBucket string

	policy         *validation.Policy
	preProcessors  []processor.Processor
	postProcessors []processor.Processor
}

// NewAccessibilityHandler creates a Handler. Unset options fall back to the default header policy,
// size limit, preprocessor and rule analyzer.
func NewAccessibilityHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger:          helpers.NewNoopLogger(),
		maxPayloadBytes: DefaultMaxPayloadBytes,
	}
	for _, opt := range options {
		opt(_inst)
	}

	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.preprocessor == nil {
		_inst.preprocessor = analysis.NewTextPreprocessor()
	}
	if _inst.analyzer == nil {
		_inst.analyzer = analysis.NewRuleAnalyzer()
	}
	_inst.policy = validation.NewPolicy(_inst.contentTypes, _inst.requirementsDocHeader)

	_inst.preProcessors = []processor.Processor{
		processor.NewHeaderValidatorProcessor(_inst.policy),
		processor.NewPayloadParserProcessor(),
		processor.NewSizeGuardProcessor(_inst.maxPayloadBytes),
		processor.NewDispatcherProcessor(_inst.preprocessor, _inst.analyzer),
	}
	if _inst.reportStore != nil {
		if _inst.reportBucket == "" {
			return nil, errors.New("report store configured without a bucket")
		}
		_inst.postProcessors = append(_inst.postProcessors,
			processor.NewS3UploaderPostProcessor(_inst.reportStore, _inst.reportBucket))
	}

	return _inst, nil
}

// MaxPayloadBytes returns the largest request body the handler accepts.
func (h *Handler) MaxPayloadBytes() int {
	return h.maxPayloadBytes
}

// Process validates the request and returns the response to send back. It never fails: every
// rejection is rendered as a JSON error response.
func (h *Handler) Process(ctx context.Context, req models.Request) models.Response {
	if ctx == nil {
		ctx = h.ctx
	}
	req.ID = h.requestID(req.ID)
	bus := pipeline.NewBus(req)
	logger := h.logger.With(slog.String("requestID", req.ID))
	logger.Info("processing request...", slog.Int("bytes", len(req.Body)))

	var response models.Response
	if err := processor.Process(ctx, logger, bus, h.preProcessors...); err != nil {
		pErr := pipeline.AsError(err)
		response = helpers.ErrorResponse(pErr.StatusCode(), pErr.Field(), pErr.Message())
	} else {
		_ = processor.Process(ctx, logger, bus, h.postProcessors...)
		response = helpers.JSONResponse(http.StatusOK, map[string]any{"results": bus.Results})
	}
	bus.Advance(pipeline.Responded)
	response.Headers[RequestIDHeader] = req.ID
	bus.Response = response

	level := slog.LevelInfo
	if response.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	} else if response.StatusCode >= http.StatusBadRequest {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "request processed",
		slog.Int("status", response.StatusCode),
		slog.Any("bus", bus),
		slog.Duration("elapsed", time.Since(bus.Received)))
	return response
}

// RejectOversized builds the response for a body the transport refused to read past the size limit.
func (h *Handler) RejectOversized(req models.Request) models.Response {
	req.ID = h.requestID(req.ID)
	pErr := pipeline.AsError(pipeline.NewError(pipeline.PayloadTooLarge,
		"payload exceeds the limit of %d bytes", h.maxPayloadBytes))
	h.logger.Warn("rejecting oversized payload", slog.String("requestID", req.ID), slog.Int("maxBytes", h.maxPayloadBytes))
	response := helpers.ErrorResponse(pErr.StatusCode(), pErr.Field(), pErr.Message())
	response.Headers[RequestIDHeader] = req.ID
	return response
}

// requestID returns id when it is a valid request ID, a fresh UUID otherwise.
func (h *Handler) requestID(id string) string {
	if requestIDPattern.MatchString(id) {
		return id
	}
	if id != "" {
		h.logger.Warn("replacing invalid request ID", slog.Int("length", len(id)))
	}
	return uuid.NewString()
}
