// Package runtime adapts the accessibility handler to the transports it is served from.
package runtime

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/handler"
	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/sootra/accessibility-app/internal/models"
)

// Lambda payload types understood by LambdaHandler.
const (
	PayloadTypeAPIGatewayV1 = "api-gateway-v1"
	PayloadTypeAPIGatewayV2 = "api-gateway-v2"
	PayloadTypeLambdaURL    = "lambda-url"
)

// Option is a function that configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for transport level events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// Runtime serves the accessibility handler over net/http and AWS Lambda triggers.
type Runtime struct {
	*handler.Handler
	logger *slog.Logger
}

// NewRuntime creates a new runtime instance
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		helpers.RespondHTTP(methodNotAllowed(req.Method), resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	// The handler replaces request IDs that are not safe to log or embed in object keys.
	request := models.Request{
		ID:      req.Header.Get(handler.RequestIDHeader),
		Headers: make(map[string]string, len(req.Header)),
	}
	for k, v := range req.Header {
		if len(v) > 0 {
			request.Headers[strings.ToLower(k)] = v[0]
		}
	}

	// A non-positive limit is a guard misconfiguration, reported by the handler itself.
	reader := req.Body
	if limit := r.Handler.MaxPayloadBytes(); limit > 0 {
		reader = http.MaxBytesReader(resp, req.Body, int64(limit))
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			helpers.RespondHTTP(r.Handler.RejectOversized(request), resp)
			return
		}
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(helpers.ErrorResponse(http.StatusBadRequest, "detail", "failed to read request body"), resp)
		return
	}
	request.Body = body

	helpers.RespondHTTP(r.Handler.Process(req.Context(), request), resp)
}

// LambdaHandler returns the Lambda handler function matching the payload type of the trigger.
func (r *Runtime) LambdaHandler(payloadType string) (any, error) {
	switch payloadType {
	case PayloadTypeAPIGatewayV1:
		return r.HandleAPIGatewayV1, nil
	case PayloadTypeAPIGatewayV2:
		return r.HandleAPIGatewayV2, nil
	case PayloadTypeLambdaURL:
		return r.HandleLambdaURL, nil
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", payloadType)
	}
}

// HandleAPIGatewayV1 serves API Gateway REST API (payload format 1.0) events.
func (r *Runtime) HandleAPIGatewayV1(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response := r.handleEvent(ctx, event.RequestContext.RequestID, event.HTTPMethod, event.Headers, event.Body, event.IsBase64Encoded)
	return events.APIGatewayProxyResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Headers,
		Body:       response.Body,
	}, nil
}

// HandleAPIGatewayV2 serves API Gateway HTTP API (payload format 2.0) events.
func (r *Runtime) HandleAPIGatewayV2(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	response := r.handleEvent(ctx, event.RequestContext.RequestID, event.RequestContext.HTTP.Method, event.Headers, event.Body, event.IsBase64Encoded)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Headers,
		Body:       response.Body,
	}, nil
}

// HandleLambdaURL serves Lambda function URL events.
func (r *Runtime) HandleLambdaURL(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	response := r.handleEvent(ctx, event.RequestContext.RequestID, event.RequestContext.HTTP.Method, event.Headers, event.Body, event.IsBase64Encoded)
	return events.LambdaFunctionURLResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Headers,
		Body:       response.Body,
	}, nil
}

func (r *Runtime) handleEvent(ctx context.Context, id, method string, headers map[string]string, body string, isBase64 bool) models.Response {
	r.logger.Info("received lambda event", slog.String("requestID", id), slog.String("method", method))
	if method != "" && !strings.EqualFold(method, http.MethodPost) {
		return methodNotAllowed(method)
	}

	// Lower-case incoming headers for compatibility purposes
	request := models.Request{ID: id, Headers: make(map[string]string, len(headers))}
	for k, v := range headers {
		request.Headers[strings.ToLower(k)] = v
	}
	request.Body = []byte(body)
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			r.logger.Warn("failed to decode base64 body", slog.String("requestID", id), slog.Any("error", err))
			return helpers.ErrorResponse(http.StatusBadRequest, "detail", "invalid base64 encoded body")
		}
		request.Body = decoded
	}
	return r.Handler.Process(ctx, request)
}

func methodNotAllowed(method string) models.Response {
	response := helpers.ErrorResponse(http.StatusMethodNotAllowed, "detail", fmt.Sprintf("method %s not allowed", method))
	response.Headers["Allow"] = http.MethodPost
	return response
}
