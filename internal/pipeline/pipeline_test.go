package pipeline_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sootra/accessibility-app/internal/models"
	"github.com/sootra/accessibility-app/internal/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	testCases := []struct {
		Kind           pipeline.Kind
		ExpectedStatus int
		ExpectedField  string
	}{
		{pipeline.HeaderMissing, http.StatusBadRequest, "detail"},
		{pipeline.InvalidHeader, http.StatusBadRequest, "detail"},
		{pipeline.UnsupportedMediaType, http.StatusUnsupportedMediaType, "detail"},
		{pipeline.EmptyBody, http.StatusBadRequest, "detail"},
		{pipeline.MalformedJSON, http.StatusBadRequest, "detail"},
		{pipeline.MalformedHTML, http.StatusBadRequest, "error"},
		{pipeline.PayloadTooLarge, http.StatusRequestEntityTooLarge, "detail"},
		{pipeline.SizeGuardFailure, http.StatusInternalServerError, "detail"},
		{pipeline.InternalAnalysisFailure, http.StatusInternalServerError, "detail"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.Kind), func(t *testing.T) {
			err := pipeline.AsError(pipeline.NewError(tc.Kind, "cause %d", 1))
			assert.Equal(t, tc.Kind, err.Kind)
			assert.Equal(t, tc.ExpectedStatus, err.StatusCode())
			assert.Equal(t, tc.ExpectedField, err.Field())
			assert.Contains(t, err.Message(), "cause 1")
		})
	}
}

func TestAsError_Foreign(t *testing.T) {
	cause := errors.New("boom")
	err := pipeline.AsError(fmt.Errorf("wrapped: %w", cause))

	assert.Equal(t, pipeline.InternalAnalysisFailure, err.Kind)
	assert.Equal(t, "Error processing accessibility part 1: wrapped: boom", err.Message())
	assert.ErrorIs(t, err, cause)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := pipeline.WrapError(pipeline.MalformedJSON, cause, "invalid JSON payload")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid JSON payload: unexpected EOF", pipeline.AsError(err).Message())
}

func TestBus_Advance(t *testing.T) {
	bus := pipeline.NewBus(models.Request{ID: "req"})
	assert.Equal(t, pipeline.Received, bus.Stage)

	bus.Advance(pipeline.Parsed)
	bus.Advance(pipeline.HeaderChecked)
	assert.Equal(t, pipeline.Parsed, bus.Stage)
	assert.Equal(t, "parsed", bus.Stage.String())

	bus.Advance(pipeline.Rejected)
	assert.Equal(t, "rejected", bus.Stage.String())
	assert.Equal(t, "unknown", pipeline.Stage(99).String())
}
