package helpers_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/sootra/accessibility-app/internal/models"
	"github.com/stretchr/testify/assert"
)

type expectedResponse struct {
	StatusCode int
	Body       string
	Header     string
}

func TestRespondHTTP(t *testing.T) {
	testCases := []struct {
		Name     string
		Response models.Response
		Expected expectedResponse
	}{
		{
			Name:     "results",
			Response: helpers.JSONResponse(http.StatusOK, map[string]any{"results": map[string]any{"score": 100}}),
			Expected: expectedResponse{
				StatusCode: http.StatusOK,
				Body:       `{"results":{"score":100}}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "detail",
			Response: helpers.ErrorResponse(http.StatusBadRequest, "detail", "request body is empty"),
			Expected: expectedResponse{
				StatusCode: http.StatusBadRequest,
				Body:       `{"detail":"request body is empty"}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "error",
			Response: helpers.ErrorResponse(http.StatusBadRequest, "error", "invalid HTML payload"),
			Expected: expectedResponse{
				StatusCode: http.StatusBadRequest,
				Body:       `{"error":"invalid HTML payload"}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "unencodable",
			Response: helpers.JSONResponse(http.StatusOK, map[string]any{"score": math.NaN()}),
			Expected: expectedResponse{
				StatusCode: http.StatusInternalServerError,
				Body:       `"detail":"failed to encode response`,
				Header:     "application/json",
			},
		},
		{
			Name:     "empty",
			Response: models.Response{},
			Expected: expectedResponse{
				StatusCode: http.StatusOK,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rw := httptest.NewRecorder()

			helpers.RespondHTTP(tc.Response, rw)

			assert.Equal(t, tc.Expected.StatusCode, rw.Code)
			assert.Equal(t, tc.Expected.Header, rw.Header().Get("Content-Type"))
			assert.Contains(t, rw.Body.String(), tc.Expected.Body)
		})
	}
}
