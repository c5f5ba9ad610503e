package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/sootra/accessibility-app/internal/models"
)

const contentTypeJSON = "application/json"

// JSONResponse builds a response whose body is the JSON encoding of v.
func JSONResponse(statusCode int, v any) models.Response {
	body, err := json.Marshal(v)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"detail": "failed to encode response: " + err.Error()})
	}
	return models.Response{
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		StatusCode: statusCode,
	}
}

// ErrorResponse builds a JSON response of the form {"<field>": "<message>"}.
func ErrorResponse(statusCode int, field, message string) models.Response {
	return JSONResponse(statusCode, map[string]string{field: message})
}

// RespondHTTP writes the response to rw. A zero status code is written as 200.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(response.Body))
}
