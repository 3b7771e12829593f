// internal/common/errors/http.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error body returned to webhook callers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// HTTPStatus maps error codes to HTTP status codes. Client/data errors map
// to 4xx, configuration and upstream failures to 5xx.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeInvalidPageURL:
		return http.StatusBadRequest
	case ErrCodeNoMatchingTemplate, ErrCodeMissingRequiredField:
		return http.StatusUnprocessableEntity
	case ErrCodeNotionFetchFailed, ErrCodeNotionUpdateFailed, ErrCodeDriveUploadFailed:
		return http.StatusBadGateway
	case ErrCodeConfigLoad, ErrCodeFormFill, ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HTTPHandler writes error responses and logs them with request context.
type HTTPHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// WriteError normalizes err to a StandardError, logs it, and writes the
// JSON error body with the mapped status code.
func (h *HTTPHandler) WriteError(w http.ResponseWriter, requestID string, err error) {
	stdErr := AsStandardError(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"requestId": requestID,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"status":    status,
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(stdErr.Message, fields)
	} else {
		h.logger.Warn(stdErr.Message, fields)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   stdErr.Message,
		Code:    string(stdErr.Code),
		Details: stdErr.Details,
	})
}
