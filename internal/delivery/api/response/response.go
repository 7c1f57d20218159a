// Package response renders the JSON envelopes of the API.
package response

import (
	"net/http"

	deliverycontext "playground/internal/delivery/context"
	domainerrors "playground/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// SuccessOK is the success marker clients check on mutating endpoints.
const SuccessOK = "ok"

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
	Success string `json:"success,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string    `json:"message"`
	Code    string    `json:"code"`
	Details string    `json:"details,omitempty"`
	Meta    *MetaInfo `json:"meta"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// OK acknowledges with {message, success:"ok"}.
func OK(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message, Success: SuccessOK})
}

// JSON returns data as the whole body.
func JSON(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error renders an error body. Details are dropped for 5xx and auth failures.
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if statusCode == http.StatusNoContent {
		return c.NoContent(statusCode)
	}
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		Message: message,
		Code:    errorCode,
		Details: details,
		Meta:    &MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
	})
}

// AppError renders a domain error with its own status and code.
func AppError(c echo.Context, err domainerrors.AppError) error {
	return Error(c, err.HTTPCode(), err.ErrorCode(), err.Message(), err.Details())
}
