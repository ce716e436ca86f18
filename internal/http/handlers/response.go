// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints.
// Every non-2xx response carries an ErrorResponse whose `message` field is the
// shared error contract consumed by clients; `code` and `request_id` supplement
// it for programmatic handling and log correlation.
//
// Conventions:
//   - fail() centralizes error formatting and ensures 5xx responses are logged
//     with request context; the logged error never reaches the client.
//   - ok() writes success bodies in a consistent shape.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-form-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Message is safe to render verbatim in a client UI. Code is a stable
// machine-readable string (see errors.go). RequestID echoes X-Request-ID so
// client-side errors can be correlated with server logs.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"Submission with id 7 not found."`
}

// MessageResponse is the confirmation body returned by destructive operations.
type MessageResponse struct {
	Message string `json:"message" example:"Submission with id 7 successfully deleted."`
}

// fail aborts the request with a structured error.
//
// Server errors (>=500) are logged with the request-scoped logger; cause is
// the original error and stays server-side only.
func fail(c *gin.Context, status int, code, msg string, cause error) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		ev := lg.Error().
			Int("status", status).
			Str("code", code)
		if cause != nil {
			ev = ev.Err(cause)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for use outside the package
// (e.g., router fallbacks).
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg, nil) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
