// internal/common/errors/handler.go
package errors

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorHandler normalizes page errors and decides between the sign-out
// redirect and an inline error render.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError handles any error raised while serving a page request.
// Returns true when the request was redirected and the caller must stop rendering.
func (h *ErrorHandler) HandleRequestError(c *gin.Context, page string, err error) bool {
	stdErr := h.normalizeError(err)

	h.logError(c, page, stdErr)

	// A 401 anywhere invalidates the cached user and sends the browser to sign-in.
	if IsUnauthorized(stdErr) {
		c.Redirect(302, "/logout")
		c.Abort()
		return true
	}
	return false
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	if IsUnauthorized(err) {
		return NewUnauthorizedError(err.Error())
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Status:    500,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(c *gin.Context, page string, stdErr *StandardError) {
	fields := map[string]interface{}{
		"page":          page,
		"path":          c.Request.URL.Path,
		"method":        c.Request.Method,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"status":        stdErr.Status,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}

	// Validation problems are the user's, not ours
	if GetErrorCategory(stdErr.Code) == "VALIDATION" {
		h.logger.Warn("Request rejected", fields)
		return
	}
	h.logger.Error("Request failed", fields)
}
