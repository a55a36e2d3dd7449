// Package errors provides standardized error handling for the dashboard and its backend calls.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodePasswordMismatch ErrorCode = "PASSWORD_MISMATCH"
	ErrCodeMissingLoanID    ErrorCode = "MISSING_LOAN_ID"

	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeSessionExpired ErrorCode = "SESSION_EXPIRED"

	ErrCodeBackendError       ErrorCode = "BACKEND_ERROR"
	ErrCodeBackendUnreachable ErrorCode = "BACKEND_UNREACHABLE"
	ErrCodeBackendTimeout     ErrorCode = "BACKEND_TIMEOUT"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"

	ErrCodeUploadRejected      ErrorCode = "UPLOAD_REJECTED"
	ErrCodeUnknownCategory     ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeDuplicateSubmission ErrorCode = "DUPLICATE_SUBMISSION"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
)

// ErrUnauthorized is the sentinel every caller checks before redirecting to the
// sign-in screen. The backend's 401 responses are normalized onto it.
var ErrUnauthorized = errors.New("UNAUTHORIZED")

// ErrSessionNotFound is returned by the session store for unknown or expired sessions.
var ErrSessionNotFound = errors.New("SESSION_NOT_FOUND")

// ErrDuplicateSubmission marks a replayed submission key. The first submit
// already reached the API, so callers treat it the same as success.
var ErrDuplicateSubmission = errors.New("DUPLICATE_SUBMISSION")

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Status    int                    `json:"-"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is see through the structured wrapper to the sentinels.
func (e *StandardError) Unwrap() error {
	switch e.Code {
	case ErrCodeUnauthorized, ErrCodeSessionExpired:
		return ErrUnauthorized
	case ErrCodeDuplicateSubmission:
		return ErrDuplicateSubmission
	}
	return nil
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a form validation error. Never reaches the backend.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Form validation failed",
		Details:   details,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewPasswordMismatchError creates a registration confirm-password error.
func NewPasswordMismatchError() *StandardError {
	return &StandardError{
		Code:      ErrCodePasswordMismatch,
		Message:   "Passwords do not match",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingLoanIDError creates the loan-details error for a missing loan_id query param.
func NewMissingLoanIDError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingLoanID,
		Message:   "No loan ID provided",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates the error that forces a sign-out redirect.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Authentication required",
		Details:   details,
		Status:    http.StatusUnauthorized,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendError creates an error for a non-2xx backend response.
func NewBackendError(status int, message string) *StandardError {
	code := ErrCodeBackendError
	if status == http.StatusNotFound {
		code = ErrCodeNotFound
	}
	if message == "" {
		message = fmt.Sprintf("Backend returned status %d", status)
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendUnreachableError creates an error for transport-level failures.
func NewBackendUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendUnreachable,
		Message:   "Could not reach the mortgage API",
		Details:   err.Error(),
		Status:    http.StatusBadGateway,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendTimeoutError creates an error for a backend call that exceeded its deadline.
func NewBackendTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendTimeout,
		Message:   "Mortgage API call timed out",
		Details:   fmt.Sprintf("operation: %s", operation),
		Status:    http.StatusGatewayTimeout,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadRejectedError creates an error for a rejected document upload.
func NewUploadRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadRejected,
		Message:   "Document upload rejected",
		Details:   details,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownCategoryError creates an error for an unmapped document category.
func NewUnknownCategoryError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCategory,
		Message:   "Unknown document category",
		Details:   fmt.Sprintf("category: %s", category),
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSubmissionError creates an error for a replayed form submission key.
func NewDuplicateSubmissionError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateSubmission,
		Message:   "Submission already processed",
		Details:   fmt.Sprintf("submissionKey: %s", key),
		Status:    http.StatusConflict,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError creates an error for redis session store failures.
func NewSessionStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store error",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsUnauthorized reports whether err should trigger the sign-out redirect.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// HTTPStatus returns the response status for an error, defaulting to 500.
func HTTPStatus(err error) int {
	var stdErr *StandardError
	if errors.As(err, &stdErr) && stdErr.Status != 0 {
		return stdErr.Status
	}
	return http.StatusInternalServerError
}

// UserMessage returns the message safe to show in the page's error banner.
func UserMessage(err error) string {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Message
	}
	return "Something went wrong. Please try again."
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "MISMATCH") || strings.Contains(codeStr, "MISSING"):
		return "VALIDATION"
	case strings.Contains(codeStr, "UNAUTHORIZED") || strings.Contains(codeStr, "SESSION"):
		return "AUTH"
	case strings.Contains(codeStr, "BACKEND") || strings.Contains(codeStr, "NOT_FOUND"):
		return "BACKEND"
	case strings.Contains(codeStr, "UPLOAD") || strings.Contains(codeStr, "CATEGORY"):
		return "UPLOAD"
	default:
		return "OTHER"
	}
}
