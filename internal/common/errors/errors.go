// Package errors provides standardized error handling for the query pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Knowledge source errors, recovered inside the store and never
	// surfaced to the HTTP caller.
	ErrCodeSourceFetchFailed ErrorCode = "SOURCE_FETCH_FAILED"
	ErrCodeSourcePageInvalid ErrorCode = "SOURCE_PAGE_INVALID"

	// Classifier errors degrade the match result to none.
	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"
	ErrCodeClassifierTimeout    ErrorCode = "CLASSIFIER_TIMEOUT"
	ErrCodeValidationMismatch   ErrorCode = "VALIDATION_MISMATCH"

	// Side-effect errors are logged and ignored.
	ErrCodeAuditWriteFailed ErrorCode = "AUDIT_WRITE_FAILED"
	ErrCodeAlertSendFailed  ErrorCode = "ALERT_SEND_FAILED"

	// Request boundary errors surface with an explicit status code.
	ErrCodeRequestInvalid   ErrorCode = "REQUEST_INVALID"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSourceFetchFailedError creates a retryable knowledge-source error.
func NewSourceFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceFetchFailed,
		Message:   "Knowledge source fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourcePageInvalidError creates a non-retryable malformed-page error.
func NewSourcePageInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourcePageInvalid,
		Message:   "Knowledge source returned a malformed page",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassificationFailedError creates a retryable classifier provider error.
func NewClassificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationFailed,
		Message:   "Classifier invocation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierTimeoutError creates a retryable classifier timeout error.
func NewClassifierTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierTimeout,
		Message:   "Classifier call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationMismatchError records a classifier claim that failed snapshot
// validation. It is counted and logged, never thrown.
func NewValidationMismatchError(question string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationMismatch,
		Message:   "Classifier named a question absent from the snapshot",
		Details:   fmt.Sprintf("question: %s", question),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteFailedError creates a fire-and-forget audit sink error.
func NewAuditWriteFailedError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   "Audit record write failed",
		Details:   fmt.Sprintf("backend: %s, error: %s", backend, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError creates a non-retryable client error.
func NewRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMethodNotAllowedError creates a wrong-HTTP-method client error.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected orchestration failure. Details are
// logged but never leaked to the caller.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeSourceFetchFailed, ErrCodeSourcePageInvalid:
		return "knowledge_source"
	case ErrCodeClassificationFailed, ErrCodeClassifierTimeout, ErrCodeValidationMismatch:
		return "classifier"
	case ErrCodeAuditWriteFailed, ErrCodeAlertSendFailed:
		return "side_effect"
	case ErrCodeRequestInvalid, ErrCodeMethodNotAllowed:
		return "request"
	default:
		return "internal"
	}
}

// IsRecoveredLocally reports whether the error code belongs to the taxonomy
// of failures the pipeline absorbs without failing the HTTP response.
func IsRecoveredLocally(code ErrorCode) bool {
	switch GetErrorCategory(code) {
	case "knowledge_source", "classifier", "side_effect":
		return true
	}
	return false
}
