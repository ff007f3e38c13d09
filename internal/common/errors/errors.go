// internal/common/errors/errors.go

// Package errors provides standardized error handling for the lifecycle
// engine and its collaborators.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeApplicationNotFound  ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeDocumentNotFound     ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeIllegalTransition    ErrorCode = "ILLEGAL_TRANSITION"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeSnapshotInvalid      ErrorCode = "SNAPSHOT_INVALID"
	ErrCodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeNotificationSend     ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// NewApplicationNotFoundError creates a non-retryable lookup error.
func NewApplicationNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationNotFoundError creates a non-retryable lookup error.
func NewNotificationNotFoundError(notificationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationNotFound,
		Message:   "Notification not found",
		Details:   fmt.Sprintf("notificationId: %s", notificationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentNotFoundError creates a non-retryable lookup error.
func NewDocumentNotFoundError(applicationID, documentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentNotFound,
		Message:   "Document not found on application",
		Details:   fmt.Sprintf("applicationId: %s, documentId: %s", applicationID, documentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIllegalTransitionError creates a non-retryable transition error. The
// engine never coerces an illegal transition; the caller decides whether
// the attempt is fatal or ignorable.
func NewIllegalTransitionError(applicationID string, from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIllegalTransition,
		Message:   "Requested state is not reachable from the current state",
		Details:   fmt.Sprintf("applicationId: %s, from: %s, to: %s", applicationID, from, to),
		Retryable: false,
		Metadata: map[string]interface{}{
			"from": from,
			"to":   to,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotInvalidError creates a non-retryable hydration error.
func NewSnapshotInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotInvalid,
		Message:   "Persisted snapshot failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable persistence error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Persistence store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable delivery error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSend,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the error code from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsNotFound reports whether err is any of the lookup failures.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case ErrCodeApplicationNotFound, ErrCodeNotificationNotFound, ErrCodeDocumentNotFound:
		return true
	}
	return false
}

// IsIllegalTransition reports whether err is a transition table violation.
func IsIllegalTransition(err error) bool {
	return CodeOf(err) == ErrCodeIllegalTransition
}

// IsValidation reports whether err is a malformed-input failure.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidationFailed
}
