// Package apperrors provides the structured error taxonomy shared by the
// dialogue engine, the stores and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// Error codes
// ==========================

type ErrorCode string

const (
	// Collaborator failures. These are transport or backend errors, never "not found".
	ErrCodeBookingStoreUnavailable ErrorCode = "BOOKING_STORE_UNAVAILABLE"
	ErrCodeMenuCatalogUnavailable  ErrorCode = "MENU_CATALOG_UNAVAILABLE"
	ErrCodeSessionStoreUnavailable ErrorCode = "SESSION_STORE_UNAVAILABLE"
	ErrCodeNotificationSendFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeBookingNotFound  ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeGeneratorMissing ErrorCode = "GENERATOR_MISSING"
)

// StandardError is a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// Constructors
// ==========================

// NewCollaboratorError wraps a failure of an external collaborator.
func NewCollaboratorError(code ErrorCode, collaborator string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   collaborator + " unavailable",
		Retryable: true,
		Metadata:  map[string]interface{}{"collaborator": collaborator},
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewValidationError rejects caller input, naming the offending field.
func NewValidationError(field, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBookingNotFound,
		Message:   resource + " not found",
		Details:   id,
		Timestamp: time.Now().UTC(),
	}
}

func NewGeneratorMissingError(intent string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeneratorMissing,
		Message:   "no response generator registered",
		Details:   intent,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Inspection helpers
// ==========================

func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func IsRetryable(err error) bool {
	var se *StandardError
	return errors.As(err, &se) && se.Retryable
}

func IsCollaboratorError(err error) bool {
	switch CodeOf(err) {
	case ErrCodeBookingStoreUnavailable, ErrCodeMenuCatalogUnavailable,
		ErrCodeSessionStoreUnavailable, ErrCodeNotificationSendFailed:
		return true
	}
	return false
}

// FieldOf returns the field named by a validation error.
func FieldOf(err error) string {
	var se *StandardError
	if !errors.As(err, &se) || se.Metadata == nil {
		return ""
	}
	field, _ := se.Metadata["field"].(string)
	return field
}
