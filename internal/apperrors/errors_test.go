package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollaboratorError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("lookup: %w", NewCollaboratorError(ErrCodeBookingStoreUnavailable, "booking store", cause))

	assert.True(t, IsCollaboratorError(err))
	assert.True(t, IsRetryable(err))
	assert.Equal(t, ErrCodeBookingStoreUnavailable, CodeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("guests", "Missing required field: guests")

	assert.False(t, IsCollaboratorError(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, "guests", FieldOf(err))
	assert.Equal(t, ErrCodeValidationFailed, CodeOf(err))
}

func TestInspectionOfPlainErrors(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, ErrorCode(""), CodeOf(err))
	assert.Equal(t, "", FieldOf(err))
	assert.False(t, IsCollaboratorError(err))
	assert.False(t, IsCollaboratorError(NewNotFoundError("booking", "BK9")))
}
