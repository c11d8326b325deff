package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedErrorsMatchTheirCategory(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateName, ErrDuplicate)
	assert.ErrorIs(t, ErrDuplicateCode, ErrDuplicate)
	assert.ErrorIs(t, ErrDuplicateReference, ErrDuplicate)
	assert.ErrorIs(t, ErrGroupNotFound, ErrValidation)
	assert.ErrorIs(t, ErrAccountNotFound, ErrValidation)
	assert.ErrorIs(t, ErrInvalidEmail, ErrValidation)
	assert.NotErrorIs(t, ErrAccountNotFound, ErrNotFound)
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewAppError(500, "failed to save account", cause)

	assert.Equal(t, "failed to save account: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrInternal)

	bare := NewAppError(503, "unavailable", nil)
	assert.ErrorIs(t, bare, ErrInternal)

	client := NewAppError(400, "bad input", ErrValidation)
	assert.ErrorIs(t, client, ErrValidation)
	assert.NotErrorIs(t, client, ErrInternal)
}

func TestConstructors(t *testing.T) {
	nf := NewNotFoundError("account a1")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Contains(t, nf.Error(), "account a1")

	v := NewValidationError("limit must be positive")
	assert.ErrorIs(t, v, ErrValidation)
}
