package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("Only draft entries can be posted")
	wrapped := fmt.Errorf("post entry: %w", err)

	assert.True(t, errors.Is(wrapped, ErrDomain))
	assert.False(t, errors.Is(wrapped, ErrValidation))

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "Only draft entries can be posted", de.Message)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("entryDate", "is required")
	assert.EqualError(t, err, "entryDate: is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrDomain))

	assert.EqualError(t, NewValidationError("", "bad input"), "bad input")
}

func TestAppErrorUnwrap(t *testing.T) {
	base := NewNotFoundError("account", "1000")
	err := NewAppError(500, "failed to load account", base)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "failed to load account")
	assert.Contains(t, err.Error(), "account 1000")
}
