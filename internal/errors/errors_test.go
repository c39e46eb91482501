package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not here", NotFound("not here").Error())

	cause := errors.New("underlying")
	wrapped := Wrap(cause, ErrCodeInternal, "operation failed")
	assert.Equal(t, "operation failed: underlying", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsCodeHelpers(t *testing.T) {
	tests := []struct {
		err   error
		check func(error) bool
	}{
		{NotFound("x"), IsNotFound},
		{Conflict("x"), IsConflict},
		{Validation("x"), IsValidation},
		{Unauthorized("x"), IsUnauthorized},
		{Internal("x"), IsInternal},
	}
	for _, tt := range tests {
		assert.True(t, tt.check(tt.err))
	}

	assert.False(t, IsNotFound(Conflict("x")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

// Code checks must see through fmt.Errorf wrapping layers.
func TestIsCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get book: %w", NotFound("Book not found"))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, ErrCodeNotFound, GetCode(err))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeConflict, GetCode(Conflict("x")))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestGetField(t *testing.T) {
	err := ValidationField("username", "Username must be between 3 and 50 characters.")
	assert.Equal(t, "username", GetField(err))
	assert.Empty(t, GetField(Validation("no field")))
	assert.Empty(t, GetField(errors.New("plain")))
}

func TestValidationf(t *testing.T) {
	err := Validationf("value %d out of range", 42)
	require.True(t, IsValidation(err))
	assert.Equal(t, "value 42 out of range", err.Error())
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "whatever"))
}
