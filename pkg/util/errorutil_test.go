package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewUnauthorized("auth.TOKEN_INVALID"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewRateLimited(), "RATE_LIMITED", http.StatusTooManyRequests},
		{NewNotFound("users.NOT_FOUND"), "NOT_FOUND", http.StatusNotFound},
		{NewConflict("users.EMAIL_IN_USE"), "CONFLICT", http.StatusConflict},
		{NewValidationFailed(nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.True(t, errors.As(tc.err, &domainErr), tc.code)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.StatusCode)
	}
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("users.EMAIL_IN_USE")
	mapped := ToDomainError(original)
	assert.Equal(t, "CONFLICT", mapped.Code)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("database exploded"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, "errors.INTERNAL", mapped.MessageCode)
	assert.EqualError(t, mapped.Err, "database exploded")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
}
