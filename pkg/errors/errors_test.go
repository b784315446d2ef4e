package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFound("doctor", nil), http.StatusNotFound},
		{Validation("end_time must be after start_time", nil), http.StatusBadRequest},
		{Integrity("duplicate email", nil), http.StatusBadRequest},
		{Unauthorized("invalid credentials", nil), http.StatusUnauthorized},
		{Conflict("schedule overlap", nil), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestFromError(t *testing.T) {
	appErr := Validation("bad input", nil)
	assert.Equal(t, appErr, FromError(appErr))

	// Wrapped AppErrors unwrap back out.
	wrapped := fmt.Errorf("handling request: %w", appErr)
	assert.Equal(t, appErr, FromError(wrapped))

	// Unknown errors become internal without leaking their message.
	plain := errors.New("pq: connection refused")
	got := FromError(plain)
	assert.Equal(t, ErrInternal, got.Code)
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, plain)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "doctor not found", NotFound("doctor", nil).Error())

	cause := errors.New("no rows")
	assert.Equal(t, "doctor not found: no rows", NotFound("doctor", cause).Error())
}
