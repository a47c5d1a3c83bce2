package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"not found", NotFound("product", "p1"), ErrNotFound, http.StatusNotFound},
		{"already exists", AlreadyExists("coupon", "code", "SALE10"), ErrAlreadyExists, http.StatusConflict},
		{"invalid input", InvalidInput("bad field"), ErrInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours"), ErrForbidden, http.StatusForbidden},
		{"conflict", Conflict("already in progress"), ErrConflict, http.StatusConflict},
		{"gone", Gone("code expired"), ErrGone, http.StatusGone},
		{"unavailable", Unavailable("upstream down"), ErrServiceUnavail, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("product", "p42")
	assert.Equal(t, "product with id p42 not found", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrap_PreservesSentinel(t *testing.T) {
	err := Wrap(ErrNotFound, "loading cart")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "loading cart")
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("outer: %w", Gone("expired"))
	assert.Equal(t, http.StatusGone, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
