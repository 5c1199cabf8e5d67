package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("cart", "c1")
	assert.Equal(t, "NOT_FOUND: cart with id c1 not found", err.Error())

	wrapped := &AppError{Code: "INTERNAL_ERROR", Message: "boom", Err: errors.New("pg down")}
	assert.Equal(t, "INTERNAL_ERROR: boom: pg down", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	err := InvalidInput("price is required")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	inner := errors.New("write failed")
	assert.True(t, errors.Is(Internal(inner), inner))
}

func TestNew(t *testing.T) {
	err := New("EMPTY_CART", "cart is empty", http.StatusBadRequest)
	assert.Equal(t, "EMPTY_CART", err.Code)
	assert.Equal(t, "cart is empty", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"app error", New("EMPTY_CART", "cart is empty", http.StatusBadRequest), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("checkout: %w", NotFound("cart", "c1")), http.StatusNotFound},
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"invalid input sentinel", fmt.Errorf("add item: %w", ErrInvalidInput), http.StatusBadRequest},
		{"payment failed", ErrPaymentFailed, http.StatusUnprocessableEntity},
		{"service unavailable", ErrServiceUnavail, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil-ish generic", ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}
