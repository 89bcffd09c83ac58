package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("submit sale: %w", NewNotFoundError("Customer ID CU123456"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Customer ID CU123456 not found", appErr.Message)

	plain := GetAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.NotContains(t, plain.Message, "pq")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "items[0].name", Message: "Please fill in all item names"}})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.True(t, IsAppError(err))
	assert.Len(t, err.Errors, 1)
}
