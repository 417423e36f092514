package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		got := ToHTTP(New(CodeInvalidState, "order is not pending", http.StatusConflict))
		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, CodeInvalidState, got.Code)
		assert.Equal(t, "order is not pending", got.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("approve: %w", ErrNotFound)
		got := ToHTTP(err)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, CodeNotFound, got.Code)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := ToHTTP(errors.New("pq: connection reset"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestAppError_Is(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), ErrNotFound.Code, ErrNotFound.Message, ErrNotFound.HTTPStatus)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrForbidden)
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		Title    string `validate:"required"`
		Quantity int    `validate:"gt=0"`
	}
	v := validator.New()

	err := MapValidationError(v.Struct(payload{Quantity: 1}))
	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Title is required", appErr.Message)

	err = MapValidationError(v.Struct(payload{Title: "x"}))
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Quantity must satisfy gt=0", appErr.Message)

	err = MapValidationError(errors.New("eof"))
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeInvalidInput, appErr.Code)
}
