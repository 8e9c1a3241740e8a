package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"academy-service/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := apperrors.NotFound("student", 42)

	assert.Equal(t, "student not found with id: 42", err.Error())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, int64(42), err.Details["id"])
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("create student: %w", apperrors.Conflict("email already exists"))

	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "email already exists", appErr.Message)
}

func TestErrorFallsBackToKindMessage(t *testing.T) {
	err := &apperrors.Error{Err: apperrors.ErrValidation}
	assert.Equal(t, "validation failed", err.Error())

	assert.Equal(t, "unknown error", (&apperrors.Error{}).Error())
}
