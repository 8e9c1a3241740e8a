package validation_test

import (
	"errors"
	"testing"

	"academy-service/internal/httputil"
	"academy-service/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=18"`
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	v := validation.New()

	err := v.Struct(signup{Name: "   ", Email: "a@b.com", Age: 20})
	require.Error(t, err)
	assert.Equal(t, "field name is required", httputil.ValidationMessage(err))
}

func TestMessagesUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Struct(signup{Name: "Ana", Email: "not-an-email", Age: 17})
	require.Error(t, err)
	assert.Equal(t,
		"field email must be a valid email, field age must be at least 18",
		httputil.ValidationMessage(err),
	)
}

func TestValidInput(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(signup{Name: "Ana", Email: "ana@example.com", Age: 18}))
}

func TestValidationMessagePassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "boom", httputil.ValidationMessage(errors.New("boom")))
}
