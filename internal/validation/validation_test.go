package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(model.RegisterRequest{Email: "nope", Password: "123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)

	msg, ok := model.ValidationMessage(err)
	require.True(t, ok)
	assert.Contains(t, msg, "fullName is required")
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 6 characters")
}

func TestStructAcceptsValid(t *testing.T) {
	err := Struct(model.RegisterRequest{FullName: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestStructRejectsAdminSelfRegistration(t *testing.T) {
	err := Struct(model.RegisterRequest{FullName: "Ada", Email: "ada@example.com", Password: "secret1", Role: model.RoleAdmin})
	msg, ok := model.ValidationMessage(err)
	require.True(t, ok)
	assert.Contains(t, msg, "role must be one of")
}
