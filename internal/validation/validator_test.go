package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
	"github.com/dueldisk/dueldisk-server/internal/validation"
)

type addCardRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Kind     string `json:"kind" validate:"omitempty,oneof=Monster Spell Trap Unknown"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

func TestValidate_Passes(t *testing.T) {
	v := validation.New()

	err := v.Validate(addCardRequest{Name: "Kuriboh", Kind: "Monster", Quantity: 2})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(addCardRequest{Kind: "Ritual", Quantity: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)

	// Field names come from the json tags.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Contains(t, details["kind"], "must be one of")
	assert.Contains(t, details["quantity"], "greater than or equal")
}
