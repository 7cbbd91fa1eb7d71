package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("theme.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "theme.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "theme.yaml")
}

func TestValidationErrorCarriesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("components[0].rules.variant", "unknown rule type", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "components[0].rules.variant", validationErr.Field)
	require.Contains(t, validationErr.Message, "unknown rule type")
}

func TestValidationFailureListsEveryViolation(t *testing.T) {
	t.Parallel()

	violations := []*ValidationError{
		{Field: "name", Message: "is required"},
		{Field: "tokens.colors.primary", Message: "invalid color value"},
	}
	err := NewValidationFailure(violations)

	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure.Violations, 2)
	require.Contains(t, err.Error(), "2 validation errors")
	require.Contains(t, err.Error(), "tokens.colors.primary")
}

func TestValidationFailureEmptyListIsNil(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewValidationFailure(nil))
	require.NoError(t, NewValidationFailure([]*ValidationError{}))
}

func TestMissingRuleFieldErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewMissingRuleFieldError("button.variant", "mapping", "mapping")

	var missing *MissingRuleFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "button.variant", missing.Location)
	require.Contains(t, err.Error(), `missing required field "mapping"`)
}

func TestUnknownRuleTypeErrorIncludesLocation(t *testing.T) {
	t.Parallel()

	err := NewUnknownRuleTypeError("teleport", "card.elevation[2]")
	require.Contains(t, err.Error(), "card.elevation[2]")
	require.Contains(t, err.Error(), `"teleport"`)

	bare := NewUnknownRuleTypeError("teleport", "")
	require.NotContains(t, bare.Error(), "[]")
}

func TestUnknownTransformErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewUnknownTransformError("vuetify-density")

	var unknown *UnknownTransformError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "vuetify-density", unknown.Name)
}

func TestCircularReferenceErrorFormatsChain(t *testing.T) {
	t.Parallel()

	err := NewCircularReferenceError([]string{"colors.a", "colors.b", "colors.a"})
	require.Contains(t, err.Error(), "colors.a -> colors.b -> colors.a")
}

func TestInvalidColorErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewInvalidColorError("blurple")
	require.Contains(t, err.Error(), `"blurple"`)
}
