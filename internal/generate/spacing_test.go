package generate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpacingNamedAliases(t *testing.T) {
	t.Parallel()

	out := Spacing(SpacingConfig{BaseUnit: 4}, Options{})

	require.Equal(t, "0", out["none"])
	require.Equal(t, "2px", out["xs"])
	require.Equal(t, "4px", out["sm"])
	require.Equal(t, "8px", out["md"])
	require.Equal(t, "160px", out["9xl"])
}

func TestSpacingNumericScale(t *testing.T) {
	t.Parallel()

	out := Spacing(SpacingConfig{BaseUnit: 4}, Options{})

	require.Equal(t, "0", out["0"])
	require.Equal(t, "4px", out["1"])
	require.Equal(t, "32px", out["8"])
	require.Equal(t, "64px", out["16"])
}

func TestSpacingSemanticTokens(t *testing.T) {
	t.Parallel()

	out := Spacing(SpacingConfig{BaseUnit: 4}, Options{})

	require.Equal(t, "8px", out["component"])
	require.Equal(t, "12px", out["content"])
	require.Equal(t, "24px", out["container"])
	require.Equal(t, "32px", out["layout"])
}

func TestSpacingDefaultBaseUnit(t *testing.T) {
	t.Parallel()

	out := Spacing(SpacingConfig{}, Options{})
	require.Equal(t, "4px", out["sm"])
}
