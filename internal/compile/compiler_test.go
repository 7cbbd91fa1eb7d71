package compile

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veneerkit/veneer/internal/cache"
	"github.com/veneerkit/veneer/internal/token"
)

func sampleTokens() token.Map {
	return token.Map{
		"colors": {
			"primary": map[string]any{"500": "#3b82f6"},
		},
		"spacing": {
			"sm": "8px",
		},
	}
}

func TestCompilePropertyTable(t *testing.T) {
	t.Parallel()

	out, err := New().Compile(sampleTokens(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "#3b82f6", out.PropertyTable["--ds-colors-primary-500"])
	assert.Equal(t, "8px", out.PropertyTable["--ds-spacing-sm"])
}

func TestCompileCustomPrefix(t *testing.T) {
	t.Parallel()

	out, err := New().Compile(sampleTokens(), Options{Prefix: "app"})
	require.NoError(t, err)

	assert.Contains(t, out.PropertyTable, "--app-spacing-sm")
	assert.NotContains(t, out.PropertyTable, "--ds-spacing-sm")
}

func TestCompileFlattensOneNestedLevel(t *testing.T) {
	t.Parallel()

	tokens := token.Map{
		"typography": {
			"base": map[string]any{
				"size":       "16px",
				"lineHeight": 1.5,
			},
		},
	}

	out, err := New().Compile(tokens, Options{SkipUtilities: true})
	require.NoError(t, err)

	assert.Equal(t, "16px", out.PropertyTable["--ds-typography-base-size"])
	assert.Equal(t, "1.5", out.PropertyTable["--ds-typography-base-line-height"])
}

func TestCompileSkipsNilValues(t *testing.T) {
	t.Parallel()

	tokens := token.Map{
		"colors": {
			"ghost":   nil,
			"primary": "#112233",
			"scale":   map[string]any{"base": "#445566", "missing": nil},
		},
	}

	out, err := New().Compile(tokens, Options{SkipUtilities: true})
	require.NoError(t, err)

	assert.NotContains(t, out.PropertyTable, "--ds-colors-ghost")
	assert.Contains(t, out.PropertyTable, "--ds-colors-primary")
	assert.Contains(t, out.PropertyTable, "--ds-colors-scale-base")
	assert.NotContains(t, out.PropertyTable, "--ds-colors-scale-missing")
	assert.NotContains(t, out.RuleText, ": ;")
}

func TestCompileColorUtilities(t *testing.T) {
	t.Parallel()

	out, err := New().Compile(sampleTokens(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out.RuleText, ".text-primary-500 {\n  color: var(--ds-colors-primary-500);\n}")
	assert.Contains(t, out.RuleText, ".bg-primary-500 {\n  background-color: var(--ds-colors-primary-500);\n}")
	assert.Contains(t, out.RuleText, ".border-primary-500 {\n  border-color: var(--ds-colors-primary-500);\n}")
}

func TestCompileSpacingUtilities(t *testing.T) {
	t.Parallel()

	out, err := New().Compile(sampleTokens(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out.RuleText, ".m-sm {\n  margin: var(--ds-spacing-sm);\n}")
	assert.Contains(t, out.RuleText, ".mx-sm {\n  margin-left: var(--ds-spacing-sm);\n  margin-right: var(--ds-spacing-sm);\n}")
	assert.Contains(t, out.RuleText, ".pt-sm {\n  padding-top: var(--ds-spacing-sm);\n}")
	assert.Contains(t, out.RuleText, ".gap-sm {\n  gap: var(--ds-spacing-sm);\n}")
}

func TestCompileTypographyUtilities(t *testing.T) {
	t.Parallel()

	tokens := token.Map{
		"typography": {
			"lg":          map[string]any{"size": "20px", "lineHeight": 1.4, "letterSpacing": "0em"},
			"weight-bold": 700,
			"family-mono": "monospace",
		},
	}

	out, err := New().Compile(tokens, Options{})
	require.NoError(t, err)

	assert.Contains(t, out.RuleText, ".text-lg {\n  font-size: var(--ds-typography-lg-size);\n  line-height: var(--ds-typography-lg-line-height);\n  letter-spacing: var(--ds-typography-lg-letter-spacing);\n}")
	assert.Contains(t, out.RuleText, ".font-bold {\n  font-weight: var(--ds-typography-weight-bold);\n}")
	assert.Contains(t, out.RuleText, ".font-mono {\n  font-family: var(--ds-typography-family-mono);\n}")
}

func TestCompileShadowUtilities(t *testing.T) {
	t.Parallel()

	tokens := token.Map{
		"shadows": {
			"elevation-0": "none",
			"elevation-2": "0 2px 8px 0 rgba(0, 0, 0, 0.12), 0 2px 4px 0 rgba(0, 0, 0, 0.18)",
			"card":        "0 2px 8px 0 rgba(0, 0, 0, 0.12), 0 2px 4px 0 rgba(0, 0, 0, 0.18)",
		},
	}

	out, err := New().Compile(tokens, Options{})
	require.NoError(t, err)

	assert.Contains(t, out.RuleText, ".shadow-0 {\n  box-shadow: var(--ds-shadows-elevation-0);\n}")
	assert.Contains(t, out.RuleText, ".shadow-2 {\n  box-shadow: var(--ds-shadows-elevation-2);\n}")
	assert.Contains(t, out.RuleText, ".shadow-card {\n  box-shadow: var(--ds-shadows-card);\n}")
}

func TestCompileSkipUtilities(t *testing.T) {
	t.Parallel()

	out, err := New().Compile(sampleTokens(), Options{SkipUtilities: true})
	require.NoError(t, err)

	assert.NotContains(t, out.RuleText, ".text-")
	assert.True(t, strings.HasPrefix(out.RuleText, ":root {"))
}

func TestCompileDeterministic(t *testing.T) {
	t.Parallel()

	c := New()
	first, err := c.Compile(sampleTokens(), Options{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		out, err := c.Compile(sampleTokens(), Options{})
		require.NoError(t, err)
		assert.Equal(t, first.RuleText, out.RuleText)
		assert.Equal(t, first.PropertyTable, out.PropertyTable)
	}
}

func TestCompileMemoized(t *testing.T) {
	t.Parallel()

	memo := cache.New()
	c := New(WithCache(memo))

	first, err := c.Compile(sampleTokens(), Options{})
	require.NoError(t, err)
	second, err := c.Compile(sampleTokens(), Options{})
	require.NoError(t, err)

	assert.Same(t, first, second)

	memo.Clear()
	third, err := c.Compile(sampleTokens(), Options{})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.RuleText, third.RuleText)
}

func TestCompileGolden(t *testing.T) {
	out, err := New().Compile(sampleTokens(), Options{})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "theme", []byte(out.RuleText))
}
