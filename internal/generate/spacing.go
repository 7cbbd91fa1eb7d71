package generate

import "strconv"

// spacingAliases maps named steps to base-unit multipliers.
var spacingAliases = []struct {
	name       string
	multiplier float64
}{
	{"none", 0},
	{"xs", 0.5},
	{"sm", 1},
	{"md", 2},
	{"lg", 3},
	{"xl", 4},
	{"2xl", 6},
	{"3xl", 8},
	{"4xl", 12},
	{"5xl", 16},
	{"6xl", 20},
	{"7xl", 24},
	{"8xl", 32},
	{"9xl", 40},
}

// spacingScale is the numeric multiplier set for the linear scale.
var spacingScale = []int{0, 1, 2, 3, 4, 5, 6, 8, 10, 12, 16}

// Semantic spacing as fixed base-unit multiples.
var semanticSpacing = map[string]float64{
	"component": 2,
	"content":   3,
	"container": 6,
	"layout":    8,
}

// SpacingConfig is the compact spacing input.
type SpacingConfig struct {
	// BaseUnit is the scale unit in pixels.
	BaseUnit float64 `yaml:"baseUnit"`
}

// Spacing builds the linear scale, the named aliases and the semantic
// spacing tokens from one base unit.
func Spacing(config SpacingConfig, opts Options) map[string]any {
	base := config.BaseUnit
	if base <= 0 {
		base = 4
	}

	out := make(map[string]any, len(spacingAliases)+len(spacingScale)+len(semanticSpacing))
	for _, step := range spacingScale {
		out[strconv.Itoa(step)] = spacingValue(base * float64(step))
	}
	for _, alias := range spacingAliases {
		out[alias.name] = spacingValue(base * alias.multiplier)
	}
	for name, multiplier := range semanticSpacing {
		out[name] = spacingValue(base * multiplier)
	}
	return out
}

func spacingValue(px float64) string {
	if px == 0 {
		return "0"
	}
	return trimFloat(round2(px)) + "px"
}
