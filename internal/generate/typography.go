package generate

import "math"

// typeSteps maps named steps to exponents on the scale ratio.
var typeSteps = []struct {
	name     string
	exponent int
}{
	{"xs", -2},
	{"sm", -1},
	{"base", 0},
	{"lg", 1},
	{"xl", 2},
	{"2xl", 3},
	{"3xl", 4},
	{"4xl", 6},
}

// TypographyConfig is the compact typography input.
type TypographyConfig struct {
	// BaseSize is the base font size in pixels.
	BaseSize float64 `yaml:"baseSize"`
	// Ratio is the modular scale ratio between adjacent steps.
	Ratio float64 `yaml:"ratio"`
	// Weights and Families carry through to tokens unchanged.
	Weights  map[string]int    `yaml:"weights"`
	Families map[string]string `yaml:"families"`
}

// Typography builds a geometric type scale. Each named step carries its
// font size plus line-height and letter-spacing, derived so larger sizes
// get tighter values.
func Typography(config TypographyConfig, opts Options) map[string]any {
	base := config.BaseSize
	if base <= 0 {
		base = 16
	}
	ratio := config.Ratio
	if ratio <= 0 {
		ratio = 1.25
	}

	out := make(map[string]any, len(typeSteps)+len(config.Weights)+len(config.Families))
	for _, step := range typeSteps {
		size := base * math.Pow(ratio, float64(step.exponent))
		out[step.name] = map[string]any{
			"size":          trimFloat(round2(size)) + "px",
			"lineHeight":    trimFloat(lineHeightFor(step.exponent)),
			"letterSpacing": letterSpacingFor(step.exponent),
		}
	}
	for name, weight := range config.Weights {
		out["weight-"+name] = weight
	}
	for name, family := range config.Families {
		out["family-"+name] = family
	}
	return out
}

func lineHeightFor(exponent int) float64 {
	switch {
	case exponent <= 0:
		return 1.6
	case exponent == 1:
		return 1.5
	case exponent == 2:
		return 1.4
	case exponent == 3:
		return 1.3
	case exponent == 4:
		return 1.2
	default:
		return 1.1
	}
}

func letterSpacingFor(exponent int) string {
	switch {
	case exponent < 0:
		return "0.01em"
	case exponent == 0:
		return "0"
	case exponent == 1:
		return "-0.005em"
	case exponent == 2:
		return "-0.01em"
	case exponent == 3:
		return "-0.015em"
	case exponent == 4:
		return "-0.02em"
	default:
		return "-0.025em"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
