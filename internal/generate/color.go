package generate

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// scaleSteps is the fixed lightness scale, lightest first.
var scaleSteps = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

const (
	scaleLightest = 0.95
	scaleDarkest  = 0.10

	variantShift      = 0.2
	accessibleStep    = 0.3
	contrastThreshold = 0.5
)

// Colors expands each named base color into a full token set: a 10-step
// lightness scale, semantic light/dark variants, the contrasting text color
// and an accessibility-adjusted variant.
func Colors(config map[string]string, opts Options) (map[string]any, error) {
	out := make(map[string]any, len(config))
	for name, base := range config {
		tokens, err := expandColor(base)
		if err != nil {
			return nil, err
		}
		out[name] = tokens
	}
	return out, nil
}

func expandColor(base string) (map[string]any, error) {
	c, _, err := parseColor(base)
	if err != nil {
		return nil, err
	}

	h, s, _ := c.Hsl()

	tokens := make(map[string]any, len(scaleSteps)+7)
	tokens["base"] = c.Hex()

	// Interpolate lightness from near-white to near-black, hue and
	// saturation held from the base color.
	span := scaleLightest - scaleDarkest
	for i, step := range scaleSteps {
		l := scaleLightest - span*float64(i)/float64(len(scaleSteps)-1)
		tokens[step] = colorful.Hsl(h, s, l).Hex()
	}

	tokens["light"] = shiftLightness(c, variantShift)
	tokens["lighter"] = shiftLightness(c, 2*variantShift)
	tokens["dark"] = shiftLightness(c, -variantShift)
	tokens["darker"] = shiftLightness(c, -2*variantShift)
	tokens["on"] = ContrastColor(c)
	tokens["accessible"] = accessibleVariant(c)

	return tokens, nil
}

func shiftLightness(c colorful.Color, delta float64) string {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp01(l+delta)).Hex()
}

// ContrastColor picks black or white text for a background color by its
// relative luminance against the 0.5 threshold.
func ContrastColor(c colorful.Color) string {
	if relativeLuminance(c) >= contrastThreshold {
		return "#000000"
	}
	return "#ffffff"
}

// accessibleVariant walks lightness in fixed 0.3 steps until the luminance
// threshold flips, yielding a color readable against the original's
// contrast color. This is an approximation, not a WCAG-ratio search.
func accessibleVariant(c colorful.Color) string {
	h, s, l := c.Hsl()
	startAbove := relativeLuminance(c) >= contrastThreshold

	candidate := c
	for i := 0; i < 4; i++ {
		if startAbove {
			l -= accessibleStep
		} else {
			l += accessibleStep
		}
		l = clamp01(l)
		candidate = colorful.Hsl(h, s, l)
		if (relativeLuminance(candidate) >= contrastThreshold) != startAbove {
			break
		}
		if l == 0 || l == 1 {
			break
		}
	}
	return candidate.Hex()
}

// AdjustAlpha re-expresses any parseable color at the given opacity.
func AdjustAlpha(value string, alpha float64) (string, error) {
	c, _, err := parseColor(value)
	if err != nil {
		return "", err
	}
	return formatRGBA(c, alpha), nil
}

func formatRGBA(c colorful.Color, alpha float64) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(alpha))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
