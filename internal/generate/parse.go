// Package generate expands compact category configurations into full token
// sets: color palettes, type scales, spacing scales and elevation shadows.
// Every generator is a pure function of its configuration, so results are
// cacheable by (config, options).
package generate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/veneerkit/veneer/pkg/errors"
)

// Options carries generator behavior toggles shared by every category.
type Options struct {
	// Library is the active target component library; reserved for
	// library-conditional generation.
	Library string
}

var (
	rgbPattern  = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	rgbaPattern = regexp.MustCompile(`^rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*([0-9.]+)\s*\)$`)
)

// parseColor accepts #rgb, #rrggbb, rgb() and rgba() strings. The returned
// alpha is 1 unless the source carried one.
func parseColor(value string) (colorful.Color, float64, error) {
	s := strings.TrimSpace(value)

	if strings.HasPrefix(s, "#") {
		hex := s
		if len(hex) == 4 {
			hex = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
		}
		c, err := colorful.Hex(strings.ToLower(hex))
		if err != nil {
			return colorful.Color{}, 0, errors.NewInvalidColorError(value)
		}
		return c, 1, nil
	}

	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		return rgbFromStrings(value, m[1], m[2], m[3], "1")
	}
	if m := rgbaPattern.FindStringSubmatch(s); m != nil {
		return rgbFromStrings(value, m[1], m[2], m[3], m[4])
	}

	return colorful.Color{}, 0, errors.NewInvalidColorError(value)
}

func rgbFromStrings(original, rs, gs, bs, as string) (colorful.Color, float64, error) {
	r, errR := strconv.Atoi(rs)
	g, errG := strconv.Atoi(gs)
	b, errB := strconv.Atoi(bs)
	a, errA := strconv.ParseFloat(as, 64)
	if errR != nil || errG != nil || errB != nil || errA != nil ||
		r > 255 || g > 255 || b > 255 || a < 0 || a > 1 {
		return colorful.Color{}, 0, errors.NewInvalidColorError(original)
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, a, nil
}

// Luminance computes WCAG relative luminance of a color value.
func Luminance(value string) (float64, error) {
	c, _, err := parseColor(value)
	if err != nil {
		return 0, err
	}
	return relativeLuminance(c), nil
}

// relativeLuminance applies the WCAG formula: sRGB channels are linearized
// and weighted 0.2126/0.7152/0.0722.
func relativeLuminance(c colorful.Color) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// trimFloat renders a float without trailing zeros, for CSS values.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func linearize(channel float64) float64 {
	if channel <= 0.03928 {
		return channel / 12.92
	}
	return math.Pow((channel+0.055)/1.055, 2.4)
}
