package generate

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const elevationLevels = 6

// ShadowConfig is the compact shadow input.
type ShadowConfig struct {
	// Color is the shadow base color; defaults to black. Accepts hex, rgb
	// or rgba.
	Color string `yaml:"color"`
}

// Shadows builds the elevation scale 0..5 plus contextual presets. Each
// non-zero level layers an ambient (wide, soft) and a direct (tight,
// sharp) shadow, both scaling blur and opacity with the level. Level 0 is
// always the literal "none".
func Shadows(config ShadowConfig, opts Options) (map[string]any, error) {
	base := config.Color
	if base == "" {
		base = "#000000"
	}
	c, _, err := parseColor(base)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, elevationLevels+5)
	for level := 0; level < elevationLevels; level++ {
		out[fmt.Sprintf("elevation-%d", level)] = elevationShadow(c, level)
	}

	out["button"] = elevationShadow(c, 1)
	out["card"] = elevationShadow(c, 2)
	out["dropdown"] = elevationShadow(c, 3)
	out["modal"] = elevationShadow(c, 5)
	out["focus"] = "0 0 0 3px " + formatRGBA(c, 0.35)

	return out, nil
}

// elevationShadow renders one elevation level as a two-layer box shadow.
func elevationShadow(c colorful.Color, level int) string {
	if level <= 0 {
		return "none"
	}

	ambientOpacity := 0.08 + 0.02*float64(level)
	directOpacity := 0.12 + 0.03*float64(level)

	ambient := fmt.Sprintf("0 %dpx %dpx 0 %s", level, level*4, formatRGBA(c, round2(ambientOpacity)))
	direct := fmt.Sprintf("0 %dpx %dpx 0 %s", level, level*2, formatRGBA(c, round2(directOpacity)))
	return ambient + ", " + direct
}
