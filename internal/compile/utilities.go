package compile

import (
	"fmt"
	"strings"

	"github.com/veneerkit/veneer/internal/token"
)

// marginSides orders the directional utility suffixes. x and y expand
// to two declarations.
var marginSides = []struct {
	suffix string
	props  []string
}{
	{"", []string{""}},
	{"t", []string{"-top"}},
	{"r", []string{"-right"}},
	{"b", []string{"-bottom"}},
	{"l", []string{"-left"}},
	{"x", []string{"-left", "-right"}},
	{"y", []string{"-top", "-bottom"}},
}

// writeUtilities emits utility rules for every recognized category
// present in the token map. Unrecognized categories contribute custom
// properties only.
func writeUtilities(b *strings.Builder, tokens token.Map, prefix string) {
	for _, category := range tokens.Categories() {
		switch category {
		case "colors":
			writeColorUtilities(b, tokens, prefix, category)
		case "spacing":
			writeSpacingUtilities(b, tokens, prefix, category)
		case "typography":
			writeTypographyUtilities(b, tokens, prefix, category)
		case "shadows":
			writeShadowUtilities(b, tokens, prefix, category)
		}
	}
}

func varRef(prefix, category, name string, extra ...string) string {
	ref := fmt.Sprintf("--%s-%s-%s", prefix, kebab(category), kebab(name))
	for _, e := range extra {
		ref += "-" + kebab(e)
	}
	return "var(" + ref + ")"
}

func writeRule(b *strings.Builder, selector string, decls ...string) {
	fmt.Fprintf(b, "%s {\n", selector)
	for _, d := range decls {
		fmt.Fprintf(b, "  %s;\n", d)
	}
	b.WriteString("}\n")
}

// writeColorUtilities emits text, background and border classes per
// color entry. Scale entries produce one class per step.
func writeColorUtilities(b *strings.Builder, tokens token.Map, prefix, category string) {
	for _, name := range tokens.Names(category) {
		value := tokens[category][name]
		if nested, ok := value.(map[string]any); ok {
			for _, step := range sortedKeys(nested) {
				if _, ok := nested[step].(string); !ok {
					continue
				}
				ref := varRef(prefix, category, name, step)
				class := kebab(name) + "-" + kebab(step)
				writeRule(b, ".text-"+class, "color: "+ref)
				writeRule(b, ".bg-"+class, "background-color: "+ref)
				writeRule(b, ".border-"+class, "border-color: "+ref)
			}
			continue
		}
		if _, ok := value.(string); !ok {
			continue
		}
		ref := varRef(prefix, category, name)
		class := kebab(name)
		writeRule(b, ".text-"+class, "color: "+ref)
		writeRule(b, ".bg-"+class, "background-color: "+ref)
		writeRule(b, ".border-"+class, "border-color: "+ref)
	}
}

// writeSpacingUtilities emits margin, padding and gap classes with
// directional variants for every named step.
func writeSpacingUtilities(b *strings.Builder, tokens token.Map, prefix, category string) {
	for _, name := range tokens.Names(category) {
		ref := varRef(prefix, category, name)
		step := kebab(name)
		for _, side := range marginSides {
			decls := make([]string, 0, 2)
			for _, p := range side.props {
				decls = append(decls, "margin"+p+": "+ref)
			}
			writeRule(b, ".m"+side.suffix+"-"+step, decls...)
		}
		for _, side := range marginSides {
			decls := make([]string, 0, 2)
			for _, p := range side.props {
				decls = append(decls, "padding"+p+": "+ref)
			}
			writeRule(b, ".p"+side.suffix+"-"+step, decls...)
		}
		writeRule(b, ".gap-"+step, "gap: "+ref)
	}
}

// writeTypographyUtilities emits .text-{step} classes carrying size,
// line height and letter spacing, plus .font-{name} classes for weight
// and family entries.
func writeTypographyUtilities(b *strings.Builder, tokens token.Map, prefix, category string) {
	for _, name := range tokens.Names(category) {
		value := tokens[category][name]
		switch {
		case strings.HasPrefix(name, "weight-"):
			class := kebab(strings.TrimPrefix(name, "weight-"))
			writeRule(b, ".font-"+class, "font-weight: "+varRef(prefix, category, name))
		case strings.HasPrefix(name, "family-"):
			class := kebab(strings.TrimPrefix(name, "family-"))
			writeRule(b, ".font-"+class, "font-family: "+varRef(prefix, category, name))
		default:
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			decls := make([]string, 0, 3)
			if _, ok := nested["size"]; ok {
				decls = append(decls, "font-size: "+varRef(prefix, category, name, "size"))
			}
			if _, ok := nested["lineHeight"]; ok {
				decls = append(decls, "line-height: "+varRef(prefix, category, name, "lineHeight"))
			}
			if _, ok := nested["letterSpacing"]; ok {
				decls = append(decls, "letter-spacing: "+varRef(prefix, category, name, "letterSpacing"))
			}
			if len(decls) == 0 {
				continue
			}
			writeRule(b, ".text-"+kebab(name), decls...)
		}
	}
}

// writeShadowUtilities emits .shadow-{n} classes for elevation entries
// and .shadow-{name} classes for contextual presets.
func writeShadowUtilities(b *strings.Builder, tokens token.Map, prefix, category string) {
	for _, name := range tokens.Names(category) {
		if _, ok := tokens[category][name].(string); !ok {
			continue
		}
		class := kebab(strings.TrimPrefix(name, "elevation-"))
		writeRule(b, ".shadow-"+class, "box-shadow: "+varRef(prefix, category, name))
	}
}
