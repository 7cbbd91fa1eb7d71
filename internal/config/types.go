// Package config loads and validates the two YAML document kinds the
// engine accepts: component definitions (transformation rules keyed by
// input name) and theme definitions (generator inputs plus a raw token
// tree).
package config

import (
	"github.com/veneerkit/veneer/internal/generate"
	"github.com/veneerkit/veneer/internal/rules"
)

// ComponentConfig describes how one semantic component translates to a
// target library.
type ComponentConfig struct {
	Version   string                 `yaml:"version" validate:"required,semver"`
	Component string                 `yaml:"component" validate:"required,ident"`
	Library   string                 `yaml:"library" validate:"omitempty,ident"`
	Rules     map[string]*rules.Rule `yaml:"rules" validate:"required,min=1"`
	// Inputs holds sample prop values used when no input document is
	// supplied on the command line.
	Inputs map[string]any `yaml:"inputs"`
}

// ThemeConfig is the full theme document: per-category generator inputs,
// a raw token tree with references, and named derived tokens.
type ThemeConfig struct {
	Version string `yaml:"version" validate:"required,semver"`
	Name    string `yaml:"name" validate:"required,ident"`
	// Prefix namespaces emitted custom properties; defaults downstream.
	Prefix string `yaml:"prefix" validate:"omitempty,ident"`

	Colors     map[string]string          `yaml:"colors" validate:"omitempty,dive,color_value"`
	Typography *generate.TypographyConfig `yaml:"typography"`
	Spacing    *generate.SpacingConfig    `yaml:"spacing"`
	Shadows    *generate.ShadowConfig     `yaml:"shadows"`

	// Tokens is the raw category tree; string values may reference other
	// tokens with $category.name paths.
	Tokens map[string]map[string]any `yaml:"tokens"`

	// Computed names derived tokens, each a reference into the resolved
	// tree. They land in the "computed" category.
	Computed map[string]string `yaml:"computed" validate:"omitempty,dive,token_ref"`
}
