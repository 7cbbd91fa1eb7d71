package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	veneererrors "github.com/veneerkit/veneer/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseComponent loads a component definition from disk, validates it,
// and returns the resulting model.
func ParseComponent(path string) (*ComponentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, veneererrors.NewParseError(path, 0, err)
	}
	return ParseComponentBytes(path, data)
}

// ParseComponentBytes decodes and validates an in-memory component
// definition. The path appears in error messages only.
func ParseComponentBytes(path string, data []byte) (*ComponentConfig, error) {
	var cfg ComponentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, veneererrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateComponent(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseTheme loads a theme definition from disk, validates it, and
// returns the resulting model.
func ParseTheme(path string) (*ThemeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, veneererrors.NewParseError(path, 0, err)
	}
	return ParseThemeBytes(path, data)
}

// ParseThemeBytes decodes and validates an in-memory theme definition.
func ParseThemeBytes(path string, data []byte) (*ThemeConfig, error) {
	var cfg ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, veneererrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateTheme(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
