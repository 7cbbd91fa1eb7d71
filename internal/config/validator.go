package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/veneerkit/veneer/internal/rules"
	veneererrors "github.com/veneerkit/veneer/pkg/errors"
)

// ValidateComponent checks a component definition and reports every
// violation found, not just the first.
func ValidateComponent(cfg *ComponentConfig) error {
	if cfg == nil {
		return veneererrors.NewValidationError("component", "definition is nil", nil)
	}

	var violations []*veneererrors.ValidationError
	violations = append(violations, structViolations(cfg)...)

	for _, name := range sortedRuleNames(cfg.Rules) {
		violations = append(violations, ruleViolations(fmt.Sprintf("rules.%s", name), cfg.Rules[name])...)
	}

	return veneererrors.NewValidationFailure(violations)
}

// ValidateTheme checks a theme definition and reports every violation
// found.
func ValidateTheme(cfg *ThemeConfig) error {
	if cfg == nil {
		return veneererrors.NewValidationError("theme", "definition is nil", nil)
	}

	var violations []*veneererrors.ValidationError
	violations = append(violations, structViolations(cfg)...)
	violations = append(violations, tokenTreeViolations(cfg.Tokens)...)

	return veneererrors.NewValidationFailure(violations)
}

// ruleViolations checks the structural requirements of one rule: the
// discriminant must be known and the fields that type needs must be
// present. Nested rules are checked recursively.
func ruleViolations(field string, rule *rules.Rule) []*veneererrors.ValidationError {
	if rule == nil {
		return []*veneererrors.ValidationError{violation(field, "rule is nil")}
	}

	var out []*veneererrors.ValidationError

	switch rule.Type {
	case rules.TypeDirect:
		// Mapper is optional; a bare direct rule passes values through.
	case rules.TypeMapping:
		if rule.Mapping == nil {
			out = append(out, violation(field, "mapping rule requires a lookup table"))
		}
	case rules.TypeConditional:
		if len(rule.Cases) == 0 && rule.Else == nil {
			out = append(out, violation(field, "conditional rule requires cases or an else branch"))
		}
		for i, c := range rule.Cases {
			caseField := fmt.Sprintf("%s.cases[%d]", field, i)
			if c.When == nil {
				out = append(out, violation(caseField, "case requires a condition"))
			}
			if c.Then.Rule != nil {
				out = append(out, ruleViolations(caseField+".then", c.Then.Rule)...)
			}
		}
		if rule.Else != nil && rule.Else.Rule != nil {
			out = append(out, ruleViolations(field+".else", rule.Else.Rule)...)
		}
	case rules.TypeComputed:
		if rule.Compute == nil {
			out = append(out, violation(field, "computed rule requires a compute function"))
		}
	case rules.TypeMultiValue:
		if rule.Combiner == nil && len(rule.Outputs) == 0 {
			out = append(out, violation(field, "multiValue rule requires a combiner or outputs"))
		}
		for _, target := range sortedRuleNames(rule.Outputs) {
			out = append(out, ruleViolations(fmt.Sprintf("%s.outputs.%s", field, target), rule.Outputs[target])...)
		}
	case rules.TypeCustom:
		if rule.Name == "" {
			out = append(out, violation(field, "custom rule requires a transform name"))
		}
	case rules.TypeChain:
		if len(rule.Steps) == 0 {
			out = append(out, violation(field, "chain rule requires at least one step"))
		}
		for i, step := range rule.Steps {
			out = append(out, ruleViolations(fmt.Sprintf("%s.steps[%d]", field, i), step)...)
		}
	default:
		out = append(out, violation(field, fmt.Sprintf("unknown rule type %q", rule.Type)))
	}

	return out
}

// tokenTreeViolations checks that every $-prefixed string in the raw
// token tree is a well-formed reference path.
func tokenTreeViolations(tree map[string]map[string]any) []*veneererrors.ValidationError {
	var out []*veneererrors.ValidationError

	categories := make([]string, 0, len(tree))
	for c := range tree {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		names := make([]string, 0, len(tree[category]))
		for n := range tree[category] {
			names = append(names, n)
		}
		sort.Strings(names)

		for _, name := range names {
			field := fmt.Sprintf("tokens.%s.%s", category, name)
			out = append(out, valueViolations(field, tree[category][name])...)
		}
	}

	return out
}

func valueViolations(field string, value any) []*veneererrors.ValidationError {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "$") && !tokenRefPattern.MatchString(v) {
			return []*veneererrors.ValidationError{violation(field, fmt.Sprintf("malformed token reference %q", v))}
		}
	case map[string]any:
		var out []*veneererrors.ValidationError
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, valueViolations(field+"."+k, v[k])...)
		}
		return out
	case []any:
		var out []*veneererrors.ValidationError
		for i, item := range v {
			out = append(out, valueViolations(fmt.Sprintf("%s[%d]", field, i), item)...)
		}
		return out
	}
	return nil
}

// structViolations runs tag validation and converts every field error,
// keeping yaml-style lowercase field paths.
func structViolations(v any) []*veneererrors.ValidationError {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*veneererrors.ValidationError{violation("config", err.Error())}
	}

	out := make([]*veneererrors.ValidationError, 0, len(ves))
	for _, ve := range ves {
		field := yamlishFieldName(ve)
		out = append(out, violation(field, fmt.Sprintf("failed validation for tag '%s'", ve.Tag())))
	}
	return out
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func violation(field, message string) *veneererrors.ValidationError {
	return &veneererrors.ValidationError{Field: field, Message: message}
}

func sortedRuleNames(m map[string]*rules.Rule) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
