package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a single schema or cross-field violation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationFailure aggregates every violation found while checking a
// document, so a caller sees all problems at once instead of fixing them
// one run at a time.
type ValidationFailure struct {
	Violations []*ValidationError
}

// NewValidationFailure wraps the collected violations. Returns nil when the
// list is empty so callers can return the result directly.
func NewValidationFailure(violations []*ValidationError) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationFailure{Violations: violations}
}

func (e *ValidationFailure) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ""
	}
	if len(e.Violations) == 1 {
		return e.Violations[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.Error())
	}
	return b.String()
}

// MissingRuleFieldError indicates a rule lacks a field its declared type
// requires (e.g. a mapping rule without a lookup table).
type MissingRuleFieldError struct {
	Location string
	RuleType string
	Field    string
}

// NewMissingRuleFieldError constructs a MissingRuleFieldError.
func NewMissingRuleFieldError(location, ruleType, field string) error {
	return &MissingRuleFieldError{Location: location, RuleType: ruleType, Field: field}
}

func (e *MissingRuleFieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("rule error [%s]: %s rule is missing required field %q", e.Location, e.RuleType, e.Field)
}

// UnknownRuleTypeError indicates a rule carries a type no evaluator handles.
type UnknownRuleTypeError struct {
	RuleType string
	Location string
}

// NewUnknownRuleTypeError constructs an UnknownRuleTypeError.
func NewUnknownRuleTypeError(ruleType, location string) error {
	return &UnknownRuleTypeError{RuleType: ruleType, Location: location}
}

func (e *UnknownRuleTypeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Location != "" {
		return fmt.Sprintf("rule error [%s]: unknown rule type %q", e.Location, e.RuleType)
	}
	return fmt.Sprintf("rule error: unknown rule type %q", e.RuleType)
}

// UnknownTransformError indicates a custom rule references a transform name
// absent from the registry.
type UnknownTransformError struct {
	Name string
}

// NewUnknownTransformError constructs an UnknownTransformError.
func NewUnknownTransformError(name string) error {
	return &UnknownTransformError{Name: name}
}

func (e *UnknownTransformError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transform error: no transform registered under %q", e.Name)
}

// CircularReferenceError indicates token resolution revisited a path that is
// still being resolved.
type CircularReferenceError struct {
	Path []string
}

// NewCircularReferenceError constructs a CircularReferenceError from the
// in-progress resolution chain.
func NewCircularReferenceError(path []string) error {
	return &CircularReferenceError{Path: path}
}

func (e *CircularReferenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("token error: circular reference: %s", strings.Join(e.Path, " -> "))
}

// InvalidColorError indicates a color generator received a value it cannot
// parse as hex, rgb or rgba.
type InvalidColorError struct {
	Value string
}

// NewInvalidColorError constructs an InvalidColorError.
func NewInvalidColorError(value string) error {
	return &InvalidColorError{Value: value}
}

func (e *InvalidColorError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("color error: cannot parse %q as hex, rgb or rgba", e.Value)
}
