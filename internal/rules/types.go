// Package rules defines the transformation rule language and its evaluator.
// A rule maps one semantic input value to one or more target-library values,
// given a run-time context of sibling inputs, the active target library and
// caller options.
package rules

// RuleType discriminates the rule variants.
type RuleType string

const (
	TypeDirect      RuleType = "direct"
	TypeMapping     RuleType = "mapping"
	TypeConditional RuleType = "conditional"
	TypeComputed    RuleType = "computed"
	TypeMultiValue  RuleType = "multiValue"
	TypeCustom      RuleType = "custom"
	TypeChain       RuleType = "chain"
)

// MapperFunc adjusts a value in a direct rule.
type MapperFunc func(value any, ctx *Context) any

// ComputeFunc derives a value from the input, every sibling input and the
// context. Used by computed rules, which only Go callers can construct.
type ComputeFunc func(value any, allInputs map[string]any, ctx *Context) any

// CombineFunc merges several named inputs into a single output or an output
// map keyed by target name.
type CombineFunc func(values map[string]any, ctx *Context) any

// PredicateFunc is a code-supplied condition.
type PredicateFunc func(value any, ctx *Context) bool

// TransformFunc is a named transform resolved through the registry by
// custom rules.
type TransformFunc func(value any, args map[string]any, ctx *Context) (any, error)

// TransformLookup resolves named transforms. Implemented by
// transform.Registry.
type TransformLookup interface {
	Lookup(name string) (TransformFunc, bool)
}

// Context carries the run-time surroundings of a single evaluation.
type Context struct {
	// Component is the owning component name, used in error locations and
	// computed-rule cache keys.
	Component string
	// Input is the name of the input the rule is attached to.
	Input string
	// Library identifies the active target component library.
	Library string
	// AllInputs is the full sibling input map.
	AllInputs map[string]any
	// Options holds caller-declared options.
	Options map[string]any
}

// Rule is a tagged variant; Type selects which of the per-variant fields are
// meaningful. Required fields per type are checked at evaluation time and
// missing ones fail fast.
type Rule struct {
	Type RuleType
	// Target renames the output; empty means keep the input name.
	Target string

	// direct
	Mapper MapperFunc

	// mapping
	Mapping    map[string]any
	Default    any
	HasDefault bool

	// conditional
	Cases []ConditionalCase
	Else  *Consequence

	// computed
	ID        string
	Compute   ComputeFunc
	Cacheable *bool

	// multiValue
	Inputs   []string
	Combiner CombineFunc
	Outputs  map[string]*Rule

	// custom
	Name    string
	Args    map[string]any
	Library string

	// chain
	Steps []*Rule
}

// ConditionalCase pairs a condition with its consequence.
type ConditionalCase struct {
	When *Condition
	Then Consequence
}

// Consequence is either a literal value or a nested rule. A non-nil Rule
// wins; otherwise Value is used as-is.
type Consequence struct {
	Rule  *Rule
	Value any
}

// Condition is a tagged variant: boolean literal, code predicate, an
// operator comparison, or a composite (all/any/not).
type Condition struct {
	Bool *bool
	Fn   PredicateFunc

	// Comparison form. Prop selects the left operand from AllInputs; when
	// empty the value under evaluation is the left operand. Operand is the
	// right operand.
	Prop     string
	Operator string
	Operand  any

	All []*Condition
	Any []*Condition
	Not *Condition
}

// MultiOutput marks an evaluation result that must be merged into the
// session output map instead of assigned to a single key.
type MultiOutput map[string]any
