package rules

import (
	"fmt"

	"github.com/veneerkit/veneer/internal/cache"
	"github.com/veneerkit/veneer/internal/logger"
	"github.com/veneerkit/veneer/pkg/errors"
)

// Evaluator applies transformation rules. It is pure apart from memoization
// writes: for a fixed (rule, value, context) triple the output is identical
// on every call.
type Evaluator struct {
	registry TransformLookup
	memo     *cache.Cache
	log      *logger.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCache supplies the memoization table used for cacheable computed
// rules. Without it computed rules are evaluated every time.
func WithCache(c *cache.Cache) Option {
	return func(e *Evaluator) { e.memo = c }
}

// WithLogger attaches a logger for debug-level evaluation traces.
func WithLogger(log *logger.Logger) Option {
	return func(e *Evaluator) { e.log = log }
}

// NewEvaluator builds an Evaluator resolving custom rules through reg.
func NewEvaluator(reg TransformLookup, opts ...Option) *Evaluator {
	e := &Evaluator{registry: reg, log: logger.Noop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate applies rule to value under ctx. A MultiOutput result must be
// merged into the caller's output map; any other result is a single value.
func (e *Evaluator) Evaluate(rule *Rule, value any, ctx *Context) (any, error) {
	location := ""
	if ctx != nil {
		location = ctx.Input
	}
	return e.evaluate(rule, value, ctx, location)
}

func (e *Evaluator) evaluate(rule *Rule, value any, ctx *Context, location string) (any, error) {
	if rule == nil {
		return value, nil
	}

	switch rule.Type {
	case TypeDirect:
		if rule.Mapper != nil {
			return rule.Mapper(value, ctx), nil
		}
		return value, nil

	case TypeMapping:
		return e.evaluateMapping(rule, value, location)

	case TypeConditional:
		return e.evaluateConditional(rule, value, ctx, location)

	case TypeComputed:
		return e.evaluateComputed(rule, value, ctx, location)

	case TypeMultiValue:
		return e.evaluateMultiValue(rule, value, ctx, location)

	case TypeCustom:
		return e.evaluateCustom(rule, value, ctx, location)

	case TypeChain:
		current := value
		for i, step := range rule.Steps {
			stepLocation := fmt.Sprintf("%s.chain[%d]", location, i)
			next, err := e.evaluate(step, current, ctx, stepLocation)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return current, nil

	default:
		return nil, errors.NewUnknownRuleTypeError(string(rule.Type), location)
	}
}

// evaluateMapping looks the value up as a key. A miss returns the declared
// default, else the original value unchanged; a miss is never an error.
func (e *Evaluator) evaluateMapping(rule *Rule, value any, location string) (any, error) {
	if rule.Mapping == nil {
		return nil, errors.NewMissingRuleFieldError(location, string(TypeMapping), "mapping")
	}
	key := stringify(value)
	if out, ok := rule.Mapping[key]; ok {
		return out, nil
	}
	if rule.HasDefault {
		return rule.Default, nil
	}
	return value, nil
}

func (e *Evaluator) evaluateConditional(rule *Rule, value any, ctx *Context, location string) (any, error) {
	if len(rule.Cases) == 0 && rule.Else == nil {
		return nil, errors.NewMissingRuleFieldError(location, string(TypeConditional), "cases")
	}
	for i, c := range rule.Cases {
		if testCondition(c.When, value, ctx) {
			return e.evaluateConsequence(c.Then, value, ctx, fmt.Sprintf("%s.cases[%d]", location, i))
		}
	}
	if rule.Else != nil {
		return e.evaluateConsequence(*rule.Else, value, ctx, location+".else")
	}
	return value, nil
}

func (e *Evaluator) evaluateConsequence(cons Consequence, value any, ctx *Context, location string) (any, error) {
	if cons.Rule != nil {
		return e.evaluate(cons.Rule, value, ctx, location)
	}
	return cons.Value, nil
}

func (e *Evaluator) evaluateComputed(rule *Rule, value any, ctx *Context, location string) (any, error) {
	if rule.Compute == nil {
		return nil, errors.NewMissingRuleFieldError(location, string(TypeComputed), "compute")
	}

	// The ID is the only part of the key telling two compute functions
	// apart, so rules without one are never memoized.
	cacheable := rule.ID != "" && (rule.Cacheable == nil || *rule.Cacheable)
	var key string
	if cacheable && e.memo != nil {
		component := ""
		if ctx != nil {
			component = ctx.Component
		}
		k, err := cache.Key("computed", rule.ID, component, value)
		if err == nil {
			key = k
			if cached, ok := e.memo.Get(key); ok {
				e.log.Debug("computed rule cache hit")
				return cached, nil
			}
		}
	}

	var allInputs map[string]any
	if ctx != nil {
		allInputs = ctx.AllInputs
	}
	result := rule.Compute(value, allInputs, ctx)

	if key != "" {
		e.memo.Put(key, result)
	}
	return result, nil
}

// evaluateMultiValue combines several named inputs. A combiner returning a
// map produces a MultiOutput the caller merges; a declarative output map
// evaluates one sub-rule per target.
func (e *Evaluator) evaluateMultiValue(rule *Rule, value any, ctx *Context, location string) (any, error) {
	if rule.Combiner == nil && rule.Outputs == nil {
		return nil, errors.NewMissingRuleFieldError(location, string(TypeMultiValue), "combiner or outputs")
	}

	selected := make(map[string]any, len(rule.Inputs))
	if ctx != nil {
		if len(rule.Inputs) == 0 {
			for name, v := range ctx.AllInputs {
				selected[name] = v
			}
		} else {
			for _, name := range rule.Inputs {
				selected[name] = ctx.AllInputs[name]
			}
		}
	}

	if rule.Combiner != nil {
		result := rule.Combiner(selected, ctx)
		if m, ok := result.(map[string]any); ok {
			return MultiOutput(m), nil
		}
		if m, ok := result.(MultiOutput); ok {
			return m, nil
		}
		return result, nil
	}

	out := make(MultiOutput, len(rule.Outputs))
	for target, sub := range rule.Outputs {
		result, err := e.evaluate(sub, value, ctx, fmt.Sprintf("%s.outputs.%s", location, target))
		if err != nil {
			return nil, err
		}
		if result != nil {
			out[target] = result
		}
	}
	return out, nil
}

// evaluateCustom resolves the named transform from the registry. A rule
// scoped to a different target library falls back to the input unchanged.
func (e *Evaluator) evaluateCustom(rule *Rule, value any, ctx *Context, location string) (any, error) {
	if rule.Name == "" {
		return nil, errors.NewMissingRuleFieldError(location, string(TypeCustom), "name")
	}

	if rule.Library != "" && ctx != nil && ctx.Library != rule.Library {
		e.log.WithFields(map[string]any{"transform": rule.Name, "rule_library": rule.Library}).
			Debug("library-specific rule skipped")
		return value, nil
	}

	if e.registry == nil {
		return nil, errors.NewUnknownTransformError(rule.Name)
	}
	fn, ok := e.registry.Lookup(rule.Name)
	if !ok {
		return nil, errors.NewUnknownTransformError(rule.Name)
	}
	return fn(value, rule.Args, ctx)
}
