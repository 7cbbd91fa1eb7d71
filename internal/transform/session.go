package transform

import (
	"context"
	"sort"

	"github.com/veneerkit/veneer/internal/cache"
	"github.com/veneerkit/veneer/internal/logger"
	"github.com/veneerkit/veneer/internal/rules"
)

// PostProcessor runs over the complete output map after every input has
// been transformed, allowing outputs that depend on several
// already-transformed values. Either Fn or Rule must be set; a rule
// receives the whole map as its value and must produce a map.
type PostProcessor struct {
	Fn   func(output map[string]any, tc *rules.Context) (map[string]any, error)
	Rule *rules.Rule
}

// Session evaluates a full rule set over a set of named inputs, merging
// multi-output rules into one result map. Results are memoized; for a fixed
// (inputs, rules, context) triple the output is identical on every call.
type Session struct {
	evaluator *rules.Evaluator
	memo      *cache.Cache
	log       *logger.Logger
	post      []PostProcessor
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionCache enables whole-run memoization.
func WithSessionCache(c *cache.Cache) SessionOption {
	return func(s *Session) { s.memo = c }
}

// WithSessionLogger attaches a logger.
func WithSessionLogger(log *logger.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithPostProcessors appends ordered post-processing steps.
func WithPostProcessors(post ...PostProcessor) SessionOption {
	return func(s *Session) { s.post = append(s.post, post...) }
}

// NewSession builds a Session around an evaluator.
func NewSession(evaluator *rules.Evaluator, opts ...SessionOption) *Session {
	s := &Session{evaluator: evaluator, log: logger.Noop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run transforms every input through its matching rule. Inputs without a
// rule pass through unchanged under their original name. Iteration is by
// sorted input name so the last-write-wins merge of multi-output rules is
// deterministic. A single failing rule aborts the run; nothing is cached
// on failure.
func (s *Session) Run(ctx context.Context, inputs map[string]any, ruleSet map[string]*rules.Rule, tc *rules.Context) (map[string]any, error) {
	_ = ctx // evaluation is synchronous and not cancellable

	key := s.runKey(inputs, ruleSet, tc)
	if key != "" {
		if cached, ok := s.memo.Get(key); ok {
			if out, ok := cached.(map[string]any); ok {
				s.log.Debug("session cache hit")
				return cloneMap(out), nil
			}
		}
	}

	if tc == nil {
		tc = &rules.Context{}
	}
	if tc.AllInputs == nil {
		tc.AllInputs = inputs
	}

	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	output := make(map[string]any, len(inputs))
	for _, name := range names {
		value := inputs[name]
		rule, ok := ruleSet[name]
		if !ok {
			output[name] = value
			continue
		}

		inputCtx := *tc
		inputCtx.Input = name
		result, err := s.evaluator.Evaluate(rule, value, &inputCtx)
		if err != nil {
			return nil, err
		}

		if multi, ok := result.(rules.MultiOutput); ok {
			for target, v := range multi {
				output[target] = v
			}
			continue
		}

		target := name
		if rule.Target != "" {
			target = rule.Target
		}
		output[target] = result
	}

	for _, p := range s.post {
		next, err := s.applyPost(p, output, tc)
		if err != nil {
			return nil, err
		}
		output = next
	}

	if key != "" {
		s.memo.Put(key, cloneMap(output))
	}
	return output, nil
}

func (s *Session) applyPost(p PostProcessor, output map[string]any, tc *rules.Context) (map[string]any, error) {
	if p.Fn != nil {
		return p.Fn(output, tc)
	}
	if p.Rule != nil {
		postCtx := *tc
		postCtx.Input = "(post)"
		result, err := s.evaluator.Evaluate(p.Rule, any(output), &postCtx)
		if err != nil {
			return nil, err
		}
		switch m := result.(type) {
		case map[string]any:
			return m, nil
		case rules.MultiOutput:
			return map[string]any(m), nil
		default:
			return output, nil
		}
	}
	return output, nil
}

// runKey derives the whole-run cache key; empty when memoization is
// disabled or an input is not serializable.
func (s *Session) runKey(inputs map[string]any, ruleSet map[string]*rules.Rule, tc *rules.Context) string {
	if s.memo == nil {
		return ""
	}

	fingerprints := make(map[string]any, len(ruleSet))
	for name, rule := range ruleSet {
		fingerprints[name] = rule.Fingerprint()
	}

	library := ""
	component := ""
	var options map[string]any
	if tc != nil {
		library = tc.Library
		component = tc.Component
		options = tc.Options
	}

	key, err := cache.Key("session", inputs, fingerprints, component, library, options)
	if err != nil {
		return ""
	}
	return key
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
