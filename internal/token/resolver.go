package token

import (
	"strings"

	"github.com/veneerkit/veneer/internal/logger"
	"github.com/veneerkit/veneer/pkg/errors"
)

// Resolver resolves raw token trees. Resolution is a fixed point:
// re-resolving an already resolved map yields an identical map.
type Resolver struct {
	log *logger.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger attaches a logger for debug traces.
func WithLogger(log *logger.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver builds a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{log: logger.Noop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// resolution tracks one Resolve call. The inProgress set holds the paths
// currently being resolved, so diamond dependencies are fine but a revisit
// of an in-progress path is a circular reference.
type resolution struct {
	raw        Map
	out        Map
	inProgress map[string]bool
	chain      []string
}

// Resolve resolves every entry of the raw tree. Pass 1 copies plain
// constants; pass 2 resolves references and computed directives
// depth-first, on demand, memoizing shared dependencies into the output as
// it goes.
func (r *Resolver) Resolve(raw Map) (Map, error) {
	res := &resolution{
		raw:        raw,
		out:        make(Map, len(raw)),
		inProgress: make(map[string]bool),
	}

	for _, category := range raw.Categories() {
		res.out[category] = make(map[string]any, len(raw[category]))
	}

	// Pass 1: plain constants move straight across.
	for _, category := range raw.Categories() {
		for _, name := range raw.Names(category) {
			value := raw[category][name]
			if !needsResolution(value) {
				res.out[category][name] = value
			}
		}
	}

	// Pass 2: everything else, dependency-first.
	for _, category := range raw.Categories() {
		for _, name := range raw.Names(category) {
			if _, done := res.out[category][name]; done {
				continue
			}
			if _, err := r.resolveEntry(res, category, name); err != nil {
				return nil, err
			}
		}
	}

	r.log.WithFields(map[string]any{"categories": len(res.out)}).Debug("token tree resolved")
	return res.out, nil
}

func (r *Resolver) resolveEntry(res *resolution, category, name string) (any, error) {
	if value, done := res.out[category][name]; done {
		return value, nil
	}

	path := category + "." + name
	if res.inProgress[path] {
		cycle := append(append([]string{}, res.chain...), path)
		return nil, errors.NewCircularReferenceError(cycle)
	}

	tokens, ok := res.raw[category]
	if !ok {
		return nil, nil
	}
	rawValue, ok := tokens[name]
	if !ok {
		return nil, nil
	}

	res.inProgress[path] = true
	res.chain = append(res.chain, path)
	defer func() {
		delete(res.inProgress, path)
		res.chain = res.chain[:len(res.chain)-1]
	}()

	value, err := r.resolveValue(res, category, name, rawValue)
	if err != nil {
		return nil, err
	}

	if res.out[category] == nil {
		res.out[category] = make(map[string]any)
	}
	res.out[category][name] = value
	return value, nil
}

func (r *Resolver) resolveValue(res *resolution, category, name string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		if ref, ok := referencePath(v); ok {
			return r.resolveReference(res, ref)
		}
		return v, nil
	case Directive:
		if v.Compute == nil {
			return nil, nil
		}
		return v.Compute(res.out, category, name), nil
	case *Directive:
		if v == nil || v.Compute == nil {
			return nil, nil
		}
		return v.Compute(res.out, category, name), nil
	case map[string]any:
		resolved := make(map[string]any, len(v))
		for _, key := range sortedKeys(v) {
			nested, err := r.resolveValue(res, category, name, v[key])
			if err != nil {
				return nil, err
			}
			resolved[key] = nested
		}
		return resolved, nil
	case []any:
		resolved := make([]any, len(v))
		for i, elem := range v {
			nested, err := r.resolveValue(res, category, name, elem)
			if err != nil {
				return nil, err
			}
			resolved[i] = nested
		}
		return resolved, nil
	default:
		return v, nil
	}
}

// resolveReference resolves the referenced entry first if needed, then
// looks the full path up in the output map. Missing segments yield nil,
// never an error, so optional token trees are tolerated.
func (r *Resolver) resolveReference(res *resolution, path []string) (any, error) {
	if len(path) >= 2 {
		if _, exists := res.raw[path[0]][path[1]]; exists {
			if _, err := r.resolveEntry(res, path[0], path[1]); err != nil {
				return nil, err
			}
		}
	}
	return res.out.Lookup(path), nil
}

// needsResolution reports whether a raw value contains a reference or a
// directive anywhere.
func needsResolution(value any) bool {
	switch v := value.(type) {
	case string:
		_, ok := referencePath(v)
		return ok
	case Directive, *Directive:
		return true
	case map[string]any:
		for _, nested := range v {
			if needsResolution(nested) {
				return true
			}
		}
		return false
	case []any:
		for _, nested := range v {
			if needsResolution(nested) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// referencePath parses "$category.name[.deeper]" syntax.
func referencePath(s string) ([]string, bool) {
	if !strings.HasPrefix(s, "$") || len(s) < 2 {
		return nil, false
	}
	path := strings.Split(s[1:], ".")
	if len(path) < 2 {
		return nil, false
	}
	return path, true
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Small maps; insertion sort keeps this allocation-light.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
