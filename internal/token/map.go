// Package token resolves raw design-token trees into flat, fully resolved
// token maps. Raw entries are constants, $category.path references, or
// computed directives evaluated against the tree resolved so far.
package token

import "sort"

// Map is a resolved token tree: category name to token name to value.
// Iteration must always go through Categories/Names so cache keys and
// compiled output are deterministic.
type Map map[string]map[string]any

// Categories returns the category names in sorted order.
func (m Map) Categories() []string {
	out := make([]string, 0, len(m))
	for category := range m {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Names returns the token names of one category in sorted order.
func (m Map) Names(category string) []string {
	tokens := m[category]
	out := make([]string, 0, len(tokens))
	for name := range tokens {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup walks a dot-separated path into the map, descending into nested
// token objects. It returns nil when any segment is missing; callers that
// require a value must check explicitly.
func (m Map) Lookup(path []string) any {
	if len(path) < 2 {
		return nil
	}
	tokens, ok := m[path[0]]
	if !ok {
		return nil
	}
	value, ok := tokens[path[1]]
	if !ok {
		return nil
	}
	for _, segment := range path[2:] {
		nested, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value, ok = nested[segment]
		if !ok {
			return nil
		}
	}
	return value
}

// ComputeFunc derives a token value from the tree resolved so far and the
// entry's own location.
type ComputeFunc func(resolved Map, category, name string) any

// Directive marks a raw entry as computed. Directives are attached by Go
// callers; YAML documents reach them through generator configuration.
type Directive struct {
	Compute ComputeFunc
}
