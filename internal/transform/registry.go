// Package transform orchestrates rule evaluation over full component input
// sets and owns the registry of named transform functions.
package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/veneerkit/veneer/internal/rules"
)

// Registry holds named transform functions for custom rules. Built-ins are
// registered at construction; callers may extend it with Register, and
// Reset restores the built-in set only. It is an explicit instance rather
// than a process-wide singleton so independent engines cannot interfere.
type Registry struct {
	mu         sync.RWMutex
	transforms map[string]rules.TransformFunc
}

// NewRegistry returns a registry populated with the built-in transforms.
func NewRegistry() *Registry {
	r := &Registry{}
	r.installBuiltins()
	return r
}

// Register adds a named transform. Registering a nil function or a name
// that already exists is an error.
func (r *Registry) Register(name string, fn rules.TransformFunc) error {
	if fn == nil {
		return fmt.Errorf("transform %q: function is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("transform %q: already registered", name)
	}
	r.transforms[name] = fn
	return nil
}

// Lookup resolves a transform by name.
func (r *Registry) Lookup(name string) (rules.TransformFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.transforms[name]
	return fn, ok
}

// Names lists registered transform names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops caller registrations, restoring built-ins only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.installBuiltinsLocked()
}

func (r *Registry) installBuiltins() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.installBuiltinsLocked()
}

func (r *Registry) installBuiltinsLocked() {
	r.transforms = map[string]rules.TransformFunc{
		"identity": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			return value, nil
		},
		"capitalize": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			s := asString(value)
			if s == "" {
				return s, nil
			}
			runes := []rune(s)
			runes[0] = unicode.ToUpper(runes[0])
			return string(runes), nil
		},
		"kebab-case": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			return kebabCase(asString(value)), nil
		},
		"camel-case": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			return camelCase(asString(value)), nil
		},
		"prefix": func(value any, args map[string]any, _ *rules.Context) (any, error) {
			with, _ := args["with"].(string)
			return with + asString(value), nil
		},
		"suffix": func(value any, args map[string]any, _ *rules.Context) (any, error) {
			with, _ := args["with"].(string)
			return asString(value) + with, nil
		},
		"negate": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			b, ok := value.(bool)
			if !ok {
				return value, nil
			}
			return !b, nil
		},
		"to-string": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			return asString(value), nil
		},
		"px": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			s := asString(value)
			if s == "" || strings.HasSuffix(s, "px") {
				return s, nil
			}
			return s + "px", nil
		},
		"important": func(value any, _ map[string]any, _ *rules.Context) (any, error) {
			s := asString(value)
			if s == "" {
				return s, nil
			}
			return s + " !important", nil
		},
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// kebabCase lowers camelCase and snake_case identifiers to kebab-case.
func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == '_' || r == ' ':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func camelCase(s string) string {
	var b strings.Builder
	upperNext := false
	for i, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		case i == 0:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
