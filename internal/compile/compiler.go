// Package compile turns a fully resolved token map into CSS artifacts: a
// custom-property table and utility rule text. Compilation never parses
// CSS; it only emits it, deterministically, so output is cache-stable.
package compile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/veneerkit/veneer/internal/cache"
	"github.com/veneerkit/veneer/internal/logger"
	"github.com/veneerkit/veneer/internal/token"
)

// Options controls one compilation.
type Options struct {
	// Prefix namespaces every custom property; defaults to "ds".
	Prefix string `json:"prefix"`
	// Minify applies the whitespace normalization pass to RuleText.
	Minify bool `json:"minify"`
	// SkipUtilities emits the property table only.
	SkipUtilities bool `json:"skipUtilities"`
}

// Output is the compiled artifact pair.
type Output struct {
	// PropertyTable maps custom property names to value strings.
	PropertyTable map[string]string
	// RuleText is ready-to-insert style text: the :root block plus
	// utility rules.
	RuleText string
}

// Compiler compiles resolved token maps. Safe for concurrent use.
type Compiler struct {
	memo *cache.Cache
	log  *logger.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCache enables memoization keyed on (tokens, options).
func WithCache(c *cache.Cache) CompilerOption {
	return func(cp *Compiler) { cp.memo = c }
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) CompilerOption {
	return func(cp *Compiler) { cp.log = log }
}

// New builds a Compiler.
func New(opts ...CompilerOption) *Compiler {
	c := &Compiler{log: logger.Noop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compile flattens the token map into custom properties and generates
// utility rules for the categories present.
func (c *Compiler) Compile(tokens token.Map, opts Options) (*Output, error) {
	if opts.Prefix == "" {
		opts.Prefix = "ds"
	}

	var key string
	if c.memo != nil {
		k, err := cache.Key("compile", map[string]map[string]any(tokens), opts)
		if err == nil {
			key = k
			if cached, ok := c.memo.Get(key); ok {
				if out, ok := cached.(*Output); ok {
					c.log.Debug("compile cache hit")
					return out, nil
				}
			}
		}
	}

	table := c.propertyTable(tokens, opts.Prefix)

	var text strings.Builder
	writeRootBlock(&text, table)
	if !opts.SkipUtilities {
		writeUtilities(&text, tokens, opts.Prefix)
	}

	ruleText := text.String()
	if opts.Minify {
		ruleText = Minify(ruleText)
	}

	out := &Output{PropertyTable: table, RuleText: ruleText}
	if key != "" {
		c.memo.Put(key, out)
	}

	c.log.WithFields(map[string]any{"properties": len(table)}).Debug("stylesheet generated")
	return out, nil
}

// propertyTable flattens tokens to --{prefix}-{category}-{name} entries,
// recursing one level into nested token objects by kebab-joining the
// nested key.
func (c *Compiler) propertyTable(tokens token.Map, prefix string) map[string]string {
	table := make(map[string]string)
	for _, category := range tokens.Categories() {
		for _, name := range tokens.Names(category) {
			base := fmt.Sprintf("--%s-%s-%s", prefix, kebab(category), kebab(name))
			value := tokens[category][name]
			if nested, ok := value.(map[string]any); ok {
				for _, sub := range sortedKeys(nested) {
					if nested[sub] == nil {
						continue
					}
					table[base+"-"+kebab(sub)] = formatValue(nested[sub])
				}
				continue
			}
			if value == nil {
				continue
			}
			table[base] = formatValue(value)
		}
	}
	return table
}

func writeRootBlock(b *strings.Builder, table map[string]string) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString(":root {\n")
	for _, name := range names {
		fmt.Fprintf(b, "  %s: %s;\n", name, table[name])
	}
	b.WriteString("}\n")
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// kebab lowers camelCase segments and replaces separators with hyphens.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == '_' || r == ' ' || r == '.':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
