// Package engine wires the resolver, generators, compiler and
// transformation sessions behind one facade. All operations are
// synchronous; the context parameters exist so callers can compose
// cancellation around their own loading.
package engine

import (
	"context"

	"github.com/veneerkit/veneer/internal/cache"
	"github.com/veneerkit/veneer/internal/compile"
	"github.com/veneerkit/veneer/internal/config"
	"github.com/veneerkit/veneer/internal/generate"
	"github.com/veneerkit/veneer/internal/logger"
	"github.com/veneerkit/veneer/internal/rules"
	"github.com/veneerkit/veneer/internal/token"
	"github.com/veneerkit/veneer/internal/transform"
)

// Engine is the public entry point. Safe for concurrent use.
type Engine struct {
	registry *transform.Registry
	memo     *cache.Cache
	log      *logger.Logger

	resolver *token.Resolver
	compiler *compile.Compiler
	session  *transform.Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRegistry substitutes the transform registry. The default registry
// carries the built-in transforms.
func WithRegistry(r *transform.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithCache substitutes the content-addressed cache shared by every
// memoized operation.
func WithCache(c *cache.Cache) Option {
	return func(e *Engine) { e.memo = c }
}

// New builds an Engine with its collaborators wired together.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: transform.NewRegistry(),
		memo:     cache.New(),
		log:      logger.Noop(),
	}
	for _, o := range opts {
		o(e)
	}

	e.resolver = token.NewResolver(token.WithLogger(e.log))
	e.compiler = compile.New(compile.WithCache(e.memo), compile.WithLogger(e.log))

	evaluator := rules.NewEvaluator(e.registry, rules.WithCache(e.memo), rules.WithLogger(e.log))
	e.session = transform.NewSession(evaluator,
		transform.WithSessionCache(e.memo),
		transform.WithSessionLogger(e.log),
	)

	return e
}

// Registry exposes the transform registry so callers can add their own
// named transforms before running sessions.
func (e *Engine) Registry() *transform.Registry {
	return e.registry
}

// ClearCache drops every memoized result.
func (e *Engine) ClearCache() {
	e.memo.Clear()
}

// ThemeResult is the output of CompileTheme.
type ThemeResult struct {
	Tokens        token.Map
	PropertyTable map[string]string
	RuleText      string
}

// CompileTheme expands the theme's generator inputs into token
// categories, overlays the raw token tree, resolves references, and
// compiles the result to CSS artifacts. Explicit tokens win over
// generated ones on collision.
func (e *Engine) CompileTheme(ctx context.Context, cfg *config.ThemeConfig, opts compile.Options) (*ThemeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := e.rawTokens(cfg)
	if err != nil {
		return nil, err
	}

	resolved, err := e.resolver.Resolve(raw)
	if err != nil {
		return nil, err
	}

	if opts.Prefix == "" && cfg.Prefix != "" {
		opts.Prefix = cfg.Prefix
	}

	out, err := e.compiler.Compile(resolved, opts)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(map[string]any{
		"theme":      cfg.Name,
		"categories": len(resolved),
	}).Info("theme compiled")

	return &ThemeResult{
		Tokens:        resolved,
		PropertyTable: out.PropertyTable,
		RuleText:      out.RuleText,
	}, nil
}

// ResolveTokens resolves a raw token tree without compiling it.
func (e *Engine) ResolveTokens(ctx context.Context, raw map[string]map[string]any) (token.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.resolver.Resolve(token.Map(raw))
}

// TransformComponent runs the component's rule set over the given
// inputs. Nil inputs fall back to the sample inputs declared in the
// component definition; an empty library falls back to the definition's
// library.
func (e *Engine) TransformComponent(ctx context.Context, cfg *config.ComponentConfig, inputs map[string]any, library string, options map[string]any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if inputs == nil {
		inputs = cfg.Inputs
	}
	if library == "" {
		library = cfg.Library
	}

	tc := &rules.Context{
		Component: cfg.Component,
		Library:   library,
		AllInputs: inputs,
		Options:   options,
	}

	return e.session.Run(ctx, inputs, cfg.Rules, tc)
}

// rawTokens builds the unresolved token tree: generator output per
// category, then the explicit tree, then computed references under the
// "computed" category.
func (e *Engine) rawTokens(cfg *config.ThemeConfig) (token.Map, error) {
	raw := make(token.Map)

	if len(cfg.Colors) > 0 {
		colors, err := generate.Colors(cfg.Colors, generate.Options{})
		if err != nil {
			return nil, err
		}
		raw["colors"] = colors
	}

	if cfg.Typography != nil {
		raw["typography"] = generate.Typography(*cfg.Typography, generate.Options{})
	}

	if cfg.Spacing != nil {
		raw["spacing"] = generate.Spacing(*cfg.Spacing, generate.Options{})
	}

	if cfg.Shadows != nil {
		shadows, err := generate.Shadows(*cfg.Shadows, generate.Options{})
		if err != nil {
			return nil, err
		}
		raw["shadows"] = shadows
	}

	for category, entries := range cfg.Tokens {
		if raw[category] == nil {
			raw[category] = make(map[string]any, len(entries))
		}
		for name, value := range entries {
			raw[category][name] = value
		}
	}

	if len(cfg.Computed) > 0 {
		if raw["computed"] == nil {
			raw["computed"] = make(map[string]any, len(cfg.Computed))
		}
		for name, ref := range cfg.Computed {
			raw["computed"][name] = ref
		}
	}

	return raw, nil
}
