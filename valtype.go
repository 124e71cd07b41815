// Package valtype checks and converts runtime values against textual type
// declarations such as `int|'foo'|array{id: int, name?: string}`.
//
// An Engine parses declarations, compiles them into validators once per
// signature, and caches the result:
//
//	engine, err := valtype.New(valtype.Config{})
//	ok, err := engine.Accepts(ctx, "list<int>|null", value)
//	id, err := engine.Cast(ctx, "int", "42") // int64(42)
//
// The type algebra itself lives in package types, the grammar in package
// parser and the compilers in package compiler.
package valtype

import (
	"context"
	"log/slog"

	"github.com/broady/valtype/cache"
	"github.com/broady/valtype/compiler"
	"github.com/broady/valtype/parser"
	"github.com/broady/valtype/types"
)

// Engine parses declarations and validates values against them.
// It is safe for concurrent use.
type Engine struct {
	parser parser.Parser
	cache  *cache.ValidationCache
	logger *slog.Logger
}

// New creates an Engine. An invalid config is an invalid_config error.
func New(cfg Config) (*Engine, error) {
	c := applyConfigDefaults(&cfg)
	if err := validateConfig(c); err != nil {
		return nil, err
	}

	factory := &parser.Factory{CacheSize: c.ParserCacheSize}
	var spec any
	if len(c.Aliases) > 0 {
		aliases, err := resolveAliases(c.Aliases)
		if err != nil {
			return nil, err
		}
		spec = parser.AliasSpecification{Aliases: aliases}
	}
	p, err := factory.Get(spec)
	if err != nil {
		return nil, err
	}

	var store cache.Store
	if c.CacheDir != "" {
		store = cache.NewFileStore(c.CacheDir)
	}
	vc, err := cache.New(cache.Options{
		Size:   c.CacheSize,
		Store:  store,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, err
	}

	c.Logger.Debug("engine ready",
		slog.Int("aliases", len(c.Aliases)),
		slog.String("cache_dir", c.CacheDir))

	return &Engine{parser: p, cache: vc, logger: c.Logger}, nil
}

// Parse parses a declaration.
func (e *Engine) Parse(decl string) (types.Type, error) {
	return e.parser.Parse(decl)
}

// Validator returns the compiled validator of a declaration.
func (e *Engine) Validator(ctx context.Context, decl string) (*compiler.Validator, error) {
	t, err := e.parser.Parse(decl)
	if err != nil {
		e.logger.Debug("declaration rejected", slog.String("declaration", decl), slog.Any("error", err))
		return nil, err
	}
	return e.cache.Validator(ctx, t)
}

// Accepts reports whether v is accepted by the declared type.
func (e *Engine) Accepts(ctx context.Context, decl string, v any) (bool, error) {
	validator, err := e.Validator(ctx, decl)
	if err != nil {
		return false, err
	}
	return validator.Accepts(v), nil
}

// Cast converts v to the declared type.
func (e *Engine) Cast(ctx context.Context, decl string, v any) (any, error) {
	validator, err := e.Validator(ctx, decl)
	if err != nil {
		return nil, err
	}
	return validator.Cast(v)
}

// Compile compiles a declaration with the compiler of the given format.
func (e *Engine) Compile(decl, format string) (*compiler.Artifact, error) {
	c, err := compiler.Get(format)
	if err != nil {
		return nil, err
	}
	t, err := e.parser.Parse(decl)
	if err != nil {
		return nil, err
	}
	return c.CompileValidation(t)
}
