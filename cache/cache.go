package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/broady/valtype/compiler"
	"github.com/broady/valtype/types"
)

// DefaultSize is the number of loaded validators kept in memory when no
// size is given.
const DefaultSize = 1024

// Options configure a ValidationCache.
type Options struct {
	// Size bounds the number of loaded validators kept in memory.
	// Zero means DefaultSize.
	Size int

	// Store persists compiled artifacts. Nil means no persistence.
	Store Store

	// Logger receives cache events. Nil means slog.Default().
	Logger *slog.Logger
}

// ValidationCache compiles types to validators at most once per signature.
// Loaded validators are kept in an LRU; compiled artifacts are written to
// the Store so that later processes only need to load them.
// It is safe for concurrent use.
type ValidationCache struct {
	store      Store
	compiler   *compiler.ProgramCompiler
	validators *lru.Cache
	group      singleflight.Group
	logger     *slog.Logger
}

// New creates a ValidationCache.
func New(opts Options) (*ValidationCache, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	validators, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create validator cache: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidationCache{
		store:      opts.Store,
		compiler:   &compiler.ProgramCompiler{},
		validators: validators,
		logger:     logger,
	}, nil
}

// Key returns the cache key of a signature.
func Key(signature string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(signature))
}

func storeKey(key string) string {
	return key + "." + compiler.FormatProgram + ".json"
}

// Validator returns the validator of t, compiling it on first use.
// Concurrent calls for the same signature share one compilation.
func (c *ValidationCache) Validator(ctx context.Context, t types.Type) (*compiler.Validator, error) {
	signature := types.Signature(t)
	key := Key(signature)

	if v, ok := c.cached(key, signature); ok {
		c.logger.Debug("validator cache hit", slog.String("signature", signature))
		return v, nil
	}

	result, err, shared := c.group.Do(key, func() (any, error) {
		// Another flight may have finished between the lookup and Do.
		if v, ok := c.cached(key, signature); ok {
			return v, nil
		}
		v, err := c.load(ctx, t, signature, key)
		if err != nil {
			return nil, err
		}
		c.validators.Add(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	v := result.(*compiler.Validator)
	if v.Signature() != signature {
		// Two signatures share a hash; compile outside the flight.
		return c.load(ctx, t, signature, key)
	}
	if shared {
		c.logger.Debug("validator compilation shared", slog.String("signature", signature))
	}
	return v, nil
}

func (c *ValidationCache) cached(key, signature string) (*compiler.Validator, bool) {
	entry, ok := c.validators.Get(key)
	if !ok {
		return nil, false
	}
	v := entry.(*compiler.Validator)
	return v, v.Signature() == signature
}

// load reads the artifact of signature from the store, falling back to
// compiling t. A stored artifact for another signature is replaced.
func (c *ValidationCache) load(ctx context.Context, t types.Type, signature, key string) (*compiler.Validator, error) {
	if c.store != nil {
		if v, ok := c.fromStore(ctx, signature, key); ok {
			return v, nil
		}
	}

	c.logger.Debug("compiling validator", slog.String("signature", signature), slog.String("key", key))
	a, err := c.compiler.CompileValidation(t)
	if err != nil {
		return nil, err
	}
	v, err := compiler.Load(a)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		data, err := json.Marshal(a)
		if err == nil {
			err = c.store.Put(ctx, storeKey(key), data)
		}
		if err != nil {
			c.logger.Warn("failed to persist artifact",
				slog.String("signature", signature),
				slog.Any("error", err))
		}
	}
	return v, nil
}

func (c *ValidationCache) fromStore(ctx context.Context, signature, key string) (*compiler.Validator, bool) {
	data, ok, err := c.store.Get(ctx, storeKey(key))
	if err != nil {
		c.logger.Warn("failed to read artifact",
			slog.String("signature", signature),
			slog.Any("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var a compiler.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		c.logger.Warn("discarding unreadable artifact",
			slog.String("signature", signature),
			slog.Any("error", err))
		return nil, false
	}
	if a.Signature != signature {
		c.logger.Debug("stored artifact has another signature, recompiling",
			slog.String("signature", signature),
			slog.String("stored", a.Signature))
		return nil, false
	}
	v, err := compiler.Load(&a)
	if err != nil {
		c.logger.Warn("discarding invalid artifact",
			slog.String("signature", signature),
			slog.Any("error", err))
		return nil, false
	}
	c.logger.Debug("validator loaded from store", slog.String("signature", signature))
	return v, true
}

// Len returns the number of validators held in memory.
func (c *ValidationCache) Len() int {
	return c.validators.Len()
}

// Purge drops every validator held in memory. Stored artifacts are kept.
func (c *ValidationCache) Purge() {
	c.validators.Purge()
}
