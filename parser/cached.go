package parser

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/broady/valtype/types"
)

// DefaultCacheSize is the number of declarations a CachedParser remembers
// when no size is given.
const DefaultCacheSize = 512

// CachedParser memoizes the types produced by another parser, keyed by the
// raw declaration. It is safe for concurrent use.
type CachedParser struct {
	delegate Parser
	cache    *lru.Cache
}

// NewCachedParser wraps delegate. A size of zero or less means DefaultCacheSize.
func NewCachedParser(delegate Parser, size int) (*CachedParser, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedParser{delegate: delegate, cache: cache}, nil
}

// Parse implements Parser. Failed declarations are not cached.
func (p *CachedParser) Parse(raw string) (types.Type, error) {
	if t, ok := p.cache.Get(raw); ok {
		return t.(types.Type), nil
	}
	t, err := p.delegate.Parse(raw)
	if err != nil {
		return nil, err
	}
	p.cache.Add(raw, t)
	return t, nil
}

// Len returns the number of cached declarations.
func (p *CachedParser) Len() int {
	return p.cache.Len()
}
