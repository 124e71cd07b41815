package parser

import (
	"fmt"
	"sync"

	"github.com/broady/valtype/types"
)

// AliasSpecification asks a Factory for a parser that resolves extra names
// to the given types.
type AliasSpecification struct {
	Aliases map[string]types.Type
}

// Factory hands out parsers. Its default parser is built on first use and
// shared by every caller of that Factory. The zero value is ready to use.
type Factory struct {
	// CacheSize bounds the parsers built by the factory. Zero means
	// DefaultCacheSize.
	CacheSize int

	once   sync.Once
	shared *CachedParser
}

var defaultFactory = &Factory{}

// Get returns a parser for spec from the package-level Factory.
func Get(spec any) (Parser, error) {
	return defaultFactory.Get(spec)
}

// Get returns a parser for spec.
//
// A nil spec yields the factory's shared parser. An AliasSpecification (or
// a pointer to one) yields a new cached parser knowing the aliases. Any
// other spec is an unhandled_specification error.
func (f *Factory) Get(spec any) (Parser, error) {
	switch s := spec.(type) {
	case nil:
		return f.sharedParser(), nil
	case AliasSpecification:
		return NewCachedParser(NewLexingParser(s.Aliases), f.cacheSize())
	case *AliasSpecification:
		if s == nil {
			return f.sharedParser(), nil
		}
		return NewCachedParser(NewLexingParser(s.Aliases), f.cacheSize())
	}
	name := fmt.Sprintf("%T", spec)
	return nil, types.Errorf(types.CodeUnhandledSpecification, "Unhandled specification of type `%s`.", name).
		WithDetail("specification", name)
}

func (f *Factory) cacheSize() int {
	if f.CacheSize <= 0 {
		return DefaultCacheSize
	}
	return f.CacheSize
}

func (f *Factory) sharedParser() *CachedParser {
	f.once.Do(func() {
		p, err := NewCachedParser(NewLexingParser(nil), f.cacheSize())
		if err != nil {
			// lru.New only fails for a non-positive size.
			panic(err)
		}
		f.shared = p
	})
	return f.shared
}
