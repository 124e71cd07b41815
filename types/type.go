// Package types implements a runtime type algebra over plain Go values.
//
// A Type answers three questions: whether a value belongs to it (Accepts),
// whether another type is compatible with it (Matches), and, for types that
// implement Castable, whether and how a foreign value converts into it.
// All types are immutable once constructed and safe for concurrent use.
package types

// Type is the capability set shared by every type variant.
type Type interface {
	// Kind returns the variant for type switching.
	Kind() Kind

	// Accepts reports whether v is a member of the type, without coercion.
	Accepts(v any) bool

	// Matches reports whether the receiver is compatible with other, that is
	// whether every value accepted by the receiver is accepted by other.
	Matches(other Type) bool

	// String returns the canonical textual rendering of the type.
	String() string

	// Ensure only types in this package can implement Type.
	sealed()
}

// Castable is implemented by types able to convert foreign values.
type Castable interface {
	Type

	// CanCast reports whether Cast would get past the kind check for v.
	CanCast(v any) bool

	// Cast converts v into a value accepted by the type.
	Cast(v any) (any, error)
}

// matcher is implemented by types that other types delegate matching to.
type matcher interface {
	IsMatchedBy(candidate Type) bool
}

type base struct{}

func (base) sealed() {}

// Signature returns the canonical signature of t, suitable as a cache key.
// It reads like String but never renders two distinct types the same way:
// string literals are always quoted, whatever their quote style, and array
// keys narrowed to int or string read array-key<int> and array-key<string>.
func Signature(t Type) string {
	switch t := t.(type) {
	case *StringValueType:
		return quote(t.value, '\'')
	case *ArrayKeyType:
		if t.integer && t.string {
			return "array-key"
		}
		return "array-key<" + t.String() + ">"
	case *UnionType:
		return t.render(Signature)
	case *ListType:
		return t.render(Signature)
	case *ArrayType:
		return t.render(Signature)
	case *ShapedArrayType:
		return t.render(Signature)
	}
	return t.String()
}

// Cast converts v through t. Types that are not Castable only let through
// values they already accept.
func Cast(t Type, v any) (any, error) {
	if c, ok := t.(Castable); ok {
		return c.Cast(v)
	}
	if t.Accepts(v) {
		return v, nil
	}
	return nil, InvalidValueType(v, t)
}
