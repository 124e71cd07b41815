package types

import "strings"

// UnionType accepts values accepted by any of its members.
type UnionType struct {
	base
	members []Type
}

// NewUnion returns the union of members. Nested unions are flattened.
// Fewer than two members and mixed members are rejected.
func NewUnion(members ...Type) (*UnionType, error) {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		switch m := m.(type) {
		case *MixedType:
			return nil, ErrForbiddenMixedType
		case *UnionType:
			flat = append(flat, m.members...)
		case nil:
			return nil, NewError(CodeInvalidUnion, "Union members cannot be nil.")
		default:
			flat = append(flat, m)
		}
	}
	if len(flat) < 2 {
		return nil, Errorf(CodeInvalidUnion, "A union needs at least two members, got %d.", len(flat))
	}
	return &UnionType{members: flat}, nil
}

// MustUnion is like NewUnion but panics on error.
func MustUnion(members ...Type) *UnionType {
	u, err := NewUnion(members...)
	if err != nil {
		panic(err)
	}
	return u
}

// Kind returns KindUnion.
func (*UnionType) Kind() Kind { return KindUnion }

// Members returns the union members in declaration order.
func (t *UnionType) Members() []Type {
	members := make([]Type, len(t.members))
	copy(members, t.members)
	return members
}

func (t *UnionType) Accepts(v any) bool {
	for _, m := range t.members {
		if m.Accepts(v) {
			return true
		}
	}
	return false
}

// IsMatchedBy reports whether candidate matches at least one member.
func (t *UnionType) IsMatchedBy(candidate Type) bool {
	for _, m := range t.members {
		if candidate.Matches(m) {
			return true
		}
	}
	return false
}

// Matches reports whether every member matches other.
func (t *UnionType) Matches(other Type) bool {
	for _, m := range t.members {
		if !m.Matches(other) {
			return false
		}
	}
	return true
}

func (t *UnionType) CanCast(v any) bool {
	for _, m := range t.members {
		if c, ok := m.(Castable); ok && c.CanCast(v) {
			return true
		}
		if m.Accepts(v) {
			return true
		}
	}
	return false
}

// Cast tries every member in declaration order and returns the first
// successful result.
func (t *UnionType) Cast(v any) (any, error) {
	errs := make([]error, 0, len(t.members))
	for _, m := range t.members {
		out, err := Cast(m, v)
		if err == nil {
			return out, nil
		}
		errs = append(errs, err)
	}
	return nil, UnionCastFailed(v, t.String(), errs)
}

func (t *UnionType) String() string {
	return t.render(Type.String)
}

func (t *UnionType) render(elem func(Type) string) string {
	parts := make([]string, len(t.members))
	for i, m := range t.members {
		parts[i] = elem(m)
	}
	return strings.Join(parts, "|")
}
