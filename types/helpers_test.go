package types

import "testing"

// fakeType is a type no other type knows how to match against.
type fakeType struct {
	base
	name string
}

func newFakeType(name string) *fakeType { return &fakeType{name: name} }

func (*fakeType) Kind() Kind { return Kind(-1) }

func (*fakeType) Accepts(any) bool { return false }

func (f *fakeType) String() string { return f.name }

func (f *fakeType) Matches(other Type) bool {
	if m, ok := other.(matcher); ok {
		return m.IsMatchedBy(f)
	}
	return other == Type(f)
}

// stringableObject renders to "foo".
type stringableObject struct{}

func (stringableObject) String() string { return "foo" }

func mustShape(t testing.TB, elements ...ShapeElement) *ShapedArrayType {
	t.Helper()
	s, err := Shape(elements...)
	if err != nil {
		t.Fatalf("Shape() error = %v", err)
	}
	return s
}
