package types

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// entry is one key/value pair of a map, or one indexed element of a slice.
type entry struct {
	key   any
	value any
}

// entries lists the elements of a map, slice or array in a stable order.
// Slices and arrays yield int64 keys. A map holding two keys that read the
// same, such as 1 and "1", is not an array.
func entries(v any) ([]entry, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]entry, rv.Len())
		for i := range out {
			out[i] = entry{key: int64(i), value: rv.Index(i).Interface()}
		}
		return out, true
	case reflect.Map:
		out := make([]entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, entry{key: iter.Key().Interface(), value: iter.Value().Interface()})
		}
		sort.Slice(out, func(i, j int) bool {
			return keyString(out[i].key) < keyString(out[j].key)
		})
		for i := 1; i < len(out); i++ {
			if keyString(out[i-1].key) == keyString(out[i].key) {
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func keyString(k any) string {
	if i, ok := ToInteger(k); ok {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprint(k)
}

// elementError prefixes err with the key of the element that failed.
func elementError(key any, err error) error {
	e, ok := err.(*Error)
	if !ok {
		return fmt.Errorf("element `%s`: %w", keyString(key), err)
	}
	out := Errorf(e.Code, "Element `%s`: %s", keyString(key), e.Message)
	out.Details = e.Details
	out.cause = e
	return out
}

// CastFailed reports a value that cannot be converted to the type rendered
// as expected.
func CastFailed(v any, expected string) *Error {
	return Errorf(CodeInvalidValueType, "Value of type `%s` cannot be cast to `%s`.", KindOf(v), expected).
		WithDetail("value_kind", KindOf(v)).
		WithDetail("expected", expected)
}

// AcceptsList reports whether v is a slice or array whose elements all
// satisfy elem.
func AcceptsList(v any, elem func(any) bool) bool {
	if !isList(v) {
		return false
	}
	es, _ := entries(v)
	for _, e := range es {
		if !elem(e.value) {
			return false
		}
	}
	return true
}

// AcceptsArray reports whether v is a map, slice or array whose keys and
// values satisfy key and value.
func AcceptsArray(v any, key, value func(any) bool) bool {
	es, ok := entries(v)
	if !ok {
		return false
	}
	for _, e := range es {
		if !key(e.key) || !value(e.value) {
			return false
		}
	}
	return true
}

// ShapeCheck describes one element of a shaped array for AcceptsShape.
type ShapeCheck struct {
	Key      string
	Optional bool
	Accepts  func(any) bool
}

// AcceptsShape reports whether v has exactly the keys described by checks,
// minus absent optional ones, and every present value is accepted.
func AcceptsShape(v any, checks []ShapeCheck) bool {
	es, ok := entries(v)
	if !ok {
		return false
	}
	values := make(map[string]any, len(es))
	for _, e := range es {
		values[keyString(e.key)] = e.value
	}
	seen := 0
	for _, c := range checks {
		value, present := values[c.Key]
		if !present {
			if c.Optional {
				continue
			}
			return false
		}
		seen++
		if !c.Accepts(value) {
			return false
		}
	}
	return seen == len(values)
}

// CastList converts v element-wise into a []any.
func CastList(v any, expected string, elem func(any) (any, error)) (any, error) {
	if !isList(v) {
		return nil, CastFailed(v, expected)
	}
	es, _ := entries(v)
	out := make([]any, len(es))
	for i, e := range es {
		value, err := elem(e.value)
		if err != nil {
			return nil, elementError(e.key, err)
		}
		out[i] = value
	}
	return out, nil
}

// CastArray converts v entry-wise into a map[any]any.
func CastArray(v any, expected string, key, value func(any) (any, error)) (any, error) {
	es, ok := entries(v)
	if !ok {
		return nil, CastFailed(v, expected)
	}
	out := make(map[any]any, len(es))
	for _, e := range es {
		k, err := key(e.key)
		if err != nil {
			return nil, elementError(e.key, err)
		}
		val, err := value(e.value)
		if err != nil {
			return nil, elementError(e.key, err)
		}
		out[k] = val
	}
	return out, nil
}

// ShapeCaster describes one element of a shaped array for CastShape.
type ShapeCaster struct {
	Key      string
	Optional bool
	Cast     func(any) (any, error)
}

// CastShape converts v into a map[string]any holding exactly the declared
// elements. Undeclared keys are an error.
func CastShape(v any, expected string, casters []ShapeCaster) (any, error) {
	es, ok := entries(v)
	if !ok {
		return nil, CastFailed(v, expected)
	}
	values := make(map[string]any, len(es))
	for _, e := range es {
		values[keyString(e.key)] = e.value
	}
	out := make(map[string]any, len(casters))
	for _, c := range casters {
		value, present := values[c.Key]
		if !present {
			if c.Optional {
				continue
			}
			return nil, Errorf(CodeInvalidValue, "Missing element `%s` of `%s`.", c.Key, expected).
				WithDetail("expected", expected)
		}
		delete(values, c.Key)
		converted, err := c.Cast(value)
		if err != nil {
			return nil, elementError(c.Key, err)
		}
		out[c.Key] = converted
	}
	if len(values) > 0 {
		extra := make([]string, 0, len(values))
		for k := range values {
			extra = append(extra, k)
		}
		sort.Strings(extra)
		return nil, Errorf(CodeInvalidValue, "Unexpected elements `%s` for `%s`.", strings.Join(extra, "`, `"), expected).
			WithDetail("expected", expected)
	}
	return out, nil
}

// ArrayType accepts maps, slices and arrays with typed keys and values.
type ArrayType struct {
	base
	key   *ArrayKeyType
	value Type
}

// Array returns an array type. A nil key means array-key, a nil value mixed.
func Array(key *ArrayKeyType, value Type) *ArrayType {
	if key == nil {
		key = ArrayKey()
	}
	if value == nil {
		value = Mixed()
	}
	return &ArrayType{key: key, value: value}
}

// Kind returns KindArray.
func (*ArrayType) Kind() Kind { return KindArray }

// Key returns the key type.
func (t *ArrayType) Key() *ArrayKeyType { return t.key }

// Value returns the value type.
func (t *ArrayType) Value() Type { return t.value }

func (t *ArrayType) Accepts(v any) bool {
	return AcceptsArray(v, t.key.Accepts, t.value.Accepts)
}

func (t *ArrayType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *ArrayType:
		return t.key.Matches(o.key) && t.value.Matches(o.value)
	case *MixedType:
		return true
	}
	return false
}

func (t *ArrayType) CanCast(v any) bool {
	_, ok := entries(v)
	return ok
}

func (t *ArrayType) Cast(v any) (any, error) {
	return CastArray(v, t.String(), t.key.Cast, func(e any) (any, error) {
		return Cast(t.value, e)
	})
}

func (t *ArrayType) String() string {
	return t.render(Type.String)
}

func (t *ArrayType) render(elem func(Type) string) string {
	if t.key.integer && t.key.string {
		if _, ok := t.value.(*MixedType); ok {
			return "array"
		}
		return "array<" + elem(t.value) + ">"
	}
	return "array<" + t.key.String() + ", " + elem(t.value) + ">"
}

// ListType accepts slices and arrays of typed elements.
type ListType struct {
	base
	value Type
}

// List returns a list type. A nil value means mixed.
func List(value Type) *ListType {
	if value == nil {
		value = Mixed()
	}
	return &ListType{value: value}
}

// Kind returns KindList.
func (*ListType) Kind() Kind { return KindList }

// Value returns the element type.
func (t *ListType) Value() Type { return t.value }

func (t *ListType) Accepts(v any) bool {
	return AcceptsList(v, t.value.Accepts)
}

func (t *ListType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *ListType:
		return t.value.Matches(o.value)
	case *ArrayType:
		return integerKeyType.Matches(o.key) && t.value.Matches(o.value)
	case *MixedType:
		return true
	}
	return false
}

func (t *ListType) CanCast(v any) bool {
	return isList(v)
}

func (t *ListType) Cast(v any) (any, error) {
	return CastList(v, t.String(), func(e any) (any, error) {
		return Cast(t.value, e)
	})
}

func (t *ListType) String() string {
	return t.render(Type.String)
}

func (t *ListType) render(elem func(Type) string) string {
	if _, ok := t.value.(*MixedType); ok {
		return "list"
	}
	return "list<" + elem(t.value) + ">"
}

// ShapeElement is one declared element of a shaped array.
type ShapeElement struct {
	Key      string
	Type     Type
	Optional bool
}

// ShapedArrayType accepts maps with exactly the declared keys.
type ShapedArrayType struct {
	base
	elements []ShapeElement
}

// Shape returns a shaped array type. Keys must be unique.
func Shape(elements ...ShapeElement) (*ShapedArrayType, error) {
	seen := make(map[string]bool, len(elements))
	for _, e := range elements {
		if e.Type == nil {
			return nil, Errorf(CodeInvalidDeclaration, "Shape element `%s` has no type.", e.Key)
		}
		if seen[e.Key] {
			return nil, Errorf(CodeInvalidDeclaration, "Shape key `%s` is declared more than once.", e.Key)
		}
		seen[e.Key] = true
	}
	out := make([]ShapeElement, len(elements))
	copy(out, elements)
	return &ShapedArrayType{elements: out}, nil
}

// Kind returns KindShapedArray.
func (*ShapedArrayType) Kind() Kind { return KindShapedArray }

// Elements returns the declared elements in order.
func (t *ShapedArrayType) Elements() []ShapeElement {
	out := make([]ShapeElement, len(t.elements))
	copy(out, t.elements)
	return out
}

func (t *ShapedArrayType) element(key string) (ShapeElement, bool) {
	for _, e := range t.elements {
		if e.Key == key {
			return e, true
		}
	}
	return ShapeElement{}, false
}

func (t *ShapedArrayType) Accepts(v any) bool {
	checks := make([]ShapeCheck, len(t.elements))
	for i, e := range t.elements {
		checks[i] = ShapeCheck{Key: e.Key, Optional: e.Optional, Accepts: e.Type.Accepts}
	}
	return AcceptsShape(v, checks)
}

func (t *ShapedArrayType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *ShapedArrayType:
		for _, mine := range t.elements {
			theirs, ok := o.element(mine.Key)
			if !ok || (mine.Optional && !theirs.Optional) || !mine.Type.Matches(theirs.Type) {
				return false
			}
		}
		for _, theirs := range o.elements {
			if _, ok := t.element(theirs.Key); !ok && !theirs.Optional {
				return false
			}
		}
		return true
	case *ArrayType:
		for _, e := range t.elements {
			if !shapeKeyType(e.Key).Matches(o.key) || !e.Type.Matches(o.value) {
				return false
			}
		}
		return true
	case *MixedType:
		return true
	}
	return false
}

func shapeKeyType(key string) Type {
	if integerPattern.MatchString(key) {
		if i, err := strconv.ParseInt(key, 10, 64); err == nil {
			return IntegerValue(i)
		}
	}
	return StringValue(key)
}

func (t *ShapedArrayType) CanCast(v any) bool {
	_, ok := entries(v)
	return ok
}

func (t *ShapedArrayType) Cast(v any) (any, error) {
	casters := make([]ShapeCaster, len(t.elements))
	for i, e := range t.elements {
		elemType := e.Type
		casters[i] = ShapeCaster{Key: e.Key, Optional: e.Optional, Cast: func(e any) (any, error) {
			return Cast(elemType, e)
		}}
	}
	return CastShape(v, t.String(), casters)
}

func (t *ShapedArrayType) String() string {
	return t.render(Type.String)
}

func (t *ShapedArrayType) render(elem func(Type) string) string {
	parts := make([]string, len(t.elements))
	for i, e := range t.elements {
		key := e.Key
		if !isShapeKeyword(key) {
			key = quote(key, '\'')
		}
		if e.Optional {
			key += "?"
		}
		parts[i] = key + ": " + elem(e.Type)
	}
	return "array{" + strings.Join(parts, ", ") + "}"
}

// isShapeKeyword reports whether key can be written without quotes.
func isShapeKeyword(key string) bool {
	if key == "" {
		return false
	}
	if integerPattern.MatchString(key) {
		return true
	}
	for i, r := range key {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
