package types

import (
	"strconv"
	"strings"
)

// IntegerValueType accepts exactly one integer.
type IntegerValueType struct {
	base
	value int64
}

// IntegerValue returns the type of the integer literal n.
func IntegerValue(n int64) *IntegerValueType {
	return &IntegerValueType{value: n}
}

// Kind returns KindIntegerValue.
func (*IntegerValueType) Kind() Kind { return KindIntegerValue }

// Value returns the literal.
func (t *IntegerValueType) Value() int64 { return t.value }

func (t *IntegerValueType) Accepts(v any) bool {
	return IntegerEquals(v, t.value)
}

func (t *IntegerValueType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *IntegerValueType:
		return t.value == o.value
	case *IntegerType, *MixedType:
		return true
	}
	return false
}

func (*IntegerValueType) CanCast(v any) bool {
	return CanCastInteger(v)
}

func (t *IntegerValueType) Cast(v any) (any, error) {
	i, ok := CastInteger(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	if !t.Accepts(i) {
		return nil, InvalidValue(i, t)
	}
	return i, nil
}

func (t *IntegerValueType) String() string {
	return strconv.FormatInt(t.value, 10)
}

// FloatValueType accepts exactly one float.
type FloatValueType struct {
	base
	value float64
}

// FloatValue returns the type of the float literal f.
func FloatValue(f float64) *FloatValueType {
	return &FloatValueType{value: f}
}

// Kind returns KindFloatValue.
func (*FloatValueType) Kind() Kind { return KindFloatValue }

// Value returns the literal.
func (t *FloatValueType) Value() float64 { return t.value }

func (t *FloatValueType) Accepts(v any) bool {
	return FloatEquals(v, t.value)
}

func (t *FloatValueType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *FloatValueType:
		return t.value == o.value
	case *FloatType, *MixedType:
		return true
	}
	return false
}

func (*FloatValueType) CanCast(v any) bool {
	return CanCastFloat(v)
}

func (t *FloatValueType) Cast(v any) (any, error) {
	f, ok := CastFloat(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	if !t.Accepts(f) {
		return nil, InvalidValue(f, t)
	}
	return f, nil
}

func (t *FloatValueType) String() string {
	return formatFloat(t.value)
}

// BoolValueType accepts exactly true or exactly false.
type BoolValueType struct {
	base
	value bool
}

var (
	trueType  = &BoolValueType{value: true}
	falseType = &BoolValueType{value: false}
)

// BoolValue returns the type of the boolean literal b.
func BoolValue(b bool) *BoolValueType {
	if b {
		return trueType
	}
	return falseType
}

// Kind returns KindBoolValue.
func (*BoolValueType) Kind() Kind { return KindBoolValue }

// Value returns the literal.
func (t *BoolValueType) Value() bool { return t.value }

func (t *BoolValueType) Accepts(v any) bool {
	b, ok := v.(bool)
	return ok && b == t.value
}

func (t *BoolValueType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *BoolValueType:
		return t.value == o.value
	case *BoolType, *MixedType:
		return true
	}
	return false
}

func (*BoolValueType) CanCast(v any) bool {
	return CanCastBool(v)
}

func (t *BoolValueType) Cast(v any) (any, error) {
	b, ok := CastBool(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	if !t.Accepts(b) {
		return nil, InvalidValue(b, t)
	}
	return b, nil
}

func (t *BoolValueType) String() string {
	return strconv.FormatBool(t.value)
}

// Quote is the quoting style of a string literal. It only affects rendering.
type Quote int

const (
	QuoteNone Quote = iota
	QuoteSingle
	QuoteDouble
)

// StringValueType accepts exactly one string.
type StringValueType struct {
	base
	value string
	quote Quote
}

// StringValue returns the type of the unquoted string literal s.
func StringValue(s string) *StringValueType {
	return &StringValueType{value: s}
}

// SingleQuoted returns the type of the string literal s written as 's'.
func SingleQuoted(s string) *StringValueType {
	return &StringValueType{value: s, quote: QuoteSingle}
}

// DoubleQuoted returns the type of the string literal s written as "s".
func DoubleQuoted(s string) *StringValueType {
	return &StringValueType{value: s, quote: QuoteDouble}
}

// Kind returns KindStringValue.
func (*StringValueType) Kind() Kind { return KindStringValue }

// Value returns the literal.
func (t *StringValueType) Value() string { return t.value }

// Quote returns the quoting style.
func (t *StringValueType) Quote() Quote { return t.quote }

func (t *StringValueType) Accepts(v any) bool {
	s, ok := v.(string)
	return ok && s == t.value
}

func (t *StringValueType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch o := other.(type) {
	case *StringValueType:
		return t.value == o.value
	case *StringType, *MixedType:
		return true
	}
	return false
}

func (*StringValueType) CanCast(v any) bool {
	return CanCastString(v)
}

func (t *StringValueType) Cast(v any) (any, error) {
	s, ok := CastString(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	if !t.Accepts(s) {
		return nil, InvalidValue(s, t)
	}
	return s, nil
}

func (t *StringValueType) String() string {
	switch t.quote {
	case QuoteSingle:
		return quote(t.value, '\'')
	case QuoteDouble:
		return quote(t.value, '"')
	default:
		return t.value
	}
}

func quote(s string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		if s[i] == q || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(q)
	return b.String()
}
