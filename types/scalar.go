package types

var (
	mixedType   = &MixedType{}
	nullType    = &NullType{}
	boolType    = &BoolType{}
	integerType = &IntegerType{}
	floatType   = &FloatType{}
	stringType  = &StringType{}
)

// delegate lets unions and array keys decide whether candidate matches them.
func delegate(candidate, other Type) (matched, handled bool) {
	if m, ok := other.(matcher); ok {
		return m.IsMatchedBy(candidate), true
	}
	return false, false
}

// MixedType accepts and matches everything. It cannot be a union member.
type MixedType struct{ base }

// Mixed returns the mixed type.
func Mixed() *MixedType { return mixedType }

// Kind returns KindMixed.
func (*MixedType) Kind() Kind { return KindMixed }

func (*MixedType) Accepts(any) bool        { return true }
func (*MixedType) Matches(Type) bool       { return true }
func (*MixedType) CanCast(any) bool        { return true }
func (*MixedType) Cast(v any) (any, error) { return v, nil }
func (*MixedType) String() string          { return "mixed" }

// NullType accepts only nil.
type NullType struct{ base }

// Null returns the null type.
func Null() *NullType { return nullType }

// Kind returns KindNull.
func (*NullType) Kind() Kind { return KindNull }

func (*NullType) Accepts(v any) bool { return v == nil }

func (t *NullType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch other.(type) {
	case *NullType, *MixedType:
		return true
	}
	return false
}

func (*NullType) CanCast(v any) bool { return v == nil }

func (t *NullType) Cast(v any) (any, error) {
	if v != nil {
		return nil, InvalidValueType(v, t)
	}
	return nil, nil
}

func (*NullType) String() string { return "null" }

// BoolType accepts any bool.
type BoolType struct{ base }

// Bool returns the bool type.
func Bool() *BoolType { return boolType }

// Kind returns KindBool.
func (*BoolType) Kind() Kind { return KindBool }

func (*BoolType) Accepts(v any) bool { return IsBool(v) }

func (t *BoolType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch other.(type) {
	case *BoolType, *MixedType:
		return true
	}
	return false
}

func (*BoolType) CanCast(v any) bool { return CanCastBool(v) }

func (t *BoolType) Cast(v any) (any, error) {
	b, ok := CastBool(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	return b, nil
}

func (*BoolType) String() string { return "bool" }

// IntegerType accepts any value of the int kind.
type IntegerType struct{ base }

// Integer returns the int type.
func Integer() *IntegerType { return integerType }

// Kind returns KindInteger.
func (*IntegerType) Kind() Kind { return KindInteger }

func (*IntegerType) Accepts(v any) bool { return IsInteger(v) }

func (t *IntegerType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch other.(type) {
	case *IntegerType, *MixedType:
		return true
	}
	return false
}

func (*IntegerType) CanCast(v any) bool { return CanCastInteger(v) }

func (t *IntegerType) Cast(v any) (any, error) {
	i, ok := CastInteger(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	return i, nil
}

func (*IntegerType) String() string { return "int" }

// FloatType accepts any value of the float kind.
type FloatType struct{ base }

// Float returns the float type.
func Float() *FloatType { return floatType }

// Kind returns KindFloat.
func (*FloatType) Kind() Kind { return KindFloat }

func (*FloatType) Accepts(v any) bool { return IsFloat(v) }

func (t *FloatType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch other.(type) {
	case *FloatType, *MixedType:
		return true
	}
	return false
}

func (*FloatType) CanCast(v any) bool { return CanCastFloat(v) }

func (t *FloatType) Cast(v any) (any, error) {
	f, ok := CastFloat(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	return f, nil
}

func (*FloatType) String() string { return "float" }

// StringType accepts any string.
type StringType struct{ base }

// String returns the string type.
func String() *StringType { return stringType }

// Kind returns KindString.
func (*StringType) Kind() Kind { return KindString }

func (*StringType) Accepts(v any) bool { return IsString(v) }

func (t *StringType) Matches(other Type) bool {
	if matched, ok := delegate(t, other); ok {
		return matched
	}
	switch other.(type) {
	case *StringType, *MixedType:
		return true
	}
	return false
}

func (*StringType) CanCast(v any) bool { return CanCastString(v) }

func (t *StringType) Cast(v any) (any, error) {
	s, ok := CastString(v)
	if !ok {
		return nil, InvalidValueType(v, t)
	}
	return s, nil
}

func (*StringType) String() string { return "string" }
