package types

var (
	arrayKeyType   = &ArrayKeyType{integer: true, string: true}
	integerKeyType = &ArrayKeyType{integer: true}
	stringKeyType  = &ArrayKeyType{string: true}
)

// ArrayKeyType is the int|string pseudo-union used for array keys.
type ArrayKeyType struct {
	base
	integer bool
	string  bool
}

// ArrayKey returns the array-key type, accepting integers and strings.
func ArrayKey() *ArrayKeyType { return arrayKeyType }

// IntegerKey returns the array key type restricted to integers.
func IntegerKey() *ArrayKeyType { return integerKeyType }

// StringKey returns the array key type restricted to strings.
func StringKey() *ArrayKeyType { return stringKeyType }

// Kind returns KindArrayKey.
func (*ArrayKeyType) Kind() Kind { return KindArrayKey }

// AcceptsIntegers reports whether integer keys are allowed.
func (t *ArrayKeyType) AcceptsIntegers() bool { return t.integer }

// AcceptsStrings reports whether string keys are allowed.
func (t *ArrayKeyType) AcceptsStrings() bool { return t.string }

func (t *ArrayKeyType) Accepts(v any) bool {
	return (t.integer && IsInteger(v)) || (t.string && IsString(v))
}

// IsMatchedBy reports whether candidate only produces keys this type allows.
func (t *ArrayKeyType) IsMatchedBy(candidate Type) bool {
	switch c := candidate.(type) {
	case *IntegerType, *IntegerValueType:
		return t.integer
	case *StringType, *StringValueType:
		return t.string
	case *ArrayKeyType:
		return (!c.integer || t.integer) && (!c.string || t.string)
	case *UnionType:
		return c.Matches(t)
	}
	return false
}

func (t *ArrayKeyType) Matches(other Type) bool {
	switch o := other.(type) {
	case *UnionType:
		if t.integer && t.string {
			// int|string matches a union when each half finds a member.
			return (o.IsMatchedBy(integerKeyType) && o.IsMatchedBy(stringKeyType)) || o.IsMatchedBy(t)
		}
		return o.IsMatchedBy(t)
	case *ArrayKeyType:
		return o.IsMatchedBy(t)
	case *IntegerType:
		return !t.string
	case *StringType:
		return !t.integer
	case *MixedType:
		return true
	}
	return false
}

func (t *ArrayKeyType) CanCast(v any) bool {
	return (t.integer && CanCastInteger(v)) || (t.string && CanCastString(v))
}

// Cast prefers the integer reading of v, the way numeric string keys
// become integer keys.
func (t *ArrayKeyType) Cast(v any) (any, error) {
	if t.integer {
		if i, ok := CastInteger(v); ok {
			return i, nil
		}
	}
	if t.string {
		if s, ok := CastString(v); ok {
			return s, nil
		}
	}
	return nil, InvalidValueType(v, t)
}

func (t *ArrayKeyType) String() string {
	switch {
	case t.integer && t.string:
		return "array-key"
	case t.integer:
		return "int"
	default:
		return "string"
	}
}
