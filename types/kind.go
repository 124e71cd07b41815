package types

// Kind identifies the variant of a Type.
type Kind int

const (
	KindMixed Kind = iota
	KindNull
	KindBool
	KindBoolValue
	KindInteger
	KindIntegerValue
	KindFloat
	KindFloatValue
	KindString
	KindStringValue
	KindArrayKey
	KindUnion
	KindArray
	KindList
	KindShapedArray
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMixed:
		return "Mixed"
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindBoolValue:
		return "BoolValue"
	case KindInteger:
		return "Integer"
	case KindIntegerValue:
		return "IntegerValue"
	case KindFloat:
		return "Float"
	case KindFloatValue:
		return "FloatValue"
	case KindString:
		return "String"
	case KindStringValue:
		return "StringValue"
	case KindArrayKey:
		return "ArrayKey"
	case KindUnion:
		return "Union"
	case KindArray:
		return "Array"
	case KindList:
		return "List"
	case KindShapedArray:
		return "ShapedArray"
	default:
		return "Unknown"
	}
}
