package compiler

import (
	"encoding/json"
	"strconv"

	"github.com/broady/valtype/types"
)

// Program node operations.
const (
	OpMixed        = "mixed"
	OpNull         = "null"
	OpBool         = "bool"
	OpBoolValue    = "bool_value"
	OpInteger      = "int"
	OpIntegerValue = "int_value"
	OpFloat        = "float"
	OpFloatValue   = "float_value"
	OpString       = "string"
	OpStringValue  = "string_value"
	OpArrayKey     = "array_key"
	OpUnion        = "union"
	OpArray        = "array"
	OpList         = "list"
	OpShape        = "shape"
	OpElement      = "element"
)

// Program is the source of a program artifact.
type Program struct {
	Signature string `json:"signature"`
	Root      *Node  `json:"root"`
}

// Node is one instruction of a program. Type is the rendering of the type
// the node was compiled from and is used in error messages.
type Node struct {
	Op   string `json:"op"`
	Type string `json:"type"`

	// Literal holds the value of *_value nodes. Floats are written with
	// strconv so that NaN and infinities survive the JSON encoding.
	Literal string `json:"literal,omitempty"`
	Quote   string `json:"quote,omitempty"`

	// Keys is the accepted key kinds of array_key nodes: "int", "string"
	// or "int|string".
	Keys string `json:"keys,omitempty"`

	// Key and Optional describe shape elements.
	Key      string `json:"key,omitempty"`
	Optional bool   `json:"optional,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// ProgramCompiler compiles types to a JSON encoded Program.
type ProgramCompiler struct{}

// Format implements Compiler.
func (*ProgramCompiler) Format() string { return FormatProgram }

// CompileValidation implements Compiler. The output is deterministic.
func (c *ProgramCompiler) CompileValidation(t types.Type) (*Artifact, error) {
	root, err := c.node(t)
	if err != nil {
		return nil, err
	}
	signature := types.Signature(t)
	source, err := json.Marshal(&Program{Signature: signature, Root: root})
	if err != nil {
		return nil, err
	}
	return &Artifact{Signature: signature, Format: FormatProgram, Source: source}, nil
}

func (c *ProgramCompiler) node(t types.Type) (*Node, error) {
	n := &Node{Type: t.String()}
	switch t := t.(type) {
	case *types.MixedType:
		n.Op = OpMixed
	case *types.NullType:
		n.Op = OpNull
	case *types.BoolType:
		n.Op = OpBool
	case *types.IntegerType:
		n.Op = OpInteger
	case *types.FloatType:
		n.Op = OpFloat
	case *types.StringType:
		n.Op = OpString
	case *types.BoolValueType:
		n.Op = OpBoolValue
		n.Literal = strconv.FormatBool(t.Value())
	case *types.IntegerValueType:
		n.Op = OpIntegerValue
		n.Literal = strconv.FormatInt(t.Value(), 10)
	case *types.FloatValueType:
		n.Op = OpFloatValue
		n.Literal = strconv.FormatFloat(t.Value(), 'g', -1, 64)
	case *types.StringValueType:
		n.Op = OpStringValue
		n.Literal = t.Value()
		switch t.Quote() {
		case types.QuoteSingle:
			n.Quote = "single"
		case types.QuoteDouble:
			n.Quote = "double"
		}
	case *types.ArrayKeyType:
		n.Op = OpArrayKey
		n.Keys = arrayKeys(t)
	case *types.UnionType:
		n.Op = OpUnion
		for _, m := range t.Members() {
			child, err := c.node(m)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	case *types.ArrayType:
		n.Op = OpArray
		key, err := c.node(t.Key())
		if err != nil {
			return nil, err
		}
		value, err := c.node(t.Value())
		if err != nil {
			return nil, err
		}
		n.Children = []*Node{key, value}
	case *types.ListType:
		n.Op = OpList
		value, err := c.node(t.Value())
		if err != nil {
			return nil, err
		}
		n.Children = []*Node{value}
	case *types.ShapedArrayType:
		n.Op = OpShape
		for _, e := range t.Elements() {
			value, err := c.node(e.Type)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, &Node{
				Op:       OpElement,
				Type:     e.Type.String(),
				Key:      e.Key,
				Optional: e.Optional,
				Children: []*Node{value},
			})
		}
	default:
		return nil, unsupported(t, FormatProgram)
	}
	return n, nil
}

func arrayKeys(t *types.ArrayKeyType) string {
	switch {
	case t.AcceptsIntegers() && t.AcceptsStrings():
		return "int|string"
	case t.AcceptsIntegers():
		return "int"
	default:
		return "string"
	}
}
