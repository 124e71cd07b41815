package compiler

import (
	"encoding/json"
	"strconv"

	"github.com/broady/valtype/types"
)

// Validator is a loaded program. It accepts and casts values exactly like
// the type it was compiled from.
type Validator struct {
	signature string
	accepts   func(any) bool
	cast      func(any) (any, error)
}

// Signature returns the signature of the compiled type.
func (v *Validator) Signature() string { return v.signature }

// Accepts reports whether value is accepted.
func (v *Validator) Accepts(value any) bool { return v.accepts(value) }

// Cast converts value.
func (v *Validator) Cast(value any) (any, error) { return v.cast(value) }

// Load builds a Validator from a program artifact.
func Load(a *Artifact) (*Validator, error) {
	if a == nil {
		return nil, types.NewError(types.CodeInvalidArtifact, "Artifact is missing.")
	}
	if a.Format != FormatProgram {
		return nil, types.Errorf(types.CodeInvalidArtifact, "Artifact of format `%s` cannot be loaded.", a.Format).
			WithDetail("format", a.Format)
	}
	var prog Program
	if err := json.Unmarshal(a.Source, &prog); err != nil {
		return nil, types.Errorf(types.CodeInvalidArtifact, "Artifact of `%s` is corrupted: %v", a.Signature, err).
			WithDetail("signature", a.Signature)
	}
	if prog.Signature != a.Signature {
		return nil, types.Errorf(types.CodeInvalidArtifact, "Artifact signature `%s` does not match its program `%s`.", a.Signature, prog.Signature).
			WithDetail("signature", a.Signature)
	}
	if prog.Root == nil {
		return nil, types.Errorf(types.CodeInvalidArtifact, "Artifact of `%s` has no program.", a.Signature)
	}
	c, err := build(prog.Root)
	if err != nil {
		return nil, err
	}
	return &Validator{signature: prog.Signature, accepts: c.accepts, cast: c.cast}, nil
}

type closures struct {
	accepts func(any) bool
	cast    func(any) (any, error)
}

// literal wraps a value type: acceptance is strict equality and casting is
// delegated to the type itself, so messages stay identical.
func literal(t types.Castable) closures {
	return closures{accepts: t.Accepts, cast: t.Cast}
}

func build(n *Node) (closures, error) {
	switch n.Op {
	case OpMixed:
		return literal(types.Mixed()), nil
	case OpNull:
		return literal(types.Null()), nil
	case OpBool:
		return literal(types.Bool()), nil
	case OpInteger:
		return literal(types.Integer()), nil
	case OpFloat:
		return literal(types.Float()), nil
	case OpString:
		return literal(types.String()), nil
	case OpBoolValue:
		b, err := strconv.ParseBool(n.Literal)
		if err != nil {
			return closures{}, corrupted(n, err)
		}
		return literal(types.BoolValue(b)), nil
	case OpIntegerValue:
		i, err := strconv.ParseInt(n.Literal, 10, 64)
		if err != nil {
			return closures{}, corrupted(n, err)
		}
		return closures{
			accepts: func(v any) bool { return types.IntegerEquals(v, i) },
			cast:    types.IntegerValue(i).Cast,
		}, nil
	case OpFloatValue:
		f, err := strconv.ParseFloat(n.Literal, 64)
		if err != nil {
			return closures{}, corrupted(n, err)
		}
		return closures{
			accepts: func(v any) bool { return types.FloatEquals(v, f) },
			cast:    types.FloatValue(f).Cast,
		}, nil
	case OpStringValue:
		var t *types.StringValueType
		switch n.Quote {
		case "single":
			t = types.SingleQuoted(n.Literal)
		case "double":
			t = types.DoubleQuoted(n.Literal)
		default:
			t = types.StringValue(n.Literal)
		}
		return literal(t), nil
	case OpArrayKey:
		k, err := arrayKey(n)
		if err != nil {
			return closures{}, err
		}
		return literal(k), nil
	case OpUnion:
		return buildUnion(n)
	case OpArray:
		return buildArray(n)
	case OpList:
		return buildList(n)
	case OpShape:
		return buildShape(n)
	}
	return closures{}, types.Errorf(types.CodeInvalidArtifact, "Unknown program operation `%s`.", n.Op).
		WithDetail("op", n.Op)
}

func arrayKey(n *Node) (*types.ArrayKeyType, error) {
	switch n.Keys {
	case "int|string":
		return types.ArrayKey(), nil
	case "int":
		return types.IntegerKey(), nil
	case "string":
		return types.StringKey(), nil
	}
	return nil, types.Errorf(types.CodeInvalidArtifact, "Unknown array key kinds `%s`.", n.Keys)
}

func buildChildren(n *Node, want int) ([]closures, error) {
	if want >= 0 && len(n.Children) != want {
		return nil, types.Errorf(types.CodeInvalidArtifact, "Operation `%s` needs %d operands, got %d.", n.Op, want, len(n.Children))
	}
	out := make([]closures, len(n.Children))
	for i, child := range n.Children {
		if child == nil {
			return nil, types.Errorf(types.CodeInvalidArtifact, "Operation `%s` has an empty operand.", n.Op)
		}
		c, err := build(child)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func buildUnion(n *Node) (closures, error) {
	members, err := buildChildren(n, -1)
	if err != nil {
		return closures{}, err
	}
	if len(members) < 2 {
		return closures{}, types.Errorf(types.CodeInvalidArtifact, "Union `%s` needs at least two members.", n.Type)
	}
	expected := n.Type
	return closures{
		accepts: func(v any) bool {
			for _, m := range members {
				if m.accepts(v) {
					return true
				}
			}
			return false
		},
		cast: func(v any) (any, error) {
			errs := make([]error, 0, len(members))
			for _, m := range members {
				out, err := m.cast(v)
				if err == nil {
					return out, nil
				}
				errs = append(errs, err)
			}
			return nil, types.UnionCastFailed(v, expected, errs)
		},
	}, nil
}

func buildArray(n *Node) (closures, error) {
	if len(n.Children) == 2 && n.Children[0] != nil && n.Children[0].Op != OpArrayKey {
		return closures{}, types.Errorf(types.CodeInvalidArtifact, "Array `%s` has a key operand of `%s`.", n.Type, n.Children[0].Op)
	}
	operands, err := buildChildren(n, 2)
	if err != nil {
		return closures{}, err
	}
	key, value := operands[0], operands[1]
	expected := n.Type
	return closures{
		accepts: func(v any) bool {
			return types.AcceptsArray(v, key.accepts, value.accepts)
		},
		cast: func(v any) (any, error) {
			return types.CastArray(v, expected, key.cast, value.cast)
		},
	}, nil
}

func buildList(n *Node) (closures, error) {
	operands, err := buildChildren(n, 1)
	if err != nil {
		return closures{}, err
	}
	value := operands[0]
	expected := n.Type
	return closures{
		accepts: func(v any) bool {
			return types.AcceptsList(v, value.accepts)
		},
		cast: func(v any) (any, error) {
			return types.CastList(v, expected, value.cast)
		},
	}, nil
}

func buildShape(n *Node) (closures, error) {
	checks := make([]types.ShapeCheck, 0, len(n.Children))
	casters := make([]types.ShapeCaster, 0, len(n.Children))
	for _, e := range n.Children {
		if e == nil || e.Op != OpElement {
			return closures{}, types.Errorf(types.CodeInvalidArtifact, "Shape `%s` has an operand that is not an element.", n.Type)
		}
		operands, err := buildChildren(e, 1)
		if err != nil {
			return closures{}, err
		}
		checks = append(checks, types.ShapeCheck{Key: e.Key, Optional: e.Optional, Accepts: operands[0].accepts})
		casters = append(casters, types.ShapeCaster{Key: e.Key, Optional: e.Optional, Cast: operands[0].cast})
	}
	expected := n.Type
	return closures{
		accepts: func(v any) bool {
			return types.AcceptsShape(v, checks)
		},
		cast: func(v any) (any, error) {
			return types.CastShape(v, expected, casters)
		},
	}, nil
}

func corrupted(n *Node, err error) *types.Error {
	return types.Errorf(types.CodeInvalidArtifact, "Literal `%s` of operation `%s` is corrupted: %v", n.Literal, n.Op, err).
		WithDetail("op", n.Op)
}
