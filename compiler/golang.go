package compiler

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/broady/valtype/types"
)

const typesPath = "github.com/broady/valtype/types"

// GoCompiler compiles types to a Go source file declaring
//
//	func <FuncName>(v interface{}) bool
//
// which reports whether v is accepted. The generated code only depends on
// the exported helpers of package types.
type GoCompiler struct {
	// Package is the package clause of the file. Defaults to "validation".
	Package string
	// FuncName is the name of the generated function. Defaults to "Validate".
	FuncName string
}

// Format implements Compiler.
func (*GoCompiler) Format() string { return FormatGo }

// CompileValidation implements Compiler.
func (c *GoCompiler) CompileValidation(t types.Type) (*Artifact, error) {
	pkg, name := c.Package, c.FuncName
	if pkg == "" {
		pkg = "validation"
	}
	if name == "" {
		name = "Validate"
	}

	g := &goEmitter{}
	body, err := g.accepts(t, "v")
	if err != nil {
		return nil, err
	}

	signature := types.Signature(t)
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by valtype. DO NOT EDIT.")
	f.Commentf("%s reports whether v is accepted by `%s`.", name, signature)
	f.Func().Id(name).Params(jen.Id("v").Interface()).Bool().Block(
		jen.Return(body),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", signature, err)
	}
	return &Artifact{Signature: signature, Format: FormatGo, Source: buf.Bytes()}, nil
}

// goEmitter builds boolean expressions. Nested closures get fresh
// parameter names so the output reads without shadowing.
type goEmitter struct {
	vars int
}

func (g *goEmitter) fresh() string {
	g.vars++
	return "v" + strconv.Itoa(g.vars)
}

// predicate wraps an acceptance expression of a fresh variable into a
// func(interface{}) bool literal.
func (g *goEmitter) predicate(t types.Type) (jen.Code, error) {
	param := g.fresh()
	body, err := g.accepts(t, param)
	if err != nil {
		return nil, err
	}
	return jen.Func().Params(jen.Id(param).Interface()).Bool().Block(jen.Return(body)), nil
}

func helper(name, v string, args ...jen.Code) *jen.Statement {
	return jen.Qual(typesPath, name).Call(append([]jen.Code{jen.Id(v)}, args...)...)
}

func (g *goEmitter) accepts(t types.Type, v string) (*jen.Statement, error) {
	switch t := t.(type) {
	case *types.MixedType:
		return jen.True(), nil
	case *types.NullType:
		return jen.Id(v).Op("==").Nil(), nil
	case *types.BoolType:
		return helper("IsBool", v), nil
	case *types.IntegerType:
		return helper("IsInteger", v), nil
	case *types.FloatType:
		return helper("IsFloat", v), nil
	case *types.StringType:
		return helper("IsString", v), nil
	case *types.BoolValueType:
		return jen.Id(v).Op("==").Lit(t.Value()), nil
	case *types.IntegerValueType:
		return helper("IntegerEquals", v, jen.Lit(t.Value())), nil
	case *types.FloatValueType:
		f := t.Value()
		switch {
		case math.IsNaN(f):
			return jen.False(), nil
		case math.IsInf(f, 0):
			sign := 1
			if f < 0 {
				sign = -1
			}
			return helper("FloatEquals", v, jen.Qual("math", "Inf").Call(jen.Lit(sign))), nil
		}
		return helper("FloatEquals", v, jen.Lit(f)), nil
	case *types.StringValueType:
		return jen.Id(v).Op("==").Lit(t.Value()), nil
	case *types.ArrayKeyType:
		switch {
		case t.AcceptsIntegers() && t.AcceptsStrings():
			return jen.Parens(helper("IsInteger", v).Op("||").Add(helper("IsString", v))), nil
		case t.AcceptsIntegers():
			return helper("IsInteger", v), nil
		default:
			return helper("IsString", v), nil
		}
	case *types.UnionType:
		var expr *jen.Statement
		for _, m := range t.Members() {
			member, err := g.accepts(m, v)
			if err != nil {
				return nil, err
			}
			if expr == nil {
				expr = jen.Add(member)
				continue
			}
			expr = expr.Op("||").Add(member)
		}
		return jen.Parens(expr), nil
	case *types.ArrayType:
		key, err := g.predicate(t.Key())
		if err != nil {
			return nil, err
		}
		value, err := g.predicate(t.Value())
		if err != nil {
			return nil, err
		}
		return helper("AcceptsArray", v, key, value), nil
	case *types.ListType:
		value, err := g.predicate(t.Value())
		if err != nil {
			return nil, err
		}
		return helper("AcceptsList", v, value), nil
	case *types.ShapedArrayType:
		var checks []jen.Code
		for _, e := range t.Elements() {
			accepts, err := g.predicate(e.Type)
			if err != nil {
				return nil, err
			}
			checks = append(checks, jen.Values(jen.Dict{
				jen.Id("Key"):      jen.Lit(e.Key),
				jen.Id("Optional"): jen.Lit(e.Optional),
				jen.Id("Accepts"):  accepts,
			}))
		}
		return helper("AcceptsShape", v, jen.Index().Qual(typesPath, "ShapeCheck").Values(checks...)), nil
	}
	return nil, unsupported(t, FormatGo)
}
