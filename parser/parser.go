package parser

import (
	"strconv"
	"strings"

	"github.com/broady/valtype/types"
)

// Parser turns a raw declaration into a type.
type Parser interface {
	Parse(raw string) (types.Type, error)
}

// LexingParser parses declarations with the built-in grammar, resolving
// unknown names through its aliases.
type LexingParser struct {
	aliases map[string]types.Type
}

// NewLexingParser creates a parser. Aliases map extra names to types;
// they cannot shadow the built-in keywords.
func NewLexingParser(aliases map[string]types.Type) *LexingParser {
	copied := make(map[string]types.Type, len(aliases))
	for name, t := range aliases {
		copied[name] = t
	}
	return &LexingParser{aliases: copied}
}

// Parse implements Parser.
func (p *LexingParser) Parse(raw string) (types.Type, error) {
	toks, err := newScanner(raw).scanAll()
	if err != nil {
		return nil, err
	}
	st := &parseState{src: raw, toks: toks, aliases: p.aliases}
	t, err := st.union()
	if err != nil {
		return nil, err
	}
	if st.tok().tok != _EOF {
		return nil, st.unexpected()
	}
	return t, nil
}

// parseState is a recursive descent over a token slice.
type parseState struct {
	src     string
	toks    []token
	i       int
	aliases map[string]types.Type
}

func (p *parseState) tok() token { return p.toks[p.i] }

func (p *parseState) peek() token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parseState) next() { p.i++ }

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *parseState) got(tok Token) bool {
	if p.tok().tok == tok {
		p.next()
		return true
	}
	return false
}

func (p *parseState) want(tok Token) error {
	if !p.got(tok) {
		return p.unexpected()
	}
	return nil
}

func (p *parseState) unexpected() *types.Error {
	t := p.tok()
	if t.tok == _EOF {
		return types.Errorf(types.CodeInvalidDeclaration, "Unexpected end of declaration `%s`.", p.src).
			WithDetail("declaration", p.src)
	}
	return types.Errorf(types.CodeInvalidDeclaration, "Unexpected `%s` at position %d of `%s`.", t.raw, t.pos, p.src).
		WithDetail("declaration", p.src).
		WithDetail("position", t.pos)
}

// union := nullable ('|' nullable)*
func (p *parseState) union() (types.Type, error) {
	first, err := p.nullable()
	if err != nil {
		return nil, err
	}
	if p.tok().tok != _Or {
		return first, nil
	}
	members := []types.Type{first}
	for p.got(_Or) {
		t, err := p.nullable()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	u, err := types.NewUnion(members...)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// nullable := '?' postfix | postfix
func (p *parseState) nullable() (types.Type, error) {
	if !p.got(_Question) {
		return p.postfix()
	}
	t, err := p.postfix()
	if err != nil {
		return nil, err
	}
	u, err := types.NewUnion(types.Null(), t)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// postfix := atom ('[' ']')*
func (p *parseState) postfix() (types.Type, error) {
	t, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.got(_Lbrack) {
		if err := p.want(_Rbrack); err != nil {
			return nil, err
		}
		t = types.Array(nil, t)
	}
	return t, nil
}

func (p *parseState) atom() (types.Type, error) {
	t := p.tok()
	switch t.tok {
	case _Int:
		p.next()
		n, err := strconv.ParseInt(t.lit, 10, 64)
		if err != nil {
			return nil, types.Errorf(types.CodeInvalidDeclaration, "Integer value `%s` is out of range.", t.lit).
				WithDetail("declaration", p.src)
		}
		return types.IntegerValue(n), nil
	case _Float:
		p.next()
		f, err := strconv.ParseFloat(t.lit, 64)
		if err != nil {
			return nil, types.Errorf(types.CodeInvalidDeclaration, "Float value `%s` is out of range.", t.lit).
				WithDetail("declaration", p.src)
		}
		return types.FloatValue(f), nil
	case _String:
		p.next()
		if t.quote == '"' {
			return types.DoubleQuoted(t.lit), nil
		}
		return types.SingleQuoted(t.lit), nil
	case _Name:
		p.next()
		return p.name(t)
	}
	return nil, p.unexpected()
}

func (p *parseState) name(t token) (types.Type, error) {
	switch strings.ToLower(t.lit) {
	case "int", "integer":
		return types.Integer(), nil
	case "string":
		return types.String(), nil
	case "float", "double":
		return types.Float(), nil
	case "bool", "boolean":
		return types.Bool(), nil
	case "mixed":
		return types.Mixed(), nil
	case "null":
		return types.Null(), nil
	case "true":
		return types.BoolValue(true), nil
	case "false":
		return types.BoolValue(false), nil
	case "array-key":
		return types.ArrayKey(), nil
	case "array":
		return p.array()
	case "list":
		return p.list()
	}
	if alias, ok := p.aliases[t.lit]; ok {
		return alias, nil
	}
	return nil, unknownSymbol(t.lit)
}

// array := 'array' ('<' union (',' union)? '>' | shape)?
func (p *parseState) array() (types.Type, error) {
	if p.tok().tok == _Lbrace {
		return p.shape()
	}
	if !p.got(_Lss) {
		return types.Array(nil, nil), nil
	}
	first, err := p.union()
	if err != nil {
		return nil, err
	}
	if p.got(_Gtr) {
		return types.Array(nil, first), nil
	}
	if err := p.want(_Comma); err != nil {
		return nil, err
	}
	value, err := p.union()
	if err != nil {
		return nil, err
	}
	if err := p.want(_Gtr); err != nil {
		return nil, err
	}
	key, err := arrayKey(first)
	if err != nil {
		return nil, err
	}
	return types.Array(key, value), nil
}

func arrayKey(t types.Type) (*types.ArrayKeyType, error) {
	switch k := t.(type) {
	case *types.ArrayKeyType:
		return k, nil
	case *types.IntegerType:
		return types.IntegerKey(), nil
	case *types.StringType:
		return types.StringKey(), nil
	}
	if u, ok := t.(*types.UnionType); ok && types.ArrayKey().Matches(u) && u.Matches(types.ArrayKey()) {
		return types.ArrayKey(), nil
	}
	return nil, types.Errorf(types.CodeInvalidDeclaration, "Invalid array key type `%s`, it must be a valid array key.", t).
		WithDetail("key", t.String())
}

// list := 'list' ('<' union '>')?
func (p *parseState) list() (types.Type, error) {
	if !p.got(_Lss) {
		return types.List(nil), nil
	}
	value, err := p.union()
	if err != nil {
		return nil, err
	}
	if err := p.want(_Gtr); err != nil {
		return nil, err
	}
	return types.List(value), nil
}

// shape := '{' (element (',' element)* ','?)? '}'
// element := (key '?'? ':')? union
func (p *parseState) shape() (types.Type, error) {
	if err := p.want(_Lbrace); err != nil {
		return nil, err
	}
	var elements []types.ShapeElement
	index := 0
	for p.tok().tok != _Rbrace {
		var e types.ShapeElement
		if key, ok := p.shapeKey(); ok {
			e.Key = key
			e.Optional = p.got(_Question)
			if err := p.want(_Colon); err != nil {
				return nil, err
			}
		} else {
			e.Key = strconv.Itoa(index)
			index++
		}
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		e.Type = t
		elements = append(elements, e)
		if !p.got(_Comma) {
			break
		}
	}
	if err := p.want(_Rbrace); err != nil {
		return nil, err
	}
	s, err := types.Shape(elements...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// shapeKey consumes an element key when the upcoming tokens are
// `key:` or `key?:`.
func (p *parseState) shapeKey() (string, bool) {
	t := p.tok()
	switch t.tok {
	case _Name, _Int, _String:
	default:
		return "", false
	}
	next := p.peek().tok
	if next != _Colon && next != _Question {
		return "", false
	}
	if next == _Question && p.i+2 < len(p.toks) && p.toks[p.i+2].tok != _Colon {
		return "", false
	}
	p.next()
	if t.tok == _Int {
		if n, err := strconv.ParseInt(t.lit, 10, 64); err == nil {
			return strconv.FormatInt(n, 10), true
		}
	}
	return t.lit, true
}
