package parser

import (
	"strings"

	"github.com/broady/valtype/types"
)

// scanner splits a declaration into tokens.
type scanner struct {
	src string
	off int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

// scanAll returns every token of the source, ending with _EOF.
func (s *scanner) scanAll() ([]token, error) {
	var toks []token
	for {
		t, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.tok == _EOF {
			return toks, nil
		}
	}
}

func (s *scanner) peekAt(i int) byte {
	if s.off+i < len(s.src) {
		return s.src[s.off+i]
	}
	return 0
}

func (s *scanner) skipWhitespace() {
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case ' ', '\t', '\n', '\r':
			s.off++
		default:
			return
		}
	}
}

func (s *scanner) next() (token, error) {
	s.skipWhitespace()
	start := s.off
	if s.off >= len(s.src) {
		return token{tok: _EOF, pos: start}, nil
	}

	ch := s.src[s.off]
	switch {
	case isLetter(ch):
		return s.name(), nil
	case s.atNumber():
		return s.number(), nil
	case ch == '\'' || ch == '"':
		return s.quoted(ch)
	}

	s.off++
	var tok Token
	switch ch {
	case '|':
		tok = _Or
	case '?':
		tok = _Question
	case '[':
		tok = _Lbrack
	case ']':
		tok = _Rbrack
	case '<':
		tok = _Lss
	case '>':
		tok = _Gtr
	case '{':
		tok = _Lbrace
	case '}':
		tok = _Rbrace
	case ',':
		tok = _Comma
	case ':':
		tok = _Colon
	default:
		return token{}, unknownSymbol(string(ch))
	}
	return token{tok: tok, lit: string(ch), raw: string(ch), pos: start}, nil
}

// name scans an identifier. Dashes are allowed inside names so that
// array-key lexes as one token.
func (s *scanner) name() token {
	start := s.off
	for s.off < len(s.src) {
		ch := s.src[s.off]
		if isLetter(ch) || isDigit(ch) || ch == '\\' {
			s.off++
			continue
		}
		if ch == '-' && isLetter(s.peekAt(1)) {
			s.off++
			continue
		}
		break
	}
	lit := s.src[start:s.off]
	return token{tok: _Name, lit: lit, raw: lit, pos: start}
}

// atNumber reports whether a number literal starts at the current offset.
func (s *scanner) atNumber() bool {
	i := 0
	if ch := s.peekAt(0); ch == '-' || ch == '+' {
		i++
	}
	if s.peekAt(i) == '.' {
		i++
	}
	return isDigit(s.peekAt(i))
}

func (s *scanner) number() token {
	start := s.off
	tok := _Int
	if ch := s.src[s.off]; ch == '-' || ch == '+' {
		s.off++
	}
	s.digits()
	if s.peekAt(0) == '.' {
		tok = _Float
		s.off++
		s.digits()
	}
	if ch := s.peekAt(0); ch == 'e' || ch == 'E' {
		n := 1
		if sign := s.peekAt(1); sign == '+' || sign == '-' {
			n++
		}
		if isDigit(s.peekAt(n)) {
			tok = _Float
			s.off += n
			s.digits()
		}
	}
	lit := s.src[start:s.off]
	return token{tok: tok, lit: lit, raw: lit, pos: start}
}

func (s *scanner) digits() {
	for s.off < len(s.src) && isDigit(s.src[s.off]) {
		s.off++
	}
}

// quoted scans a quoted literal. A backslash escapes the next byte.
func (s *scanner) quoted(quote byte) (token, error) {
	start := s.off
	s.off++

	var b strings.Builder
	for s.off < len(s.src) {
		ch := s.src[s.off]
		switch {
		case ch == '\\' && s.off+1 < len(s.src):
			b.WriteByte(s.src[s.off+1])
			s.off += 2
		case ch == quote:
			s.off++
			return token{
				tok:   _String,
				lit:   b.String(),
				raw:   s.src[start:s.off],
				pos:   start,
				quote: quote,
			}, nil
		default:
			b.WriteByte(ch)
			s.off++
		}
	}
	return token{}, types.Errorf(types.CodeInvalidDeclaration,
		"String value `%s` is not closed.", s.src[start:]).
		WithDetail("position", start)
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func unknownSymbol(symbol string) *types.Error {
	return types.Errorf(types.CodeInvalidDeclaration, "Cannot parse unknown symbol `%s`.", symbol).
		WithDetail("symbol", symbol)
}
