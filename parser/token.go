// Package parser turns textual type declarations such as
// `int|'foo'|array{id: int, name?: string}` into values of package types.
package parser

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	_EOF Token = iota

	_Name   // identifier: int, array-key, MyAlias
	_Int    // integer literal: 42, -7
	_Float  // float literal: 42.0, 1e3, .5
	_String // quoted string literal: 'foo', "bar"

	_Or       // |
	_Question // ?
	_Lbrack   // [
	_Rbrack   // ]
	_Lss      // <
	_Gtr      // >
	_Lbrace   // {
	_Rbrace   // }
	_Comma    // ,
	_Colon    // :
)

var tokenStrings = [...]string{
	_EOF:      "EOF",
	_Name:     "name",
	_Int:      "integer",
	_Float:    "float",
	_String:   "string",
	_Or:       "|",
	_Question: "?",
	_Lbrack:   "[",
	_Rbrack:   "]",
	_Lss:      "<",
	_Gtr:      ">",
	_Lbrace:   "{",
	_Rbrace:   "}",
	_Comma:    ",",
	_Colon:    ":",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if int(t) < len(tokenStrings) {
		return tokenStrings[t]
	}
	return fmt.Sprintf("Token(%d)", t)
}

// token is one lexed token with its literal text and byte offset.
type token struct {
	tok Token
	lit string // identifier name, number text, or unquoted string content
	raw string // source text, quotes included
	pos int

	quote byte // quote character of a _String token
}
