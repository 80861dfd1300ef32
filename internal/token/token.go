package token

import (
	"fmt"
)

type TokenType int

const (
	// Delimiters.
	LEFT_PAREN TokenType = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET

	// Punctuation and operators.
	COMMA
	DOT
	COLON
	ASSIGN
	ARROW
	LAMBDA
	PLUS
	MINUS
	STAR
	SLASH
	EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL

	// Literals.
	IDENTIFIER
	KEYWORD
	STRING
	NUMBER

	EOF
)

var tokenTypeNames = [...]string{
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	COMMA:         "COMMA",
	DOT:           "DOT",
	COLON:         "COLON",
	ASSIGN:        "ASSIGN",
	ARROW:         "ARROW",
	LAMBDA:        "LAMBDA",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	SLASH:         "SLASH",
	EQUAL:         "EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	KEYWORD:       "KEYWORD",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	EOF:           "EOF",
}

// String implements fmt.Stringer.
func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// Token represents a lexical token.
//
// Line is 1-based, Pos is the 0-based rune column of the first character.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    uint
	Pos     uint
}

func NewToken(t TokenType, lexeme string, literal any, line, pos uint) Token {
	return Token{
		Type:    t,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    line,
		Pos:     pos,
	}
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %#v, Line: %d, Pos: %d}", t.Type, t.Lexeme, t.Literal, t.Line, t.Pos)
}

var _ fmt.Stringer = (*Token)(nil)
var _ fmt.GoStringer = (*Token)(nil)
var _ fmt.Stringer = TokenType(0)
