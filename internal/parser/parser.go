package parser

import (
	"errors"
	"fmt"

	"github.com/leonardinius/golean/internal/leanerrors"
	"github.com/leonardinius/golean/internal/token"
)

var (
	nilNodes []Node = nil
)

// closers maps each opening delimiter to the closing delimiter it expects.
var closers = map[token.TokenType]token.TokenType{
	token.LEFT_PAREN:   token.RIGHT_PAREN,
	token.LEFT_BRACE:   token.RIGHT_BRACE,
	token.LEFT_BRACKET: token.RIGHT_BRACKET,
}

var closerLexemes = map[token.TokenType]string{
	token.RIGHT_PAREN:   ")",
	token.RIGHT_BRACE:   "}",
	token.RIGHT_BRACKET: "]",
}

// declarations must be followed by a name.
var declarations = map[string]struct{}{
	"def":       {},
	"theorem":   {},
	"axiom":     {},
	"namespace": {},
}

type Parser interface {
	Parse() ([]Node, error)
}

type parser struct {
	tokens  []token.Token
	current int
	errs    []error
}

func NewParser(tokens []token.Token) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:  tokens,
		current: 0,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, errs: %#v}", p.tokens, p.current, p.errs)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, errs: %d}", len(p.tokens), len(p.errs))
}

// Parse implements Parser.
//
// Parsing continues past failures so that every problem in the input is
// reported. If any failure was recorded no tree is returned.
func (p *parser) Parse() ([]Node, error) {
	var nodes []Node
	for !p.isAtEnd() {
		if node := p.node(); node != nil {
			nodes = append(nodes, node)
		}
	}

	if len(p.errs) > 0 {
		return nilNodes, errors.Join(p.errs...)
	}
	return nodes, nil
}

func (p *parser) node() Node {
	tok := p.advance()

	if _, ok := closers[tok.Type]; ok {
		return p.group(tok)
	}

	if _, ok := closerLexemes[tok.Type]; ok {
		p.reportError(tok, leanerrors.ErrParseUnexpectedCloser.Detailf("'%s'", tok.Lexeme))
		return nil
	}

	if tok.Type == token.KEYWORD {
		p.declaration(tok)
	}

	return &Atom{Tok: tok}
}

func (p *parser) declaration(keyword token.Token) {
	if _, ok := declarations[keyword.Lexeme]; !ok {
		return
	}
	if p.check(token.IDENTIFIER) {
		return
	}
	p.reportError(p.peek(), leanerrors.ErrParseExpectedIdentifierAfter(keyword.Lexeme))
}

func (p *parser) group(open token.Token) Node {
	want := closers[open.Type]
	group := &Group{Open: open}

	for {
		if p.isAtEnd() {
			p.reportError(open, leanerrors.ErrParseUnclosedDelimiter.Detailf("'%s'", open.Lexeme))
			return group
		}

		if _, ok := closerLexemes[p.peek().Type]; ok {
			group.Close = p.advance()
			if group.Close.Type != want {
				p.reportError(group.Close, leanerrors.ErrParseMismatchedCloser.Detailf("'%s', expected '%s'", group.Close.Lexeme, closerLexemes[want]))
			}
			return group
		}

		if child := p.node(); child != nil {
			group.Children = append(group.Children, child)
		}
	}
}

func (p *parser) check(tokType token.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tokType
}

func (p *parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
