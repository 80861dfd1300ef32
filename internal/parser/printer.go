package parser

import (
	"fmt"
	"strings"

	"github.com/leonardinius/golean/internal/token"
)

var groupNames = map[token.TokenType]string{
	token.LEFT_PAREN:   "paren",
	token.LEFT_BRACE:   "brace",
	token.LEFT_BRACKET: "bracket",
}

type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// VisitAtom implements Visitor.
func (p *AstPrinter) VisitAtom(node *Atom) any {
	switch node.Tok.Type {
	case token.STRING:
		return fmt.Sprintf("%q", node.Tok.Literal)
	case token.NUMBER:
		return fmt.Sprintf("%v", node.Tok.Literal)
	default:
		return node.Tok.Lexeme
	}
}

// VisitGroup implements Visitor.
func (p *AstPrinter) VisitGroup(node *Group) any {
	return p.parenthesize(groupNames[node.Open.Type], node.Children...)
}

func (p *AstPrinter) parenthesize(name string, nodes ...Node) string {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, node := range nodes {
		_, _ = out.WriteString(" ")
		_, _ = out.WriteString(p.asStr(node.Accept(p)))
	}
	_, _ = out.WriteString(")")
	return out.String()
}

// Print renders top-level nodes separated by spaces.
func (p *AstPrinter) Print(nodes ...Node) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = p.asStr(node.Accept(p))
	}
	return strings.Join(parts, " ")
}

func (p *AstPrinter) asStr(v any) string {
	if v == nil {
		return "<nil>"
	}

	return v.(string)
}

var _ Visitor = (*AstPrinter)(nil)
