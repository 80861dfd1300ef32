package parser

import "github.com/leonardinius/golean/internal/token"

// Visitor is the interface that wraps the Visit methods.
//
// Visit is called for every node in the tree.
type Visitor interface {
	VisitAtom(node *Atom) any
	VisitGroup(node *Group) any
}

type Node interface {
	Accept(v Visitor) any
}

// Atom is any token that is not a delimiter.
type Atom struct {
	Tok token.Token
}

var _ Node = (*Atom)(nil)

func (n *Atom) Accept(v Visitor) any {
	return v.VisitAtom(n)
}

// Group is a delimited sequence: ( ... ), { ... } or [ ... ].
type Group struct {
	Open     token.Token
	Close    token.Token
	Children []Node
}

var _ Node = (*Group)(nil)

func (n *Group) Accept(v Visitor) any {
	return v.VisitGroup(n)
}
