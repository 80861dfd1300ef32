package parser

import (
	"github.com/leonardinius/golean/internal/leanerrors"
	"github.com/leonardinius/golean/internal/token"
)

func (p *parser) reportError(tok token.Token, err *leanerrors.Error) {
	p.errs = append(p.errs, err.At(tok.Line, tok.Pos))
}
