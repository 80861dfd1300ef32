package scanner

import (
	"strconv"

	"github.com/leonardinius/golean/internal/leanerrors"
)

func (s *scanner) reportUnexpectedCharacter(c rune) {
	s.reportError(leanerrors.ErrScanUnexpectedCharacter.Detailf("%s", strconv.QuoteRune(c)))
}

// reportError raises err located at the start of the current lexeme.
// It does not return; Scan recovers the failure.
func (s *scanner) reportError(err *leanerrors.Error) {
	s.reportErrorAt(err, s.startLine, s.startPos)
}

func (s *scanner) reportErrorAt(err *leanerrors.Error, line, pos uint) {
	leanerrors.Throw(err.At(line, pos))
}
