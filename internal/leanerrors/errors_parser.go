package leanerrors

var (
	ErrParseUnexpectedCloser   = New("unexpected closing delimiter")
	ErrParseMismatchedCloser   = New("mismatched closing delimiter")
	ErrParseUnclosedDelimiter  = New("unclosed delimiter")
	ErrParseExpectedIdentifier = New("expected identifier")
)

// ErrParseExpectedIdentifierAfter reports a declaration keyword not followed by a name.
func ErrParseExpectedIdentifierAfter(keyword string) *Error {
	return ErrParseExpectedIdentifier.Detailf("after '%s'", keyword)
}
