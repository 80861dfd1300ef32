package leanerrors

var (
	ErrScanUnexpectedCharacter = New("unexpected character")
	ErrScanUnterminatedString  = New("unterminated string")
	ErrScanUnterminatedComment = New("unterminated comment")
	ErrScanInvalidEscape       = New("invalid escape sequence")
	ErrScanInvalidNumber       = New("invalid number")
)
