package leanerrors

import (
	"errors"
	"fmt"
)

// Located is implemented by failures tied to a point in source text.
type Located interface {
	error
	Line() uint
	Pos() uint
}

// ParserError is a failure detected during lexical or syntactic analysis.
//
// Line and position are stored as given, nothing is validated or clamped.
// Producers in this module use a 1-based line and a 0-based rune column.
type ParserError struct {
	err  Error
	line uint
	pos  uint
}

// NewParserError returns a located error.
func NewParserError(msg string, line, pos uint) *ParserError {
	return &ParserError{err: Error{msg: msg}, line: line, pos: pos}
}

// NewParserErrorf returns a located error with a formatted message.
func NewParserErrorf(line, pos uint, format string, args ...any) *ParserError {
	return &ParserError{err: Error{msg: fmt.Sprintf(format, args...)}, line: line, pos: pos}
}

// Error implements error.
func (e *ParserError) Error() string {
	return fmt.Sprintf("[line %d:%d] %s", e.line, e.pos, e.err.msg)
}

// Message returns the message without the location.
func (e *ParserError) Message() string {
	return e.err.msg
}

// Line returns the line given at construction.
func (e *ParserError) Line() uint {
	return e.line
}

// Pos returns the column given at construction.
func (e *ParserError) Pos() uint {
	return e.pos
}

// Unwrap returns the error as a plain *Error.
func (e *ParserError) Unwrap() error {
	return &e.err
}

// Location returns the position of the first located failure in err's tree.
func Location(err error) (line, pos uint, ok bool) {
	var located Located
	if !errors.As(err, &located) {
		return 0, 0, false
	}
	return located.Line(), located.Pos(), true
}

var _ error = (*ParserError)(nil)
var _ Located = (*ParserError)(nil)
var _ unwrapInterface = (*ParserError)(nil)
