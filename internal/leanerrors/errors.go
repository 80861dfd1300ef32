// Package leanerrors defines the failure values raised by the front end.
//
// There are two kinds. *Error carries a message only. *ParserError
// additionally records the line and column where lexical or syntactic
// analysis failed. A *ParserError unwraps to its *Error, so handlers
// written against the base type keep working when given a located one.
package leanerrors

import (
	"fmt"
)

// Error is a generic front-end failure.
//
// The zero value is a valid error with an empty message. Values are
// immutable once constructed; copying one with *e yields an independent
// error.
type Error struct {
	msg string
	// kind is the sentinel this error was derived from, nil for roots.
	kind *Error
}

// New returns a root error with the given message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Newf returns a root error with a formatted message.
func Newf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Error implements error. It returns the message verbatim.
func (e *Error) Error() string {
	return e.msg
}

// Message returns the message the error was constructed with.
func (e *Error) Message() string {
	return e.msg
}

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t == e || t == e.kind
}

// Detailf derives an error of the same kind with details appended to the message.
func (e *Error) Detailf(format string, args ...any) *Error {
	details := fmt.Sprintf(format, args...)
	msg := e.msg
	if details != "" {
		msg += " " + details
	}
	return &Error{msg: msg, kind: e.root()}
}

// At derives a located error of the same kind.
func (e *Error) At(line, pos uint) *ParserError {
	return &ParserError{err: Error{msg: e.msg, kind: e.root()}, line: line, pos: pos}
}

func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

var _ error = (*Error)(nil)
