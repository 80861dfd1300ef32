package leanerrors

import "errors"

// local interfaces to be used with errors.Unwrap() and errors.Join().
// errors package does not define them, relies on type assertions instead.
type unwrapInterface interface {
	Unwrap() error
}

type unwrapJoinInterface interface {
	Unwrap() []error
}

// Split flattens errors.Join trees into their leaves, in order.
// Single-error wraps are kept intact so the leaf still carries its context.
func Split(err error) []error {
	if err == nil {
		return nil
	}

	if joined, ok := err.(unwrapJoinInterface); ok {
		var leaves []error
		for _, e := range joined.Unwrap() {
			leaves = append(leaves, Split(e)...)
		}
		return leaves
	}

	return []error{err}
}

// Throw unwinds the stack with err. Pair it with Recover at the boundary.
func Throw(err error) {
	panic(err)
}

// Recover stores a thrown front-end failure into *errp.
// Panics that do not carry an *Error are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	err, ok := r.(error)
	var base *Error
	if !ok || !errors.As(err, &base) {
		panic(r)
	}

	*errp = err
}
