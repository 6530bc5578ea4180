package ast

import "fmt"

// ErrCode classifies errors raised by this package, distinct from the
// arithmetic-specific ErrArithmetic sentinel so callers can type-switch
// without string matching.
type ErrCode int

const (
	// InternalErr represents an invariant violation inside this package;
	// per spec.md §7.5 these denote bugs, not recoverable user errors.
	InternalErr ErrCode = iota
	// TypeErr indicates an operation was applied to a term of the wrong
	// kind (e.g. arithmetic on a non-numeric constant).
	TypeErr
)

// Error is a single error raised while constructing or resolving a term.
type Error struct {
	Code    ErrCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ast error (code: %d): %s", e.Code, e.Message)
}

// NewError returns a new Error with a formatted message.
func NewError(code ErrCode, f string, a ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(f, a...)}
}
