package tbruntime

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyProgram       = errors.New("no program")
	ErrLineNotFound       = errors.New("line not found")
	ErrReturnWithoutGosub = errors.New("RETURN without GOSUB")
	ErrNotInteger         = errors.New("not an integer")
	ErrDomain             = errors.New("domain error")
	ErrUndefinedFunction  = errors.New("undefined function")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrBadLineNumber      = errors.New("bad line number")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrTabRange           = errors.New("TAB column out of range")

	// ErrNeedsInput means INPUT found no line to read. Run turns it into a
	// suspension; it is never returned to callers of Run.
	ErrNeedsInput = errors.New("needs input")
)

// RuntimeError halts a run. Stmt is the canonical source of the statement
// that failed.
type RuntimeError struct {
	Line int
	Stmt string
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Stmt == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v (executing %q)", e.Line, e.Err, e.Stmt)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func typeMismatch(what string, v Value) error {
	return fmt.Errorf("%w: %s of %s", ErrTypeMismatch, what, v.Kind())
}
