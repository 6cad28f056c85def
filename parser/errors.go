package parser

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	LexError ErrorKind = iota
	ParseError
)

func (k ErrorKind) String() string {
	if k == LexError {
		return "lex error"
	}
	return "parse error"
}

var (
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrBadVariable        = errors.New("bad variable name")
	ErrImmediateCommand   = errors.New("immediate command cannot be stored")
	ErrBadLineNumber      = errors.New("bad line number")
)

// SyntaxError reports a line that failed to tokenize or parse. It never
// affects lines that were stored earlier.
type SyntaxError struct {
	Kind   ErrorKind
	Line   int
	Column int
	Source string
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s: %q", e.Kind, e.Line, e.Column+1, e.Msg, e.Source)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func newSyntaxError(kind ErrorKind, line, col int, source string, cause error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:   kind,
		Line:   line,
		Column: col,
		Source: source,
		Msg:    fmt.Sprintf(format, args...),
		Err:    cause,
	}
}
