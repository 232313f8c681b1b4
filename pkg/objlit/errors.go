package objlit

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned when the expression cannot be parsed.
	ErrSyntax = errors.New("objlit: syntax error")

	// ErrUnknownIdentifier is returned when an identifier is not present in the bindings.
	ErrUnknownIdentifier = errors.New("objlit: unknown identifier")

	// ErrNotObject is returned by EvalObject when the expression is not an object.
	ErrNotObject = errors.New("objlit: expression is not an object")
)

// SyntaxError describes where parsing failed.
type SyntaxError struct {
	Msg string
	Pos int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("objlit: %s at offset %d", e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErr(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
