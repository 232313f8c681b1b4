package ejs

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks malformed or unsupported template syntax.
	ErrSyntax = errors.New("ejs: syntax error")

	// ErrRuntime marks failures while evaluating a template against data.
	ErrRuntime = errors.New("ejs: runtime error")

	// ErrNoPartials is returned when the engine is asked to load a template by name.
	ErrNoPartials = errors.New("ejs: partial lookup is disabled")
)

// Error is a template error with the line it was raised on.
type Error struct {
	Kind error // ErrSyntax or ErrRuntime
	Msg  string
	Line int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("ejs:%d: %s", e.Line, e.Msg)
	}
	return "ejs: " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func syntaxError(line int, format string, args ...any) *Error {
	return &Error{Kind: ErrSyntax, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func runtimeError(line int, format string, args ...any) *Error {
	return &Error{Kind: ErrRuntime, Line: line, Msg: fmt.Sprintf(format, args...)}
}
