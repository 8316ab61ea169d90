// Package errs classifies calculator failures.
//
// Every failure is an *Error carrying a Kind. Callers that only need the
// class test with errors.Is against the sentinels:
//
//	if errors.Is(err, errs.ErrDomain) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Kind is the class of a failure.
type Kind int

const (
	KindSyntax Kind = iota + 1
	KindDomain
	KindName
	KindZeroDivision
	KindOverflow
	KindArity
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SYNTAX"
	case KindDomain:
		return "DOMAIN"
	case KindName:
		return "NAME"
	case KindZeroDivision:
		return "ZERO_DIVISION"
	case KindOverflow:
		return "OVERFLOW"
	case KindArity:
		return "ARITY"
	default:
		return "UNKNOWN"
	}
}

// Sentinels for errors.Is.
var (
	ErrSyntax       = &Error{Kind: KindSyntax, Msg: "syntax error", Pos: -1}
	ErrDomain       = &Error{Kind: KindDomain, Msg: "math domain error", Pos: -1}
	ErrName         = &Error{Kind: KindName, Msg: "unknown name", Pos: -1}
	ErrZeroDivision = &Error{Kind: KindZeroDivision, Msg: "division by zero", Pos: -1}
	ErrOverflow     = &Error{Kind: KindOverflow, Msg: "result too large", Pos: -1}
	ErrArity        = &Error{Kind: KindArity, Msg: "wrong number of arguments", Pos: -1}
)

// Error is a classified failure.
type Error struct {
	Kind Kind
	Msg  string
	Pos  int // Rune offset for syntax errors, -1 when unknown
}

func (e *Error) Error() string {
	if e.Kind == KindSyntax && e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d", e.Msg, e.Pos)
	}
	return e.Msg
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Pos: -1}
}

// Syntax returns a syntax error at rune offset pos.
func Syntax(pos int, format string, args ...any) *Error {
	e := newf(KindSyntax, format, args...)
	e.Pos = pos
	return e
}

// Domain returns a math domain error.
func Domain(format string, args ...any) *Error { return newf(KindDomain, format, args...) }

// Name returns an unknown-name error.
func Name(name string) *Error { return newf(KindName, "name %q is not defined", name) }

// ZeroDivision returns a division-by-zero error.
func ZeroDivision(format string, args ...any) *Error {
	return newf(KindZeroDivision, format, args...)
}

// Overflow returns a result-too-large error.
func Overflow(format string, args ...any) *Error { return newf(KindOverflow, format, args...) }

// Arity returns a wrong-argument-count error.
func Arity(name string, want string, got int) *Error {
	return newf(KindArity, "%s() takes %s argument(s) (%d given)", name, want, got)
}
