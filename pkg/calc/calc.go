// Package calc provides the calculator core: a pipeline that turns typed or
// keyed input into a display string, and a Session that carries the buffer,
// last answer and keypad mode between presses.
//
// The pipeline is tokenize, parse (resolving the 3root(x), a^b and n! sugar
// into root, pow and factorial calls), evaluate against a fixed table of
// functions and constants, then format.
package calc

import (
	"errors"
	"strings"
	"unicode/utf8"

	"nickandperla.net/calc/internal/errs"
	"nickandperla.net/calc/internal/eval"
	"nickandperla.net/calc/internal/format"
	"nickandperla.net/calc/internal/parser"
)

// ErrorMarker is the display text after a failed evaluation.
const ErrorMarker = "Error"

// ErrOff is returned by Session.Press for the OFF key.
var ErrOff = errors.New("calculator switched off")

// Kind classifies evaluation errors.
type Kind = errs.Kind

// Error is the error type returned for every failed evaluation.
type Error = errs.Error

// Error classes for errors.Is.
var (
	ErrSyntax       = errs.ErrSyntax
	ErrDomain       = errs.ErrDomain
	ErrName         = errs.ErrName
	ErrZeroDivision = errs.ErrZeroDivision
	ErrOverflow     = errs.ErrOverflow
	ErrArity        = errs.ErrArity
)

// KindOf returns the class of err, or 0 if err did not come from evaluation.
func KindOf(err error) Kind {
	return errs.KindOf(err)
}

// Functions returns the names callable in expressions.
func Functions() []string {
	return append([]string(nil), eval.Functions...)
}

// Constants returns the named constants usable in expressions.
func Constants() []string {
	return append([]string(nil), eval.Constants...)
}

// Rewrite returns buffer in canonical call form, with every piece of sugar
// replaced by its function call: Rewrite("2^10") is "pow(2,10)".
func Rewrite(buffer string) (string, error) {
	tree, err := parser.Parse(buffer)
	if err != nil {
		return "", err
	}
	return tree.String(), nil
}

// Evaluate runs the full pipeline on buffer and returns the display string.
// On error the caller shows ErrorMarker and starts over with an empty buffer.
func Evaluate(buffer string) (string, error) {
	_, result, err := run(eval.New(), buffer)
	return result, err
}

// run parses once and reports the canonical form alongside the result, so
// history can record both.
func run(ev *eval.Evaluator, buffer string) (rewritten, result string, err error) {
	tree, err := parser.Parse(buffer)
	if err != nil {
		return "", "", err
	}
	rewritten = tree.String()
	v, err := ev.EvalExpr(tree)
	if err != nil {
		return rewritten, "", err
	}
	return rewritten, format.Display(v), nil
}

// Validate reports whether buffer parses and uses only known names, without
// evaluating it.
func Validate(buffer string) error {
	tree, err := parser.Parse(buffer)
	if err != nil {
		return err
	}
	return eval.Validate(tree)
}

// funcTokens are keypad labels that open a call when pressed.
var funcTokens = map[string]bool{
	"sqrt": true, "ln": true, "abs": true, "root": true, "pow": true,
	"deg": true, "rad": true, "sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true, "log": true,
}

// Keypad tokens with special meaning.
const (
	TokenClear     = "C"
	TokenBackspace = "⌫"
	TokenEquals    = "="
	TokenAnswer    = "ANS"
	TokenOff       = "OFF"
	TokenMode      = "MODE"
	TokenBack      = "BACK"
	TokenFactorial = "factorial"
)

// AppendToken returns buffer after pressing token. C clears, ⌫ (or
// BACKSPACE) drops the last character, function keys open a call and
// factorial appends "!". Keys that need session state (=, ANS, OFF, MODE,
// BACK) leave the buffer unchanged; Session.Press handles them. Every other
// token is appended as typed.
func AppendToken(buffer, token string) string {
	switch {
	case token == TokenClear:
		return ""
	case token == TokenBackspace || strings.EqualFold(token, "BACKSPACE"):
		_, size := utf8.DecodeLastRuneInString(buffer)
		return buffer[:len(buffer)-size]
	case token == TokenEquals, token == TokenAnswer, token == TokenOff,
		token == TokenMode, token == TokenBack:
		return buffer
	case token == TokenFactorial:
		return buffer + "!"
	case funcTokens[token]:
		return buffer + token + "("
	}
	return buffer + token
}
