// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the calculator evaluator.
//
// Evaluation is a walk over an expression tree. Names resolve only through
// the fixed builtin and constant tables; there is no other way to reach code
// or data from an expression.
package eval

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"nickandperla.net/calc/internal/errs"
	"nickandperla.net/calc/internal/expr"
	"nickandperla.net/calc/internal/parser"
	"nickandperla.net/calc/internal/token"
	"nickandperla.net/calc/internal/value"
)

// Evaluator interprets calculator expressions.
type Evaluator struct {
	logger *zap.Logger
	depth  int // Current tree depth
}

// MaxDepth bounds expression nesting so pathological input fails cleanly.
const MaxDepth = 5000

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for call tracing at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval parses and evaluates input.
func (e *Evaluator) Eval(input string) (value.Value, error) {
	return e.EvalReader(strings.NewReader(input))
}

// EvalReader parses and evaluates an expression read from r.
func (e *Evaluator) EvalReader(r io.Reader) (value.Value, error) {
	tree, err := parser.New(r).Parse()
	if err != nil {
		return value.Value{}, err
	}
	return e.EvalExpr(tree)
}

// EvalExpr evaluates a parsed tree. Every name is checked against the
// allow-list before any arithmetic runs.
func (e *Evaluator) EvalExpr(tree expr.Expr) (value.Value, error) {
	if err := Validate(tree); err != nil {
		return value.Value{}, err
	}
	e.depth = 0
	v, err := e.eval(tree)
	if err != nil {
		return value.Value{}, err
	}
	return v.Check()
}

// Validate reports the first name in tree that is not allowed where it
// appears: unknown identifiers, calls of constants and functions used as
// values.
func Validate(tree expr.Expr) error {
	var err error
	expr.Walk(tree, func(n expr.Expr) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case expr.Ident:
			if _, ok := getConstant(n.Name); ok {
				return true
			}
			nameErr := errs.Name(n.Name)
			if getBuiltin(n.Name) != nil {
				nameErr.Msg = fmt.Sprintf("function %s used without arguments", n.Name)
			}
			err = nameErr
		case expr.Call:
			if getBuiltin(n.Name) != nil {
				return true
			}
			nameErr := errs.Name(n.Name)
			if _, ok := getConstant(n.Name); ok {
				nameErr.Msg = fmt.Sprintf("constant %s is not callable", n.Name)
			}
			err = nameErr
		}
		return err == nil
	})
	return err
}

func (e *Evaluator) eval(n expr.Expr) (value.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxDepth {
		return value.Value{}, errs.Overflow("expression nested too deeply")
	}

	switch n := n.(type) {
	case expr.Number:
		return value.Parse(n.Text)

	case expr.Ident:
		v, _ := getConstant(n.Name)
		return v, nil

	case expr.Paren:
		return e.eval(n.X)

	case expr.Unary:
		x, err := e.eval(n.X)
		if err != nil {
			return value.Value{}, err
		}
		if n.Op == token.MINUS {
			return value.Neg(x), nil
		}
		return x, nil

	case expr.Binary:
		x, err := e.eval(n.X)
		if err != nil {
			return value.Value{}, err
		}
		y, err := e.eval(n.Y)
		if err != nil {
			return value.Value{}, err
		}
		return binary(n.Op, x, y)

	case expr.Call:
		args := make([]value.Value, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := e.eval(a)
			if err != nil {
				return value.Value{}, err
			}
			args = append(args, v)
		}
		fn := getBuiltin(n.Name)
		if fn == nil {
			return value.Value{}, errs.Name(n.Name)
		}
		result, err := fn(args)
		if ce := e.logger.Check(zap.DebugLevel, "call"); ce != nil {
			ce.Write(zap.String("name", n.Name), zap.Int("args", len(args)), zap.Error(err))
		}
		return result, err
	}

	return value.Value{}, errs.Syntax(-1, "unsupported expression %T", n)
}

func binary(op token.Token, x, y value.Value) (value.Value, error) {
	switch op {
	case token.PLUS:
		return value.Add(x, y)
	case token.MINUS:
		return value.Sub(x, y)
	case token.STAR:
		return value.Mul(x, y)
	case token.SLASH:
		return value.Div(x, y)
	case token.SLASHSLASH:
		return value.FloorDiv(x, y)
	case token.PERCENT:
		return value.Mod(x, y)
	case token.STARSTAR:
		return value.Pow(x, y)
	}
	return value.Value{}, errs.Syntax(-1, "unsupported operator %s", op)
}
