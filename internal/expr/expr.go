// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines calculator expression types.
package expr

import (
	"strings"

	"nickandperla.net/calc/internal/token"
)

// Expr is the interface all expression types implement.
type Expr interface {
	// String returns the canonical function-call form of the expression.
	String() string
}

// Number is a numeric literal as written.
type Number struct {
	Text string
}

func (n Number) String() string { return n.Text }

// Ident is a reference to a named constant (pi, e).
type Ident struct {
	Name string
}

func (i Ident) String() string { return i.Name }

// Paren preserves explicit grouping so the canonical form keeps it.
type Paren struct {
	X Expr
}

func (p Paren) String() string { return "(" + p.X.String() + ")" }

// Unary is a sign applied to an operand (-x, +x).
type Unary struct {
	Op token.Token
	X  Expr
}

func (u Unary) String() string { return u.Op.String() + u.X.String() }

// Binary is an infix arithmetic operation.
type Binary struct {
	Op   token.Token
	X, Y Expr
}

func (b Binary) String() string { return b.X.String() + b.Op.String() + b.Y.String() }

// Call is a function application. Caret, factorial and numeric-prefix
// root sugar all produce Call nodes.
type Call struct {
	Name string
	Args []Expr
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// NewCall creates a Call node.
func NewCall(name string, args ...Expr) Call {
	return Call{Name: name, Args: args}
}

// Walk calls fn for e and every sub-expression, depth first.
// Returning false from fn skips the children of that node.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case Paren:
		Walk(n.X, fn)
	case Unary:
		Walk(n.X, fn)
	case Binary:
		Walk(n.X, fn)
		Walk(n.Y, fn)
	case Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	}
}
