// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines calculator token types and glyph constants.
package token

// Token represents a calculator token type.
type Token int

const (
	EOF Token = iota
	ILLEGAL

	NUMBER // 42, 3.5, .5, 1e-3, 1_000, 0x1F
	IDENT  // sqrt, pi, root

	// Operators
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // % (floored modulo)
	STARSTAR   // ** (host exponent)
	SLASHSLASH // // (floored division)
	CARET      // ^ (sugar for pow)
	BANG       // ! (sugar for factorial)

	LPAREN // (
	RPAREN // )
	COMMA  // ,
)

// Alternate glyphs folded by the scanner.
const (
	RuneTimes  = '×' // U+00D7
	RuneDivide = '÷' // U+00F7
	RuneMinus  = '−' // U+2212
)

// Normalize maps an alternate operator glyph to its ASCII form.
// Other runes are returned unchanged.
func Normalize(r rune) rune {
	switch r {
	case RuneTimes:
		return '*'
	case RuneDivide:
		return '/'
	case RuneMinus:
		return '-'
	}
	return r
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case NUMBER:
		return "NUMBER"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case STARSTAR:
		return "**"
	case SLASHSLASH:
		return "//"
	case CARET:
		return "^"
	case BANG:
		return "!"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case COMMA:
		return ","
	}
	return "UNKNOWN"
}

// IsAdditive returns true for the lowest-precedence binary operators.
func (t Token) IsAdditive() bool {
	return t == PLUS || t == MINUS
}

// IsMultiplicative returns true for * / % and //.
func (t Token) IsMultiplicative() bool {
	switch t {
	case STAR, SLASH, PERCENT, SLASHSLASH:
		return true
	}
	return false
}

// IsSign returns true if the token can be a unary prefix.
func (t Token) IsSign() bool {
	return t == PLUS || t == MINUS
}
