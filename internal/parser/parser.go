// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser builds expression trees from calculator input.
//
// Grammar, lowest precedence first:
//
//	expr    = term { ("+" | "-") term } .
//	term    = unary { ("*" | "/" | "%" | "//") unary } .
//	unary   = ("+" | "-") unary | power .
//	power   = caret [ "**" unary ] .
//	caret   = postfix [ "^" primary ] .
//	postfix = primary [ "!" ] .
//	primary = NUMBER | IDENT [ "(" args ")" ] | "(" expr ")" .
//
// The calculator sugar never survives as an operator node: a^b becomes
// pow(a,b), n! becomes factorial(n), and a numeric prefix written directly
// against root( becomes the first argument of root.
//
// The operands of ^ and ! are plain: a number, a name or a parenthesized
// group. A function call or another sugar result needs parentheses, so
// 2^3^2, 3!! and sin(x)^2 are syntax errors while (2^3)^2, (3!)! and
// (sin(x))^2 are not.
package parser

import (
	"io"
	"strings"

	"nickandperla.net/calc/internal/errs"
	"nickandperla.net/calc/internal/expr"
	"nickandperla.net/calc/internal/scanner"
	"nickandperla.net/calc/internal/token"
)

// Parser is a recursive-descent parser over scanned items.
type Parser struct {
	scan  *scanner.Scanner
	items []scanner.Item // Ends with EOF once loaded
	pos   int
}

// New creates a Parser reading from r.
func New(r io.Reader) *Parser {
	return &Parser{scan: scanner.New(r)}
}

// Parse parses a complete expression from s.
func Parse(s string) (expr.Expr, error) {
	return New(strings.NewReader(s)).Parse()
}

// Parse parses one expression and requires the input to end after it.
func (p *Parser) Parse() (expr.Expr, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	if first := p.peek(); first.Token == token.EOF {
		return nil, errs.Syntax(first.Pos, "empty expression")
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if item := p.next(); item.Token != token.EOF {
		return nil, unexpected(item)
	}
	return e, nil
}

// load scans the whole input and resolves root prefixes.
func (p *Parser) load() error {
	items, err := p.scan.All()
	if err != nil {
		return err
	}
	items = append(items, scanner.Item{Token: token.EOF, Pos: p.scan.Pos()})
	p.items = expandRootPrefix(items)
	p.pos = 0
	return nil
}

func (p *Parser) peek() *scanner.Item {
	return &p.items[p.pos]
}

func (p *Parser) next() *scanner.Item {
	item := &p.items[p.pos]
	if p.pos < len(p.items)-1 {
		p.pos++
	}
	return item
}

// expandRootPrefix rewrites <prefix>root( into root(<prefix>, where the
// prefix is the longest unspaced run of numbers and signs ending right at
// root. The run needs at least one number: 2+3root(8) is root(2+3,8) and
// -3root(-8) is root(-3,-8). Whitespace anywhere in root( or between the run
// and root leaves the items alone.
func expandRootPrefix(items []scanner.Item) []scanner.Item {
	out := make([]scanner.Item, 0, len(items)+2)
	for i := 0; i < len(items); i++ {
		item := items[i]
		if !isRootOpen(items, i) {
			out = append(out, item)
			continue
		}

		start := len(out)
		after := item
		for start > 0 && !after.Spaced && isPrefixItem(out[start-1]) {
			start--
			after = out[start]
		}
		hasNumber := false
		for _, it := range out[start:] {
			hasNumber = hasNumber || it.Token == token.NUMBER
		}
		if !hasNumber {
			out = append(out, item)
			continue
		}

		run := append([]scanner.Item(nil), out[start:]...)
		open := items[i+1]
		item.Pos, item.Spaced = run[0].Pos, run[0].Spaced
		out = append(out[:start], item, open)
		out = append(out, run...)
		out = append(out, scanner.Item{Token: token.COMMA, Value: ",", Pos: open.Pos})
		i++
	}
	return out
}

// isRootOpen reports whether items[i] is root directly followed by (.
func isRootOpen(items []scanner.Item, i int) bool {
	item := items[i]
	if item.Token != token.IDENT || item.Value != "root" || item.Spaced || i+1 >= len(items) {
		return false
	}
	open := items[i+1]
	return open.Token == token.LPAREN && !open.Spaced
}

// isPrefixItem reports whether item can be part of a root prefix: a sign or
// a number spelled with digits, '.', exponent markers and signs only.
func isPrefixItem(item scanner.Item) bool {
	switch item.Token {
	case token.PLUS, token.MINUS:
		return true
	case token.NUMBER:
		return strings.Trim(item.Value, "+-0123456789.eE") == ""
	}
	return false
}

func (p *Parser) parseExpr() (expr.Expr, error) {
	x, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		item := p.peek()
		if !item.Token.IsAdditive() {
			return x, nil
		}
		p.next()
		y, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		x = expr.Binary{Op: item.Token, X: x, Y: y}
	}
}

func (p *Parser) parseTerm() (expr.Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		item := p.peek()
		if !item.Token.IsMultiplicative() {
			return x, nil
		}
		p.next()
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = expr.Binary{Op: item.Token, X: x, Y: y}
	}
}

func (p *Parser) parseUnary() (expr.Expr, error) {
	item := p.peek()
	if item.Token.IsSign() {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary{Op: item.Token, X: x}, nil
	}
	return p.parsePower()
}

// parsePower handles the host exponent operator, which is right-associative
// and accepts a signed right operand (2**-1).
func (p *Parser) parsePower() (expr.Expr, error) {
	x, err := p.parseCaret()
	if err != nil {
		return nil, err
	}
	if p.peek().Token != token.STARSTAR {
		return x, nil
	}
	p.next()
	y, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return expr.Binary{Op: token.STARSTAR, X: x, Y: y}, nil
}

// parseCaret turns a^b into pow(a,b).
func (p *Parser) parseCaret() (expr.Expr, error) {
	x, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	caret := p.peek()
	if caret.Token != token.CARET {
		return x, nil
	}
	if !isPlainOperand(x) {
		return nil, errs.Syntax(caret.Pos, "left operand of ^ must be a number, name or parenthesized group")
	}
	p.next()
	right := p.peek()
	y, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !isPlainOperand(y) {
		return nil, errs.Syntax(right.Pos, "right operand of ^ must be a number, name or parenthesized group")
	}
	switch item := p.peek(); item.Token {
	case token.CARET, token.BANG:
		return nil, errs.Syntax(item.Pos, "%s cannot follow a ^ result; use parentheses", item.Value)
	}
	return expr.NewCall("pow", x, y), nil
}

// parsePostfix turns n! into factorial(n).
func (p *Parser) parsePostfix() (expr.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	bang := p.peek()
	if bang.Token != token.BANG {
		return x, nil
	}
	if !isPlainOperand(x) {
		return nil, errs.Syntax(bang.Pos, "operand of ! must be a number, name or parenthesized group")
	}
	p.next()
	if item := p.peek(); item.Token == token.BANG {
		return nil, errs.Syntax(item.Pos, "! cannot follow a ! result; use parentheses")
	}
	return expr.NewCall("factorial", x), nil
}

// isPlainOperand reports whether x may stand next to ^ or ! without
// parentheses.
func isPlainOperand(x expr.Expr) bool {
	switch x.(type) {
	case expr.Number, expr.Ident, expr.Paren:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() (expr.Expr, error) {
	item := p.next()

	switch item.Token {
	case token.NUMBER:
		return expr.Number{Text: item.Value}, nil

	case token.IDENT:
		if p.peek().Token != token.LPAREN {
			return expr.Ident{Name: item.Value}, nil
		}
		p.next()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return expr.NewCall(item.Value, args...), nil

	case token.LPAREN:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr.Paren{X: x}, nil
	}

	return nil, unexpected(item)
}

// parseArgs parses a comma-separated argument list after the opening
// parenthesis and consumes the closing one. A trailing comma is allowed.
func (p *Parser) parseArgs() ([]expr.Expr, error) {
	var args []expr.Expr
	for {
		if p.peek().Token == token.RPAREN {
			p.next()
			return args, nil
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch item := p.next(); item.Token {
		case token.RPAREN:
			return args, nil
		case token.COMMA:
		default:
			return nil, unexpected(item)
		}
	}
}

func (p *Parser) expect(want token.Token) error {
	if item := p.next(); item.Token != want {
		return unexpected(item)
	}
	return nil
}

func unexpected(item *scanner.Item) error {
	switch item.Token {
	case token.EOF:
		return errs.Syntax(item.Pos, "unexpected end of input")
	case token.ILLEGAL:
		return errs.Syntax(item.Pos, "invalid character %q", item.Value)
	}
	return errs.Syntax(item.Pos, "unexpected %q", item.Value)
}
