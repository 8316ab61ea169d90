// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming Unicode-aware lexer for calculator input.
package scanner

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/calc/internal/token"
)

// Scanner tokenizes calculator input rune-by-rune.
type Scanner struct {
	reader  *bufio.Reader
	buf     strings.Builder
	pending []rune // pushed-back runes, last in first out
	pos     int    // Runes consumed so far (0-based)
}

// eof is returned by read at the end of input. NUL is an ordinary
// (illegal) character.
const eof rune = -1

// Item represents a scanned token with its value.
type Item struct {
	Token  token.Token
	Value  string
	Pos    int  // Rune offset where this token started
	Spaced bool // Whitespace preceded the token
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Pos returns the number of runes consumed so far. After Next returns EOF it
// is the length of the input.
func (s *Scanner) Pos() int {
	return s.pos
}

// read returns the next rune with alternate glyphs already normalized.
// It returns eof at the end of input.
func (s *Scanner) read() (rune, error) {
	if n := len(s.pending); n > 0 {
		r := s.pending[n-1]
		s.pending = s.pending[:n-1]
		s.pos++
		return r, nil
	}
	r, _, err := s.reader.ReadRune()
	if err == io.EOF {
		return eof, nil
	}
	if err != nil {
		return eof, err
	}
	s.pos++
	return token.Normalize(r), nil
}

// unread pushes r back so the next read returns it.
func (s *Scanner) unread(r rune) {
	if r == eof {
		return
	}
	s.pending = append(s.pending, r)
	s.pos--
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	spaced, err := s.skipWhitespace()
	if err != nil {
		return nil, err
	}

	start := s.pos
	r, err := s.read()
	if err != nil {
		return nil, err
	}
	item := &Item{Pos: start, Spaced: spaced}

	switch {
	case r == eof:
		item.Token = token.EOF
		return item, nil
	case isDigit(r):
		s.unread(r)
		item.Token = token.NUMBER
		item.Value, err = s.scanNumber()
		return item, err
	case r == '.':
		next, err := s.read()
		if err != nil {
			return nil, err
		}
		s.unread(next)
		if !isDigit(next) {
			item.Token = token.ILLEGAL
			item.Value = "."
			return item, nil
		}
		s.unread(r)
		item.Token = token.NUMBER
		item.Value, err = s.scanNumber()
		return item, err
	case isIdentStart(r):
		s.unread(r)
		item.Token = token.IDENT
		item.Value, err = s.scanIdent()
		return item, err
	}

	item.Value = string(r)
	switch r {
	case '+':
		item.Token = token.PLUS
	case '-':
		item.Token = token.MINUS
	case '*':
		item.Token = token.STAR
		if ok, err := s.accept('*'); err != nil {
			return nil, err
		} else if ok {
			item.Token, item.Value = token.STARSTAR, "**"
		}
	case '/':
		item.Token = token.SLASH
		if ok, err := s.accept('/'); err != nil {
			return nil, err
		} else if ok {
			item.Token, item.Value = token.SLASHSLASH, "//"
		}
	case '%':
		item.Token = token.PERCENT
	case '^':
		item.Token = token.CARET
	case '!':
		item.Token = token.BANG
	case '(':
		item.Token = token.LPAREN
	case ')':
		item.Token = token.RPAREN
	case ',':
		item.Token = token.COMMA
	default:
		item.Token = token.ILLEGAL
	}
	return item, nil
}

// All scans the remaining input into a slice, excluding the final EOF.
func (s *Scanner) All() ([]Item, error) {
	var items []Item
	for {
		item, err := s.Next()
		if err != nil {
			return nil, err
		}
		if item.Token == token.EOF {
			return items, nil
		}
		items = append(items, *item)
	}
}

// accept consumes the next rune if it equals want.
func (s *Scanner) accept(want rune) (bool, error) {
	r, err := s.read()
	if err != nil {
		return false, err
	}
	if r == want {
		return true, nil
	}
	s.unread(r)
	return false, nil
}

// skipWhitespace consumes whitespace and reports whether any was seen.
func (s *Scanner) skipWhitespace() (bool, error) {
	seen := false
	for {
		r, err := s.read()
		if err != nil {
			return seen, err
		}
		if r == eof || !unicode.IsSpace(r) {
			s.unread(r)
			return seen, nil
		}
		seen = true
	}
}

// scanIdent reads letters, digits and underscores.
func (s *Scanner) scanIdent() (string, error) {
	s.buf.Reset()
	for {
		r, err := s.read()
		if err != nil {
			return "", err
		}
		if r == eof || !isIdentChar(r) {
			s.unread(r)
			return s.buf.String(), nil
		}
		s.buf.WriteRune(r)
	}
}

// scanNumber reads a numeric literal. The text is validated when the
// parser converts it, so malformed digit groups still come back as one item.
func (s *Scanner) scanNumber() (string, error) {
	s.buf.Reset()

	first, err := s.read()
	if err != nil {
		return "", err
	}
	s.buf.WriteRune(first)

	if first == '0' {
		r, err := s.read()
		if err != nil {
			return "", err
		}
		switch r {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			s.buf.WriteRune(r)
			err = s.scanWhile(func(r rune) bool { return isHexDigit(r) || r == '_' })
			return s.buf.String(), err
		}
		s.unread(r)
	}

	if first != '.' {
		if err := s.scanWhile(isDecimalChar); err != nil {
			return "", err
		}
		if ok, err := s.accept('.'); err != nil {
			return "", err
		} else if !ok {
			err = s.scanExponent()
			return s.buf.String(), err
		}
		s.buf.WriteRune('.')
	}
	if err := s.scanWhile(isDecimalChar); err != nil {
		return "", err
	}
	err = s.scanExponent()
	return s.buf.String(), err
}

// scanExponent consumes e[+-]digits when a digit follows the marker.
// Otherwise nothing is consumed and the marker is left for the next token.
func (s *Scanner) scanExponent() error {
	e, err := s.read()
	if err != nil {
		return err
	}
	if e != 'e' && e != 'E' {
		s.unread(e)
		return nil
	}
	sign, err := s.read()
	if err != nil {
		return err
	}
	digit := sign
	if sign == '+' || sign == '-' {
		if digit, err = s.read(); err != nil {
			return err
		}
	}
	if !isDigit(digit) {
		s.unread(digit)
		if digit != sign {
			s.unread(sign)
		}
		s.unread(e)
		return nil
	}
	s.buf.WriteRune(e)
	if digit != sign {
		s.buf.WriteRune(sign)
	}
	s.buf.WriteRune(digit)
	return s.scanWhile(isDecimalChar)
}

func (s *Scanner) scanWhile(ok func(rune) bool) error {
	for {
		r, err := s.read()
		if err != nil {
			return err
		}
		if r == eof || !ok(r) {
			s.unread(r)
			return nil
		}
		s.buf.WriteRune(r)
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDecimalChar(r rune) bool {
	return isDigit(r) || r == '_'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isIdentStart returns true if the rune can begin an identifier.
func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentChar returns true if the rune is valid in an identifier (letter, digit, underscore).
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
