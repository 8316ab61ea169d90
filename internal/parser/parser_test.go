package parser

import (
	"errors"
	"testing"

	"nickandperla.net/calc/internal/errs"
)

func TestCanonicalForm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3+4*2", "3+4*2"},
		{"3 + 4 * 2", "3+4*2"},
		{"2^10", "pow(2,10)"},
		{"3root(27)", "root(3,27)"},
		{"5!", "factorial(5)"},
		{"sin(0)+cos(0)", "sin(0)+cos(0)"},

		{"(1+2)^2", "pow((1+2),2)"},
		{"2^(1+2)", "pow(2,(1+2))"},
		{"pi^2", "pow(pi,2)"},
		{"-2^2", "-pow(2,2)"},
		{"2^3*4^2", "pow(2,3)*pow(4,2)"},
		{"2**3!", "2**factorial(3)"},

		// Sugar results need parentheses to be reused.
		{"(2^3)^2", "pow((pow(2,3)),2)"},
		{"(3!)!", "factorial((factorial(3)))"},
		{"(sin(x))^2", "pow((sin(x)),2)"},
		{"(2+1)!", "factorial((2+1))"},
		{"-3!", "-factorial(3)"},

		// The root prefix is the whole unspaced run of numbers and signs.
		{"2+3root(8)", "root(2+3,8)"},
		{"10-2root(16)", "root(10-2,16)"},
		{"-3root(-8)", "root(-3,-8)"},
		{"2*3root(8)", "2*root(3,8)"},
		{"2 + 3root(8)", "2+root(3,8)"},
		{"2.5root(8)", "root(2.5,8)"},
		{"1e2root(100)", "root(1e2,100)"},
		{"2root(3root(27))", "root(2,root(3,27))"},
		{"root(3,27)", "root(3,27)"},
		{"2*root(3,8)", "2*root(3,8)"},
		{"(3root(27))^2", "pow((root(3,27)),2)"},

		{"2**-1", "2**-1"},
		{"2**3**2", "2**3**2"},
		{"7//2%3", "7//2%3"},
		{"6×2÷3−1", "6*2/3-1"},
		{"round(2.5,)", "round(2.5)"},
		{"pow(2, 3, 5)", "pow(2,3,5)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := e.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCanonicalFormIsIdempotent(t *testing.T) {
	inputs := []string{
		"(2^3)^2", "5!", "3root(27)", "(sin(x))^2+3!", "-(2^(-1))", "2^(3!)",
		"(1+2)^((3-1)!)", "(4root(16))^2", "2+3root(8)", "-3root(-8)",
	}
	for _, input := range inputs {
		first, err := Parse(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("%q: reparse of %q failed: %v", input, first.String(), err)
		}
		if first.String() != second.String() {
			t.Errorf("%q: expected %q after reparse, got %q", input, first.String(), second.String())
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"^2",
		"2^",
		"!",
		"2^-1",
		"(1+2",
		"1+2)",
		"3 root(27)",
		"3root (27)",
		"3root",
		"3-root(8)",
		"2 +3root(8)",
		"0x10root(8)",
		"3root(8",
		"2(3)",
		"sin(1 2)",
		"1 ? 2",
		"*3",
		"2e",
		"1\x00junk",

		// Calls and sugar results are not operands of ^ or !.
		"2^3^2",
		"sin(0)^2",
		"2^sqrt(4)",
		"3!!",
		"2^3!",
		"3!^2",
		"sqrt(4)!",
		"3root(27)^2",
		"2^3root(8)",
	}
	for _, input := range tests {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("%q: expected syntax error", input)
			continue
		}
		if !errors.Is(err, errs.ErrSyntax) {
			t.Errorf("%q: expected syntax error, got %v", input, err)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("1 + )")
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errs.Error, got %T", err)
	}
	if e.Pos != 4 {
		t.Errorf("expected offset 4, got %d", e.Pos)
	}
}
