package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nickandperla.net/calc/internal/token"
)

func TestScanOperators(t *testing.T) {
	items, err := NewFromString("1+2-3*4/5%6**7//8^9!(,)").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []token.Token
	for _, it := range items {
		got = append(got, it.Token)
	}
	want := []token.Token{
		token.NUMBER, token.PLUS, token.NUMBER, token.MINUS, token.NUMBER,
		token.STAR, token.NUMBER, token.SLASH, token.NUMBER, token.PERCENT,
		token.NUMBER, token.STARSTAR, token.NUMBER, token.SLASHSLASH,
		token.NUMBER, token.CARET, token.NUMBER, token.BANG,
		token.LPAREN, token.COMMA, token.RPAREN,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPositionsAndSpacing(t *testing.T) {
	items, err := NewFromString("3root(27) + sqrt (x)").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Item{
		{Token: token.NUMBER, Value: "3", Pos: 0},
		{Token: token.IDENT, Value: "root", Pos: 1},
		{Token: token.LPAREN, Value: "(", Pos: 5},
		{Token: token.NUMBER, Value: "27", Pos: 6},
		{Token: token.RPAREN, Value: ")", Pos: 8},
		{Token: token.PLUS, Value: "+", Pos: 10, Spaced: true},
		{Token: token.IDENT, Value: "sqrt", Pos: 12, Spaced: true},
		{Token: token.LPAREN, Value: "(", Pos: 17, Spaced: true},
		{Token: token.IDENT, Value: "x", Pos: 18},
		{Token: token.RPAREN, Value: ")", Pos: 19},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"42", []string{"42"}},
		{"3.25", []string{"3.25"}},
		{".5", []string{".5"}},
		{"5.", []string{"5."}},
		{"1e-3", []string{"1e-3"}},
		{"2E+10", []string{"2E+10"}},
		{"1e3*2", []string{"1e3", "*", "2"}},
		{"2.5e-4", []string{"2.5e-4"}},
		{"1e2root", []string{"1e2", "root"}},
		{"1_000", []string{"1_000"}},
		{"0x1F", []string{"0x1F"}},
		{"0b1010", []string{"0b1010"}},
		{"0o17", []string{"0o17"}},
		// No digit after the marker: e is a separate identifier.
		{"2e", []string{"2", "e"}},
		{"2ex", []string{"2", "ex"}},
		{"3e+", []string{"3", "e", "+"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			items, err := NewFromString(tt.input).All()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, it := range items {
				got = append(got, it.Value)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanAlternateGlyphs(t *testing.T) {
	items, err := NewFromString("6×2÷3−1").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{
		token.NUMBER, token.STAR, token.NUMBER, token.SLASH,
		token.NUMBER, token.MINUS, token.NUMBER,
	}
	for i, it := range items {
		if it.Token != want[i] {
			t.Errorf("item %d: expected %s, got %s", i, want[i], it.Token)
		}
	}
	if items[1].Value != "*" {
		t.Errorf("expected normalized value '*', got %q", items[1].Value)
	}
}

func TestScanIllegal(t *testing.T) {
	tests := []string{"2 & 3", "a.b", "$", "1;2"}
	for _, input := range tests {
		items, err := NewFromString(input).All()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, it := range items {
			if it.Token == token.ILLEGAL {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: expected an ILLEGAL item", input)
		}
	}
}

func TestNULIsIllegal(t *testing.T) {
	items, err := NewFromString("1\x00junk").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{token.NUMBER, token.ILLEGAL, token.IDENT}
	var got []token.Token
	for _, it := range items {
		got = append(got, it.Token)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestPosAtEOF(t *testing.T) {
	s := NewFromString("2×3 ")
	if _, err := s.All(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Pos() != 4 {
		t.Errorf("expected offset 4, got %d", s.Pos())
	}
}

func TestEOFRepeats(t *testing.T) {
	s := NewFromString("")
	for i := 0; i < 3; i++ {
		it, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it.Token != token.EOF {
			t.Fatalf("expected EOF, got %s", it.Token)
		}
	}
}
