package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		rewritten string
		want      string
	}{
		{"precedence", "3+4*2", "3+4*2", "11"},
		{"caret", "2^10", "pow(2,10)", "1024"},
		{"root prefix", "3root(27)", "root(3,27)", "3"},
		{"factorial", "5!", "factorial(5)", "120"},
		{"trig", "sin(0)+cos(0)", "sin(0)+cos(0)", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, err := Rewrite(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.rewritten, rw)

			got, err := Evaluate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDivisionByZeroScenario(t *testing.T) {
	got, err := Evaluate("1/0")
	require.Error(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrZeroDivision)

	s, err := New()
	require.NoError(t, err)
	defer s.Close()
	s.SetBuffer("1/0")
	require.NoError(t, s.Press(TokenEquals))
	assert.Equal(t, ErrorMarker, s.Display())
	assert.Empty(t, s.Buffer())
}

func TestResultRoundTrips(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1/3", "0.333333333333"},
		{"2^0.5", "1.414213562373"},
		{"-7/4", "-1.75"},
		{"2^70", "1180591620717411303424"},
		{"1e3", "1000"},
		{"1e-7*3", "3e-07"},
		{"pi*1e20", "314159265358979334144"},
		{"-3root(-8)", "-0.5"},
		{"2+3root(8)", "1.51571656651"},
	}
	for _, tt := range tests {
		first, err := Evaluate(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, first, tt.input)
		again, err := Evaluate(first)
		require.NoError(t, err, "result %q of %q", first, tt.input)
		assert.Equal(t, first, again, tt.input)
	}
}

func TestExponentLiterals(t *testing.T) {
	rewritten, err := Rewrite("1e308*10")
	require.NoError(t, err)
	assert.Equal(t, "1e308*10", rewritten)

	_, err = Evaluate("1e308*10")
	assert.ErrorIs(t, err, ErrOverflow)

	rewritten, err = Rewrite("1e2root(100)")
	require.NoError(t, err)
	assert.Equal(t, "root(1e2,100)", rewritten)
}

func TestNULIsRejected(t *testing.T) {
	_, err := Evaluate("1\x00junk")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestRewriteIsIdempotent(t *testing.T) {
	for _, input := range []string{"(2^3)^2", "(sin(x))^2", "(4root(16))!", "(1+2)^(2!)", "-2^(-(1)!)", "2^3^2"} {
		once, err := Rewrite(input)
		if err != nil {
			// Syntax errors are stable too.
			_, err2 := Rewrite(input)
			assert.ErrorIs(t, err2, ErrSyntax, input)
			continue
		}
		twice, err := Rewrite(once)
		require.NoError(t, err, once)
		assert.Equal(t, once, twice)
		assert.NotContains(t, twice, "^")
		assert.NotContains(t, twice, "!")
	}
}

func TestErrorKinds(t *testing.T) {
	tests := map[string]error{
		"2^":         ErrSyntax,
		"sqrt(-4)":   ErrDomain,
		"open(1)":    ErrName,
		"5//0":       ErrZeroDivision,
		"9**9999":    ErrOverflow,
		"root(1)":    ErrArity,
		"3 root(27)": ErrSyntax,
	}
	for input, want := range tests {
		_, err := Evaluate(input)
		assert.ErrorIs(t, err, want, input)

		var e *Error
		if assert.True(t, errors.As(err, &e), input) {
			assert.Equal(t, KindOf(want), e.Kind, input)
		}
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("1/0"))
	assert.ErrorIs(t, Validate("x+1"), ErrName)
	assert.ErrorIs(t, Validate("1+"), ErrSyntax)
}

func TestAppendToken(t *testing.T) {
	tests := []struct {
		buffer, token, want string
	}{
		{"", "7", "7"},
		{"12", "+", "12+"},
		{"12", "C", ""},
		{"12", "⌫", "1"},
		{"12", "BACKSPACE", "1"},
		{"", "⌫", ""},
		{"2×", "⌫", "2"},
		{"", "sqrt", "sqrt("},
		{"2*", "sin", "2*sin("},
		{"3", "root", "3root("},
		{"5", "factorial", "5!"},
		{"2", "^", "2^"},
		{"2*", "pi", "2*pi"},
		{"", "e", "e"},
		{"1", "=", "1"},
		{"1", "ANS", "1"},
		{"1", "OFF", "1"},
		{"1", "MODE", "1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AppendToken(tt.buffer, tt.token), "%q + %q", tt.buffer, tt.token)
	}
}

func TestFunctionsAndConstants(t *testing.T) {
	fns := Functions()
	assert.Contains(t, fns, "root")
	assert.Contains(t, fns, "factorial")
	assert.NotContains(t, fns, "pi")
	assert.ElementsMatch(t, []string{"pi", "e"}, Constants())

	// Callers get a copy.
	fns[0] = "exec"
	assert.NotEqual(t, "exec", Functions()[0])
}
