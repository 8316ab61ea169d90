package format

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"nickandperla.net/calc/internal/value"
)

func TestDisplay(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{"int", value.Int(1024), "1024"},
		{"negative int", value.Int(-7), "-7"},
		{"big int", value.BigInt(huge), "123456789012345678901234567890"},
		{"integral float", value.Float(3), "3"},
		{"negative zero", value.Float(math.Copysign(0, -1)), "0"},
		{"large integral float", value.Float(1e20), "100000000000000000000"},
		{"simple fraction", value.Float(0.5), "0.5"},
		{"representation error", value.Float(0.1 + 0.2), "0.3"},
		{"rounds to integer", value.Float(2.0000000000000004), "2"},
		{"twelve places", value.Float(1.0 / 3), "0.333333333333"},
		{"negative fraction", value.Float(-2.75), "-2.75"},
		{"small exponent form", value.Float(0.000015), "1.5e-05"},
		{"fixed lower bound", value.Float(0.0001), "0.0001"},
		{"below resolution", value.Float(1e-13), "0"},
		{"pi", value.Float(math.Pi), "3.14159265359"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.in))
		})
	}
}

func TestDisplayParsesBack(t *testing.T) {
	for _, f := range []float64{0.1, 1.0 / 7, 12345.678, -0.000123, 6.02e-9} {
		s := Display(value.Float(f))
		v, err := value.Parse(trimSign(s))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}
		if Display(v) != trimSign(s) {
			t.Errorf("expected %q to display unchanged, got %q", trimSign(s), Display(v))
		}
	}
}

func trimSign(s string) string {
	if len(s) > 0 && s[0] == '-' {
		return s[1:]
	}
	return s
}
