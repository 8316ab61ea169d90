// Package value implements the calculator's numeric tower: exact integers
// backed by math/big and IEEE-754 doubles. Integer operands stay exact until
// an operation (true division, a transcendental function, a float operand)
// forces a float result.
package value

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"nickandperla.net/calc/internal/errs"
)

// MaxDigits bounds the decimal size of integer results.
const MaxDigits = 4300

// maxBits is a cheap upper bound used before building huge integers.
const maxBits = MaxDigits*3322/1000 + 64

// Value is an integer or a float. The zero Value is the integer 0.
type Value struct {
	i     *big.Int
	f     float64
	float bool
}

// Int returns an integer Value.
func Int(n int64) Value { return Value{i: big.NewInt(n)} }

// BigInt returns an integer Value holding a copy of n.
func BigInt(n *big.Int) Value { return Value{i: new(big.Int).Set(n)} }

// Float returns a float Value.
func Float(f float64) Value { return Value{f: f, float: true} }

// IsFloat reports whether v is a float.
func (v Value) IsFloat() bool { return v.float }

// IsInt reports whether v is an integer.
func (v Value) IsInt() bool { return !v.float }

// Big returns the integer of v. It must only be called when IsInt is true.
func (v Value) Big() *big.Int {
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// Float64 converts v to a float, failing when an integer is out of range.
func (v Value) Float64() (float64, error) {
	if v.float {
		return v.f, nil
	}
	f, _ := new(big.Float).SetInt(v.Big()).Float64()
	if math.IsInf(f, 0) {
		return 0, errs.Overflow("integer too large to convert to float")
	}
	return f, nil
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	if !v.float {
		return v.Big().Sign()
	}
	switch {
	case v.f < 0:
		return -1
	case v.f > 0:
		return 1
	}
	return 0
}

// IsIntegral reports whether v has no fractional part.
func (v Value) IsIntegral() bool {
	if !v.float {
		return true
	}
	return !math.IsInf(v.f, 0) && v.f == math.Trunc(v.f)
}

// AsInt returns v as an integer if it is an integer or an integral float.
func (v Value) AsInt() (*big.Int, bool) {
	if !v.float {
		return v.Big(), true
	}
	if math.IsNaN(v.f) || !v.IsIntegral() {
		return nil, false
	}
	n, _ := big.NewFloat(v.f).Int(nil)
	return n, true
}

// Check rejects results that cannot be displayed: NaN, infinities and
// integers beyond MaxDigits.
func (v Value) Check() (Value, error) {
	if v.float {
		if math.IsNaN(v.f) {
			return Value{}, errs.Domain("result is not a number")
		}
		if math.IsInf(v.f, 0) {
			return Value{}, errs.Overflow("result too large")
		}
		return v, nil
	}
	n := v.Big()
	if n.BitLen() > 14000 && len(new(big.Int).Abs(n).String()) > MaxDigits {
		return Value{}, errs.Overflow("integer has more than %d digits", MaxDigits)
	}
	return v, nil
}

// Parse converts a numeric literal. Integer literals (decimal or with a
// 0x/0o/0b prefix) become integers; anything with a point or exponent
// becomes a float. Underscores may separate digits.
func Parse(text string) (Value, error) {
	if len(text) > 2 && text[0] == '0' && strings.ContainsRune("xXoObB", rune(text[1])) {
		return parsePrefixed(text)
	}
	if !underscoresOK(text, isDigit) {
		return Value{}, errs.Syntax(-1, "invalid number %q", text)
	}
	clean := strings.ReplaceAll(text, "_", "")
	if strings.ContainsAny(clean, ".eE") {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, errs.Syntax(-1, "invalid number %q", text)
		}
		return Float(f), nil
	}
	if len(clean) > 1 && clean[0] == '0' && strings.Trim(clean, "0") != "" {
		return Value{}, errs.Syntax(-1, "leading zeros in decimal integer %q", text)
	}
	n, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return Value{}, errs.Syntax(-1, "invalid number %q", text)
	}
	return Value{i: n}, nil
}

func parsePrefixed(text string) (Value, error) {
	base := 16
	switch text[1] {
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	}
	digits := text[2:]
	if strings.HasPrefix(digits, "_") {
		digits = digits[1:]
	}
	if digits == "" || !underscoresOK(digits, isHexDigit) {
		return Value{}, errs.Syntax(-1, "invalid number %q", text)
	}
	n, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), base)
	if !ok {
		return Value{}, errs.Syntax(-1, "invalid number %q", text)
	}
	return Value{i: n}, nil
}

// underscoresOK reports whether every underscore sits between two digits.
func underscoresOK(s string, digit func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !digit(s[i-1]) || !digit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
