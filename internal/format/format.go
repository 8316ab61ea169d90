// Package format renders evaluation results for display.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"nickandperla.net/calc/internal/value"
)

// Places is the number of decimal places kept for non-integral results.
const Places = 12

// Display renders v. Integers print as digits; integral floats print as
// integers; other floats are rounded to Places decimal places and printed in
// their shortest round-trip form. The output parses back to the same value.
func Display(v value.Value) string {
	if v.IsInt() {
		return v.Big().String()
	}
	f, _ := v.Float64()
	if v.IsIntegral() {
		return integral(f)
	}
	r := value.RoundFloat(f, Places)
	if r == math.Trunc(r) {
		return integral(r)
	}
	return shortest(r)
}

func integral(f float64) string {
	n, _ := big.NewFloat(f).Int(nil)
	return n.String()
}

// shortest prints fixed notation for 1e-4 <= |f| < 1e16 and exponent
// notation otherwise.
func shortest(f float64) string {
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return e
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
