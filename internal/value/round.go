package value

import (
	"math"
	"math/big"
	"strconv"

	"nickandperla.net/calc/internal/errs"
)

// RoundFloat rounds f to n decimal places. Exact halfway cases go to the
// even digit; n may be negative to round to tens, hundreds and so on.
func RoundFloat(f float64, n int) float64 {
	switch {
	case math.IsInf(f, 0) || math.IsNaN(f) || f == 0:
		return f
	case n > 330:
		return f
	case n < -308:
		return math.Copysign(0, f)
	case n < 0:
		p := math.Pow(10, float64(-n))
		return math.Copysign(math.RoundToEven(f/p)*p, f)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', n, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// Round rounds x to the nearest integer, halfway cases to even.
func Round(x Value) (Value, error) {
	if !x.float {
		return x, nil
	}
	switch {
	case math.IsNaN(x.f):
		return Value{}, errs.Domain("cannot convert float NaN to integer")
	case math.IsInf(x.f, 0):
		return Value{}, errs.Overflow("cannot convert float infinity to integer")
	}
	n, _ := big.NewFloat(math.RoundToEven(x.f)).Int(nil)
	return Value{i: n}, nil
}

// RoundDigits rounds x to ndigits decimal places, keeping its kind.
func RoundDigits(x Value, ndigits Value) (Value, error) {
	if ndigits.float {
		return Value{}, errs.Domain("round() digits must be an integer")
	}
	nd := ndigits.Big()
	if x.float {
		n := 331
		if nd.IsInt64() && nd.Int64() < 331 {
			n = int(nd.Int64())
		}
		if nd.Sign() < 0 && (!nd.IsInt64() || nd.Int64() < -309) {
			n = -309
		}
		return Float(RoundFloat(x.f, n)), nil
	}
	if nd.Sign() >= 0 {
		return x, nil
	}
	abs := new(big.Int).Abs(x.Big())
	places := new(big.Int).Neg(nd)
	if !places.IsInt64() || places.Int64() > int64(len(abs.String())) {
		return Int(0), nil
	}
	p := new(big.Int).Exp(big.NewInt(10), places, nil)
	q, r := floorDivMod(x.Big(), p)
	twice := new(big.Int).Lsh(r, 1)
	if c := twice.Cmp(p); c > 0 || (c == 0 && q.Bit(0) == 1) {
		q.Add(q, big.NewInt(1))
	}
	return Value{i: q.Mul(q, p)}, nil
}
