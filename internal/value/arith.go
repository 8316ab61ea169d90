package value

import (
	"math"
	"math/big"

	"nickandperla.net/calc/internal/errs"
)

// floats converts both operands, used whenever either side is a float.
func floats(x, y Value) (float64, float64, error) {
	a, err := x.Float64()
	if err != nil {
		return 0, 0, err
	}
	b, err := y.Float64()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func checkFloat(f float64) (Value, error) {
	if math.IsInf(f, 0) {
		return Value{}, errs.Overflow("numerical result out of range")
	}
	return Float(f), nil
}

// Neg returns -x.
func Neg(x Value) Value {
	if x.float {
		return Float(-x.f)
	}
	return Value{i: new(big.Int).Neg(x.Big())}
}

// Add returns x + y.
func Add(x, y Value) (Value, error) {
	if !x.float && !y.float {
		return Value{i: new(big.Int).Add(x.Big(), y.Big())}, nil
	}
	a, b, err := floats(x, y)
	if err != nil {
		return Value{}, err
	}
	return Float(a + b), nil
}

// Sub returns x - y.
func Sub(x, y Value) (Value, error) {
	return Add(x, Neg(y))
}

// Mul returns x * y.
func Mul(x, y Value) (Value, error) {
	if !x.float && !y.float {
		if x.Big().BitLen()+y.Big().BitLen() > maxBits {
			return Value{}, errs.Overflow("integer result too large")
		}
		return Value{i: new(big.Int).Mul(x.Big(), y.Big())}, nil
	}
	a, b, err := floats(x, y)
	if err != nil {
		return Value{}, err
	}
	return Float(a * b), nil
}

// Div returns x / y. The result is always a float; integer operands are
// divided exactly and rounded once.
func Div(x, y Value) (Value, error) {
	if y.Sign() == 0 {
		return Value{}, errs.ZeroDivision("division by zero")
	}
	if !x.float && !y.float {
		f, _ := new(big.Rat).SetFrac(x.Big(), y.Big()).Float64()
		return checkFloat(f)
	}
	a, b, err := floats(x, y)
	if err != nil {
		return Value{}, err
	}
	return Float(a / b), nil
}

// FloorDiv returns x // y, rounding toward negative infinity.
func FloorDiv(x, y Value) (Value, error) {
	if y.Sign() == 0 {
		return Value{}, errs.ZeroDivision("integer division or modulo by zero")
	}
	if !x.float && !y.float {
		q, _ := floorDivMod(x.Big(), y.Big())
		return Value{i: q}, nil
	}
	a, b, err := floats(x, y)
	if err != nil {
		return Value{}, err
	}
	q, _ := floatDivMod(a, b)
	return Float(q), nil
}

// Mod returns x % y with the sign of y.
func Mod(x, y Value) (Value, error) {
	if y.Sign() == 0 {
		return Value{}, errs.ZeroDivision("integer division or modulo by zero")
	}
	if !x.float && !y.float {
		_, m := floorDivMod(x.Big(), y.Big())
		return Value{i: m}, nil
	}
	a, b, err := floats(x, y)
	if err != nil {
		return Value{}, err
	}
	_, m := floatDivMod(a, b)
	return Float(m), nil
}

// floorDivMod is integer division with the remainder taking the divisor's sign.
func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, m := new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		m.Add(m, b)
	}
	return q, m
}

// floatDivMod mirrors integer floored division for doubles.
func floatDivMod(a, b float64) (float64, float64) {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
			div -= 1
		}
	} else {
		mod = math.Copysign(0, b)
	}
	var floor float64
	if div != 0 {
		floor = math.Floor(div)
		if div-floor > 0.5 {
			floor += 1
		}
	} else {
		floor = math.Copysign(0, a/b)
	}
	return floor, mod
}

// Pow returns x raised to y. Two integers with a non-negative exponent give
// an exact integer; everything else is computed in floating point. Negative
// bases with fractional exponents have no real result and fail.
func Pow(x, y Value) (Value, error) {
	if !x.float && !y.float && y.Sign() >= 0 {
		return intPow(x.Big(), y.Big())
	}
	a, b, err := floats(x, y)
	if err != nil {
		return Value{}, err
	}
	return FloatPow(a, b)
}

// FloatPow is real exponentiation with the calculator's error rules.
func FloatPow(a, b float64) (Value, error) {
	if a == 0 && b < 0 {
		return Value{}, errs.ZeroDivision("0.0 cannot be raised to a negative power")
	}
	if a < 0 && b != math.Trunc(b) && !math.IsInf(b, 0) {
		return Value{}, errs.Domain("negative number cannot be raised to a fractional power")
	}
	r := math.Pow(a, b)
	if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return Value{}, errs.Overflow("numerical result out of range")
	}
	return Float(r), nil
}

func intPow(base, exp *big.Int) (Value, error) {
	switch {
	case base.Sign() == 0 || exp.Sign() == 0:
		return Value{i: new(big.Int).Exp(base, exp, nil)}, nil
	case base.CmpAbs(big.NewInt(1)) == 0:
		return Value{i: new(big.Int).Exp(base, exp, nil)}, nil
	}
	if !exp.IsInt64() || exp.Int64() > maxBits || exp.Int64()*int64(base.BitLen()-1) > maxBits {
		return Value{}, errs.Overflow("integer result too large")
	}
	return Value{i: new(big.Int).Exp(base, exp, nil)}, nil
}

// PowMod returns base**exp mod m for integers. A negative exponent uses the
// modular inverse of base.
func PowMod(base, exp, m Value) (Value, error) {
	if base.float || exp.float || m.float {
		return Value{}, errs.Domain("pow() 3rd argument not allowed unless all arguments are integers")
	}
	mod := m.Big()
	if mod.Sign() == 0 {
		return Value{}, errs.Domain("pow() 3rd argument cannot be 0")
	}
	abs := new(big.Int).Abs(mod)
	b := new(big.Int).Mod(base.Big(), abs)
	e := exp.Big()
	if e.Sign() < 0 {
		inv := new(big.Int).ModInverse(b, abs)
		if inv == nil {
			return Value{}, errs.Domain("base is not invertible for the given modulus")
		}
		b = inv
		e = new(big.Int).Neg(e)
	}
	r := new(big.Int).Exp(b, e, abs)
	_, r = floorDivMod(r, mod)
	return Value{i: r}, nil
}
