package eval

import (
	"math"
	"math/big"
	"strconv"

	"nickandperla.net/calc/internal/errs"
	"nickandperla.net/calc/internal/value"
)

// BuiltinFunc is the signature for builtin functions.
type BuiltinFunc func(args []value.Value) (value.Value, error)

// maxFactorial keeps factorial from doing unbounded work; anything larger
// would exceed value.MaxDigits anyway.
const maxFactorial = 5000

// Functions lists the callable builtins.
var Functions = []string{
	"sqrt", "pow", "root", "abs", "round", "log", "ln", "factorial",
	"sin", "cos", "tan", "asin", "acos", "atan", "deg", "rad",
}

// Constants lists the named constants.
var Constants = []string{"pi", "e"}

// getBuiltin returns the builtin function for the given name, or nil if not found.
func getBuiltin(name string) BuiltinFunc {
	switch name {
	case "sqrt":
		return builtinSqrt
	case "pow":
		return builtinPow
	case "root":
		return builtinRoot
	case "abs":
		return builtinAbs
	case "round":
		return builtinRound
	case "log":
		return builtinLog
	case "ln":
		return builtinLn
	case "factorial":
		return builtinFactorial
	case "sin":
		return floatFunc("sin", math.Sin)
	case "cos":
		return floatFunc("cos", math.Cos)
	case "tan":
		return floatFunc("tan", math.Tan)
	case "asin":
		return floatFunc("asin", math.Asin)
	case "acos":
		return floatFunc("acos", math.Acos)
	case "atan":
		return floatFunc("atan", math.Atan)
	case "deg":
		return floatFunc("deg", radians)
	case "rad":
		// Same conversion as deg. Kept as shipped; rad is not its inverse.
		return floatFunc("rad", radians)
	}
	return nil
}

// getConstant returns the named constant.
func getConstant(name string) (value.Value, bool) {
	switch name {
	case "pi":
		return value.Float(math.Pi), true
	case "e":
		return value.Float(math.E), true
	}
	return value.Value{}, false
}

// IsAllowed reports whether name is a builtin function or constant.
func IsAllowed(name string) bool {
	_, ok := getConstant(name)
	return ok || getBuiltin(name) != nil
}

func arity(name string, args []value.Value, min, max int) error {
	if len(args) >= min && len(args) <= max {
		return nil
	}
	want := "exactly " + strconv.Itoa(min)
	if min != max {
		want = "from " + strconv.Itoa(min) + " to " + strconv.Itoa(max)
	}
	return errs.Arity(name, want, len(args))
}

// floatFunc adapts a float64 function. A NaN result from a non-NaN argument
// is a domain error.
func floatFunc(name string, fn func(float64) float64) BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return value.Value{}, err
		}
		x, err := args[0].Float64()
		if err != nil {
			return value.Value{}, err
		}
		r := fn(x)
		if math.IsNaN(r) && !math.IsNaN(x) {
			return value.Value{}, errs.Domain("math domain error in %s()", name)
		}
		return value.Float(r), nil
	}
}

func radians(x float64) float64 {
	pi := math.Pi
	return x * (pi / 180)
}

func builtinSqrt(args []value.Value) (value.Value, error) {
	if err := arity("sqrt", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	x, err := args[0].Float64()
	if err != nil {
		return value.Value{}, err
	}
	if x < 0 {
		return value.Value{}, errs.Domain("sqrt of negative number")
	}
	return value.Float(math.Sqrt(x)), nil
}

func builtinPow(args []value.Value) (value.Value, error) {
	if err := arity("pow", args, 2, 3); err != nil {
		return value.Value{}, err
	}
	if len(args) == 3 {
		return value.PowMod(args[0], args[1], args[2])
	}
	return value.Pow(args[0], args[1])
}

// builtinRoot computes the principal real n-th root. Odd roots of negative
// numbers are negative; the parity test truncates n first.
func builtinRoot(args []value.Value) (value.Value, error) {
	if err := arity("root", args, 2, 2); err != nil {
		return value.Value{}, err
	}
	n, err := args[0].Float64()
	if err != nil {
		return value.Value{}, err
	}
	x, err := args[1].Float64()
	if err != nil {
		return value.Value{}, err
	}
	if n == 0 {
		return value.Value{}, errs.Domain("root: n cannot be 0")
	}
	if x < 0 && math.Mod(math.Abs(math.Trunc(n)), 2) == 1 {
		r, err := value.FloatPow(-x, 1/n)
		if err != nil {
			return value.Value{}, err
		}
		return value.Neg(r), nil
	}
	return value.FloatPow(x, 1/n)
}

func builtinAbs(args []value.Value) (value.Value, error) {
	if err := arity("abs", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	if args[0].Sign() < 0 {
		return value.Neg(args[0]), nil
	}
	if args[0].IsFloat() {
		f, _ := args[0].Float64()
		return value.Float(math.Abs(f)), nil
	}
	return args[0], nil
}

func builtinRound(args []value.Value) (value.Value, error) {
	if err := arity("round", args, 1, 2); err != nil {
		return value.Value{}, err
	}
	if len(args) == 2 {
		return value.RoundDigits(args[0], args[1])
	}
	return value.Round(args[0])
}

// builtinLog is base 10 by default; log(x, b) divides natural logs.
func builtinLog(args []value.Value) (value.Value, error) {
	if err := arity("log", args, 1, 2); err != nil {
		return value.Value{}, err
	}
	num, err := naturalLog(args[0])
	if err != nil {
		return value.Value{}, err
	}
	den := math.Ln10
	if len(args) == 2 {
		if den, err = naturalLog(args[1]); err != nil {
			return value.Value{}, err
		}
	}
	if den == 0 {
		return value.Value{}, errs.ZeroDivision("log base 1")
	}
	return value.Float(num / den), nil
}

func builtinLn(args []value.Value) (value.Value, error) {
	if err := arity("ln", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	r, err := naturalLog(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.Float(r), nil
}

func naturalLog(v value.Value) (float64, error) {
	x, err := v.Float64()
	if err != nil {
		return 0, err
	}
	if x <= 0 || math.IsNaN(x) {
		return 0, errs.Domain("log of non-positive number")
	}
	return math.Log(x), nil
}

func builtinFactorial(args []value.Value) (value.Value, error) {
	if err := arity("factorial", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	n, ok := args[0].AsInt()
	if !ok || n.Sign() < 0 {
		return value.Value{}, errs.Domain("factorial only defined for non-negative integers")
	}
	if !n.IsInt64() || n.Int64() > maxFactorial {
		return value.Value{}, errs.Overflow("factorial argument too large")
	}
	return value.BigInt(new(big.Int).MulRange(1, n.Int64())), nil
}
