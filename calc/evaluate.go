package calc

import (
	"math"
	"strconv"
	"strings"
)

// Evaluate applies op to two number tokens
func Evaluate(lhs Token, op Operator, rhs Token) (float64, error) {
	a, err := lhs.Value()
	if err != nil {
		return 0, err
	}
	b, err := rhs.Value()
	if err != nil {
		return 0, err
	}

	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSub:
		result = a - b
	case OpMul:
		result = a * b
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		result = a / b
	default:
		return 0, ErrUnknownOperator
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrNonFinite
	}
	return result, nil
}

// FormatNumber renders a result in shortest round-trip form
// Magnitudes outside [1e-6, 1e21) switch to exponent notation ("1e+21", "5e-7")
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
