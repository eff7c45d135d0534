package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operator is a binary calculator operator, stored as the symbol shown on the
// keypad.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
	OpPercent  Operator = "%"
)

var (
	// ErrArithmetic is returned by Evaluate when the result is infinite or NaN.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrInvalidOperand is returned by Evaluate when an operand does not parse.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrUnknownOperator is returned by ParseOperator.
	ErrUnknownOperator = errors.New("unknown operator")
)

var operatorAliases = map[string]Operator{
	"+": OpAdd,
	"-": OpSubtract,
	"×": OpMultiply,
	"*": OpMultiply,
	"x": OpMultiply,
	"÷": OpDivide,
	"/": OpDivide,
	"%": OpPercent,
}

// ParseOperator maps a keypad symbol or its ASCII alias to an Operator.
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
	return op, nil
}

// maxInt64Float is 2^63, the first float64 outside the int64 range.
const maxInt64Float = float64(1 << 63)

func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperand, s)
	}
	return v, nil
}

// Evaluate computes a op b on decimal strings. Division by zero yields
// +Inf and so ErrArithmetic. An unrecognised operator returns b.
func Evaluate(a string, op Operator, b string) (float64, error) {
	x, err := parseOperand(a)
	if err != nil {
		return 0, err
	}
	y, err := parseOperand(b)
	if err != nil {
		return 0, err
	}

	var r float64
	switch op {
	case OpAdd:
		r = x + y
	case OpSubtract:
		r = x - y
	case OpMultiply:
		r = x * y
	case OpDivide:
		if y != 0 {
			r = x / y
		} else {
			r = math.Inf(1)
		}
	case OpPercent:
		r = math.Mod(x, y)
	default:
		r = y
	}

	if math.IsInf(r, 0) || math.IsNaN(r) {
		return r, fmt.Errorf("%w: %s %s %s", ErrArithmetic, a, op, b)
	}
	return r, nil
}

// Apply is Evaluate rendered for display. Any failure becomes ErrorSentinel.
func Apply(a string, op Operator, b string) string {
	r, err := Evaluate(a, op, b)
	if err != nil {
		return ErrorSentinel
	}
	return FormatResult(r)
}

// FormatResult renders a finite result. Integral values in the int64 range
// print without a fractional part; everything else uses the shortest
// decimal that round-trips, in exponent form only from 1e21 upwards.
func FormatResult(r float64) string {
	if r == math.Trunc(r) && r >= -maxInt64Float && r < maxInt64Float {
		return strconv.FormatInt(int64(r), 10)
	}
	if math.Abs(r) >= 1e21 {
		return strconv.FormatFloat(r, 'e', -1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
