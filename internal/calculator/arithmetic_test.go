package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		a    string
		op   Operator
		b    string
		want string
	}{
		{a: "7", op: OpAdd, b: "3", want: "10"},
		{a: "9", op: OpSubtract, b: "4", want: "5"},
		{a: "4", op: OpSubtract, b: "9", want: "-5"},
		{a: "6", op: OpMultiply, b: "7", want: "42"},
		{a: "1", op: OpDivide, b: "4", want: "0.25"},
		{a: "10", op: OpDivide, b: "4", want: "2.5"},
		{a: "5", op: OpDivide, b: "0", want: ErrorSentinel},
		{a: "0", op: OpDivide, b: "0", want: ErrorSentinel},
		{a: "10", op: OpPercent, b: "3", want: "1"},
		{a: "-10", op: OpPercent, b: "3", want: "-1"},
		{a: "5.5", op: OpPercent, b: "2", want: "1.5"},
		{a: "5", op: OpPercent, b: "0", want: ErrorSentinel},
		{a: "1,000", op: OpAdd, b: "1", want: "1001"},
		{a: "0.1", op: OpAdd, b: "0.2", want: "0.30000000000000004"},
		{a: "2.5", op: OpMultiply, b: "2", want: "5"},
		{a: "5.", op: OpAdd, b: "1", want: "6"},
		{a: "-0", op: OpMultiply, b: "1", want: "0"},
		{a: "1", op: Operator("^"), b: "8", want: "8"},
		{a: "-", op: OpAdd, b: "1", want: ErrorSentinel},
		{a: "1", op: OpAdd, b: ".", want: ErrorSentinel},
	}

	for _, tc := range tests {
		t.Run(tc.a+string(tc.op)+tc.b, func(t *testing.T) {
			if got := Apply(tc.a, tc.op, tc.b); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	if _, err := Evaluate("1", OpDivide, "0"); !errors.Is(err, ErrArithmetic) {
		t.Fatalf("expected ErrArithmetic, got %v", err)
	}
	if _, err := Evaluate("abc", OpAdd, "1"); !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("expected ErrInvalidOperand, got %v", err)
	}
	if _, err := Evaluate("1e308", OpMultiply, "10"); !errors.Is(err, ErrArithmetic) {
		t.Fatalf("expected overflow to be ErrArithmetic, got %v", err)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: 42, want: "42"},
		{in: -7, want: "-7"},
		{in: 0.5, want: "0.5"},
		{in: 1e-7, want: "0.0000001"},
		{in: 123456789012345, want: "123456789012345"},
		{in: 1e20, want: "100000000000000000000"},
		{in: 1e22, want: "1e+22"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatResult(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
	}{
		{in: "+", want: OpAdd},
		{in: "-", want: OpSubtract},
		{in: "×", want: OpMultiply},
		{in: "*", want: OpMultiply},
		{in: "x", want: OpMultiply},
		{in: "÷", want: OpDivide},
		{in: "/", want: OpDivide},
		{in: "%", want: OpPercent},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOperator(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := ParseOperator("^"); !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}
