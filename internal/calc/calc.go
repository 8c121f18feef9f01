// Package calc implements the two-operand calculator widget.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jask/widgetbox/internal/apperr"
)

// Op is a calculator operation.
type Op int

const (
	Add Op = iota + 1
	Subtract
	Multiply
	Divide
)

// ErrDivideByZero is returned by Divide when the right operand is zero.
var ErrDivideByZero = errors.New("division by zero")

var ops = map[Op]func(a, b float64) (float64, error){
	Add:      func(a, b float64) (float64, error) { return a + b, nil },
	Subtract: func(a, b float64) (float64, error) { return a - b, nil },
	Multiply: func(a, b float64) (float64, error) { return a * b, nil },
	Divide: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	},
}

func (o Op) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	default:
		return "?"
	}
}

// Ops lists the operations in button order.
func Ops() []Op { return []Op{Add, Subtract, Multiply, Divide} }

// ParseOp accepts the button symbols plus their ASCII spellings.
func ParseOp(s string) (Op, error) {
	switch strings.TrimSpace(s) {
	case "+", "add":
		return Add, nil
	case "-", "sub":
		return Subtract, nil
	case "×", "x", "*", "mul":
		return Multiply, nil
	case "÷", "/", "div":
		return Divide, nil
	}
	return 0, apperr.Validation(fmt.Sprintf("Unknown operation %q", s))
}

// Apply runs op on parsed operands.
func Apply(a, b float64, op Op) (float64, error) {
	fn, ok := ops[op]
	if !ok {
		return 0, apperr.Validation(fmt.Sprintf("Unknown operation %q", op.String()))
	}
	return fn(a, b)
}

// Evaluate parses both inputs, applies op and formats the result with two decimals.
func Evaluate(a, b string, op Op) (string, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return "", apperr.Validation("Please enter both numbers.")
	}
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil || !finite(x) || !finite(y) {
		return "", apperr.Validation("Please enter valid numbers.")
	}
	v, err := Apply(x, y, op)
	if errors.Is(err, ErrDivideByZero) {
		return "", &apperr.Error{Kind: apperr.KindValidation, Msg: "Division by zero is not allowed", Err: err}
	}
	if err != nil {
		return "", err
	}
	if !finite(v) {
		return "", apperr.Validation("Please enter valid numbers.")
	}
	return strconv.FormatFloat(v, 'f', 2, 64), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseExpression splits "a op b", such as "12.5 / 4" or "3x2", into its
// operands and operation. A leading sign belongs to the first operand.
func ParseExpression(s string) (a, b string, op Op, err error) {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if i == 0 {
			continue
		}
		o, perr := ParseOp(string(r))
		if perr != nil {
			continue
		}
		// "1e-5" and "2*-3" keep their signs
		prev := s[:i]
		if r == '-' || r == '+' {
			trimmed := strings.TrimRight(prev, " ")
			if trimmed == "" || strings.HasSuffix(trimmed, "e") || strings.HasSuffix(trimmed, "E") {
				continue
			}
		}
		return strings.TrimSpace(prev), strings.TrimSpace(s[i+len(string(r)):]), o, nil
	}
	return "", "", 0, apperr.Validation("Enter an expression like 12 + 3")
}
