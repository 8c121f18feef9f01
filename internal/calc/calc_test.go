package calc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/apperr"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		a, b string
		op   Op
		want string
	}{
		{"2", "3", Add, "5.00"},
		{"10", "4", Subtract, "6.00"},
		{"1.5", "4", Multiply, "6.00"},
		{"1", "3", Divide, "0.33"},
		{" -7 ", "2", Divide, "-3.50"},
	}
	for _, c := range cases {
		got, err := Evaluate(c.a, c.b, c.op)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "%s %s %s", c.a, c.op, c.b)
	}
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate("", "2", Add)
	require.True(t, apperr.IsValidation(err))
	require.Equal(t, "Please enter both numbers.", apperr.Message(err))

	_, err = Evaluate("two", "2", Add)
	require.Equal(t, "Please enter valid numbers.", apperr.Message(err))

	_, err = Evaluate("5", "0", Divide)
	require.ErrorIs(t, err, ErrDivideByZero)
	require.Equal(t, "Division by zero is not allowed", apperr.Message(err))

	_, err = Evaluate("5", "1", Op(99))
	require.True(t, apperr.IsValidation(err))
}

func TestEvaluateRejectsNonFinite(t *testing.T) {
	cases := []struct {
		a, b string
		op   Op
	}{
		{"NaN", "1", Add},
		{"1", "nan", Subtract},
		{"Inf", "1", Add},
		{"-Inf", "2", Multiply},
		{"1e400", "1", Add},
		{"1e308", "10", Multiply},
		{"-1e308", "1e308", Subtract},
		{"1e308", "1e-308", Divide},
	}
	for _, c := range cases {
		got, err := Evaluate(c.a, c.b, c.op)
		require.Empty(t, got, "%s %s %s", c.a, c.op, c.b)
		require.True(t, apperr.IsValidation(err), "%s %s %s", c.a, c.op, c.b)
		require.Equal(t, "Please enter valid numbers.", apperr.Message(err))
	}
}

func TestParseOp(t *testing.T) {
	for in, want := range map[string]Op{"+": Add, "-": Subtract, "x": Multiply, "*": Multiply, "×": Multiply, "/": Divide, "÷": Divide} {
		got, err := ParseOp(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := ParseOp("%")
	require.True(t, apperr.IsValidation(err))

	for _, op := range Ops() {
		back, err := ParseOp(op.String())
		require.NoError(t, err)
		require.Equal(t, op, back)
	}
}

func TestParseExpression(t *testing.T) {
	cases := []struct {
		in   string
		a, b string
		op   Op
	}{
		{"12 + 3", "12", "3", Add},
		{"-4-2", "-4", "2", Subtract},
		{"3x2", "3", "2", Multiply},
		{"2*-3", "2", "-3", Multiply},
		{"9 ÷ 3", "9", "3", Divide},
		{"1e-3 / 2", "1e-3", "2", Divide},
	}
	for _, c := range cases {
		a, b, op, err := ParseExpression(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.a, a, c.in)
		require.Equal(t, c.b, b, c.in)
		require.Equal(t, c.op, op, c.in)
	}

	_, _, _, err := ParseExpression("42")
	require.True(t, apperr.IsValidation(err))

	a, b, op, err := ParseExpression("7 / ")
	require.NoError(t, err)
	_, err = Evaluate(a, b, op)
	require.Equal(t, "Please enter both numbers.", apperr.Message(err))
}
