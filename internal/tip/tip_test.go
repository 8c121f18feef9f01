package tip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/apperr"
)

func TestCalculateSplit(t *testing.T) {
	res, err := Calculate(Input{Bill: 100, TipPercent: 20, People: 4})
	require.NoError(t, err)
	require.InDelta(t, 5.0, res.TipPerPerson, 1e-9)
	require.InDelta(t, 30.0, res.TotalPerPerson, 1e-9)

	res, err = Calculate(Input{Bill: 59.99, TipPercent: 15, People: 1})
	require.NoError(t, err)
	require.InDelta(t, 8.9985, res.TipPerPerson, 1e-9)
	require.InDelta(t, 68.9885, res.TotalPerPerson, 1e-9)
}

func TestValidate(t *testing.T) {
	for _, in := range []Input{
		{Bill: -1, TipPercent: 10, People: 1},
		{Bill: 10, TipPercent: -5, People: 1},
		{Bill: 10, TipPercent: 10, People: 0},
	} {
		_, err := Calculate(in)
		require.True(t, apperr.IsValidation(err), "%+v", in)
	}
	require.NoError(t, Input{Bill: 0, TipPercent: 0, People: 1}.Validate())
}

func TestRejectsNonFiniteNumbers(t *testing.T) {
	cases := []struct {
		name                  string
		bill, percent, people string
	}{
		{"nan bill", "NaN", "15", "2"},
		{"inf bill", "Inf", "15", "2"},
		{"nan percent", "100", "nan", "1"},
		{"negative inf percent", "100", "-Inf", "1"},
		{"overflowing bill", "1e400", "15", "1"},
		{"overflowing total", "1.7e308", "100", "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, err := ParseInput(c.bill, c.percent, c.people)
			if err == nil {
				_, err = Calculate(in)
			}
			require.True(t, apperr.IsValidation(err))
			require.Equal(t, "Please enter valid numbers.", apperr.Message(err))
		})
	}

	_, err := Calculate(Input{Bill: math.NaN(), TipPercent: 10, People: 1})
	require.Equal(t, "Please enter valid numbers.", apperr.Message(err))

	_, err = ParsePresets("10,Inf")
	require.Error(t, err)
}

func TestParsePresets(t *testing.T) {
	got, err := ParsePresets("10, 15,20,25")
	require.NoError(t, err)
	require.Equal(t, Presets, got)

	got, err = ParsePresets("")
	require.NoError(t, err)
	require.Equal(t, Presets, got)

	_, err = ParsePresets("10,abc")
	require.Error(t, err)
}

func TestParseInput(t *testing.T) {
	in, err := ParseInput(" 80 ", "15", "")
	require.NoError(t, err)
	require.Equal(t, Input{Bill: 80, TipPercent: 15, People: 1}, in)

	_, err = ParseInput("80", "", "2")
	require.Equal(t, "Please enter valid numbers.", apperr.Message(err))

	_, err = ParseInput("80", "10", "0")
	require.Equal(t, "Number of people must be at least 1", apperr.Message(err))
}
