// Package tip splits a bill and its tip between people.
package tip

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jask/widgetbox/internal/apperr"
)

// Presets are the quick-pick tip percentages.
var Presets = []float64{10, 15, 20, 25}

// Input is what the user typed into the tip form.
type Input struct {
	Bill       float64
	TipPercent float64
	People     int
}

// Result is the per-person split.
type Result struct {
	TipPerPerson   float64
	TotalPerPerson float64
}

const msgInvalidNumbers = "Please enter valid numbers."

// Validate rejects NaN, infinities, negative amounts and fewer than one person.
func (in Input) Validate() error {
	switch {
	case !finite(in.Bill) || !finite(in.TipPercent):
		return apperr.Validation(msgInvalidNumbers)
	case in.Bill < 0:
		return apperr.Validation("Bill amount cannot be negative")
	case in.TipPercent < 0:
		return apperr.Validation("Tip percentage cannot be negative")
	case in.People < 1:
		return apperr.Validation("Number of people must be at least 1")
	}
	return nil
}

// Calculate validates in and returns tip and total per person.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	tip := in.Bill * in.TipPercent / 100
	people := float64(in.People)
	res := Result{
		TipPerPerson:   tip / people,
		TotalPerPerson: (in.Bill + tip) / people,
	}
	if !finite(res.TipPerPerson) || !finite(res.TotalPerPerson) {
		return Result{}, apperr.Validation(msgInvalidNumbers)
	}
	return res, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParsePresets reads a stored comma separated preset list such as "10,15,20,25".
func ParsePresets(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 || !finite(v) {
			return nil, fmt.Errorf("parse tip preset %q: invalid percentage", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return append([]float64(nil), Presets...), nil
	}
	return out, nil
}

// ParseInput reads the three form fields. An empty people field means one.
func ParseInput(bill, percent, people string) (Input, error) {
	b, errB := strconv.ParseFloat(strings.TrimSpace(bill), 64)
	p, errP := strconv.ParseFloat(strings.TrimSpace(percent), 64)
	if errB != nil || errP != nil {
		return Input{}, apperr.Validation(msgInvalidNumbers)
	}
	n := 1
	if s := strings.TrimSpace(people); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Input{}, apperr.Validation(msgInvalidNumbers)
		}
		n = v
	}
	in := Input{Bill: b, TipPercent: p, People: n}
	return in, in.Validate()
}
