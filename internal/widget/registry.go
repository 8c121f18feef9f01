// Package widget is the catalogue of widgets the app can show.
package widget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/widgetbox/internal/apperr"
)

// ID names a widget on the command line and in the tab bar.
type ID string

const (
	Countdown ID = "countdown"
	Weather   ID = "weather"
	Birthday  ID = "birthday"
	Guess     ID = "guess"
	Calc      ID = "calc"
	Clock     ID = "clock"
	Joke      ID = "joke"
	Color     ID = "color"
	Tip       ID = "tip"
	Password  ID = "password"
)

type Widget struct {
	ID          ID
	Title       string
	Description string
}

var catalogue = []Widget{
	{Countdown, "Countdown", "Set a duration in seconds and count it down"},
	{Weather, "Weather", "Current conditions for a city"},
	{Birthday, "Birthday", "Light the candles, pop the balloons"},
	{Guess, "Guess", "Guess a number between 1 and 100"},
	{Calc, "Calculator", "Add, subtract, multiply or divide two numbers"},
	{Clock, "Clock", "Digital clock with 12/24 hour display"},
	{Joke, "Joke", "A random joke"},
	{Color, "Color", "Convert a hex color to RGB and HSL"},
	{Tip, "Tip", "Split a bill and tip between people"},
	{Password, "Password", "Generate a random password"},
}

// maxSuggestDistance bounds how far off a name may be and still be suggested.
const maxSuggestDistance = 3

// All returns the widgets in tab order.
func All() []Widget {
	return append([]Widget(nil), catalogue...)
}

// Lookup finds a widget by id or title, case-insensitively. Unknown names
// produce a validation error suggesting the closest ids.
func Lookup(name string) (Widget, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, w := range catalogue {
		if string(w.ID) == key || strings.ToLower(w.Title) == key {
			return w, nil
		}
	}
	msg := fmt.Sprintf("Unknown widget %q", name)
	if s := Suggest(key); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}
	return Widget{}, apperr.Validation(msg)
}

// Suggest returns widget ids within edit distance of name, closest first.
func Suggest(name string) []string {
	type cand struct {
		id   string
		dist int
	}
	var out []cand
	for _, w := range catalogue {
		d := levenshtein.ComputeDistance(name, string(w.ID))
		if d <= maxSuggestDistance {
			out = append(out, cand{string(w.ID), d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	ids := make([]string, len(out))
	for i, c := range out {
		ids[i] = c.id
	}
	return ids
}

// Index returns the tab position of id, or -1.
func Index(id ID) int {
	for i, w := range catalogue {
		if w.ID == id {
			return i
		}
	}
	return -1
}
