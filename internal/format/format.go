// Package format turns numbers and categories into the sentences the widgets
// display. Everything here is pure: same input, same output, no side effects.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Clock renders seconds as mm:ss. Minutes are not wrapped at 60.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// TimeOfDay renders t as "HH : MM : SS" in 24 or 12 hour form. Midnight and
// noon render as 12 in 12 hour form.
func TimeOfDay(t time.Time, twentyFourHour bool) string {
	h := t.Hour()
	if !twentyFourHour {
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	return fmt.Sprintf("%02d : %02d : %02d", h, t.Minute(), t.Second())
}

// Meridiem returns "AM" or "PM" for t.
func Meridiem(t time.Time) string {
	if t.Hour() < 12 {
		return "AM"
	}
	return "PM"
}

// Currency renders a USD amount with thousands separators and two decimals.
func Currency(amount float64) string { return Money("$", amount) }

// Money is Currency with a caller-chosen symbol.
func Money(symbol string, amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := fmt.Sprintf("%s%s.%02d", symbol, b.String(), cents%100)
	if neg {
		return "-" + out
	}
	return out
}

// Number renders v without a trailing ".0" when it is whole.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
