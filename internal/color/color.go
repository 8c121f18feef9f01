// Package color converts between hex, RGB and HSL notations.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jask/widgetbox/internal/apperr"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in degrees [0, 360) and saturation and lightness in [0, 1].
type HSL struct {
	H, S, L float64
}

// Format selects a notation.
type Format int

const (
	FormatHex Format = iota
	FormatRGB
	FormatHSL
)

var formatNames = map[Format]string{FormatHex: "hex", FormatRGB: "rgb", FormatHSL: "hsl"}

func (f Format) String() string { return formatNames[f] }

// Formats lists every notation in display order.
func Formats() []Format { return []Format{FormatHex, FormatRGB, FormatHSL} }

// ParseFormat accepts "hex", "rgb" or "hsl" in any case.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return f, nil
		}
	}
	return FormatHex, apperr.Validation(fmt.Sprintf("Unknown color format %q (use hex, rgb or hsl)", s))
}

// Next cycles hex → rgb → hsl → hex.
func (f Format) Next() Format { return (f + 1) % 3 }

// ParseHex reads "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, apperr.Validation(fmt.Sprintf("Invalid hex color %q", s))
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, apperr.Validation(fmt.Sprintf("Invalid hex color %q", s))
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex renders "#rrggbb" in lower case.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HSL converts to hue, saturation and lightness.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2
	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}
	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}
	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return HSL{H: h * 60, S: s, L: l}
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)",
		int(math.Round(c.H))%360, int(math.Round(c.S*100)), int(math.Round(c.L*100)))
}

// RGB converts back to 8-bit channels.
func (c HSL) RGB() RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	if c.S == 0 {
		v := channel(c.L)
		return RGB{R: v, G: v, B: v}
	}
	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q
	return RGB{
		R: channel(hueToRGB(p, q, h+1.0/3)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Render formats a hex color in the requested notation.
func Render(hex string, f Format) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	switch f {
	case FormatRGB:
		return c.String(), nil
	case FormatHSL:
		return c.HSL().String(), nil
	default:
		return c.Hex(), nil
	}
}
