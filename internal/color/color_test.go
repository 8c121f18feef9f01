package color

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/apperr"
)

func TestHexRoundTripAllColors(t *testing.T) {
	t.Parallel()
	// every 6-digit hex, stepping the blue channel coarsely to keep it quick
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b += 15 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				back, err := ParseHex(c.Hex())
				if err != nil || back != c {
					t.Fatalf("round trip %s: got %v err %v", c.Hex(), back, err)
				}
			}
		}
	}
}

func TestHSLRoundTrip(t *testing.T) {
	t.Parallel()
	for _, hex := range []string{"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#4ecdc4", "#ff6b6b", "#808080", "#123456"} {
		c, err := ParseHex(hex)
		require.NoError(t, err)
		require.Equal(t, c, c.HSL().RGB(), hex)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#FFA07A")
	require.NoError(t, err)
	require.Equal(t, RGB{R: 255, G: 160, B: 122}, c)

	c, err = ParseHex("0f8")
	require.NoError(t, err)
	require.Equal(t, "#00ff88", c.Hex())

	for _, bad := range []string{"", "#12345", "#gggggg", "#1234567"} {
		_, err := ParseHex(bad)
		require.True(t, apperr.IsValidation(err), bad)
	}
}

func TestRender(t *testing.T) {
	got, err := Render("#000000", FormatHex)
	require.NoError(t, err)
	require.Equal(t, "#000000", got)

	got, err = Render("#4ECDC4", FormatRGB)
	require.NoError(t, err)
	require.Equal(t, "rgb(78, 205, 196)", got)

	got, err = Render("#ff0000", FormatHSL)
	require.NoError(t, err)
	require.Equal(t, "hsl(0, 100%, 50%)", got)

	got, err = Render("#4ecdc4", FormatHSL)
	require.NoError(t, err)
	require.Equal(t, "hsl(176, 56%, 55%)", got)

	got, err = Render("#808080", FormatHSL)
	require.NoError(t, err)
	require.Equal(t, "hsl(0, 0%, 50%)", got)
}

func TestFormats(t *testing.T) {
	f, err := ParseFormat("RGB")
	require.NoError(t, err)
	require.Equal(t, FormatRGB, f)
	require.Equal(t, FormatHSL, f.Next())
	require.Equal(t, FormatHex, FormatHSL.Next())
	_, err = ParseFormat("cmyk")
	require.True(t, apperr.IsValidation(err))
	require.Equal(t, "hsl", FormatHSL.String())
}
