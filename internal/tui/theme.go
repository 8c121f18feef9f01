package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/widgetbox/internal/config"
)

// Theme is a Catppuccin flavour reduced to the roles the panes use.
// https://catppuccin.com/palette
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Focus   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Overlay lipgloss.Color
	Surface lipgloss.Color
	Base    lipgloss.Color

	// Party colours candles and balloons, cycled by index.
	Party []lipgloss.Color
}

// Mocha is the dark flavour.
var Mocha = Theme{
	Name:    config.ThemeDark,
	Accent:  "#f5c2e7",
	Focus:   "#b4befe",
	Success: "#a6e3a1",
	Error:   "#f38ba8",
	Warning: "#f9e2af",
	Info:    "#94e2d5",
	Text:    "#cdd6f4",
	Subtext: "#a6adc8",
	Overlay: "#6c7086",
	Surface: "#313244",
	Base:    "#1e1e2e",
	Party:   []lipgloss.Color{"#f38ba8", "#94e2d5", "#89dceb", "#fab387", "#a6e3a1"},
}

// Latte is the light flavour.
var Latte = Theme{
	Name:    config.ThemeLight,
	Accent:  "#ea76cb",
	Focus:   "#7287fd",
	Success: "#40a02b",
	Error:   "#d20f39",
	Warning: "#df8e1d",
	Info:    "#179299",
	Text:    "#4c4f69",
	Subtext: "#6c6f85",
	Overlay: "#9ca0b0",
	Surface: "#ccd0da",
	Base:    "#eff1f5",
	Party:   []lipgloss.Color{"#d20f39", "#179299", "#04a5e5", "#fe640b", "#40a02b"},
}

// ThemeFor maps a config theme name to its palette.
func ThemeFor(name string) Theme {
	if config.NormalizeTheme(name) == config.ThemeLight {
		return Latte
	}
	return Mocha
}

// Colors lists every role colour, for validation.
func (t Theme) Colors() []lipgloss.Color {
	out := []lipgloss.Color{
		t.Accent, t.Focus, t.Success, t.Error, t.Warning, t.Info,
		t.Text, t.Subtext, t.Overlay, t.Surface, t.Base,
	}
	return append(out, t.Party...)
}

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	status    lipgloss.Style
	err       lipgloss.Style
	ok        lipgloss.Style
	muted     lipgloss.Style
	key       lipgloss.Style
	big       lipgloss.Style
	box       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Underline(true).Foreground(t.Accent),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(t.Subtext),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Base).Background(t.Focus),
		status:    lipgloss.NewStyle().Foreground(t.Info),
		err:       lipgloss.NewStyle().Foreground(t.Error),
		ok:        lipgloss.NewStyle().Foreground(t.Success),
		muted:     lipgloss.NewStyle().Foreground(t.Overlay),
		key:       lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		big:       lipgloss.NewStyle().Bold(true).Foreground(t.Text).Padding(1, 4).Border(lipgloss.RoundedBorder()).BorderForeground(t.Accent),
		box:       lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(t.Surface),
	}
}
