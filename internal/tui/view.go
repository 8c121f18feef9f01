package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/widgetbox/internal/celebrate"
	"github.com/jask/widgetbox/internal/color"
	"github.com/jask/widgetbox/internal/format"
	"github.com/jask/widgetbox/internal/session"
	"github.com/jask/widgetbox/internal/widget"
)

func (a *App) View() string {
	w := a.widgets[a.active]
	var body string
	switch w.ID {
	case widget.Countdown:
		body = a.renderCountdown()
	case widget.Weather:
		body = a.renderWeather()
	case widget.Birthday:
		body = a.renderBirthday()
	case widget.Guess:
		body = a.renderGuess()
	case widget.Calc:
		body = a.renderCalc()
	case widget.Clock:
		body = a.renderClock()
	case widget.Joke:
		body = a.renderJoke()
	case widget.Color:
		body = a.renderColor()
	case widget.Tip:
		body = a.renderTip()
	case widget.Password:
		body = a.renderPassword()
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.st.title.Render(w.Title))
	b.WriteString("  ")
	b.WriteString(a.st.muted.Render(w.Description))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(a.st.muted.Render("[tab] next  [shift+tab] prev  [ctrl+t] theme  [ctrl+x] reset data  [esc] quit"))
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.st.status.Render(a.status))
	}
	return b.String()
}

func (a *App) renderTabs() string {
	tabs := make([]string, len(a.widgets))
	for i, w := range a.widgets {
		if i == a.active {
			tabs[i] = a.st.activeTab.Render(w.Title)
		} else {
			tabs[i] = a.st.tab.Render(w.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) help(keys ...string) string {
	parts := make([]string, 0, len(keys)/2)
	for i := 0; i+1 < len(keys); i += 2 {
		parts = append(parts, a.st.key.Render("["+keys[i]+"]")+" "+keys[i+1])
	}
	return strings.Join(parts, "  ")
}

// keyHelp lists the bindings registered for id.
func (a *App) keyHelp(id widget.ID) string {
	var pairs []string
	for _, h := range a.keys.help(string(id)) {
		pairs = append(pairs, h[0], h[1])
	}
	return a.help(pairs...)
}

func (a *App) errLine(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + a.st.err.Render(msg)
}

func (a *App) renderCountdown() string {
	snap := a.countdown.Snapshot()
	var b strings.Builder
	b.WriteString(a.st.big.Render(snap.Display()))
	b.WriteString("\n")
	label := snap.State.String()
	if snap.State == session.Finished {
		label = "Time's up!"
	}
	b.WriteString(a.st.muted.Render(label))
	b.WriteString("\n\n")
	b.WriteString(a.inputs[widget.Countdown].View())
	b.WriteString("\n")
	b.WriteString(a.keyHelp(widget.Countdown))
	b.WriteString(a.errLine(a.countdownErr))
	return b.String()
}

func (a *App) renderGuess() string {
	snap := a.guess.Snapshot()
	var b strings.Builder
	switch snap.State {
	case session.Idle:
		b.WriteString("I'm thinking of a number between 1 and 100.\n")
		b.WriteString(a.help("enter", "start"))
	case session.Finished:
		b.WriteString(a.st.ok.Render(fmt.Sprintf("Game over! You guessed %d in %d attempts.", snap.Target, snap.Attempts)))
		if snap.NewBest {
			b.WriteString("\n" + a.st.ok.Render("New best score!"))
		}
		b.WriteString("\n" + a.help("enter", "try again"))
	default:
		if snap.State == session.Paused {
			b.WriteString(a.st.muted.Render("Paused") + "\n")
		}
		if msg := snap.Feedback.Message(); msg != "" {
			b.WriteString(msg + "\n")
		}
		b.WriteString(a.inputs[widget.Guess].View())
		b.WriteString("\n")
		b.WriteString(a.keyHelp(widget.Guess))
	}
	best := "none yet"
	if snap.HasBest {
		best = fmt.Sprintf("%d", snap.Best)
	}
	b.WriteString("\n\n")
	b.WriteString(a.st.muted.Render(fmt.Sprintf("Attempts: %d  Time: %s  Best: %s", snap.Attempts, format.Clock(snap.Elapsed), best)))
	b.WriteString(a.errLine(a.guessErr))
	return b.String()
}

func (a *App) renderWeather() string {
	st := a.weather.State()
	var b strings.Builder
	b.WriteString(a.inputs[widget.Weather].View())
	b.WriteString("\n")
	b.WriteString(a.keyHelp(widget.Weather))
	switch {
	case st.Loading:
		b.WriteString("\n\nLoading...")
	case st.HasData:
		r := st.Value
		b.WriteString("\n\n")
		b.WriteString(a.st.title.Render(r.Place()))
		for _, line := range r.Lines(a.now) {
			b.WriteString("\n" + line)
		}
	}
	b.WriteString(a.errLine(st.Err))
	return b.String()
}

func (a *App) renderJoke() string {
	st := a.joke.State()
	var b strings.Builder
	switch {
	case st.Loading:
		b.WriteString("Loading...")
	case st.HasData:
		b.WriteString(a.st.box.Render(st.Value.String()))
	}
	b.WriteString("\n")
	b.WriteString(a.keyHelp(widget.Joke))
	b.WriteString(a.errLine(st.Err))
	return b.String()
}

func (a *App) renderBirthday() string {
	snap := a.party.Snapshot()
	var candles, balloons []string
	for i := 0; i < celebrate.Candles; i++ {
		c := a.theme.Party[i%len(a.theme.Party)]
		if i < snap.Lit {
			candles = append(candles, lipgloss.NewStyle().Foreground(c).Render("🔥"))
		} else {
			candles = append(candles, lipgloss.NewStyle().Foreground(c).Render("|"))
		}
	}
	for i := 0; i < celebrate.Balloons; i++ {
		if i < snap.Popped {
			balloons = append(balloons, a.st.muted.Render("·"))
		} else {
			balloons = append(balloons, lipgloss.NewStyle().Foreground(a.theme.Party[i%len(a.theme.Party)]).Render("🎈"))
		}
	}
	var b strings.Builder
	b.WriteString("Happy Birthday!\n\n")
	b.WriteString("Candles:  " + strings.Join(candles, " ") + "\n")
	b.WriteString("Balloons: " + strings.Join(balloons, " ") + "\n")
	if snap.Confetti {
		b.WriteString("\n" + a.st.ok.Render("🎉 🎊 🎉 🎊 🎉") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(a.keyHelp(widget.Birthday))
	return b.String()
}

func (a *App) renderCalc() string {
	var b strings.Builder
	b.WriteString(a.inputs[widget.Calc].View())
	b.WriteString("\n")
	b.WriteString(a.keyHelp(widget.Calc))
	if a.calcResult != "" {
		b.WriteString("\n\nResult: " + a.st.ok.Render(a.calcResult))
	}
	b.WriteString(a.errLine(a.calcErr))
	return b.String()
}

func (a *App) renderClock() string {
	var b strings.Builder
	b.WriteString(a.st.big.Render(format.TimeOfDay(a.now, a.clock24)))
	if !a.clock24 {
		b.WriteString(" " + format.Meridiem(a.now))
	}
	b.WriteString("\n")
	mode := "24-hour"
	if !a.clock24 {
		mode = "12-hour"
	}
	b.WriteString(a.help("enter", "switch from "+mode))
	return b.String()
}

func (a *App) renderColor() string {
	var b strings.Builder
	b.WriteString(a.inputs[widget.Color].View())
	b.WriteString("\n")
	b.WriteString(a.help("enter", "convert", "ctrl+f", "format: "+a.colorFormat.String()))
	if a.colorOut != "" {
		swatch := ""
		if c, err := color.ParseHex(a.colorHex); err == nil {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
		}
		b.WriteString("\n\n" + swatch + "  " + a.colorOut)
	}
	b.WriteString(a.errLine(a.colorErr))
	return b.String()
}

func (a *App) renderTip() string {
	var b strings.Builder
	for _, in := range a.tipInputs {
		b.WriteString(in.View() + "\n")
	}
	presets := make([]string, len(a.presets))
	for i, p := range a.presets {
		presets[i] = format.Number(p) + "%"
	}
	b.WriteString(a.st.muted.Render("presets: "+strings.Join(presets, " ")) + "\n")
	b.WriteString(a.keyHelp(widget.Tip))
	if a.tipResult != nil {
		sym := a.cfg.UI.CurrencySymbol
		if sym == "" {
			sym = "$"
		}
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Tip per person:   %s\n", a.st.ok.Render(format.Money(sym, a.tipResult.TipPerPerson))))
		b.WriteString(fmt.Sprintf("Total per person: %s", a.st.ok.Render(format.Money(sym, a.tipResult.TotalPerPerson))))
	}
	b.WriteString(a.errLine(a.tipErr))
	return b.String()
}

func (a *App) renderPassword() string {
	check := func(on bool, label string) string {
		if on {
			return "[x] " + label
		}
		return "[ ] " + label
	}
	var b strings.Builder
	b.WriteString(a.inputs[widget.Password].View())
	b.WriteString(a.st.muted.Render(fmt.Sprintf("  (current %d)", a.pwOpts.Length)))
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		check(a.pwOpts.Upper, "uppercase"),
		check(a.pwOpts.Lower, "lowercase"),
		check(a.pwOpts.Numbers, "numbers"),
		check(a.pwOpts.Symbols, "symbols"),
	}, "  "))
	b.WriteString("\n")
	b.WriteString(a.keyHelp(widget.Password))
	if a.pwOut != "" {
		b.WriteString("\n\n" + a.st.box.Render(a.pwOut))
	}
	b.WriteString(a.errLine(a.pwErr))
	return b.String()
}
