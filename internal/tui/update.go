package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/apperr"
	"github.com/jask/widgetbox/internal/calc"
	"github.com/jask/widgetbox/internal/color"
	"github.com/jask/widgetbox/internal/config"
	"github.com/jask/widgetbox/internal/password"
	"github.com/jask/widgetbox/internal/session"
	"github.com/jask/widgetbox/internal/tip"
	"github.com/jask/widgetbox/internal/widget"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case refreshMsg:
		return a, a.waitForUpdate()
	case clockMsg:
		a.now = time.Time(m)
		return a, clockTick()
	case presetsMsg:
		a.presets = []float64(m)
		a.presetIdx = 0
	case weatherMsg:
		if !a.weather.Complete(m.gen, m.report, m.err) {
			a.log.Debug("dropped stale weather result", zap.Uint64("gen", m.gen))
		}
	case jokeMsg:
		if !a.joke.Complete(m.gen, m.joke, m.err) {
			a.log.Debug("dropped stale joke result", zap.Uint64("gen", m.gen))
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.log.Warn("command failed", zap.Error(m.error))
		a.status = "error: " + m.Error()
	default:
		return a, a.updateInput(msg)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.resetAsk {
		a.resetAsk = false
		if m.String() == "y" {
			a.status = "resetting..."
			return a, a.resetCmd()
		}
		a.status = "reset cancelled"
		return a, nil
	}
	act := a.keys.action(m, string(a.current()))
	switch act {
	case actQuit:
		a.Close()
		return a, tea.Quit
	case actNextTab:
		a.switchTo((a.active + 1) % len(a.widgets))
		return a, nil
	case actPrevTab:
		a.switchTo((a.active + len(a.widgets) - 1) % len(a.widgets))
		return a, nil
	case actTheme:
		return a, a.toggleTheme()
	case actResetAll:
		if a.deps.Maintenance != nil {
			a.resetAsk = true
			a.status = "Reset all stored data? [y] yes  [any] no"
		}
		return a, nil
	}
	a.status = ""

	switch a.current() {
	case widget.Countdown:
		return a, a.keyCountdown(act, m)
	case widget.Guess:
		return a, a.keyGuess(act, m)
	case widget.Weather:
		return a, a.keyWeather(act, m)
	case widget.Joke:
		if act == actAnother {
			return a, a.fetchJokeCmd()
		}
	case widget.Calc:
		return a, a.keyCalc(act, m)
	case widget.Color:
		return a, a.keyColor(act, m)
	case widget.Tip:
		return a, a.keyTip(act, m)
	case widget.Password:
		return a, a.keyPassword(act, m)
	case widget.Clock:
		if act == actHourMode {
			a.clock24 = !a.clock24
		}
	case widget.Birthday:
		a.keyBirthday(act)
	}
	return a, nil
}

func (a *App) switchTo(i int) {
	a.active = i
	a.status = ""
	a.focus()
}

// focus gives the keyboard to the active widget's input, if it has one.
func (a *App) focus() {
	cur := a.current()
	for id, in := range a.inputs {
		if id == cur {
			in.Focus()
		} else {
			in.Blur()
		}
		a.inputs[id] = in
	}
	for i := range a.tipInputs {
		if cur == widget.Tip && i == a.tipFocus {
			a.tipInputs[i].Focus()
		} else {
			a.tipInputs[i].Blur()
		}
	}
}

func (a *App) toggleTheme() tea.Cmd {
	if a.theme.Name == config.ThemeLight {
		a.theme = Mocha
	} else {
		a.theme = Latte
	}
	a.st = newStyles(a.theme)
	a.cfg.UI.Theme = a.theme.Name
	a.status = "theme: " + a.theme.Name
	return a.saveThemeCmd()
}

// updateInput forwards msg to the focused input.
func (a *App) updateInput(msg tea.Msg) tea.Cmd {
	cur := a.current()
	if cur == widget.Tip {
		var cmd tea.Cmd
		a.tipInputs[a.tipFocus], cmd = a.tipInputs[a.tipFocus].Update(msg)
		return cmd
	}
	in, ok := a.inputs[cur]
	if !ok {
		return nil
	}
	in, cmd := in.Update(msg)
	a.inputs[cur] = in
	return cmd
}

func (a *App) inputValue(id widget.ID) string {
	return strings.TrimSpace(a.inputs[id].Value())
}

func (a *App) clearInput(id widget.ID) {
	in := a.inputs[id]
	in.SetValue("")
	a.inputs[id] = in
}

func (a *App) keyCountdown(act string, m tea.KeyMsg) tea.Cmd {
	var err error
	switch act {
	case actSubmit:
		if v := a.inputValue(widget.Countdown); v != "" {
			if err = a.countdown.SetInput(v); err == nil {
				a.clearInput(widget.Countdown)
			}
		} else {
			err = a.countdown.Toggle()
		}
	case actReset:
		err = a.countdown.Reset()
	default:
		return a.updateInput(m)
	}
	a.countdownErr = apperr.Message(err)
	return nil
}

func (a *App) keyGuess(act string, m tea.KeyMsg) tea.Cmd {
	var err error
	switch act {
	case actSubmit:
		switch a.guess.Snapshot().State {
		case session.Idle:
			err = a.guess.Start()
		case session.Running:
			if _, err = a.guess.Guess(a.inputValue(widget.Guess)); err == nil {
				a.clearInput(widget.Guess)
			}
		case session.Paused:
			err = a.guess.Resume()
		case session.Finished:
			if err = a.guess.Reset(); err == nil {
				err = a.guess.Start()
			}
		}
	case actPause:
		if a.guess.Snapshot().State == session.Paused {
			err = a.guess.Resume()
		} else {
			err = a.guess.Pause()
		}
	case actReset:
		err = a.guess.Reset()
	default:
		return a.updateInput(m)
	}
	a.guessErr = apperr.Message(err)
	return nil
}

func (a *App) keyWeather(act string, m tea.KeyMsg) tea.Cmd {
	if act != actSubmit {
		return a.updateInput(m)
	}
	return a.fetchWeatherCmd(a.inputValue(widget.Weather))
}

func (a *App) keyCalc(act string, m tea.KeyMsg) tea.Cmd {
	if act != actSubmit {
		return a.updateInput(m)
	}
	a.calcResult, a.calcErr = "", ""
	x, y, op, err := calc.ParseExpression(a.inputValue(widget.Calc))
	if err == nil {
		a.calcResult, err = calc.Evaluate(x, y, op)
	}
	a.calcErr = apperr.Message(err)
	return nil
}

func (a *App) keyColor(act string, m tea.KeyMsg) tea.Cmd {
	switch act {
	case actSubmit:
		a.colorHex = a.inputValue(widget.Color)
	case actFormat:
		a.colorFormat = a.colorFormat.Next()
	default:
		return a.updateInput(m)
	}
	a.colorOut, a.colorErr = "", ""
	if a.colorHex == "" {
		return nil
	}
	out, err := color.Render(a.colorHex, a.colorFormat)
	a.colorOut, a.colorErr = out, apperr.Message(err)
	return nil
}

func (a *App) keyTip(act string, m tea.KeyMsg) tea.Cmd {
	switch act {
	case actFieldUp:
		a.tipFocus = (a.tipFocus + len(a.tipInputs) - 1) % len(a.tipInputs)
		a.focus()
	case actFieldDown:
		a.tipFocus = (a.tipFocus + 1) % len(a.tipInputs)
		a.focus()
	case actPreset:
		if len(a.presets) > 0 {
			a.tipInputs[1].SetValue(strconv.FormatFloat(a.presets[a.presetIdx], 'f', -1, 64))
			a.presetIdx = (a.presetIdx + 1) % len(a.presets)
		}
	case actReset:
		for i := range a.tipInputs {
			a.tipInputs[i].SetValue("")
		}
		a.tipResult, a.tipErr = nil, ""
		a.tipFocus = 0
		a.focus()
	case actSubmit:
		a.tipResult, a.tipErr = nil, ""
		in, err := tip.ParseInput(a.tipInputs[0].Value(), a.tipInputs[1].Value(), a.tipInputs[2].Value())
		if err != nil {
			a.tipErr = apperr.Message(err)
			return nil
		}
		res, err := tip.Calculate(in)
		if err != nil {
			a.tipErr = apperr.Message(err)
			return nil
		}
		a.tipResult = &res
	default:
		return a.updateInput(m)
	}
	return nil
}

func (a *App) keyPassword(act string, m tea.KeyMsg) tea.Cmd {
	switch act {
	case actUpper:
		a.pwOpts.Upper = !a.pwOpts.Upper
	case actLower:
		a.pwOpts.Lower = !a.pwOpts.Lower
	case actNumbers:
		a.pwOpts.Numbers = !a.pwOpts.Numbers
	case actSymbols:
		a.pwOpts.Symbols = !a.pwOpts.Symbols
	case actSubmit:
		a.pwOut, a.pwErr = "", ""
		if v := a.inputValue(widget.Password); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				a.pwErr = "Please enter a valid length."
				return nil
			}
			a.pwOpts.Length = n
		}
		out, err := password.Generate(a.pwOpts)
		a.pwOut, a.pwErr = out, apperr.Message(err)
	default:
		return a.updateInput(m)
	}
	return nil
}

func (a *App) keyBirthday(act string) {
	snap := a.party.Snapshot()
	switch act {
	case actCandle:
		a.party.LightCandle(snap.Lit)
	case actBalloon:
		a.party.PopBalloon(snap.Popped)
	case actSubmit:
		a.party.Celebrate()
	case actReset:
		a.party.Reset()
	}
}

// Show opens the tab for id.
func (a *App) Show(id widget.ID) {
	if i := widget.Index(id); i >= 0 {
		a.switchTo(i)
	}
}
