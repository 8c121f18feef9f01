package tui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/config"
	"github.com/jask/widgetbox/internal/joke"
	"github.com/jask/widgetbox/internal/session"
	"github.com/jask/widgetbox/internal/weather"
	"github.com/jask/widgetbox/internal/widget"
)

func newTestApp(t *testing.T, deps Deps) (*App, *session.ManualScheduler) {
	t.Helper()
	sched := session.NewManualScheduler()
	deps.Scheduler = sched
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Date(2024, 5, 1, 14, 5, 9, 0, time.UTC) }
	}
	cfg := config.Config{UI: config.UIConfig{Theme: config.ThemeDark, Clock24h: true, CurrencySymbol: "$"}}
	cfg.Password.Length = 16
	a := New(context.Background(), cfg, deps)
	t.Cleanup(a.Close)
	return a, sched
}

func press(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func open(t *testing.T, a *App, id widget.ID) {
	t.Helper()
	i := widget.Index(id)
	require.GreaterOrEqual(t, i, 0)
	for a.current() != id {
		press(a, tea.KeyTab)
	}
	require.Equal(t, i, a.active)
}

func TestTabsWrapAround(t *testing.T) {
	a, _ := newTestApp(t, Deps{})
	require.Equal(t, widget.Countdown, a.current())
	press(a, tea.KeyShiftTab)
	require.Equal(t, widget.Password, a.current())
	press(a, tea.KeyTab)
	require.Equal(t, widget.Countdown, a.current())
	require.Contains(t, a.View(), "Countdown")
}

func TestCountdownPane(t *testing.T) {
	a, sched := newTestApp(t, Deps{})
	typeText(a, "5")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "00:05")

	press(a, tea.KeyEnter)
	require.Equal(t, session.Running, a.countdown.Snapshot().State)
	sched.FireN(2)
	require.Contains(t, a.View(), "00:03")

	press(a, tea.KeyEnter) // pause
	sched.FireN(3)
	require.Contains(t, a.View(), "00:03")

	press(a, tea.KeyEnter) // resume
	sched.FireN(3)
	view := a.View()
	require.Contains(t, view, "00:00")
	require.Contains(t, view, "Time's up!")

	typeText(a, "abc")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "Please enter a valid number")
}

func TestGuessPane(t *testing.T) {
	a, sched := newTestApp(t, Deps{})
	open(t, a, widget.Guess)
	require.Contains(t, a.View(), "between 1 and 100")

	press(a, tea.KeyEnter)
	snap := a.guess.Snapshot()
	require.Equal(t, session.Running, snap.State)

	typeText(a, "x")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "Please enter a valid number")

	sched.Fire()
	press(a, tea.KeyCtrlP)
	require.Equal(t, session.Paused, a.guess.Snapshot().State)
	press(a, tea.KeyCtrlP)

	a.clearInput(widget.Guess)
	typeText(a, fmt.Sprint(snap.Target))
	press(a, tea.KeyEnter)
	view := a.View()
	require.Contains(t, view, "Game over!")
	require.Contains(t, view, "New best score!")
	require.Contains(t, view, "Best: 1")
	require.Contains(t, view, "Time: 00:01")

	press(a, tea.KeyEnter) // try again
	require.Equal(t, session.Running, a.guess.Snapshot().State)
	require.Zero(t, a.guess.Snapshot().Attempts)
}

func TestWeatherPane(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "London" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"name":"London","sys":{"country":"GB"},"main":{"temp":21.2,"pressure":1015,"humidity":40},"weather":[{"description":"sunny","icon":"01d"}],"wind":{"speed":3,"deg":90},"coord":{"lat":51.5,"lon":-0.12}}`))
	}))
	defer srv.Close()

	a, _ := newTestApp(t, Deps{Weather: weather.NewClient(srv.URL, "key", time.Second, nil)})
	open(t, a, widget.Weather)

	require.Nil(t, press(a, tea.KeyEnter))
	require.Contains(t, a.View(), "Please enter a valid location")

	typeText(a, "London")
	cmd := press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.Contains(t, a.View(), "Loading...")
	a.Update(cmd())
	view := a.View()
	require.Contains(t, view, "London, GB")
	require.Contains(t, view, "It's a pleasant 21°C")
	require.Contains(t, view, "It's a beautiful sunny day!")
	require.Contains(t, view, "Day Time in London, GB")
	require.Contains(t, view, "A light breeze from the East.")

	a.clearInput(widget.Weather)
	typeText(a, "Atlantis")
	cmd = press(a, tea.KeyEnter)
	a.Update(cmd())
	view = a.View()
	require.Contains(t, view, "City not found!. Please try again")
	require.NotContains(t, view, "London, GB")
}

func TestJokeIgnoredAfterClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"setup":"Knock knock","punchline":"Who's there?"}`))
	}))
	defer srv.Close()

	a, _ := newTestApp(t, Deps{Joke: joke.NewClient(srv.URL, time.Second, nil)})
	open(t, a, widget.Joke)

	cmd := a.fetchJokeCmd()
	a.Update(cmd())
	require.Contains(t, a.View(), "Knock knock | 👉 Who's there?")

	cmd = press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	_, quit := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, quit)
	a.Update(cmd())
	require.True(t, a.joke.State().Loading, "completion after unmount is dropped")
}

func TestCalcColorTipPasswordPanes(t *testing.T) {
	a, _ := newTestApp(t, Deps{})

	open(t, a, widget.Calc)
	typeText(a, "7 / 2")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "3.50")
	a.clearInput(widget.Calc)
	typeText(a, "7 / 0")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "Division by zero is not allowed")

	open(t, a, widget.Color)
	typeText(a, "#4ecdc4")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "#4ecdc4")
	press(a, tea.KeyCtrlF)
	require.Contains(t, a.View(), "rgb(78, 205, 196)")
	press(a, tea.KeyCtrlF)
	require.Contains(t, a.View(), "hsl(176, 56%, 55%)")

	open(t, a, widget.Tip)
	typeText(a, "100")
	press(a, tea.KeyDown)
	press(a, tea.KeyCtrlP)
	press(a, tea.KeyDown)
	typeText(a, "2")
	press(a, tea.KeyEnter)
	view := a.View()
	require.Contains(t, view, "$5.00")
	require.Contains(t, view, "$55.00")

	open(t, a, widget.Password)
	press(a, tea.KeyEnter)
	require.Len(t, a.pwOut, 16)
	typeText(a, "40")
	press(a, tea.KeyEnter)
	require.Contains(t, a.View(), "Password length must be between 8 and 32")
}

func TestClockAndBirthdayPanes(t *testing.T) {
	a, sched := newTestApp(t, Deps{})

	open(t, a, widget.Clock)
	require.Contains(t, a.View(), "14 : 05 : 09")
	press(a, tea.KeyEnter)
	view := a.View()
	require.Contains(t, view, "02 : 05 : 09")
	require.Contains(t, view, "PM")

	open(t, a, widget.Birthday)
	typeText(a, "c")
	require.Equal(t, 1, a.party.Snapshot().Lit)
	press(a, tea.KeyEnter)
	sched.FireN(10)
	require.Equal(t, 5, a.party.Snapshot().Lit)
	require.Contains(t, a.View(), "🎉")
}

func TestThemeToggleSaves(t *testing.T) {
	var saved []config.Config
	a, _ := newTestApp(t, Deps{SaveConfig: func(c config.Config) error {
		saved = append(saved, c)
		return nil
	}})
	cmd := press(a, tea.KeyCtrlT)
	require.Equal(t, config.ThemeLight, a.theme.Name)
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Len(t, saved, 1)
	require.Equal(t, config.ThemeLight, saved[0].UI.Theme)
	require.Equal(t, "theme saved", a.status)

	press(a, tea.KeyCtrlT)
	require.Equal(t, config.ThemeDark, a.theme.Name)
}

func TestSessionChangesWakeTheUI(t *testing.T) {
	a, sched := newTestApp(t, Deps{})
	typeText(a, "3")
	press(a, tea.KeyEnter)
	press(a, tea.KeyEnter)
	sched.Fire()

	msg := a.waitForUpdate()()
	require.IsType(t, refreshMsg{}, msg)
	_, cmd := a.Update(msg)
	require.NotNil(t, cmd, "the app keeps listening")
}

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestThemesUseValidHex(t *testing.T) {
	for _, th := range []Theme{Mocha, Latte} {
		for _, c := range th.Colors() {
			require.Regexp(t, hexColor, strings.ToLower(string(c)), th.Name)
		}
		require.Len(t, th.Party, 5)
	}
	require.Equal(t, Latte, ThemeFor("LIGHT"))
	require.Equal(t, Mocha, ThemeFor("unknown"))
}
