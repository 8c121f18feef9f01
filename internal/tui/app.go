package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/celebrate"
	"github.com/jask/widgetbox/internal/color"
	"github.com/jask/widgetbox/internal/config"
	"github.com/jask/widgetbox/internal/database"
	"github.com/jask/widgetbox/internal/database/repository"
	"github.com/jask/widgetbox/internal/fetch"
	"github.com/jask/widgetbox/internal/joke"
	"github.com/jask/widgetbox/internal/password"
	"github.com/jask/widgetbox/internal/service"
	"github.com/jask/widgetbox/internal/session"
	"github.com/jask/widgetbox/internal/tip"
	"github.com/jask/widgetbox/internal/weather"
	"github.com/jask/widgetbox/internal/widget"
)

// Deps are the collaborators the App drives. Any of them may be nil; the
// widgets that need a missing one report it instead of failing.
type Deps struct {
	Scoreboard  *service.Scoreboard
	Maintenance *service.MaintenanceService
	KV          *repository.KVRepo
	Weather     *weather.Client
	Joke        *joke.Client
	Scheduler   session.Scheduler
	Logger      *zap.Logger
	Now         func() time.Time
	SaveConfig  func(config.Config) error
}

// App is the bubbletea model hosting every widget, one tab each.
type App struct {
	ctx     context.Context
	cfg     config.Config
	deps    Deps
	log     *zap.Logger
	theme   Theme
	st      styles
	widgets []widget.Widget
	keys    *keyRegistry
	active  int
	status  string
	width   int
	updates chan tea.Msg
	closed  bool

	countdown    *session.Countdown
	countdownErr string

	guess    *session.GuessGame
	guessErr string

	party *celebrate.Party

	weather fetch.Slot[weather.Report]
	joke    fetch.Slot[joke.Joke]

	inputs map[widget.ID]textinput.Model

	calcResult string
	calcErr    string

	colorFormat color.Format
	colorHex    string
	colorOut    string
	colorErr    string

	tipInputs [3]textinput.Model
	tipFocus  int
	presets   []float64
	presetIdx int
	tipResult *tip.Result
	tipErr    string

	pwOpts   password.Options
	pwOut    string
	pwErr    string
	clock24  bool
	now      time.Time
	resetAsk bool
}

// messages
type (
	statusMsg  string
	errMsg     struct{ error }
	refreshMsg struct{}
	clockMsg   time.Time
	presetsMsg []float64
	weatherMsg struct {
		gen    uint64
		report weather.Report
		err    error
	}
	jokeMsg struct {
		gen  uint64
		joke joke.Joke
		err  error
	}
)

// New builds the App and mounts every widget.
func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = session.NewTickerScheduler()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	theme := ThemeFor(cfg.UI.Theme)
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		deps:    deps,
		log:     deps.Logger.Named("tui"),
		theme:   theme,
		st:      newStyles(theme),
		widgets: widget.All(),
		keys:    newKeyRegistry(defaultKeyBindings()),
		updates: make(chan tea.Msg, 16),
		inputs:  map[widget.ID]textinput.Model{},
		presets: append([]float64(nil), tip.Presets...),
		clock24: cfg.UI.Clock24h,
		now:     deps.Now(),
	}

	opts := []session.Option{session.WithScheduler(deps.Scheduler), session.WithLogger(deps.Logger)}
	a.countdown = session.NewCountdown(opts...)
	a.countdown.OnChange(func(session.CountdownSnapshot) { a.refresh() })

	var store session.BestScoreStore
	if deps.Scoreboard != nil {
		store = deps.Scoreboard
	}
	a.guess = session.NewGuessGame(ctx, store, opts...)
	a.guess.OnChange(func(session.GuessSnapshot) { a.refresh() })

	a.party = celebrate.New(deps.Scheduler)
	a.party.OnChange(func(celebrate.Snapshot) { a.refresh() })

	a.pwOpts = password.DefaultOptions()
	if cfg.Password.Length > 0 {
		a.pwOpts.Length = cfg.Password.Length
	}
	a.pwOpts.Symbols = cfg.Password.Symbols

	for id, placeholder := range map[widget.ID]string{
		widget.Countdown: "seconds",
		widget.Guess:     "0-100",
		widget.Weather:   "city",
		widget.Calc:      "12 + 3",
		widget.Color:     "#4ecdc4",
		widget.Password:  fmt.Sprintf("length %d-%d", password.MinLength, password.MaxLength),
	} {
		a.inputs[id] = newInput(placeholder)
	}
	for i, p := range []string{"bill", "tip %", "people"} {
		a.tipInputs[i] = newInput(p)
	}
	a.focus()
	return a
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 24
	return ti
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForUpdate(), a.fetchJokeCmd(), a.loadPresetsCmd(), clockTick(), textinput.Blink)
}

// refresh wakes the UI after a session changed on the tick goroutine. A
// pending wake-up already covers this one, so a full buffer is fine.
func (a *App) refresh() {
	select {
	case a.updates <- refreshMsg{}:
	default:
	}
}

func (a *App) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-a.updates:
			return msg
		case <-a.ctx.Done():
			return nil
		}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (a *App) current() widget.ID { return a.widgets[a.active].ID }

// Close unmounts every widget: tick sources stop and in-flight fetches are
// ignored when they land.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.countdown.Close()
	a.guess.Close()
	a.party.Close()
	a.weather.Unmount()
	a.joke.Unmount()
}

func (a *App) fetchJokeCmd() tea.Cmd {
	if a.deps.Joke == nil {
		a.joke.Fail(fmt.Errorf("joke API not configured"))
		return nil
	}
	gen := a.joke.Begin()
	client := a.deps.Joke
	return func() tea.Msg {
		j, err := client.Random(a.ctx)
		return jokeMsg{gen: gen, joke: j, err: err}
	}
}

func (a *App) fetchWeatherCmd(city string) tea.Cmd {
	if err := weather.ValidateCity(city); err != nil {
		a.weather.Fail(err)
		return nil
	}
	if a.deps.Weather == nil {
		a.weather.Fail(fmt.Errorf("weather API not configured"))
		return nil
	}
	gen := a.weather.Begin()
	client := a.deps.Weather
	return func() tea.Msg {
		r, err := client.Current(a.ctx, city)
		return weatherMsg{gen: gen, report: r, err: err}
	}
}

func (a *App) loadPresetsCmd() tea.Cmd {
	if a.deps.KV == nil {
		return nil
	}
	kv := a.deps.KV
	return func() tea.Msg {
		raw, ok, err := kv.Get(a.ctx, database.KeyTipPresets)
		if err != nil {
			return errMsg{err}
		}
		if !ok {
			return nil
		}
		p, err := tip.ParsePresets(raw)
		if err != nil {
			return errMsg{err}
		}
		return presetsMsg(p)
	}
}

func (a *App) saveThemeCmd() tea.Cmd {
	if a.deps.SaveConfig == nil {
		return nil
	}
	cfg := a.cfg
	save := a.deps.SaveConfig
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("theme saved")
	}
}

func (a *App) resetCmd() tea.Cmd {
	if a.deps.Maintenance == nil {
		return nil
	}
	m := a.deps.Maintenance
	return func() tea.Msg {
		if err := m.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("stored data reset")
	}
}
