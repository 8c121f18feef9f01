package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Guessing-game bounds. Targets are drawn from [TargetMin, TargetMax]; guesses
// on the wider [GuessMin, GuessMax] are accepted as attempts.
const (
	TargetMin = 1
	TargetMax = 100
	GuessMin  = 0
	GuessMax  = 100
)

// Feedback is the hint returned for an accepted guess.
type Feedback int

const (
	NoFeedback Feedback = iota
	TooLow
	TooHigh
	Correct
)

func (f Feedback) String() string {
	switch f {
	case TooLow:
		return "too low"
	case TooHigh:
		return "too high"
	case Correct:
		return "correct"
	default:
		return ""
	}
}

// Message is the sentence shown under the guess input.
func (f Feedback) Message() string {
	switch f {
	case TooLow:
		return "Too low! Try again."
	case TooHigh:
		return "Too high! Try again."
	case Correct:
		return "Correct! You guessed the number."
	default:
		return ""
	}
}

// BestScoreStore persists the lowest attempt count across sessions.
type BestScoreStore interface {
	LoadBest(ctx context.Context) (int, bool, error)
	SaveBest(ctx context.Context, attempts int) error
}

// ResultRecorder is implemented by stores that also keep a game history.
type ResultRecorder interface {
	RecordResult(ctx context.Context, r Result) error
}

// Result describes one finished game.
type Result struct {
	SessionID      string
	Target         int
	Attempts       int
	ElapsedSeconds int
	NewBest        bool
	FinishedAt     time.Time
}

// GuessSnapshot is a consistent copy of a guessing game's state. Target is
// zero until the game starts.
type GuessSnapshot struct {
	ID       string
	State    State
	Target   int
	Attempts int
	Elapsed  int
	Best     int
	HasBest  bool
	Feedback Feedback
	NewBest  bool
}

// GuessGame is the number-guessing game.
type GuessGame struct {
	mu       sync.Mutex
	ctx      context.Context
	id       string
	state    State
	target   int
	attempts int
	elapsed  int
	best     int
	hasBest  bool
	feedback Feedback
	newBest  bool
	closed   bool
	interval time.Duration
	ticker   tickSource
	rng      func(n int) int
	store    BestScoreStore
	onChange func(GuessSnapshot)
	log      *zap.Logger
}

// NewGuessGame returns an Idle game. The best score is read from store once,
// here; store may be nil.
func NewGuessGame(ctx context.Context, store BestScoreStore, opts ...Option) *GuessGame {
	o := buildOptions(opts)
	if o.rng == nil {
		o.rng = rand.Intn
	}
	g := &GuessGame{
		ctx:      ctx,
		id:       o.id,
		state:    Idle,
		interval: o.interval,
		ticker:   tickSource{sched: o.scheduler},
		rng:      o.rng,
		store:    store,
		log:      o.logger.With(zap.String("widget", "guess"), zap.String("session", o.id)),
	}
	if store != nil {
		best, ok, err := store.LoadBest(ctx)
		if err != nil {
			g.log.Warn("load best score", zap.Error(err))
		} else if ok {
			g.best, g.hasBest = best, true
		}
	}
	return g
}

// OnChange registers fn to run after every state change, including ticks.
func (g *GuessGame) OnChange(fn func(GuessSnapshot)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

func (g *GuessGame) Snapshot() GuessSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *GuessGame) snapshotLocked() GuessSnapshot {
	return GuessSnapshot{
		ID:       g.id,
		State:    g.state,
		Target:   g.target,
		Attempts: g.attempts,
		Elapsed:  g.elapsed,
		Best:     g.best,
		HasBest:  g.hasBest,
		Feedback: g.feedback,
		NewBest:  g.newBest,
	}
}

// Start draws a new target and begins the game.
func (g *GuessGame) Start() error {
	_, err := g.apply("start", func() (*Result, error) {
		if g.state != Idle {
			return nil, invalid(fmt.Sprintf("Game is %s, reset it to play again", g.state))
		}
		g.target = TargetMin + g.rng(TargetMax-TargetMin+1)
		g.attempts = 0
		g.elapsed = 0
		g.feedback = NoFeedback
		g.newBest = false
		g.state = Running
		g.ticker.arm(g.interval, g.deliver)
		return nil, nil
	})
	return err
}

// Guess parses raw and submits it. Invalid input leaves the game untouched.
func (g *GuessGame) Guess(raw string) (Feedback, error) {
	n, err := parseWhole(raw)
	if err != nil {
		if g.isClosed() {
			return NoFeedback, ErrClosed
		}
		return NoFeedback, err
	}
	return g.GuessValue(n)
}

// GuessValue submits a numeric guess.
func (g *GuessGame) GuessValue(n int) (Feedback, error) {
	var fb Feedback
	res, err := g.apply("guess", func() (*Result, error) {
		switch g.state {
		case Running:
		case Idle:
			return nil, invalid("Start the game first")
		case Paused:
			return nil, invalid("Game is paused, resume to keep guessing")
		default:
			return nil, invalid("Game over, try again")
		}
		if n < GuessMin || n > GuessMax {
			return nil, validation(fmt.Sprintf("Please enter a number between %d and %d", GuessMin, GuessMax))
		}
		g.attempts++
		switch {
		case n < g.target:
			g.feedback = TooLow
		case n > g.target:
			g.feedback = TooHigh
		default:
			g.feedback = Correct
		}
		fb = g.feedback
		if fb == Correct {
			return g.finishLocked(), nil
		}
		return nil, nil
	})
	if err != nil {
		return NoFeedback, err
	}
	if res != nil {
		g.persist(*res)
	}
	return fb, nil
}

// finishLocked ends the game and reports whether the score beat the best.
func (g *GuessGame) finishLocked() *Result {
	g.ticker.cancel()
	g.state = Finished
	if !g.hasBest || g.attempts < g.best {
		g.best, g.hasBest, g.newBest = g.attempts, true, true
	}
	return &Result{
		SessionID:      g.id,
		Target:         g.target,
		Attempts:       g.attempts,
		ElapsedSeconds: g.elapsed,
		NewBest:        g.newBest,
		FinishedAt:     time.Now().UTC(),
	}
}

func (g *GuessGame) persist(r Result) {
	if g.store == nil {
		return
	}
	if r.NewBest {
		if err := g.store.SaveBest(g.ctx, r.Attempts); err != nil {
			g.log.Warn("save best score", zap.Int("attempts", r.Attempts), zap.Error(err))
		} else {
			g.log.Info("new best score", zap.Int("attempts", r.Attempts))
		}
	}
	if rec, ok := g.store.(ResultRecorder); ok {
		if err := rec.RecordResult(g.ctx, r); err != nil {
			g.log.Warn("record result", zap.Error(err))
		}
	}
}

func (g *GuessGame) Pause() error {
	_, err := g.apply("pause", func() (*Result, error) {
		if g.state != Running {
			return nil, invalid("Game is not running")
		}
		g.ticker.cancel()
		g.state = Paused
		return nil, nil
	})
	return err
}

func (g *GuessGame) Resume() error {
	_, err := g.apply("resume", func() (*Result, error) {
		if g.state != Paused {
			return nil, invalid("Game is not paused")
		}
		g.state = Running
		g.ticker.arm(g.interval, g.deliver)
		return nil, nil
	})
	return err
}

// Reset is "try again": back to Idle with the attempt count cleared. The best
// score is kept.
func (g *GuessGame) Reset() error {
	_, err := g.apply("reset", func() (*Result, error) {
		g.ticker.cancel()
		g.state = Idle
		g.target = 0
		g.attempts = 0
		g.elapsed = 0
		g.feedback = NoFeedback
		g.newBest = false
		return nil, nil
	})
	return err
}

// Tick adds one second of play time to a running game.
func (g *GuessGame) Tick() {
	_, _ = g.apply("tick", func() (*Result, error) {
		if g.state == Running {
			g.elapsed++
		}
		return nil, nil
	})
}

func (g *GuessGame) deliver(gen uint64) {
	_, _ = g.apply("tick", func() (*Result, error) {
		if !g.ticker.current(gen) {
			return nil, errStale
		}
		if g.state == Running {
			g.elapsed++
		}
		return nil, nil
	})
}

// Close unmounts the game. Later events fail with ErrClosed.
func (g *GuessGame) Close() {
	g.mu.Lock()
	g.ticker.cancel()
	g.closed = true
	g.mu.Unlock()
}

func (g *GuessGame) isClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

func (g *GuessGame) apply(event string, fn func() (*Result, error)) (*Result, error) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil, ErrClosed
	}
	before := g.snapshotLocked()
	res, err := fn()
	after := g.snapshotLocked()
	notify := g.onChange
	g.mu.Unlock()

	if err == errStale {
		return nil, nil
	}
	if err != nil {
		g.log.Debug("event rejected", zap.String("event", event), zap.Stringer("state", before.State), zap.Error(err))
		return nil, err
	}
	if before.State != after.State {
		g.log.Debug("transition", zap.String("event", event), zap.Stringer("from", before.State), zap.Stringer("to", after.State))
	}
	if before != after && notify != nil {
		notify(after)
	}
	return res, nil
}
