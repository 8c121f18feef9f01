// Package session implements the turn and timer state machines behind the
// countdown and guessing-game widgets.
//
// A session moves between Idle, Running, Paused and Finished only through its
// event methods. While Running it owns at most one periodic tick source; every
// transition out of Running cancels it, and a tick that arrives after the
// cancel is dropped. Sessions are safe for concurrent use: ticks arrive on the
// scheduler's goroutine while user events come from the UI.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/apperr"
)

// State is the lifecycle state of a session.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInvalidTransition is wrapped by errors returned for events the current
	// state does not accept.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrClosed is returned by events delivered after Close.
	ErrClosed = errors.New("session closed")
)

func invalid(msg string) error {
	return &apperr.Error{Kind: apperr.KindValidation, Msg: msg, Err: ErrInvalidTransition}
}

// TickInterval is the period of the countdown and elapsed-time ticks.
const TickInterval = time.Second

type options struct {
	scheduler Scheduler
	interval  time.Duration
	logger    *zap.Logger
	rng       func(n int) int
	id        string
}

// Option configures a session.
type Option func(*options)

// WithScheduler replaces the default time.Ticker based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithInterval overrides TickInterval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRand sets the source used to draw guessing-game targets. fn(n) must
// return a value in [0, n).
func WithRand(fn func(n int) int) Option {
	return func(o *options) { o.rng = fn }
}

// WithID fixes the session id instead of generating one.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// errStale marks a tick from a cancelled generation; it never leaves the package.
var errStale = errors.New("stale tick")

func validation(msg string) error { return apperr.Validation(msg) }

// parseWhole parses a whole number typed by the user.
func parseWhole(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, validation("Please enter a valid number")
	}
	return n, nil
}
