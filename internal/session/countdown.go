package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/format"
)

// CountdownSnapshot is a consistent copy of a countdown's state.
type CountdownSnapshot struct {
	ID        string
	State     State
	Duration  int
	Remaining int
	Ticks     int
}

// Display renders the remaining time as mm:ss.
func (s CountdownSnapshot) Display() string { return format.Clock(s.Remaining) }

// Countdown counts a set number of seconds down to zero.
type Countdown struct {
	mu        sync.Mutex
	id        string
	state     State
	duration  int
	remaining int
	ticks     int
	closed    bool
	interval  time.Duration
	ticker    tickSource
	onChange  func(CountdownSnapshot)
	log       *zap.Logger
}

// NewCountdown returns an Idle countdown with nothing set.
func NewCountdown(opts ...Option) *Countdown {
	o := buildOptions(opts)
	return &Countdown{
		id:       o.id,
		state:    Idle,
		interval: o.interval,
		ticker:   tickSource{sched: o.scheduler},
		log:      o.logger.With(zap.String("widget", "countdown"), zap.String("session", o.id)),
	}
}

// OnChange registers fn to run after every state change, including ticks.
// fn runs without the session lock held and may read the session.
func (c *Countdown) OnChange(fn func(CountdownSnapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Countdown) Snapshot() CountdownSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Countdown) snapshotLocked() CountdownSnapshot {
	return CountdownSnapshot{
		ID:        c.id,
		State:     c.state,
		Duration:  c.duration,
		Remaining: c.remaining,
		Ticks:     c.ticks,
	}
}

// Set configures the duration in seconds. Any running tick source is
// cancelled and the session returns to Idle.
func (c *Countdown) Set(seconds int) error {
	return c.apply("set", func() error {
		if seconds <= 0 {
			return validation("Please enter a duration greater than zero")
		}
		c.ticker.cancel()
		c.duration = seconds
		c.remaining = seconds
		c.ticks = 0
		c.state = Idle
		return nil
	})
}

// SetInput parses a user supplied duration and calls Set.
func (c *Countdown) SetInput(raw string) error {
	n, err := parseWhole(raw)
	if err != nil {
		return err
	}
	return c.Set(n)
}

func (c *Countdown) Start() error {
	return c.apply("start", func() error {
		switch c.state {
		case Idle:
		case Paused:
			return invalid("Timer is paused, resume it instead")
		case Running:
			return invalid("Timer is already running")
		default:
			return invalid("Timer finished, reset or set a new duration")
		}
		if c.remaining <= 0 {
			return validation("Please set a duration first")
		}
		c.state = Running
		c.ticker.arm(c.interval, c.deliver)
		return nil
	})
}

func (c *Countdown) Pause() error {
	return c.apply("pause", func() error {
		if c.state != Running {
			return invalid("Timer is not running")
		}
		c.ticker.cancel()
		c.state = Paused
		return nil
	})
}

func (c *Countdown) Resume() error {
	return c.apply("resume", func() error {
		if c.state != Paused {
			return invalid("Timer is not paused")
		}
		c.state = Running
		c.ticker.arm(c.interval, c.deliver)
		return nil
	})
}

// Toggle starts, pauses or resumes depending on the current state, the way
// the single start/pause button behaves.
func (c *Countdown) Toggle() error {
	switch c.Snapshot().State {
	case Running:
		return c.Pause()
	case Paused:
		return c.Resume()
	default:
		return c.Start()
	}
}

// Reset stops the countdown and restores the last set duration.
func (c *Countdown) Reset() error {
	return c.apply("reset", func() error {
		c.ticker.cancel()
		c.state = Idle
		c.remaining = c.duration
		c.ticks = 0
		return nil
	})
}

// Tick advances a running countdown by one second. Ticks outside Running are ignored.
func (c *Countdown) Tick() {
	_ = c.apply("tick", func() error {
		c.tickLocked()
		return nil
	})
}

func (c *Countdown) deliver(gen uint64) {
	_ = c.apply("tick", func() error {
		if !c.ticker.current(gen) {
			return errStale
		}
		c.tickLocked()
		return nil
	})
}

func (c *Countdown) tickLocked() {
	if c.state != Running {
		return
	}
	c.remaining--
	c.ticks++
	if c.remaining <= 0 {
		c.remaining = 0
		c.ticker.cancel()
		c.state = Finished
		c.log.Debug("countdown finished", zap.Int("duration", c.duration))
	}
}

// Close unmounts the session. The tick source is cancelled and later events fail with ErrClosed.
func (c *Countdown) Close() {
	c.mu.Lock()
	c.ticker.cancel()
	c.closed = true
	c.mu.Unlock()
}

// apply runs fn under the lock and notifies the change listener afterwards.
func (c *Countdown) apply(event string, fn func() error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	before := c.snapshotLocked()
	err := fn()
	after := c.snapshotLocked()
	notify := c.onChange
	c.mu.Unlock()

	if err == errStale {
		return nil
	}
	if err != nil {
		c.log.Debug("event rejected", zap.String("event", event), zap.Stringer("state", before.State), zap.Error(err))
		return err
	}
	if before != after {
		if before.State != after.State {
			c.log.Debug("transition", zap.String("event", event), zap.Stringer("from", before.State), zap.Stringer("to", after.State))
		}
		if notify != nil {
			notify(after)
		}
	}
	return nil
}

func buildOptions(opts []Option) options {
	o := options{interval: TickInterval, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = NewTickerScheduler()
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return o
}
