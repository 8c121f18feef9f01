// Package celebrate drives the birthday card: candles to light, balloons to pop
// and confetti once both are done.
package celebrate

import (
	"sync"
	"time"

	"github.com/jask/widgetbox/internal/session"
)

const (
	Candles  = 5
	Balloons = 5

	// CandleInterval is the pace at which Celebrate lights the remaining candles.
	CandleInterval = 500 * time.Millisecond
)

// Snapshot is a copy of the card state.
type Snapshot struct {
	Lit         int
	Popped      int
	Celebrating bool
	Confetti    bool
}

// Party holds the card state. It is safe for concurrent use.
type Party struct {
	mu       sync.Mutex
	sched    session.Scheduler
	handle   session.Handle
	gen      uint64
	lit      int
	popped   int
	celebr   bool
	confetti bool
	closed   bool
	onChange func(Snapshot)
}

// New returns a card whose Celebrate ticks come from sched.
func New(sched session.Scheduler) *Party {
	if sched == nil {
		sched = session.NewTickerScheduler()
	}
	return &Party{sched: sched}
}

func (p *Party) OnChange(fn func(Snapshot)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *Party) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Party) snapshotLocked() Snapshot {
	return Snapshot{Lit: p.lit, Popped: p.popped, Celebrating: p.celebr, Confetti: p.confetti}
}

// LightCandle lights candle i if it is the next unlit one.
func (p *Party) LightCandle(i int) bool {
	return p.update(func() bool {
		if i != p.lit || p.lit >= Candles {
			return false
		}
		p.lit++
		return true
	})
}

// PopBalloon pops balloon i if it is the next one.
func (p *Party) PopBalloon(i int) bool {
	return p.update(func() bool {
		if i != p.popped || p.popped >= Balloons {
			return false
		}
		p.popped++
		return true
	})
}

// Celebrate shows confetti and lights the remaining candles one per interval.
func (p *Party) Celebrate() {
	p.update(func() bool {
		if p.celebr {
			return false
		}
		p.celebr = true
		p.confetti = true
		if p.lit < Candles {
			p.stopLocked()
			p.gen++
			gen := p.gen
			p.handle = p.sched.Every(CandleInterval, func() { p.step(gen) })
		}
		return true
	})
}

func (p *Party) step(gen uint64) {
	p.update(func() bool {
		if gen != p.gen || p.handle == nil {
			return false
		}
		if p.lit < Candles {
			p.lit++
		}
		if p.lit >= Candles {
			p.stopLocked()
		}
		return true
	})
}

// Reset puts the card back to its initial state.
func (p *Party) Reset() {
	p.update(func() bool {
		p.stopLocked()
		p.lit, p.popped = 0, 0
		p.celebr, p.confetti = false, false
		return true
	})
}

// Close stops any running celebration. Later calls are no-ops.
func (p *Party) Close() {
	p.mu.Lock()
	p.stopLocked()
	p.closed = true
	p.mu.Unlock()
}

func (p *Party) stopLocked() {
	if p.handle != nil {
		p.handle.Stop()
		p.handle = nil
	}
	p.gen++
}

func (p *Party) update(fn func() bool) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	changed := fn()
	if p.lit >= Candles && p.popped >= Balloons {
		p.confetti = true
	}
	snap := p.snapshotLocked()
	notify := p.onChange
	p.mu.Unlock()
	if changed && notify != nil {
		notify(snap)
	}
	return changed
}
