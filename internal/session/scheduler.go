package session

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Stop never blocks and may be called
// more than once.
type Handle interface {
	Stop()
}

// Scheduler arms periodic callbacks.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// TickerScheduler runs each callback on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

func NewTickerScheduler() TickerScheduler { return TickerScheduler{} }

func (TickerScheduler) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{t: time.NewTicker(d), done: make(chan struct{})}
	go h.run(fn)
	return h
}

type tickerHandle struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func (h *tickerHandle) run(fn func()) {
	for {
		select {
		case <-h.done:
			return
		case <-h.t.C:
			fn()
		}
	}
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		h.t.Stop()
		close(h.done)
	})
}

// tickSource is the single tick subscription a session owns. Each arm or
// cancel moves to a new generation; callbacks from older generations are stale.
type tickSource struct {
	sched  Scheduler
	handle Handle
	gen    uint64
}

// arm cancels any previous handle before starting a new one.
func (t *tickSource) arm(d time.Duration, fn func(gen uint64)) {
	t.cancel()
	g := t.gen
	t.handle = t.sched.Every(d, func() { fn(g) })
}

func (t *tickSource) cancel() {
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
	t.gen++
}

func (t *tickSource) current(gen uint64) bool {
	return t.handle != nil && gen == t.gen
}

func (t *tickSource) active() bool { return t.handle != nil }

// ManualScheduler fires callbacks only when told to. It lets tests and
// scripted runs drive sessions tick by tick.
type ManualScheduler struct {
	mu     sync.Mutex
	next   int
	active map[int]func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{active: map[int]func(){}}
}

func (m *ManualScheduler) Every(_ time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.active[id] = fn
	return manualHandle{m: m, id: id}
}

// Fire delivers one tick to every live callback.
func (m *ManualScheduler) Fire() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.active))
	for i := 0; i < m.next; i++ {
		if fn, ok := m.active[i]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// FireN calls Fire n times.
func (m *ManualScheduler) FireN(n int) {
	for i := 0; i < n; i++ {
		m.Fire()
	}
}

// Active reports how many callbacks are currently armed.
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

type manualHandle struct {
	m  *ManualScheduler
	id int
}

func (h manualHandle) Stop() {
	h.m.mu.Lock()
	delete(h.m.active, h.id)
	h.m.mu.Unlock()
}
