// Package fetch tracks one in-flight request per widget.
package fetch

import (
	"sync"

	"github.com/jask/widgetbox/internal/apperr"
)

// State is what a widget renders: the last good value, whether a request is
// in flight, and the user-visible error of the last failure.
type State[T any] struct {
	Value   T
	HasData bool
	Loading bool
	Err     string
}

// Slot holds a widget's fetch state. Only the completion of the most recent
// request is applied, and nothing is applied once the widget is unmounted.
type Slot[T any] struct {
	mu      sync.Mutex
	state   State[T]
	gen     uint64
	stopped bool
}

// Begin marks a new request in flight and returns its generation. The
// previous error is cleared; the previous value stays visible until the
// request completes.
func (s *Slot[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state.Loading = true
	s.state.Err = ""
	return s.gen
}

// Complete applies the result of request gen. It reports false and leaves the
// slot alone when gen is stale or the slot is unmounted. A failure clears the
// previous value.
func (s *Slot[T]) Complete(gen uint64, v T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || gen != s.gen {
		return false
	}
	s.state.Loading = false
	if err != nil {
		var zero T
		s.state.Value, s.state.HasData = zero, false
		s.state.Err = apperr.Message(err)
		return true
	}
	s.state.Value, s.state.HasData = v, true
	s.state.Err = ""
	return true
}

// Fail records an error that happened before any request was sent, such as
// invalid input. It supersedes any request in flight.
func (s *Slot[T]) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.gen++
	s.state.Loading = false
	s.state.Err = apperr.Message(err)
}

// Unmount drops every pending and future completion.
func (s *Slot[T]) Unmount() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

func (s *Slot[T]) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped
}

func (s *Slot[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
