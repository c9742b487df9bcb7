// Package ticker provides the tick source backends. Both anchor to the
// absolute deadline and recompute the remaining time on every emission,
// so a stalled goroutine catches up correctly instead of resuming a stale
// countdown. Backends differ only in how they schedule wakeups.
package ticker

import (
	"sync"
	"time"

	"ritmo/internal/ports"
)

// runFunc drives one countdown epoch. It must return after emitting a
// done event or when cancel is closed. emit reports false when the epoch
// was cancelled before the event could be delivered.
type runFunc func(deadline time.Time, epoch int, cancel <-chan struct{}, emit func(ports.TickEvent) bool)

// source implements the epoch and teardown machinery shared by backends
type source struct {
	mu     sync.Mutex
	epoch  int
	cancel chan struct{}
	events chan ports.TickEvent
	run    runFunc
}

func newSource(run runFunc) *source {
	return &source{
		events: make(chan ports.TickEvent, 1),
		run:    run,
	}
}

// Start begins a new epoch, tearing down any previous one
func (s *source) Start(deadline time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		close(s.cancel)
	}
	s.epoch++
	s.cancel = make(chan struct{})

	epoch := s.epoch
	cancel := s.cancel
	emit := func(ev ports.TickEvent) bool {
		select {
		case s.events <- ev:
			return true
		case <-cancel:
			return false
		}
	}

	go s.run(deadline, epoch, cancel, emit)
	return epoch
}

// Stop tears down the current epoch; idempotent. The epoch is bumped so
// any event already buffered in the channel reads as stale.
func (s *source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
	s.epoch++
}

// Events is the stream of tick/done notifications
func (s *source) Events() <-chan ports.TickEvent {
	return s.events
}

// Close stops the source. The events channel is left open so late reads
// never panic; stale epochs keep buffered events harmless.
func (s *source) Close() {
	s.Stop()
}
