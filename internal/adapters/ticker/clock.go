package ticker

import (
	"time"

	"ritmo/internal/domain"
	"ritmo/internal/ports"
)

// ClockSource emits ticks from a fixed-interval ticker on a dedicated
// goroutine. Every wakeup recomputes the remaining seconds from the
// deadline, so interval jitter never accumulates into drift.
type ClockSource struct {
	*source
}

// Verify interface compliance at compile time
var _ ports.TickSource = (*ClockSource)(nil)

// NewClockSource creates a ClockSource emitting at the given interval.
// Production callers pass time.Second; tests shrink it.
func NewClockSource(interval time.Duration) *ClockSource {
	if interval <= 0 {
		interval = time.Second
	}
	c := &ClockSource{}
	c.source = newSource(func(deadline time.Time, epoch int, cancel <-chan struct{}, emit func(ports.TickEvent) bool) {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-cancel:
				return
			case now := <-t.C:
				remaining := domain.RemainingSeconds(deadline, now)
				if remaining <= 0 {
					emit(ports.TickEvent{Epoch: epoch, Done: true})
					return
				}
				if !emit(ports.TickEvent{Epoch: epoch, Remaining: remaining}) {
					return
				}
			}
		}
	})
	return c
}
