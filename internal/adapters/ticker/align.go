package ticker

import (
	"time"

	"ritmo/internal/domain"
	"ritmo/internal/ports"
)

// AlignSource emits ticks from single-shot timers armed for each whole-
// second boundary of the deadline. Wakeups land on the countdown edges
// themselves, so the displayed value flips exactly when a second elapses.
type AlignSource struct {
	*source
}

// Verify interface compliance at compile time
var _ ports.TickSource = (*AlignSource)(nil)

// NewAlignSource creates an AlignSource
func NewAlignSource() *AlignSource {
	a := &AlignSource{}
	a.source = newSource(func(deadline time.Time, epoch int, cancel <-chan struct{}, emit func(ports.TickEvent) bool) {
		for {
			now := time.Now()
			remaining := domain.RemainingSeconds(deadline, now)
			if remaining <= 0 {
				emit(ports.TickEvent{Epoch: epoch, Done: true})
				return
			}

			// Next boundary: the instant remaining drops by one
			next := deadline.Add(-time.Duration(remaining-1) * time.Second)
			timer := time.NewTimer(next.Sub(now))

			select {
			case <-cancel:
				timer.Stop()
				return
			case fired := <-timer.C:
				rem := domain.RemainingSeconds(deadline, fired)
				if rem <= 0 {
					emit(ports.TickEvent{Epoch: epoch, Done: true})
					return
				}
				if !emit(ports.TickEvent{Epoch: epoch, Remaining: rem}) {
					return
				}
			}
		}
	})
	return a
}
