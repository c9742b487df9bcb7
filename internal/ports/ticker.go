package ports

import "time"

// TickEvent is a remaining-time update from a TickSource. Events are
// tagged with the epoch of the Start call that produced them so consumers
// can discard messages that were in flight when the source was stopped.
type TickEvent struct {
	Epoch     int
	Remaining int
	Done      bool
}

// TickSource emits remaining-time updates at roughly 1 Hz, anchored to an
// absolute deadline rather than a decrementing counter, and exactly one
// done event when the deadline is reached. It never touches persistence
// or task state; it communicates with the state machine only through the
// events channel.
type TickSource interface {
	// Start begins emitting against the deadline, restarting if already
	// running. Returns the epoch that tags the resulting events.
	Start(deadline time.Time) int

	// Stop halts emission; idempotent. Events from earlier epochs may
	// still be buffered but carry stale epochs.
	Stop()

	// Events is the stream of tick/done notifications
	Events() <-chan TickEvent

	// Close releases the source's resources
	Close()
}
