package domain

import "time"

// Status represents the run state of the timer
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Completion describes the outcome of a finished (or skipped) phase
type Completion struct {
	CompletedPhase Phase
	NextPhase      Phase
	FocusCycles    int
	WasFocus       bool
}

// Timer is the session state machine. It owns the current phase, the
// remaining time, and the focus-cycle counter that routes breaks.
//
// While running, the absolute deadline is authoritative and the remaining
// seconds are a projection of it; transitioning away from Running freezes
// the projection and clears the deadline. Operations on invalid states are
// no-ops so rapid or duplicate input never corrupts the machine.
//
// All operations take the current time as an argument, never read the
// clock themselves, and never block; external effects (ticking,
// persistence, sound) live behind ports.
type Timer struct {
	phase       Phase
	durations   Durations
	remaining   int
	status      Status
	deadline    time.Time
	focusCycles int
}

// NewTimer creates an idle timer at the start of a focus phase
func NewTimer(durations Durations) *Timer {
	return &Timer{
		phase:     PhaseFocus,
		durations: durations,
		remaining: durations.Of(PhaseFocus),
		status:    StatusIdle,
	}
}

func (t *Timer) Phase() Phase       { return t.phase }
func (t *Timer) Status() Status     { return t.status }
func (t *Timer) FocusCycles() int   { return t.focusCycles }
func (t *Timer) Durations() Durations { return t.durations }

// PhaseDuration returns the full duration of the current phase in seconds
func (t *Timer) PhaseDuration() int {
	return t.durations.Of(t.phase)
}

// Deadline returns the absolute end time while running
func (t *Timer) Deadline() (time.Time, bool) {
	if t.status != StatusRunning {
		return time.Time{}, false
	}
	return t.deadline, true
}

// Remaining projects the remaining seconds from the deadline while
// running, and returns the frozen value otherwise.
func (t *Timer) Remaining(now time.Time) int {
	if t.status != StatusRunning {
		return t.remaining
	}
	return RemainingSeconds(t.deadline, now)
}

// PercentComplete returns display progress clamped to [0,100]
func (t *Timer) PercentComplete(now time.Time) float64 {
	duration := t.PhaseDuration()
	if duration <= 0 {
		return 0
	}
	pct := float64(duration-t.Remaining(now)) / float64(duration) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Start begins (or resumes) the countdown. Valid from Idle or Paused; a
// paused timer continues from its frozen remaining, not the full phase
// duration. Returns the deadline and whether the timer actually started.
func (t *Timer) Start(now time.Time) (time.Time, bool) {
	if t.status == StatusRunning {
		return time.Time{}, false
	}
	if t.remaining <= 0 {
		t.remaining = t.PhaseDuration()
	}
	t.deadline = now.Add(time.Duration(t.remaining) * time.Second)
	t.status = StatusRunning
	return t.deadline, true
}

// Pause freezes the countdown. Valid only from Running; a no-op otherwise.
func (t *Timer) Pause(now time.Time) bool {
	if t.status != StatusRunning {
		return false
	}
	t.remaining = RemainingSeconds(t.deadline, now)
	t.deadline = time.Time{}
	t.status = StatusPaused
	return true
}

// ObserveTick records a projection reported by the tick source. Ignored
// unless running; the deadline stays authoritative.
func (t *Timer) ObserveTick(remaining int) {
	if t.status != StatusRunning {
		return
	}
	if remaining < 0 {
		remaining = 0
	}
	t.remaining = remaining
}

// Complete runs the phase transition algorithm. A completed focus phase
// increments the cycle counter and routes to a long break on every
// FocusCycleLength-th completion (the modulo check happens before any
// reset, so the counter reads 4 for the whole long break). Completed
// breaks route back to focus with no side effects. The timer lands Idle
// at the full duration of the next phase.
func (t *Timer) Complete() Completion {
	completed := t.phase
	wasFocus := completed == PhaseFocus

	next := PhaseFocus
	if wasFocus {
		if t.focusCycles > 0 && t.focusCycles%FocusCycleLength == 0 {
			t.focusCycles = 0
		}
		t.focusCycles++
		if t.focusCycles%FocusCycleLength == 0 {
			next = PhaseLongBreak
		} else {
			next = PhaseShortBreak
		}
	}

	t.phase = next
	t.remaining = t.durations.Of(next)
	t.deadline = time.Time{}
	t.status = StatusIdle

	return Completion{
		CompletedPhase: completed,
		NextPhase:      next,
		FocusCycles:    t.focusCycles,
		WasFocus:       wasFocus,
	}
}

// Skip forces phase completion without waiting for the countdown. Valid
// from any status and equivalent to the tick source reaching zero.
func (t *Timer) Skip() Completion {
	return t.Complete()
}

// SwitchPhase is the manual phase override. It cancels any countdown,
// resets the remaining time to the target's full duration, and lands
// Idle. Switching to the current phase still resets it.
func (t *Timer) SwitchPhase(target Phase) {
	t.phase = target
	t.remaining = t.durations.Of(target)
	t.deadline = time.Time{}
	t.status = StatusIdle
}

// SetDurations applies new phase durations. An idle, never-started phase
// picks up its new full duration immediately; a running or paused
// countdown is never retroactively altered.
func (t *Timer) SetDurations(durations Durations) {
	t.durations = durations
	if t.status == StatusIdle {
		t.remaining = durations.Of(t.phase)
	}
}

// RemainingSeconds projects a deadline into whole seconds remaining,
// rounding up so the display never reads zero before the deadline.
func RemainingSeconds(deadline, now time.Time) int {
	left := deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}
