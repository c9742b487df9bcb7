package services

import (
	"sync"
	"time"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// TickOutcome is what HandleTick reports to the caller. Completion is
// non-nil only when this tick finished the phase, and Credit is non-nil
// only when a focus completion carried a bound snapshot. The caller
// dispatches Credit to CompletionService.Record off the event loop;
// persistence is never awaited here.
type TickOutcome struct {
	Remaining  int
	Completion *domain.Completion
	Credit     *domain.TaskSnapshot
}

// TimerService drives the session state machine. It binds the selected
// task to a snapshot when a focus phase starts, forwards tick events into
// the machine after epoch filtering, and reports focus completions for
// the caller to record.
//
// The service is not safe for concurrent use; the TUI event loop and the
// CLI both call it from a single goroutine.
type TimerService struct {
	timer      *domain.Timer
	ticks      ports.TickSource
	completion *CompletionService
	settings   *SettingsService

	epoch    int
	snapshot *domain.TaskSnapshot

	// guards snapshot reads from the completion goroutine
	mu sync.Mutex
}

// NewTimerService creates a TimerService with an idle timer at the given
// durations
func NewTimerService(durations domain.Durations, ticks ports.TickSource, completion *CompletionService, settings *SettingsService) *TimerService {
	return &TimerService{
		timer:      domain.NewTimer(durations),
		ticks:      ticks,
		completion: completion,
		settings:   settings,
	}
}

// Timer exposes the state machine for display projections
func (s *TimerService) Timer() *domain.Timer {
	return s.timer
}

// Events is the tick stream to pump into the caller's event loop
func (s *TimerService) Events() <-chan ports.TickEvent {
	return s.ticks.Events()
}

// Snapshot returns the bound task snapshot, if any
func (s *TimerService) Snapshot() *domain.TaskSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil
	}
	snap := *s.snapshot
	return &snap
}

// Toggle starts or pauses the countdown. Starting a focus phase from Idle
// binds the selected task; resuming from Paused keeps the existing
// binding. A nil selection starts an uncredited session.
func (s *TimerService) Toggle(now time.Time, selected *domain.Task) {
	if s.timer.Status() == domain.StatusRunning {
		if s.timer.Pause(now) {
			s.stopTicks()
			logging.Logger.Debug("Timer paused", "remaining", s.timer.Remaining(now))
		}
		return
	}

	fromIdle := s.timer.Status() == domain.StatusIdle
	deadline, started := s.timer.Start(now)
	if !started {
		return
	}

	if fromIdle && s.timer.Phase() == domain.PhaseFocus {
		s.bindSnapshot(selected)
	}

	s.epoch = s.ticks.Start(deadline)
	logging.Logger.Debug("Timer started",
		"phase", s.timer.Phase(),
		"deadline", deadline,
		"epoch", s.epoch,
	)
}

// Skip ends the current phase immediately, with full completion effects
func (s *TimerService) Skip() TickOutcome {
	s.stopTicks()
	completion := s.timer.Skip()
	return s.finishPhase(completion)
}

// SwitchPhase is the manual phase override: no completion effects, no
// cycle advance, and the snapshot is dropped when leaving focus.
func (s *TimerService) SwitchPhase(target domain.Phase) {
	s.stopTicks()
	s.timer.SwitchPhase(target)
	if target != domain.PhaseFocus {
		s.clearSnapshot()
	}
	logging.Logger.Debug("Phase switched", "phase", target)
}

// HandleTick folds a tick event into the machine. Events from stale
// epochs are discarded so a stop-then-start race never double-completes.
func (s *TimerService) HandleTick(ev ports.TickEvent) TickOutcome {
	if ev.Epoch != s.epoch {
		logging.Logger.Debug("Discarding stale tick", "epoch", ev.Epoch, "current", s.epoch)
		return TickOutcome{Remaining: s.timer.Remaining(time.Now())}
	}

	s.timer.ObserveTick(ev.Remaining)
	if !ev.Done {
		return TickOutcome{Remaining: ev.Remaining}
	}

	s.stopTicks()
	completion := s.timer.Complete()
	return s.finishPhase(completion)
}

// ApplyDurations pushes resolved durations into the machine
func (s *TimerService) ApplyDurations(durations domain.Durations) {
	s.timer.SetDurations(durations)
}

// Close stops ticking and releases the tick source
func (s *TimerService) Close() {
	s.ticks.Close()
}

// stopTicks halts the source AND invalidates the service-side epoch.
// Source epochs start at 1, so zero matches nothing: a tick or done
// event already buffered in the channel when we stopped can never be
// folded into the machine afterwards.
func (s *TimerService) stopTicks() {
	s.ticks.Stop()
	s.epoch = 0
}

func (s *TimerService) finishPhase(completion domain.Completion) TickOutcome {
	outcome := TickOutcome{
		Remaining:  s.timer.Remaining(time.Now()),
		Completion: &completion,
	}

	s.completion.PlayPhaseSound(completion)

	if completion.WasFocus {
		outcome.Credit = s.Snapshot()
	}
	// The binding never outlives the focus phase it was taken for.
	s.clearSnapshot()

	logging.Logger.Info("Phase completed",
		"phase", completion.CompletedPhase,
		"next", completion.NextPhase,
		"focus_cycles", completion.FocusCycles,
	)
	return outcome
}

func (s *TimerService) bindSnapshot(selected *domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if selected == nil {
		s.snapshot = nil
		return
	}
	snap := selected.Snapshot()
	s.snapshot = &snap
}

func (s *TimerService) clearSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}
