package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// CelebrationDuration is how long the completion banner stays visible
const CelebrationDuration = 5 * time.Second

const completionTimeout = 10 * time.Second

// CompletionResult is what a recorded focus completion reports back to
// the caller. The optimistic count is always present; the persisted task
// is nil when the write failed and the credit stayed local. Quote is the
// next motivational line, fetched alongside the post-write refresh.
type CompletionResult struct {
	Snapshot       domain.TaskSnapshot
	OptimisticDone int
	Persisted      *domain.Task
	Quote          *domain.Quote
}

// CompletionService orchestrates the effects of a finished focus phase:
// optimistic progress update, best-effort persistence keyed by the
// snapshot's identity, cache refresh, and the completion sound. A
// persistence failure is logged and swallowed; the session already
// happened, so the credit is never rolled back.
type CompletionService struct {
	updater  ports.TaskCompletionUpdater
	tasks    *TaskService
	quotes   *QuoteService
	sound    ports.SoundPlayer
	settings *SettingsService
}

// NewCompletionService creates a new CompletionService
func NewCompletionService(updater ports.TaskCompletionUpdater, tasks *TaskService, quotes *QuoteService, sound ports.SoundPlayer, settings *SettingsService) *CompletionService {
	return &CompletionService{
		updater:  updater,
		tasks:    tasks,
		quotes:   quotes,
		sound:    sound,
		settings: settings,
	}
}

// Record credits one completed session to the snapshot's task. The write
// targets the snapshot identity, not the current selection, so switching
// tasks mid-phase never redirects credit. The optimistic count lands in
// the task cache before the write and stays there if the write fails.
func (c *CompletionService) Record(ctx context.Context, snapshot domain.TaskSnapshot) CompletionResult {
	result := CompletionResult{
		Snapshot:       snapshot,
		OptimisticDone: snapshot.CompletedSessions + 1,
	}

	if cached, ok := c.tasks.Get(snapshot.ID); ok {
		cached.CompletedSessions = result.OptimisticDone
		c.tasks.ApplyCompletion(cached)
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	persisted, err := c.updater.UpdateCompletedSessions(ctx, snapshot.ID, result.OptimisticDone)
	if err != nil {
		logging.Logger.Error("Failed to persist completed session",
			"task_id", snapshot.ID,
			"completed", result.OptimisticDone,
			"error", err,
		)
		return result
	}

	result.Persisted = persisted
	c.tasks.ApplyCompletion(*persisted)

	// Re-sync the collection (another process may have moved tasks while
	// the session ran) and pull the next quote in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.tasks.Refresh(gctx) })
	g.Go(func() error {
		quote, err := c.quotes.Random(gctx)
		if err != nil {
			logging.Logger.Warn("Quote fetch after completion failed", "error", err)
			return nil
		}
		result.Quote = quote
		return nil
	})
	if err := g.Wait(); err != nil {
		logging.Logger.Warn("Task refresh after completion failed", "error", err)
	}

	logging.Logger.Info("Session recorded",
		"task_id", snapshot.ID,
		"completed", persisted.CompletedSessions,
		"target", persisted.TargetSessions,
	)
	return result
}

// PlayPhaseSound plays the cue for a finished phase, honoring the sound
// preference. Playback errors are logged and dropped.
func (c *CompletionService) PlayPhaseSound(completion domain.Completion) {
	if c.sound == nil || !c.settings.SoundEnabled() {
		return
	}

	event := "break"
	if completion.WasFocus {
		event = "complete"
	}
	if err := c.sound.PlaySoundForEvent(event); err != nil {
		logging.Logger.Warn("Failed to play completion sound", "event", event, "error", err)
	}
}
