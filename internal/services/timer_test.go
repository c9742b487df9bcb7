package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritmo/internal/config"
	"ritmo/internal/domain"
	"ritmo/internal/ports"
)

type timerFixture struct {
	service    *TimerService
	completion *CompletionService
	ticks      *fakeTickSource
	repo       *fakeTaskRepo
	tasks      *TaskService
	sound      *fakeSoundPlayer
}

func newTimerFixture(t *testing.T, seed ...domain.Task) *timerFixture {
	t.Helper()
	t.Setenv("RITMO_HOME", t.TempDir())

	repo := newFakeTaskRepo(seed...)
	tasks := NewTaskService(repo)
	require.NoError(t, tasks.Refresh(context.Background()))

	identity := &fakeIdentity{}
	settings := NewSettingsService(config.NewStore(&config.Settings{}), identity)
	quotes := NewQuoteService(newFakeQuoteRepo(), identity)
	sound := &fakeSoundPlayer{}
	completion := NewCompletionService(repo, tasks, quotes, sound, settings)
	ticks := newFakeTickSource()

	return &timerFixture{
		service:    NewTimerService(domain.DefaultDurations(), ticks, completion, settings),
		completion: completion,
		ticks:      ticks,
		repo:       repo,
		tasks:      tasks,
		sound:      sound,
	}
}

func TestToggleStartsAndBindsSnapshot(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "write tests", TargetSessions: 3, IsToday: true}
	f := newTimerFixture(t, task)

	now := time.Now()
	f.service.Toggle(now, &task)

	assert.Equal(t, domain.StatusRunning, f.service.Timer().Status())
	assert.Equal(t, 1, f.ticks.epoch)
	assert.WithinDuration(t, now.Add(25*time.Minute), f.ticks.deadline, time.Second)

	snap := f.service.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "t1", snap.ID)
	assert.Equal(t, 0, snap.CompletedSessions)
}

func TestToggleWithoutTaskRunsUncredited(t *testing.T) {
	f := newTimerFixture(t)

	f.service.Toggle(time.Now(), nil)
	assert.Nil(t, f.service.Snapshot())

	outcome := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})
	require.NotNil(t, outcome.Completion)
	assert.Nil(t, outcome.Credit)
	assert.Empty(t, f.repo.completionCalls)
}

func TestPauseResumeKeepsBinding(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "deep work", TargetSessions: 1}
	other := domain.Task{ID: "t2", Description: "other", TargetSessions: 1}
	f := newTimerFixture(t, task, other)

	now := time.Now()
	f.service.Toggle(now, &task)
	f.service.Toggle(now.Add(3*time.Second), &other) // pause
	assert.Equal(t, domain.StatusPaused, f.service.Timer().Status())
	assert.Equal(t, 1, f.ticks.stops)

	// Resuming with a different selection must NOT rebind.
	f.service.Toggle(now.Add(10*time.Second), &other)
	snap := f.service.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "t1", snap.ID)
}

func TestSnapshotImmutableToMidPhaseEdits(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "original", TargetSessions: 2}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task)

	task.Description = "renamed mid-phase"
	task.CompletedSessions = 99

	snap := f.service.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "original", snap.Description)
	assert.Equal(t, 0, snap.CompletedSessions)
}

func TestFocusCompletionReportsCredit(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 4, CompletedSessions: 1}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task)
	outcome := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})

	require.NotNil(t, outcome.Completion)
	assert.True(t, outcome.Completion.WasFocus)
	assert.Equal(t, domain.PhaseShortBreak, outcome.Completion.NextPhase)

	// HandleTick only reports the credit; nothing has touched the
	// repository yet, so a slow write can never stall the tick path.
	require.NotNil(t, outcome.Credit)
	assert.Equal(t, "t1", outcome.Credit.ID)
	assert.Empty(t, f.repo.completionCalls)

	result := f.completion.Record(context.Background(), *outcome.Credit)
	assert.Equal(t, 2, result.OptimisticDone)
	require.NotNil(t, result.Persisted)
	assert.Equal(t, 2, result.Persisted.CompletedSessions)
	assert.Equal(t, []string{"t1"}, f.repo.completionCalls)

	// Snapshot is consumed; the break and the next focus need a fresh
	// selection.
	assert.Nil(t, f.service.Snapshot())
	assert.Equal(t, []string{"complete"}, f.sound.events)
}

func TestStaleEpochDiscarded(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 1}
	f := newTimerFixture(t, task)

	now := time.Now()
	f.service.Toggle(now, &task)                // epoch 1
	f.service.Toggle(now, nil)                  // pause
	f.service.Toggle(now.Add(time.Second), nil) // epoch 2

	// A done event buffered from the first run must not complete the phase.
	outcome := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})
	assert.Nil(t, outcome.Completion)
	assert.Equal(t, domain.StatusRunning, f.service.Timer().Status())
}

func TestStaleDoneAfterSkipDiscarded(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 1}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task) // epoch 1
	outcome := f.service.Skip()
	require.NotNil(t, outcome.Completion)
	assert.Equal(t, domain.PhaseShortBreak, f.service.Timer().Phase())

	// The source buffered a done event before Skip stopped it. It still
	// carries epoch 1, and no new Start has happened, so it must fall on
	// the floor instead of completing the short break.
	stale := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})
	assert.Nil(t, stale.Completion)
	assert.Equal(t, domain.PhaseShortBreak, f.service.Timer().Phase())
	assert.Equal(t, domain.StatusIdle, f.service.Timer().Status())
}

func TestStaleDoneAfterPauseDiscarded(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 1}
	f := newTimerFixture(t, task)

	now := time.Now()
	f.service.Toggle(now, &task)                // epoch 1
	f.service.Toggle(now.Add(time.Second), nil) // pause

	stale := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})
	assert.Nil(t, stale.Completion)
	assert.Equal(t, domain.StatusPaused, f.service.Timer().Status())
	assert.Equal(t, domain.PhaseFocus, f.service.Timer().Phase())
}

func TestStaleDoneAfterSwitchPhaseDiscarded(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 1}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task) // epoch 1
	f.service.SwitchPhase(domain.PhaseLongBreak)

	stale := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})
	assert.Nil(t, stale.Completion)
	assert.Equal(t, domain.PhaseLongBreak, f.service.Timer().Phase())
	assert.Equal(t, 0, f.service.Timer().FocusCycles())
}

func TestSkipRunsFullCompletionEffects(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 1}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task)
	outcome := f.service.Skip()

	require.NotNil(t, outcome.Completion)
	assert.True(t, outcome.Completion.WasFocus)
	require.NotNil(t, outcome.Credit)
	assert.Equal(t, []string{"complete"}, f.sound.events)
}

func TestSwitchPhaseDropsSnapshotWithoutCredit(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 1}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task)
	f.service.SwitchPhase(domain.PhaseShortBreak)

	assert.Nil(t, f.service.Snapshot())
	assert.Empty(t, f.repo.completionCalls)
	assert.Equal(t, domain.StatusIdle, f.service.Timer().Status())
	assert.Equal(t, domain.PhaseShortBreak, f.service.Timer().Phase())
	assert.Equal(t, 0, f.service.Timer().FocusCycles())
}

func TestRecordAppliesOptimisticCreditBeforeWrite(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 4, CompletedSessions: 2}
	f := newTimerFixture(t, task)

	result := f.completion.Record(context.Background(), task.Snapshot())

	assert.Equal(t, 3, result.OptimisticDone)
	cached, ok := f.tasks.Get("t1")
	require.True(t, ok)
	assert.Equal(t, 3, cached.CompletedSessions)
}

func TestPersistFailureKeepsOptimisticCredit(t *testing.T) {
	task := domain.Task{ID: "t1", Description: "focus", TargetSessions: 4, CompletedSessions: 2}
	f := newTimerFixture(t, task)

	f.service.Toggle(time.Now(), &task)
	outcome := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})
	require.NotNil(t, outcome.Credit)

	f.repo.failNext = errRepoDown
	result := f.completion.Record(context.Background(), *outcome.Credit)

	assert.Equal(t, 3, result.OptimisticDone)
	assert.Nil(t, result.Persisted)

	// The credit is never rolled back: the task list keeps showing the
	// incremented count even though the write failed.
	cached, ok := f.tasks.Get("t1")
	require.True(t, ok)
	assert.Equal(t, 3, cached.CompletedSessions)

	// The timer advanced long before the write; persistence failure never
	// blocks the flow.
	assert.Equal(t, domain.PhaseShortBreak, f.service.Timer().Phase())
}

func TestRecordFetchesNextQuote(t *testing.T) {
	t.Setenv("RITMO_HOME", t.TempDir())

	repo := newFakeTaskRepo(domain.Task{ID: "t1", Description: "focus", TargetSessions: 2})
	tasks := NewTaskService(repo)
	require.NoError(t, tasks.Refresh(context.Background()))

	identity := &fakeIdentity{user: &domain.User{ID: "u1", Name: "dev"}}
	settings := NewSettingsService(config.NewStore(&config.Settings{}), identity)
	quotes := NewQuoteService(newFakeQuoteRepo(), identity)
	created, err := quotes.Create(context.Background(), "keep the rhythm")
	require.NoError(t, err)

	completion := NewCompletionService(repo, tasks, quotes, &fakeSoundPlayer{}, settings)
	result := completion.Record(context.Background(), domain.TaskSnapshot{ID: "t1", Description: "focus", TargetSessions: 2})

	require.NotNil(t, result.Persisted)
	require.NotNil(t, result.Quote)
	assert.Equal(t, created.Content, result.Quote.Content)
}

func TestBreakCompletionPlaysBreakSound(t *testing.T) {
	f := newTimerFixture(t)

	f.service.SwitchPhase(domain.PhaseShortBreak)
	f.service.Toggle(time.Now(), nil)
	outcome := f.service.HandleTick(ports.TickEvent{Epoch: 1, Remaining: 0, Done: true})

	require.NotNil(t, outcome.Completion)
	assert.False(t, outcome.Completion.WasFocus)
	assert.Equal(t, domain.PhaseFocus, outcome.Completion.NextPhase)
	assert.Equal(t, []string{"break"}, f.sound.events)
	assert.Nil(t, outcome.Credit)
}
