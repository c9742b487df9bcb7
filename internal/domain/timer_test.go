package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDurations() Durations {
	return Durations{Focus: 1500, ShortBreak: 300, LongBreak: 900}
}

func TestNewTimerStartsIdleAtFocus(t *testing.T) {
	timer := NewTimer(testDurations())

	assert.Equal(t, PhaseFocus, timer.Phase())
	assert.Equal(t, StatusIdle, timer.Status())
	assert.Equal(t, 1500, timer.Remaining(time.Now()))
	assert.Equal(t, 0, timer.FocusCycles())

	_, running := timer.Deadline()
	assert.False(t, running)
}

func TestStartAnchorsDeadline(t *testing.T) {
	timer := NewTimer(testDurations())
	now := time.Now()

	deadline, started := timer.Start(now)
	require.True(t, started)
	assert.Equal(t, now.Add(1500*time.Second), deadline)
	assert.Equal(t, StatusRunning, timer.Status())

	// Remaining is a projection of the deadline, not a counter.
	assert.Equal(t, 1500, timer.Remaining(now))
	assert.Equal(t, 1490, timer.Remaining(now.Add(10*time.Second)))
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	timer := NewTimer(testDurations())
	now := time.Now()

	first, started := timer.Start(now)
	require.True(t, started)

	_, startedAgain := timer.Start(now.Add(time.Minute))
	assert.False(t, startedAgain)

	deadline, running := timer.Deadline()
	require.True(t, running)
	assert.Equal(t, first, deadline)
}

func TestPauseFreezesRemaining(t *testing.T) {
	timer := NewTimer(testDurations())
	now := time.Now()
	timer.Start(now)

	require.True(t, timer.Pause(now.Add(100*time.Second)))
	assert.Equal(t, StatusPaused, timer.Status())
	assert.Equal(t, 1400, timer.Remaining(now.Add(100*time.Second)))

	// Frozen: time passing does not change the paused value.
	assert.Equal(t, 1400, timer.Remaining(now.Add(time.Hour)))

	_, running := timer.Deadline()
	assert.False(t, running)
}

func TestPauseWhileIdleIsNoOp(t *testing.T) {
	timer := NewTimer(testDurations())

	assert.False(t, timer.Pause(time.Now()))
	assert.Equal(t, StatusIdle, timer.Status())

	timer.Start(time.Now())
	require.True(t, timer.Pause(time.Now()))
	assert.False(t, timer.Pause(time.Now()))
}

func TestResumeContinuesFromFrozenRemaining(t *testing.T) {
	timer := NewTimer(testDurations())
	now := time.Now()
	timer.Start(now)
	timer.Pause(now.Add(500 * time.Second))

	resumeAt := now.Add(2 * time.Hour)
	deadline, started := timer.Start(resumeAt)
	require.True(t, started)
	assert.Equal(t, resumeAt.Add(1000*time.Second), deadline)
}

func TestCompleteFocusAdvancesCycleAndRoutesBreaks(t *testing.T) {
	timer := NewTimer(testDurations())

	// Completions 1-3 route to short breaks, the 4th to a long break.
	for i := 1; i <= 3; i++ {
		completion := timer.Complete()
		assert.Equal(t, PhaseFocus, completion.CompletedPhase)
		assert.Equal(t, PhaseShortBreak, completion.NextPhase, "completion %d", i)
		assert.Equal(t, i, completion.FocusCycles)

		breakDone := timer.Complete()
		assert.Equal(t, PhaseFocus, breakDone.NextPhase)
		assert.False(t, breakDone.WasFocus)
		assert.Equal(t, i, breakDone.FocusCycles, "breaks never advance the counter")
	}

	fourth := timer.Complete()
	assert.Equal(t, PhaseLongBreak, fourth.NextPhase)
	assert.Equal(t, 4, fourth.FocusCycles)

	// The counter reads 4 through the whole long break.
	assert.Equal(t, 4, timer.FocusCycles())
	longDone := timer.Complete()
	assert.Equal(t, PhaseFocus, longDone.NextPhase)
	assert.Equal(t, 4, timer.FocusCycles())

	// The reset lands on the next focus completion's evaluation.
	fifth := timer.Complete()
	assert.Equal(t, 1, fifth.FocusCycles)
	assert.Equal(t, PhaseShortBreak, fifth.NextPhase)
}

func TestCompleteLandsIdleAtNextPhaseFullDuration(t *testing.T) {
	timer := NewTimer(testDurations())
	timer.Start(time.Now())

	completion := timer.Complete()
	assert.Equal(t, PhaseShortBreak, completion.NextPhase)
	assert.Equal(t, StatusIdle, timer.Status())
	assert.Equal(t, 300, timer.Remaining(time.Now()))
}

func TestSkipEquivalentToNaturalCompletion(t *testing.T) {
	natural := NewTimer(testDurations())
	skipped := NewTimer(testDurations())

	skipped.Start(time.Now())
	a := natural.Complete()
	b := skipped.Skip()

	assert.Equal(t, a, b)
	assert.Equal(t, natural.FocusCycles(), skipped.FocusCycles())
	assert.Equal(t, natural.Phase(), skipped.Phase())
}

func TestSwitchPhaseResetsWithoutCycleAdvance(t *testing.T) {
	timer := NewTimer(testDurations())
	timer.Start(time.Now())

	timer.SwitchPhase(PhaseLongBreak)
	assert.Equal(t, PhaseLongBreak, timer.Phase())
	assert.Equal(t, StatusIdle, timer.Status())
	assert.Equal(t, 900, timer.Remaining(time.Now()))
	assert.Equal(t, 0, timer.FocusCycles())

	// Switching to the current phase still resets the countdown.
	timer.Start(time.Now())
	timer.SwitchPhase(PhaseLongBreak)
	assert.Equal(t, StatusIdle, timer.Status())
	assert.Equal(t, 900, timer.Remaining(time.Now()))
}

func TestSetDurationsOnlyAppliesWhenIdle(t *testing.T) {
	timer := NewTimer(testDurations())

	timer.SetDurations(Durations{Focus: 3000, ShortBreak: 600, LongBreak: 1800})
	assert.Equal(t, 3000, timer.Remaining(time.Now()))

	now := time.Now()
	timer.Start(now)
	timer.SetDurations(testDurations())
	// The in-flight countdown keeps its original deadline.
	assert.Equal(t, 3000, timer.Remaining(now))

	timer.Pause(now.Add(10 * time.Second))
	timer.SetDurations(Durations{Focus: 60, ShortBreak: 60, LongBreak: 60})
	assert.Equal(t, 2990, timer.Remaining(now))
}

func TestObserveTickIgnoredUnlessRunning(t *testing.T) {
	timer := NewTimer(testDurations())

	timer.ObserveTick(7)
	assert.Equal(t, 1500, timer.Remaining(time.Now()))

	timer.Start(time.Now())
	timer.ObserveTick(-3)
	timer.Pause(time.Now())
	assert.GreaterOrEqual(t, timer.Remaining(time.Now()), 0)
}

func TestPercentCompleteClamped(t *testing.T) {
	timer := NewTimer(testDurations())
	now := time.Now()

	assert.Equal(t, 0.0, timer.PercentComplete(now))

	timer.Start(now)
	assert.InDelta(t, 50.0, timer.PercentComplete(now.Add(750*time.Second)), 0.1)

	// Past the deadline the projection clamps at 100.
	assert.Equal(t, 100.0, timer.PercentComplete(now.Add(2000*time.Second)))
}

func TestRemainingSecondsRoundsUp(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"whole seconds", now.Add(10 * time.Second), 10},
		{"partial second rounds up", now.Add(9*time.Second + 300*time.Millisecond), 10},
		{"just under one second", now.Add(400 * time.Millisecond), 1},
		{"at deadline", now, 0},
		{"past deadline", now.Add(-5 * time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemainingSeconds(tt.deadline, now))
		})
	}
}
