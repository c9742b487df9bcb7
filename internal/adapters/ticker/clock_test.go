package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritmo/internal/ports"
)

func collectUntilDone(t *testing.T, src ports.TickSource, timeout time.Duration) []ports.TickEvent {
	t.Helper()
	deadline := time.After(timeout)
	var events []ports.TickEvent
	for {
		select {
		case ev := <-src.Events():
			events = append(events, ev)
			if ev.Done {
				return events
			}
		case <-deadline:
			t.Fatalf("no done event within %v (got %d events)", timeout, len(events))
		}
	}
}

func TestClockSourceEmitsAndCompletes(t *testing.T) {
	src := NewClockSource(10 * time.Millisecond)
	defer src.Close()

	epoch := src.Start(time.Now().Add(100 * time.Millisecond))
	events := collectUntilDone(t, src, 2*time.Second)

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.True(t, last.Done)
	assert.Equal(t, epoch, last.Epoch)

	// Exactly one done event, all from the same epoch.
	for i, ev := range events {
		assert.Equal(t, epoch, ev.Epoch)
		if i < len(events)-1 {
			assert.False(t, ev.Done)
			assert.Greater(t, ev.Remaining, 0)
		}
	}
}

func TestClockSourceRemainingNeverIncreases(t *testing.T) {
	src := NewClockSource(5 * time.Millisecond)
	defer src.Close()

	src.Start(time.Now().Add(150 * time.Millisecond))
	events := collectUntilDone(t, src, 2*time.Second)

	prev := int(^uint(0) >> 1)
	for _, ev := range events {
		if ev.Done {
			continue
		}
		assert.LessOrEqual(t, ev.Remaining, prev)
		prev = ev.Remaining
	}
}

func TestStopBumpsEpochSoBufferedEventsReadStale(t *testing.T) {
	src := NewClockSource(5 * time.Millisecond)
	defer src.Close()

	epoch := src.Start(time.Now().Add(time.Minute))

	// Let at least one event buffer, then stop without draining.
	time.Sleep(30 * time.Millisecond)
	src.Stop()

	next := src.Start(time.Now().Add(time.Minute))
	assert.Greater(t, next, epoch)

	// Anything still buffered carries the old epoch.
	select {
	case ev := <-src.Events():
		assert.LessOrEqual(t, ev.Epoch, epoch+1)
		assert.NotEqual(t, next, ev.Epoch)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected an event from the restarted source")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	src := NewClockSource(5 * time.Millisecond)
	src.Start(time.Now().Add(time.Minute))

	src.Stop()
	src.Stop()
	src.Close()
}

func TestRestartReplacesEpoch(t *testing.T) {
	src := NewClockSource(5 * time.Millisecond)
	defer src.Close()

	first := src.Start(time.Now().Add(time.Minute))
	second := src.Start(time.Now().Add(50 * time.Millisecond))
	assert.Greater(t, second, first)

	events := collectUntilDone(t, src, 2*time.Second)
	assert.True(t, events[len(events)-1].Done)
	assert.Equal(t, second, events[len(events)-1].Epoch)
}

func TestClockSourcePastDeadlineCompletesImmediately(t *testing.T) {
	src := NewClockSource(5 * time.Millisecond)
	defer src.Close()

	epoch := src.Start(time.Now().Add(-time.Second))
	events := collectUntilDone(t, src, time.Second)

	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
	assert.Equal(t, epoch, events[0].Epoch)
}

func TestAlignSourceCompletes(t *testing.T) {
	src := NewAlignSource()
	defer src.Close()

	// A deadline under a second away produces a single done event at it.
	epoch := src.Start(time.Now().Add(300 * time.Millisecond))
	events := collectUntilDone(t, src, 2*time.Second)

	last := events[len(events)-1]
	assert.True(t, last.Done)
	assert.Equal(t, epoch, last.Epoch)
}

func TestAlignSourceStops(t *testing.T) {
	src := NewAlignSource()
	src.Start(time.Now().Add(time.Minute))
	src.Stop()
	src.Close()
}

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		backend   string
		wantAlign bool
	}{
		{"align", true},
		{"clock", false},
		{"", false},
		{"bogus", false},
	}

	for _, tt := range tests {
		t.Run("backend "+tt.backend, func(t *testing.T) {
			src := New(tt.backend)
			defer src.Close()

			_, isAlign := src.(*AlignSource)
			assert.Equal(t, tt.wantAlign, isAlign)
		})
	}
}
