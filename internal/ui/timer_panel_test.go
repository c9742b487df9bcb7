package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ritmo/internal/domain"
	"ritmo/internal/ports"
	"ritmo/internal/services"
)

// stubTickSource satisfies ports.TickSource for view tests; no events
// ever fire.
type stubTickSource struct {
	events chan ports.TickEvent
	epoch  int
}

func newStubTickSource() *stubTickSource {
	return &stubTickSource{events: make(chan ports.TickEvent, 1)}
}

func (s *stubTickSource) Start(time.Time) int {
	s.epoch++
	return s.epoch
}

func (s *stubTickSource) Stop()                           {}
func (s *stubTickSource) Events() <-chan ports.TickEvent { return s.events }
func (s *stubTickSource) Close()                         {}

func newPanelFixture() (*TimerPanel, *services.TimerService) {
	timerService := services.NewTimerService(domain.DefaultDurations(), newStubTickSource(), nil, nil)
	panel := NewTimerPanel(timerService)
	panel.SetWidth(80)
	return panel, timerService
}

func TestPanelShowsSelectedTaskWhileIdle(t *testing.T) {
	panel, _ := newPanelFixture()

	view := panel.View(time.Now())
	assert.NotContains(t, view, "Working on:")

	panel.SetSelected(&domain.Task{
		ID:                "t1",
		Description:       "Write docs",
		CompletedSessions: 1,
		TargetSessions:    3,
	})
	view = panel.View(time.Now())
	assert.Contains(t, view, "Working on: Write docs (1/3)")
}

func TestPanelHidesSelectedTaskOutsideIdleFocus(t *testing.T) {
	panel, timerService := newPanelFixture()
	task := domain.Task{ID: "t1", Description: "Write docs", TargetSessions: 2}
	panel.SetSelected(&task)

	timerService.SwitchPhase(domain.PhaseShortBreak)
	assert.NotContains(t, panel.View(time.Now()), "Working on:")

	timerService.SwitchPhase(domain.PhaseFocus)
	timerService.Toggle(time.Now(), &task)
	assert.Contains(t, panel.View(time.Now()), "Working on: Write docs (0/2)")
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"full focus", 1500, "25:00"},
		{"under a minute", 59, "00:59"},
		{"zero", 0, "00:00"},
		{"negative clamps", -5, "00:00"},
		{"over an hour", 3725, "1:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	assert.Equal(t, "", formatErrorForDisplay("", 80))

	short := formatErrorForDisplay("boom", 80)
	assert.Equal(t, "Error: boom", short)

	long := formatErrorForDisplay(strings.Repeat("word ", 60), 40)
	lines := strings.Split(long, "\n")
	assert.LessOrEqual(t, len(lines), maxErrorLines)
	assert.True(t, strings.HasPrefix(lines[0], errorPrefix))
	assert.True(t, strings.HasSuffix(long, truncationMark))
}
