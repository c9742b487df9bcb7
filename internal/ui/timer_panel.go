package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"ritmo/internal/domain"
	"ritmo/internal/services"
	"ritmo/internal/theme"
)

// TimerPanel renders the countdown, the phase tabs, the focus-cycle
// dots, the bound task line, and the celebration banner.
type TimerPanel struct {
	timerService *services.TimerService
	progress     progress.Model
	width        int

	celebrating bool
	celebration string
	quote       string
	selected    *domain.Task
	signInHint  bool
}

// NewTimerPanel creates a new TimerPanel
func NewTimerPanel(timerService *services.TimerService) *TimerPanel {
	bar := progress.New(
		progress.WithSolidFill(string(theme.ColorProgressDone)),
		progress.WithoutPercentage(),
	)
	return &TimerPanel{
		timerService: timerService,
		progress:     bar,
	}
}

// SetWidth resizes the panel and its progress bar
func (p *TimerPanel) SetWidth(width int) {
	p.width = width
	barWidth := width - 4
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}
	p.progress.Width = barWidth
}

// SetQuote sets the motivational quote line, empty to hide
func (p *TimerPanel) SetQuote(quote string) {
	p.quote = quote
}

// Celebrate shows the completion banner until EndCelebration
func (p *TimerPanel) Celebrate(message string) {
	p.celebrating = true
	p.celebration = message
}

// EndCelebration hides the completion banner
func (p *TimerPanel) EndCelebration() {
	p.celebrating = false
	p.celebration = ""
}

// ShowSignInHint toggles the sign-in affordance shown when an anonymous
// user tries to start a session
func (p *TimerPanel) ShowSignInHint(show bool) {
	p.signInHint = show
}

// SetSelected tells the panel which task the list has highlighted. An
// idle focus phase shows it as the task the next session will credit.
func (p *TimerPanel) SetSelected(task *domain.Task) {
	p.selected = task
}

// View renders the panel at the given instant
func (p *TimerPanel) View(now time.Time) string {
	timer := p.timerService.Timer()

	var b strings.Builder
	b.WriteString(p.phaseTabs(timer.Phase()))
	b.WriteString("\n\n")

	clock := FormatClock(timer.Remaining(now))
	clockStyle := theme.ClockStyle
	if timer.Status() == domain.StatusPaused {
		clockStyle = theme.ClockPausedStyle
	}
	b.WriteString(clockStyle.Render(clock))
	b.WriteString("  ")
	b.WriteString(p.statusLabel(timer.Status()))
	b.WriteString("\n")

	b.WriteString(p.progress.ViewAs(timer.PercentComplete(now) / 100))
	b.WriteString("\n")
	b.WriteString(p.cycleDots(timer.FocusCycles()))
	b.WriteString("\n")

	snapshot := p.timerService.Snapshot()
	if snapshot == nil && p.selected != nil &&
		timer.Phase() == domain.PhaseFocus && timer.Status() == domain.StatusIdle {
		// Nothing bound yet, so the highlighted task is what a started
		// session would bind.
		s := p.selected.Snapshot()
		snapshot = &s
	}
	if snapshot != nil {
		b.WriteString(theme.SnapshotStyle.Render(fmt.Sprintf(
			"Working on: %s (%d/%d)",
			snapshot.Description,
			snapshot.CompletedSessions,
			snapshot.TargetSessions,
		)))
		b.WriteString("\n")
	}

	if p.celebrating {
		b.WriteString(theme.CelebrationStyle.Render(p.celebration))
		b.WriteString("\n")
	}

	if p.signInHint {
		hint := theme.HintKeyStyle.Render("ritmo auth register") +
			theme.HintLabelStyle.Render(" to sign in before starting a session")
		b.WriteString(hint)
		b.WriteString("\n")
	}

	if p.quote != "" {
		b.WriteString(theme.QuoteStyle.Render("“" + p.quote + "”"))
		b.WriteString("\n")
	}

	return b.String()
}

func (p *TimerPanel) phaseTabs(current domain.Phase) string {
	tabs := []struct {
		phase domain.Phase
		color theme.Color
	}{
		{domain.PhaseFocus, theme.ColorFocus},
		{domain.PhaseShortBreak, theme.ColorShortBreak},
		{domain.PhaseLongBreak, theme.ColorLongBreak},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := theme.PhaseStyle(tab.color, tab.phase == current)
		parts = append(parts, style.Render(tab.phase.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  "))
}

func (p *TimerPanel) statusLabel(status domain.Status) string {
	switch status {
	case domain.StatusRunning:
		return lipgloss.NewStyle().Foreground(theme.ColorRunning).Render("running")
	case domain.StatusPaused:
		return lipgloss.NewStyle().Foreground(theme.ColorPaused).Render("paused")
	default:
		return lipgloss.NewStyle().Foreground(theme.ColorIdleDim).Render("idle")
	}
}

// cycleDots shows focus progress toward the long break. The counter
// reads 4 through the long break, so all dots stay lit until the next
// focus completion resets it.
func (p *TimerPanel) cycleDots(cycles int) string {
	lit := cycles % domain.FocusCycleLength
	if cycles > 0 && lit == 0 {
		lit = domain.FocusCycleLength
	}

	var b strings.Builder
	for i := 0; i < domain.FocusCycleLength; i++ {
		if i < lit {
			b.WriteString(theme.CycleDotDoneStyle.Render("●"))
		} else {
			b.WriteString(theme.CycleDotStyle.Render("○"))
		}
		if i < domain.FocusCycleLength-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// FormatClock renders whole seconds as mm:ss (or h:mm:ss past an hour)
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
