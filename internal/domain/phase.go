package domain

// Phase represents the current segment of the focus cycle
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// FocusCycleLength is the number of completed focus phases before a long
// break is scheduled instead of a short one.
const FocusCycleLength = 4

// Label returns the human-readable name for a phase
func (p Phase) Label() string {
	switch p {
	case PhaseFocus:
		return "Focus"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return string(p)
}

// IsBreak reports whether the phase is one of the break kinds
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// ParsePhase maps user input to a Phase
func ParsePhase(s string) (Phase, bool) {
	switch Phase(s) {
	case PhaseFocus, PhaseShortBreak, PhaseLongBreak:
		return Phase(s), true
	}
	return "", false
}
