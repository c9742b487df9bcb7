package domain

// Default phase lengths in minutes
const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// Durations holds the resolved phase lengths in seconds
type Durations struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

// DurationSettings carries the persisted minute preferences. Nil fields
// mean "not configured".
type DurationSettings struct {
	FocusMinutes      *int
	ShortBreakMinutes *int
	LongBreakMinutes  *int
}

// DefaultDurations returns the fixed 25/5/15 minute defaults
func DefaultDurations() Durations {
	return Durations{
		Focus:      DefaultFocusMinutes * 60,
		ShortBreak: DefaultShortBreakMinutes * 60,
		LongBreak:  DefaultLongBreakMinutes * 60,
	}
}

// ResolveDurations maps persisted preferences into phase durations.
// Anonymous users always get the fixed defaults so demo usage stays
// deterministic. Configured values are clamped to a minimum of 1 minute;
// missing or invalid values fall back to the defaults.
func ResolveDurations(authenticated bool, settings DurationSettings) Durations {
	if !authenticated {
		return DefaultDurations()
	}
	return Durations{
		Focus:      resolveMinutes(settings.FocusMinutes, DefaultFocusMinutes) * 60,
		ShortBreak: resolveMinutes(settings.ShortBreakMinutes, DefaultShortBreakMinutes) * 60,
		LongBreak:  resolveMinutes(settings.LongBreakMinutes, DefaultLongBreakMinutes) * 60,
	}
}

// Of returns the duration in seconds for the given phase
func (d Durations) Of(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return d.ShortBreak
	case PhaseLongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

func resolveMinutes(value *int, fallback int) int {
	if value == nil || *value < 1 {
		return fallback
	}
	return *value
}
