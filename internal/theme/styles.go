package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	HelpLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Timer panel styles
var (
	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	ClockPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPaused)

	CycleDotDoneStyle = lipgloss.NewStyle().
				Foreground(ColorFocus)

	CycleDotStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CelebrationStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCelebration).
				Padding(1, 0)

	QuoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorQuote)

	SnapshotStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// PhaseStyle returns the accent style for a phase tab
func PhaseStyle(color Color, active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(color)
	if active {
		return s.Bold(true).Underline(true)
	}
	return s
}

// Task list styles
var (
	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)

	TaskProgressStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle)

	TaskSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)

	TaskStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Hint styles
var (
	HintKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHintKey).
			Bold(true)

	HintLabelStyle = lipgloss.NewStyle().
			Foreground(ColorHintLabel)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)
