package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "203" // Tomato red - app name, titles
	ColorSecondary Color = "86"  // Cyan - subtitles
)

// Phase colors
const (
	ColorFocus      Color = "203" // Tomato - focus phase
	ColorShortBreak Color = "78"  // Green - short break
	ColorLongBreak  Color = "75"  // Blue - long break
)

// Timer state colors
const (
	ColorRunning Color = "2" // Green - counting down
	ColorPaused  Color = "3" // Yellow - paused
	ColorIdleDim Color = "8" // Gray - idle
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorCelebration Color = "220" // Gold - completion banner
	ColorHintKey     Color = "226" // Yellow - hint keys
	ColorHintLabel   Color = "178" // Gold - hint labels
	ColorQuote       Color = "141" // Purple - motivational quote
	ColorSpinner     Color = "205" // Pink
)

// Progress colors
const (
	ColorProgressDone    Color = "203" // Filled section of the bar
	ColorProgressPending Color = "237" // Empty section of the bar
)
