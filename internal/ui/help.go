package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"ritmo/internal/theme"
)

type helpEntry struct {
	binding key.Binding
}

type helpGroup struct {
	title   string
	entries []helpEntry
}

// renderHelp builds the full help screen from the key map
func renderHelp(keys KeyMap) string {
	groups := []helpGroup{
		{
			title: "Timer",
			entries: []helpEntry{
				{keys.Toggle}, {keys.Skip},
				{keys.FocusPhase}, {keys.ShortBreak}, {keys.LongBreak},
			},
		},
		{
			title: "Tasks",
			entries: []helpEntry{
				{keys.NewTask}, {keys.EditTask}, {keys.DeleteTask},
				{keys.ToggleToday}, {keys.FinishTask},
				{keys.MoveUp}, {keys.MoveDown}, {keys.CycleView},
			},
		},
		{
			title: "Other",
			entries: []helpEntry{
				{keys.NewQuote}, {keys.Settings}, {keys.Help}, {keys.Quit},
			},
		},
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Help"))
	b.WriteString("\n")
	for _, group := range groups {
		b.WriteString(theme.SubtitleStyle.Render(group.title))
		b.WriteString("\n")
		for _, entry := range group.entries {
			h := entry.binding.Help()
			b.WriteString("  ")
			b.WriteString(theme.HelpShortcutStyle.Render(padRight(h.Key, 8)))
			b.WriteString(theme.HelpLabelStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.HelpStyle.Render("press esc to close"))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
