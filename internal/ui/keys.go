package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts for the main view
type KeyMap struct {
	Toggle      key.Binding
	Skip        key.Binding
	FocusPhase  key.Binding
	ShortBreak  key.Binding
	LongBreak   key.Binding
	NewTask     key.Binding
	EditTask    key.Binding
	DeleteTask  key.Binding
	ToggleToday key.Binding
	FinishTask  key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	NewQuote    key.Binding
	CycleView   key.Binding
	Settings    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// NewKeyMap creates the default key map
func NewKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip phase"),
		),
		FocusPhase: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus"),
		),
		ShortBreak: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "short break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "long break"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		EditTask: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		DeleteTask: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		ToggleToday: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle today"),
		),
		FinishTask: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish task"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move task up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move task down"),
		),
		NewQuote: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "new quote"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle task view"),
		),
		Settings: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
