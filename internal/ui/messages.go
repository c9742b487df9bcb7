package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ritmo/internal/config"
	"ritmo/internal/domain"
	"ritmo/internal/ports"
	"ritmo/internal/services"
)

// TickMsg carries one tick source event into the Bubble Tea loop
type TickMsg struct {
	Event ports.TickEvent
}

// waitForTick blocks on the tick source's event stream and wraps the
// next event. The Model re-issues this command after handling each one
// so the pump stays alive for the whole program run.
func waitForTick(events <-chan ports.TickEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return TickMsg{Event: ev}
	}
}

// CompletionRecordedMsg delivers the result of an asynchronous
// completion write. The countdown keeps running while the write is in
// flight; this message reconciles the task list when it settles.
type CompletionRecordedMsg struct {
	Result services.CompletionResult
}

// QuoteRefreshedMsg carries the next motivational line
type QuoteRefreshedMsg struct {
	Quote *domain.Quote
}

// AuthChangedMsg reports an identity change observed outside the loop.
// The cmd layer forwards identity subscription callbacks as this message.
type AuthChangedMsg struct {
	User *domain.User
}

// SettingsChangedMsg reports a settings store update. Duration changes
// reach the timer through this path, whether the write came from the
// settings dialog or from a store subscriber outside the loop.
type SettingsChangedMsg struct {
	Settings config.Settings
}

// Action messages - each represents a user intent raised by a component.
// The Model handles these in updateMain and dispatches to services.

// QuitMsg requests quitting the application
type QuitMsg struct{}

// ShowHelpMsg requests showing the help screen
type ShowHelpMsg struct{}

// NewTaskMsg requests showing the task creation dialog
type NewTaskMsg struct{}

// EditTaskMsg requests showing the edit dialog for a task
type EditTaskMsg struct {
	TaskID string
}

// DeleteTaskMsg requests deleting a task
type DeleteTaskMsg struct {
	TaskID string
}

// ToggleTodayMsg requests moving a task in or out of today
type ToggleTodayMsg struct {
	TaskID string
}

// FinishTaskMsg requests marking a task finished (or reopening it)
type FinishTaskMsg struct {
	TaskID string
}

// MoveTaskMsg requests reordering a task within the visible list
type MoveTaskMsg struct {
	TaskID string
	Up     bool
}

// ShowSettingsMsg requests showing the settings dialog
type ShowSettingsMsg struct{}

// NewQuoteMsg requests showing the quote creation dialog
type NewQuoteMsg struct{}
