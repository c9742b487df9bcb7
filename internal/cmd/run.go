package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ritmo/internal/config"
	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ui"
)

// RunCmd starts the TUI application
type RunCmd struct {
	Dev             bool `help:"Enable development mode (shows version info in the header)"`
	ErrorClearDelay int  `help:"Seconds before error messages auto-clear" default:"10"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	// Only apply the file value when the flag is at its default
	if cli.settings != nil && r.ErrorClearDelay == 10 {
		if cli.settings.ErrorClearDelay != nil {
			r.ErrorClearDelay = *cli.settings.ErrorClearDelay
		}
	}

	logging.Logger.Info("Starting ritmo TUI")

	errorClearDelay := time.Duration(r.ErrorClearDelay) * time.Second
	p := tea.NewProgram(
		ui.NewModel(
			errorClearDelay,
			r.Dev,
			cli.Container.Identity,
			cli.Container.TimerService,
			cli.Container.CompletionService,
			cli.Container.TaskService,
			cli.Container.GoalService,
			cli.Container.QuoteService,
			cli.Container.SettingsService,
		),
		tea.WithAltScreen(),
	)

	// Auth changes from CLI commands in other processes only land on the
	// next run; this subscription covers sign-in from within this one.
	unsubscribe := cli.Container.Identity.Subscribe(func(user *domain.User) {
		p.Send(ui.AuthChangedMsg{User: user})
	})
	defer unsubscribe()

	// Any in-process settings write reaches the timer without a restart.
	unsubscribeSettings := cli.Container.SettingsService.Subscribe(func(settings config.Settings) {
		p.Send(ui.SettingsChangedMsg{Settings: settings})
	})
	defer unsubscribeSettings()

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
