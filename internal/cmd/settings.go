package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"ritmo/internal/config"
	"ritmo/internal/logging"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Set  SettingsSetCmd  `cmd:"set" help:"Update settings"`
	Show SettingsShowCmd `cmd:"show" help:"Show the settings file and current values" default:"1"`
}

// SettingsShowCmd displays the settings file location and current values
type SettingsShowCmd struct{}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	current := cli.Container.SettingsService.Current()

	fmt.Printf("Settings file: %s\n\n", config.GetSettingsPath())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "focus_minutes\t%s\n", intOrDefault(current.FocusMinutes, "25 (default)"))
	fmt.Fprintf(w, "short_break_minutes\t%s\n", intOrDefault(current.ShortBreakMinutes, "5 (default)"))
	fmt.Fprintf(w, "long_break_minutes\t%s\n", intOrDefault(current.LongBreakMinutes, "15 (default)"))
	fmt.Fprintf(w, "sound_enabled\t%s\n", boolOrDefault(current.SoundEnabled, "true (default)"))
	backend := current.TimerBackend
	if backend == "" {
		backend = config.BackendClock + " (default)"
	}
	fmt.Fprintf(w, "timer_backend\t%s\n", backend)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Durations apply to signed-in sessions; anonymous sessions use the defaults.")
	return nil
}

// SettingsSetCmd updates settings. Only the flags that are present
// change; everything else keeps its stored value.
type SettingsSetCmd struct {
	Backend    string `help:"Timer backend: clock or align" default:""`
	Focus      *int   `help:"Focus phase length in minutes"`
	LongBreak  *int   `help:"Long break length in minutes"`
	ShortBreak *int   `help:"Short break length in minutes"`
	Sound      *bool  `help:"Enable or disable completion sounds"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	service := cli.Container.SettingsService

	if s.Focus != nil || s.ShortBreak != nil || s.LongBreak != nil {
		if err := service.UpdateDurations(s.Focus, s.ShortBreak, s.LongBreak); err != nil {
			logging.Logger.Error("Failed to update durations", "error", err)
			return fmt.Errorf("failed to update durations: %w", err)
		}
	}

	if s.Sound != nil {
		if err := service.SetSoundEnabled(*s.Sound); err != nil {
			logging.Logger.Error("Failed to update sound setting", "error", err)
			return fmt.Errorf("failed to update sound setting: %w", err)
		}
	}

	if s.Backend != "" {
		if s.Backend != config.BackendClock && s.Backend != config.BackendAlign {
			return fmt.Errorf("unknown timer backend %q (expected %s or %s)",
				s.Backend, config.BackendClock, config.BackendAlign)
		}
		if err := service.SetTimerBackend(s.Backend); err != nil {
			logging.Logger.Error("Failed to update timer backend", "error", err)
			return fmt.Errorf("failed to update timer backend: %w", err)
		}
	}

	fmt.Println("Settings updated")
	return nil
}

func intOrDefault(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmt.Sprintf("%d", *v)
}

func boolOrDefault(v *bool, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmt.Sprintf("%t", *v)
}
