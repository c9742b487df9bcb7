package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"ritmo/internal/config"
	"ritmo/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run       RunCmd       `cmd:"" help:"Start the ritmo TUI (default)" default:"1"`
	Serve     ServeCmd     `cmd:"serve" help:"Serve the ritmo TUI over SSH"`
	Tasks     TasksCmd     `cmd:"tasks" help:"Manage tasks (list, add, set, del, today)"`
	Goals     GoalsCmd     `cmd:"goals" help:"Manage goals (list, add, rename, del)"`
	Quotes    QuotesCmd    `cmd:"quotes" help:"Manage motivational quotes (list, add, set, del)"`
	Auth      AuthCmd      `cmd:"auth" help:"Manage the local profile (register, login, logout, whoami)"`
	Settings  SettingsCmd  `cmd:"settings" help:"Manage settings (show, set)"`
	PlaySound PlaySoundCmd `cmd:"play-sound" help:"Play notification sound (cross-platform)" hidden:""`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// LoadSettingsEarly loads settings.json before Kong parses flags, so
// file-backed values can participate in flag defaulting. A broken file
// degrades to defaults rather than blocking the CLI.
func LoadSettingsEarly() (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return &config.Settings{}, err
	}
	return settings, nil
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// Only apply a file value when the flag is at its default and the
	// env var is not set.

	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("RITMO_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("RITMO_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Export debug settings after initialization so anything we spawn
	// appends to the same log file.
	if c.Debug || c.DebugFile != "" {
		os.Setenv("RITMO_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("RITMO_DEBUG_FILE", logFilePath)
		}
	}

	// Create the container after logging is initialized so GORM's logger
	// never sees a nil logging.Logger.
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
