package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"ritmo/internal/config"
	"ritmo/internal/logging"
	"ritmo/internal/services"
)

// SettingsFormResult contains the result of the settings dialog
type SettingsFormResult struct {
	Cancelled bool
	Error     error
	Saved     bool
}

// SettingsForm edits the three phase durations, the sound toggle, and
// the timer backend.
type SettingsForm struct {
	Completed bool

	settingsService *services.SettingsService

	focus        string
	shortBreak   string
	longBreak    string
	soundEnabled bool
	backend      string

	form   *huh.Form
	result SettingsFormResult
}

// NewSettingsForm creates the settings dialog preloaded with the
// current values
func NewSettingsForm(settingsService *services.SettingsService) *SettingsForm {
	current := settingsService.Current()

	sf := &SettingsForm{
		settingsService: settingsService,
		focus:           minutesValue(current.FocusMinutes, 25),
		shortBreak:      minutesValue(current.ShortBreakMinutes, 5),
		longBreak:       minutesValue(current.LongBreakMinutes, 15),
		soundEnabled:    settingsService.SoundEnabled(),
		backend:         settingsService.TimerBackend(),
	}
	if sf.backend == "" {
		sf.backend = config.BackendClock
	}

	validateMinutes := func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 {
			return fmt.Errorf("must be a number >= 1")
		}
		return nil
	}

	sf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus minutes").
				Value(&sf.focus).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Short break minutes").
				Value(&sf.shortBreak).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Long break minutes").
				Value(&sf.longBreak).
				Validate(validateMinutes),
			huh.NewConfirm().
				Title("Completion sound").
				Value(&sf.soundEnabled),
			huh.NewSelect[string]().
				Title("Timer backend").
				Options(
					huh.NewOption("Clock (1s ticker)", config.BackendClock),
					huh.NewOption("Aligned (second boundaries)", config.BackendAlign),
				).
				Value(&sf.backend),
		),
	)
	return sf
}

func (sf *SettingsForm) Init() tea.Cmd {
	return sf.form.Init()
}

func (sf *SettingsForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			sf.result.Cancelled = true
			sf.Completed = true
			return sf, nil
		}
	}

	form, cmd := sf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		sf.form = f
	}

	if sf.form.State == huh.StateCompleted {
		sf.Completed = true
		if err := sf.save(); err != nil {
			logging.Logger.Error("Failed to save settings", "error", err)
			sf.result.Error = err
		} else {
			sf.result.Saved = true
		}
		return sf, nil
	}

	return sf, cmd
}

func (sf *SettingsForm) View() string {
	if sf.form != nil {
		return sf.form.View()
	}
	return ""
}

// Result returns the form result
func (sf *SettingsForm) Result() SettingsFormResult {
	return sf.result
}

func (sf *SettingsForm) save() error {
	focus, err := strconv.Atoi(strings.TrimSpace(sf.focus))
	if err != nil {
		return fmt.Errorf("invalid focus minutes: %w", err)
	}
	shortBreak, err := strconv.Atoi(strings.TrimSpace(sf.shortBreak))
	if err != nil {
		return fmt.Errorf("invalid short break minutes: %w", err)
	}
	longBreak, err := strconv.Atoi(strings.TrimSpace(sf.longBreak))
	if err != nil {
		return fmt.Errorf("invalid long break minutes: %w", err)
	}

	if err := sf.settingsService.UpdateDurations(&focus, &shortBreak, &longBreak); err != nil {
		return err
	}
	if err := sf.settingsService.SetSoundEnabled(sf.soundEnabled); err != nil {
		return err
	}
	return sf.settingsService.SetTimerBackend(sf.backend)
}

func minutesValue(value *int, fallback int) string {
	if value == nil || *value < 1 {
		return strconv.Itoa(fallback)
	}
	return strconv.Itoa(*value)
}
