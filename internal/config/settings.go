package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Timer backend names understood by the ticker adapters
const (
	BackendClock = "clock"
	BackendAlign = "align"
)

// Settings represents the structure of ~/.ritmo/settings.json.
// Pointer fields distinguish "not configured" from zero values.
type Settings struct {
	Debug             *bool  `json:"debug,omitempty"`
	ErrorClearDelay   *int   `json:"error_clear_delay,omitempty"`
	FocusMinutes      *int   `json:"focus_minutes,omitempty"`
	LongBreakMinutes  *int   `json:"long_break_minutes,omitempty"`
	MaxLogFiles       *int   `json:"max_log_files,omitempty"`
	ShortBreakMinutes *int   `json:"short_break_minutes,omitempty"`
	SoundEnabled      *bool  `json:"sound_enabled,omitempty"`
	TimerBackend      string `json:"timer_backend,omitempty"`
}

// LoadSettings loads settings from $RITMO_HOME/settings.json (or
// ~/.ritmo/settings.json if not set).
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $RITMO_HOME/settings.json.
// The file is exclusively locked during the write so concurrent ritmo
// processes never interleave partial writes.
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer unlockFile(file)

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate settings file: %w", err)
	}
	if _, err := file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
