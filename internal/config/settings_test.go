package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv("RITMO_HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Nil(t, settings.FocusMinutes)
	assert.Empty(t, settings.TimerBackend)
}

func TestLoadSettingsInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RITMO_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte("{not json"), 0644))

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestSaveAndLoadSettings(t *testing.T) {
	t.Setenv("RITMO_HOME", t.TempDir())

	focus := 30
	sound := false
	require.NoError(t, SaveSettings(&Settings{
		FocusMinutes: &focus,
		SoundEnabled: &sound,
		TimerBackend: BackendAlign,
	}))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, loaded.FocusMinutes)
	assert.Equal(t, 30, *loaded.FocusMinutes)
	require.NotNil(t, loaded.SoundEnabled)
	assert.False(t, *loaded.SoundEnabled)
	assert.Equal(t, BackendAlign, loaded.TimerBackend)
	assert.Nil(t, loaded.ShortBreakMinutes)
}

func TestSaveSettingsShrinksFile(t *testing.T) {
	t.Setenv("RITMO_HOME", t.TempDir())

	long := 90
	require.NoError(t, SaveSettings(&Settings{FocusMinutes: &long, LongBreakMinutes: &long, ShortBreakMinutes: &long}))
	require.NoError(t, SaveSettings(&Settings{}))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Nil(t, loaded.FocusMinutes)
}

func TestStoreUpdatePersistsAndNotifies(t *testing.T) {
	t.Setenv("RITMO_HOME", t.TempDir())

	store := NewStore(&Settings{})

	var seen []Settings
	unsubscribe := store.Subscribe(func(s Settings) {
		seen = append(seen, s)
	})

	focus := 45
	require.NoError(t, store.Update(func(s *Settings) {
		s.FocusMinutes = &focus
	}))

	require.Len(t, seen, 1)
	require.NotNil(t, seen[0].FocusMinutes)
	assert.Equal(t, 45, *seen[0].FocusMinutes)

	current := store.Current()
	require.NotNil(t, current.FocusMinutes)
	assert.Equal(t, 45, *current.FocusMinutes)

	// The write went through SaveSettings, so a fresh load sees it
	loaded, err := LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, loaded.FocusMinutes)
	assert.Equal(t, 45, *loaded.FocusMinutes)

	unsubscribe()
	require.NoError(t, store.Update(func(s *Settings) {
		s.TimerBackend = BackendClock
	}))
	assert.Len(t, seen, 1)
}

func TestRitmoHomeOverride(t *testing.T) {
	t.Setenv("RITMO_HOME", "/tmp/ritmo-test-home")
	assert.Equal(t, "/tmp/ritmo-test-home", RitmoHome())
	assert.Equal(t, "/tmp/ritmo-test-home/ritmo.db", GetDBPath())
	assert.Equal(t, "/tmp/ritmo-test-home/settings.json", GetSettingsPath())
}
