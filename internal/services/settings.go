package services

import (
	"context"

	"ritmo/internal/config"
	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// SettingsService resolves effective timer preferences. Custom durations
// only apply to signed-in users; anonymous sessions always run the fixed
// defaults so a fresh install behaves predictably.
type SettingsService struct {
	store    *config.Store
	identity ports.Identity
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(store *config.Store, identity ports.Identity) *SettingsService {
	return &SettingsService{store: store, identity: identity}
}

// ResolveDurations returns the effective phase durations for the current
// auth state. Identity lookup failures degrade to anonymous defaults
// rather than blocking the timer.
func (s *SettingsService) ResolveDurations(ctx context.Context) domain.Durations {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		logging.Logger.Warn("Identity lookup failed, using default durations", "error", err)
		return domain.DefaultDurations()
	}
	return s.DurationsFor(user != nil)
}

// DurationsFor resolves durations for a known auth state
func (s *SettingsService) DurationsFor(authenticated bool) domain.Durations {
	settings := s.store.Current()
	return domain.ResolveDurations(authenticated, domain.DurationSettings{
		FocusMinutes:      settings.FocusMinutes,
		ShortBreakMinutes: settings.ShortBreakMinutes,
		LongBreakMinutes:  settings.LongBreakMinutes,
	})
}

// UpdateDurations persists new minute preferences. Nil fields are left
// untouched so callers can update a single phase.
func (s *SettingsService) UpdateDurations(focus, shortBreak, longBreak *int) error {
	return s.store.Update(func(settings *config.Settings) {
		if focus != nil {
			settings.FocusMinutes = focus
		}
		if shortBreak != nil {
			settings.ShortBreakMinutes = shortBreak
		}
		if longBreak != nil {
			settings.LongBreakMinutes = longBreak
		}
	})
}

// SoundEnabled reports whether completion sounds should play, on by default
func (s *SettingsService) SoundEnabled() bool {
	enabled := s.store.Current().SoundEnabled
	return enabled == nil || *enabled
}

// SetSoundEnabled persists the sound preference
func (s *SettingsService) SetSoundEnabled(enabled bool) error {
	return s.store.Update(func(settings *config.Settings) {
		settings.SoundEnabled = &enabled
	})
}

// TimerBackend returns the configured tick source backend name
func (s *SettingsService) TimerBackend() string {
	return s.store.Current().TimerBackend
}

// SetTimerBackend persists the tick source backend name
func (s *SettingsService) SetTimerBackend(backend string) error {
	return s.store.Update(func(settings *config.Settings) {
		settings.TimerBackend = backend
	})
}

// Current returns a copy of the raw persisted settings
func (s *SettingsService) Current() config.Settings {
	return s.store.Current()
}

// Subscribe registers a settings-change observer
func (s *SettingsService) Subscribe(fn func(config.Settings)) func() {
	return s.store.Subscribe(fn)
}
