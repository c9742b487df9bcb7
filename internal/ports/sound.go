package ports

// SoundPlayer emits the audio cue that marks a phase completion.
// Events are "complete" for a finished focus session and "break" for
// a finished break.
type SoundPlayer interface {
	// PlaySound plays the focus-completion cue
	PlaySound() error

	// PlaySoundForEvent plays the cue for the named phase event
	PlaySoundForEvent(event string) error
}
