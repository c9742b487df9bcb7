//go:build !darwin && !linux && !windows

package sound

// Platforms without a system sound API get the terminal bell for every
// phase event.
func playForEvent(event string) error {
	return terminalBell()
}
