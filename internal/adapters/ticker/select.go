package ticker

import (
	"time"

	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// New selects a backend by name at startup. Unknown names fall back to
// the clock backend rather than failing the feature.
func New(backend string) ports.TickSource {
	switch backend {
	case "align":
		return NewAlignSource()
	case "clock", "":
		return NewClockSource(time.Second)
	default:
		logging.Logger.Warn("Unknown timer backend, using clock", "backend", backend)
		return NewClockSource(time.Second)
	}
}
