package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the package time source. Report headers and exported forcing
// samples stamp generation time through it so fixtures stay reproducible.
var clock = clockwork.NewRealClock()

// Now returns the current time from the package clock.
func Now() time.Time { return clock.Now() }

// SetClock swaps the package time source. Pass nil to restore real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
