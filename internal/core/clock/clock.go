// Package clock provides the simulated time base and period triggers used by
// every cadence-gated system. Nothing here sleeps; time only moves when the
// game loop advances it.
package clock

import "time"

// Clock is the simulated time since the match clock was last reset.
type Clock struct {
	now time.Duration
}

// Advance moves the clock forward. Negative deltas are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}

func (c *Clock) Now() time.Duration { return c.now }

func (c *Clock) Reset() { c.now = 0 }

// Since returns the simulated time elapsed after stamp.
func (c *Clock) Since(stamp time.Duration) time.Duration {
	return c.now - stamp
}
