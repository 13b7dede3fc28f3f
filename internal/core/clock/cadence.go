package clock

import "time"

// Cadence is an accumulator that reports when Period has elapsed since the
// last trigger.
//
// Fire consumes one period and carries the overshoot into the next cycle, so
// continuous operation triggers exactly once per Period with no drift. Only
// overshoot gained during the last Advance is carried. If the Cadence was
// already ready before that step (a released trigger, an idle stretch) or the
// overshoot spans a full period, the accumulator restarts at zero, so
// consecutive triggers are never closer than Period.
type Cadence struct {
	Period  time.Duration
	elapsed time.Duration
	last    time.Duration
}

func NewCadence(period time.Duration) *Cadence {
	return &Cadence{Period: period}
}

// Advance accumulates dt. Negative deltas are ignored.
func (c *Cadence) Advance(dt time.Duration) {
	if dt > 0 {
		c.elapsed += dt
		c.last = dt
	}
}

func (c *Cadence) Elapsed() time.Duration { return c.elapsed }

func (c *Cadence) Ready() bool { return c.elapsed >= c.Period }

func (c *Cadence) Reset() { c.elapsed, c.last = 0, 0 }

// Fire triggers if ready, keeping the remainder gained in the last step.
func (c *Cadence) Fire() bool {
	if !c.Ready() {
		return false
	}
	over := c.elapsed - c.Period
	if c.Period <= 0 || over >= c.Period || over >= c.last {
		over = 0
	}
	c.elapsed = over
	c.last = 0
	return true
}

// Tick advances by dt and fires in one call.
func (c *Cadence) Tick(dt time.Duration) bool {
	c.Advance(dt)
	return c.Fire()
}
