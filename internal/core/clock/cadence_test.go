package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCadenceOncePerPeriod(t *testing.T) {
	c := NewCadence(200 * time.Millisecond)
	fires := 0
	for i := 0; i < 100; i++ { // 2s at 20ms
		if c.Tick(20 * time.Millisecond) {
			fires++
		}
	}
	assert.Equal(t, 10, fires)
}

func TestCadenceCarriesRemainder(t *testing.T) {
	// 30ms ticks never land on 200ms; a full reset would fire every 210ms
	// (7 ticks) and lose 10ms per cycle.
	c := NewCadence(200 * time.Millisecond)
	fires := 0
	for i := 0; i < 200; i++ { // 6s
		if c.Tick(30 * time.Millisecond) {
			fires++
		}
	}
	assert.Equal(t, 30, fires)
}

func TestCadenceOversizedTickFiresOnce(t *testing.T) {
	c := NewCadence(200 * time.Millisecond)
	assert.True(t, c.Tick(time.Second))
	assert.Zero(t, c.Elapsed(), "multi-period overshoot is dropped")
	assert.False(t, c.Fire())
}

func TestCadenceAdvanceWithoutFire(t *testing.T) {
	c := NewCadence(200 * time.Millisecond)
	for i := 0; i < 50; i++ {
		c.Advance(100 * time.Millisecond)
	}
	assert.True(t, c.Ready())
	assert.True(t, c.Fire())
	assert.False(t, c.Fire(), "a long idle yields a single trigger")
}

func TestCadenceIgnoresNegative(t *testing.T) {
	c := NewCadence(time.Second)
	c.Advance(-time.Second)
	assert.Zero(t, c.Elapsed())
	c.Advance(400 * time.Millisecond)
	c.Reset()
	assert.Zero(t, c.Elapsed())
}

func TestClock(t *testing.T) {
	var c Clock
	c.Advance(1500 * time.Millisecond)
	stamp := c.Now()
	c.Advance(250 * time.Millisecond)
	c.Advance(-time.Hour)
	assert.Equal(t, 1750*time.Millisecond, c.Now())
	assert.Equal(t, 250*time.Millisecond, c.Since(stamp))
	c.Reset()
	assert.Zero(t, c.Now())
}

func TestCadenceStaleReadinessRestartsFromZero(t *testing.T) {
	c := NewCadence(200 * time.Millisecond)
	for i := 0; i < 18; i++ { // 360ms with nobody firing
		c.Advance(20 * time.Millisecond)
	}
	c.Advance(20 * time.Millisecond)
	assert.True(t, c.Fire())
	assert.Zero(t, c.Elapsed(), "overshoot from before the last step is not carried")

	ticks := 0
	for !c.Tick(20 * time.Millisecond) {
		ticks++
	}
	assert.Equal(t, 9, ticks, "next trigger lands a full period later")
}
