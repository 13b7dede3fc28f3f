package component

import (
	"time"

	"github.com/magicalhell/horde/internal/core/clock"
	"github.com/magicalhell/horde/internal/core/ecs"
)

// Gun is attached to the player and orbits it along the aim direction.
type Gun struct {
	Owner    ecs.EntityID
	Angle    float64 // radians from +X
	Cooldown *clock.Cadence
}

// Bullet is a fired projectile. SpawnedAt is simulated match time.
type Bullet struct {
	Damage    uint32
	SpawnedAt time.Duration
}
