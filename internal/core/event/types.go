package event

import (
	"time"

	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/match"
)

// ContactBegan is pushed by the physics collaborator when the collision
// shapes of A and B start touching. Order of A and B is not meaningful.
type ContactBegan struct {
	A, B ecs.EntityID
}

// StateChanged is published after every applied match-state transition.
type StateChanged struct {
	From, To match.State
	At       time.Duration
}

type EnemyKilled struct {
	EntityID ecs.EntityID
	Kind     string
}

type PlayerDamaged struct {
	EntityID ecs.EntityID
	Amount   uint32
	Health   uint32
}

type PlayerDied struct {
	EntityID ecs.EntityID
	At       time.Duration
}

type BulletFired struct {
	EntityID ecs.EntityID
}
