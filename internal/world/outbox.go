package world

import (
	"github.com/magicalhell/horde/internal/component"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/match"
)

// SpawnRequest asks the render/physics collaborators to realise a new entity.
type SpawnRequest struct {
	ID          ecs.EntityID
	Kind        Kind
	Parent      ecs.EntityID // zero when top-level
	MatchMember bool
	Transform   component.Transform
	Collider    component.Collider
	Body        component.BodyType
	Velocity    geom.Vec2 // BodyKinematicVelocity only
	Sprite      int
}

// DespawnRequest asks collaborators to drop an entity; Recursive includes
// its children.
type DespawnRequest struct {
	ID        ecs.EntityID
	Recursive bool
}

// MoveIntent is the translation a kinematic body wants this tick.
type MoveIntent struct {
	ID          ecs.EntityID
	Translation geom.Vec2
}

// Outbox collects the requests produced during one tick. The host drains it
// after Game.Tick returns; it is cleared at the start of the next tick.
type Outbox struct {
	Spawns      []SpawnRequest
	Despawns    []DespawnRequest
	Moves       []MoveIntent
	Transitions []match.State
}

func (o *Outbox) Reset() {
	o.Spawns = o.Spawns[:0]
	o.Despawns = o.Despawns[:0]
	o.Moves = o.Moves[:0]
	o.Transitions = o.Transitions[:0]
}
