package component

import "github.com/magicalhell/horde/internal/geom"

// Transform is the world-space placement of an entity.
type Transform struct {
	Pos   geom.Vec2
	Scale float64
}

// Kinematic marks a body moved by per-tick translation requests. Intent is
// the desired translation for the current tick; the physics collaborator
// performs the move and reports the resolved position back.
type Kinematic struct {
	Intent geom.Vec2
}

// Velocity marks a body moved by the physics collaborator at a constant
// linear velocity (units per second).
type Velocity struct {
	Linear geom.Vec2
}
