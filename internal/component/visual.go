package component

import "github.com/magicalhell/horde/internal/geom"

// Sprite is the atlas index the renderer should draw.
type Sprite struct {
	Index int
}

type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeCuboid
	ShapeBall
)

func (s Shape) String() string {
	switch s {
	case ShapeCuboid:
		return "cuboid"
	case ShapeBall:
		return "ball"
	}
	return "none"
}

// Collider describes the collision shape requested from the physics collaborator.
type Collider struct {
	Shape       Shape
	HalfExtents geom.Vec2 // cuboid
	Radius      float64   // ball
}

// BoundingRadius is the radius of a circle enclosing the shape.
func (c Collider) BoundingRadius() float64 {
	switch c.Shape {
	case ShapeBall:
		return c.Radius
	case ShapeCuboid:
		return c.HalfExtents.Len()
	}
	return 0
}

// BodyType tells the physics collaborator how the entity moves.
type BodyType uint8

const (
	BodyNone              BodyType = iota // not simulated (scenery, gun)
	BodyKinematicPosition                 // moved by Kinematic intents
	BodyKinematicVelocity                 // moved by Velocity
)
