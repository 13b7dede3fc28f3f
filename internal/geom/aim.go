package geom

import "math"

// AimAngle returns the angle, in radians from +X in (-π, π], of the
// direction from origin toward target. A target on +X gives 0.
//
// Coincident points (no cursor, or cursor exactly on the player) give 0:
// atan2(0, 0) is defined as 0, so the gun rests pointing along +X.
func AimAngle(origin, target Vec2) float64 {
	return math.Atan2(target.Y-origin.Y, target.X-origin.X)
}

// Orbit returns the point radius units from pivot along angle.
func Orbit(pivot Vec2, angle, radius float64) Vec2 {
	return pivot.Add(FromAngle(angle).Scale(radius))
}
