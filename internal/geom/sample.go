package geom

import (
	"math"

	"github.com/magicalhell/horde/internal/core/rng"
)

// RandomAround samples a point at a uniform angle in [0, 2π) and a uniform
// distance in [minDist, maxDist) around anchor.
func RandomAround(src rng.Source, anchor Vec2, minDist, maxDist float64) Vec2 {
	angle := src.Float64Range(0, 2*math.Pi)
	dist := src.Float64Range(minDist, maxDist)
	return anchor.Add(FromAngle(angle).Scale(dist))
}

// RandomInRect samples a point uniformly in [-halfW, halfW) × [-halfH, halfH).
func RandomInRect(src rng.Source, halfW, halfH float64) Vec2 {
	return Vec2{
		X: src.Float64Range(-halfW, halfW),
		Y: src.Float64Range(-halfH, halfH),
	}
}
