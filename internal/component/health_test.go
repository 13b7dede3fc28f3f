package component

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magicalhell/horde/internal/geom"
)

func TestHealthDamageSaturates(t *testing.T) {
	h := NewHealth(3)
	assert.Equal(t, uint32(1), h.Damage(1))
	assert.Equal(t, uint32(2), h.Damage(5))
	assert.Zero(t, h.Current)
	assert.True(t, h.Dead())
	assert.Zero(t, h.Damage(1), "no wrap-around below zero")
	assert.Zero(t, h.Current)
}

func TestColliderBoundingRadius(t *testing.T) {
	assert.Equal(t, 2.0, Collider{Shape: ShapeBall, Radius: 2}.BoundingRadius())
	assert.InDelta(t, 5.0, Collider{Shape: ShapeCuboid, HalfExtents: geom.V(3, 4)}.BoundingRadius(), 1e-12)
	assert.Zero(t, Collider{}.BoundingRadius())
}
