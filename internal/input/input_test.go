package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magicalhell/horde/internal/geom"
)

func TestAxis(t *testing.T) {
	assert.Equal(t, geom.V(0, 0), State{}.Axis())
	assert.Equal(t, geom.V(1, 1), State{Up: true, Right: true}.Axis())
	assert.Equal(t, geom.V(0, 0), State{Left: true, Right: true}.Axis())
	assert.Equal(t, geom.V(-1, -1), State{Down: true, Left: true}.Axis())
}

func TestAimTarget(t *testing.T) {
	self := geom.V(3, 3)
	assert.Equal(t, self, State{}.AimTarget(self))
	c := geom.V(10, 0)
	assert.Equal(t, c, State{Cursor: &c}.AimTarget(self))
}
