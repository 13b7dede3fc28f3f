package system

import (
	"time"

	"github.com/magicalhell/horde/internal/component"
	"github.com/magicalhell/horde/internal/core/ecs"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/world"
)

// PursuitSystem steers every enemy straight at the player. Phase 2 (Update).
type PursuitSystem struct {
	world *world.State
	speed float64
}

func NewPursuitSystem(ws *world.State, speed float64) *PursuitSystem {
	return &PursuitSystem{world: ws, speed: speed}
}

func (s *PursuitSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PursuitSystem) Update(_ time.Duration) {
	_, ptr, ok := s.world.Player()
	if !ok {
		return
	}
	ecs.Each2(s.world.Enemies, s.world.Transforms, func(id ecs.EntityID, _ *component.Enemy, tr *component.Transform) {
		s.world.SetIntent(id, PursuitIntent(tr.Pos, ptr.Pos, s.speed))
	})
}

// PursuitIntent is the per-tick translation from enemy toward player.
// An enemy standing on the player does not move.
func PursuitIntent(enemy, player geom.Vec2, speed float64) geom.Vec2 {
	dir, ok := player.Sub(enemy).Normalize()
	if !ok {
		return geom.Vec2{}
	}
	return dir.Scale(speed)
}
