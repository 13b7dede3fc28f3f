package system

import (
	"time"

	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/world"
)

// ProjectileSystem removes bullets that have outlived their lifetime.
// Phase 3 (PostUpdate), ahead of combat so an expired bullet never hits.
type ProjectileSystem struct {
	world    *world.State
	lifetime time.Duration
}

func NewProjectileSystem(ws *world.State, lifetime time.Duration) *ProjectileSystem {
	return &ProjectileSystem{world: ws, lifetime: lifetime}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ProjectileSystem) Update(_ time.Duration) {
	now := s.world.Clock.Now()
	for _, id := range s.world.Bullets.IDs() {
		b, _ := s.world.Bullets.Get(id)
		if now-b.SpawnedAt > s.lifetime {
			s.world.Despawn(id)
		}
	}
}
