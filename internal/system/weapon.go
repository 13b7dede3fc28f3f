package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/event"
	"github.com/magicalhell/horde/internal/core/rng"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/input"
	"github.com/magicalhell/horde/internal/world"
)

// GunAimSystem points the gun at the cursor and places it on a circle
// around its owner. Phase 2 (Update), registered before GunFireSystem.
type GunAimSystem struct {
	world  *world.State
	input  *input.Snapshot
	radius float64
}

func NewGunAimSystem(ws *world.State, in *input.Snapshot, radius float64) *GunAimSystem {
	return &GunAimSystem{world: ws, input: in, radius: radius}
}

func (s *GunAimSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *GunAimSystem) Update(_ time.Duration) {
	gid, gun, ok := s.world.Gun()
	if !ok {
		return
	}
	pivot, ok := s.world.Position(gun.Owner)
	if !ok {
		return
	}
	gun.Angle = geom.AimAngle(pivot, s.input.Get().AimTarget(pivot))
	s.world.SetPosition(gid, geom.Orbit(pivot, gun.Angle, s.radius))
}

// GunFireSystem spawns bullets along the aim angle while fire is held,
// at most once per fire interval. Phase 2 (Update).
type GunFireSystem struct {
	world *world.State
	input *input.Snapshot
	bus   *event.Bus
	rng   rng.Source
	cfg   config.GunConfig
	log   *zap.Logger
}

func NewGunFireSystem(ws *world.State, in *input.Snapshot, bus *event.Bus, src rng.Source, cfg config.GunConfig, log *zap.Logger) *GunFireSystem {
	return &GunFireSystem{world: ws, input: in, bus: bus, rng: src, cfg: cfg, log: log}
}

func (s *GunFireSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *GunFireSystem) Update(dt time.Duration) {
	gid, gun, ok := s.world.Gun()
	if !ok {
		return
	}
	// The cooldown keeps charging while the trigger is released.
	gun.Cooldown.Advance(dt)
	if !s.input.Get().Fire || !gun.Cooldown.Fire() {
		return
	}
	pos, ok := s.world.Position(gid)
	if !ok {
		return
	}

	dir := geom.FromAngle(gun.Angle)
	muzzle := pos.Add(dir.Scale(s.cfg.MuzzleOffset))
	for i := 0; i < s.cfg.BulletsPerShot; i++ {
		vel := s.spread(dir).Scale(s.cfg.BulletSpeed)
		id := s.world.SpawnBullet(muzzle, vel, s.cfg.BulletDamage)
		event.Emit(s.bus, event.BulletFired{EntityID: id})
		s.log.Debug("bullet fired",
			zap.Uint64("entity", uint64(id)),
			zap.Float64("angle", gun.Angle),
		)
	}
}

// spread adds independent per-axis jitter to the unit aim direction. The
// result is not renormalized, so bullet speed varies slightly with spread.
func (s *GunFireSystem) spread(dir geom.Vec2) geom.Vec2 {
	j := s.cfg.Jitter
	if j == 0 {
		return dir
	}
	return geom.V(
		dir.X+s.rng.Float64Range(-j, j),
		dir.Y+s.rng.Float64Range(-j, j),
	)
}
