package system

import (
	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/clock"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/core/rng"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/world"
)

// InitMatch populates a fresh match: the player at the origin with a gun
// attached and the configured number of decorations scattered over the map.
// The match clock restarts at zero.
func InitMatch(ws *world.State, cfg *config.Config, src rng.Source, log *zap.Logger) ecs.EntityID {
	ws.Clock.Reset()

	pid := ws.SpawnPlayer(geom.Vec2{}, cfg.Player.Health)
	ws.SpawnGun(pid, clock.NewCadence(cfg.Gun.FireInterval))

	for i := 0; i < cfg.World.Decorations; i++ {
		pos := geom.RandomInRect(src, cfg.World.Width, cfg.World.Height)
		sprite := src.IntRange(world.SpriteDecorationMin, world.SpriteDecorationMax+1)
		ws.SpawnDecoration(pos, sprite)
	}

	log.Info("match initialized",
		zap.Uint64("player", uint64(pid)),
		zap.Int("decorations", cfg.World.Decorations),
	)
	return pid
}
