package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/clock"
	"github.com/magicalhell/horde/internal/core/rng"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/data"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/world"
)

// SpawnSystem keeps the horde topped up: once per spawn interval it creates
// enemies in a ring around the player until the population cap is reached,
// at most SpawnRateCap per cycle. Phase 2 (Update).
type SpawnSystem struct {
	world   *world.State
	kinds   *data.EnemyTable
	rng     rng.Source
	cfg     config.EnemyConfig
	cadence *clock.Cadence
	log     *zap.Logger
}

func NewSpawnSystem(ws *world.State, kinds *data.EnemyTable, src rng.Source, cfg config.EnemyConfig, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{
		world:   ws,
		kinds:   kinds,
		rng:     src,
		cfg:     cfg,
		cadence: clock.NewCadence(cfg.SpawnInterval),
		log:     log,
	}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SpawnSystem) Update(dt time.Duration) {
	if !s.cadence.Tick(dt) {
		return
	}
	s.SpawnWave()
}

// Reset restarts the spawn cadence for a new match.
func (s *SpawnSystem) Reset() { s.cadence.Reset() }

// SpawnWave runs one spawn cycle immediately and returns how many enemies
// were created.
func (s *SpawnSystem) SpawnWave() int {
	_, ptr, ok := s.world.Player()
	if !ok || s.kinds.Count() == 0 {
		return 0
	}
	n := SpawnBudget(s.world.EnemyCount(), s.cfg.Max, s.cfg.SpawnRateCap)
	anchor := ptr.Pos
	for i := 0; i < n; i++ {
		kind := s.kinds.At(s.rng.IntRange(0, s.kinds.Count()))
		pos := geom.RandomAround(s.rng, anchor, s.cfg.SpawnMinDistance, s.cfg.SpawnMaxDistance)
		id := s.world.SpawnEnemy(kind, pos, s.cfg.Health)
		s.log.Debug("enemy spawned",
			zap.Uint64("entity", uint64(id)),
			zap.String("kind", kind.Name),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y),
		)
	}
	return n
}

// SpawnBudget is min(max(0, max-count), rateCap).
func SpawnBudget(count, max, rateCap int) int {
	if count >= max || rateCap <= 0 {
		return 0
	}
	n := max - count
	if n > rateCap {
		n = rateCap
	}
	return n
}
