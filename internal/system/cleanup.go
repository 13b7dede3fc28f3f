package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.Flush()
}

// CleanupMatch removes every match-tagged entity together with its children
// and applies the removal immediately. It returns how many tagged entities
// were removed.
func CleanupMatch(ws *world.State, log *zap.Logger) int {
	members := ws.MatchMembers()
	for _, id := range members {
		ws.DespawnRecursive(id)
	}
	ws.Flush()
	log.Info("match cleaned up", zap.Int("entities", len(members)))
	return len(members)
}
