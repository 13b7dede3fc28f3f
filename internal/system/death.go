package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/core/event"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/match"
	"github.com/magicalhell/horde/internal/world"
)

// Transitioner queues match-state changes.
type Transitioner interface {
	Request(next match.State) error
	Pending() (match.State, bool)
}

// DeathSystem removes enemies whose health ran out and ends the match when
// the player's does. Phase 3 (PostUpdate), after CombatSystem.
type DeathSystem struct {
	world *world.State
	bus   *event.Bus
	match Transitioner
	log   *zap.Logger
}

func NewDeathSystem(ws *world.State, bus *event.Bus, m Transitioner, log *zap.Logger) *DeathSystem {
	return &DeathSystem{world: ws, bus: bus, match: m, log: log}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DeathSystem) Update(_ time.Duration) {
	for _, id := range s.world.Enemies.IDs() {
		h, ok := s.world.Healths.Get(id)
		if !ok || !h.Dead() || s.world.ECS.PendingDestruction(id) {
			continue
		}
		e, _ := s.world.Enemies.Get(id)
		s.world.Despawn(id)
		event.Emit(s.bus, event.EnemyKilled{EntityID: id, Kind: e.Kind})
	}

	pid, _, ok := s.world.Player()
	if !ok {
		return
	}
	h, ok := s.world.Healths.Get(pid)
	if !ok || !h.Dead() {
		return
	}
	if next, pending := s.match.Pending(); pending && next == match.MainMenu {
		return
	}
	if err := s.match.Request(match.MainMenu); err != nil {
		s.log.Error("end match", zap.Error(err))
		return
	}
	event.Emit(s.bus, event.PlayerDied{EntityID: pid, At: s.world.Clock.Now()})
	s.log.Info("player died", zap.Duration("survived", s.world.Clock.Now()))
}
