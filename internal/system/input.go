package system

import (
	"time"

	"github.com/magicalhell/horde/internal/component"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/input"
	"github.com/magicalhell/horde/internal/world"
)

// InputSystem turns the polled keyboard axis into the player's movement
// intent and Idle/Run state. Phase 0 (Input).
type InputSystem struct {
	world *world.State
	input *input.Snapshot
	speed float64
}

func NewInputSystem(ws *world.State, in *input.Snapshot, speed float64) *InputSystem {
	return &InputSystem{world: ws, input: in, speed: speed}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	id, _, ok := s.world.Player()
	if !ok {
		return
	}
	p, _ := s.world.Players.Get(id)

	// Opposite keys cancel out; no key at all leaves a zero axis.
	dir, moving := s.input.Get().Axis().Normalize()
	if moving {
		p.State = component.Run
	} else {
		p.State = component.Idle
	}
	s.world.SetIntent(id, dir.Scale(s.speed))
}
