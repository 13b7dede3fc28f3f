package system

import (
	"time"

	"github.com/magicalhell/horde/internal/core/event"
	coresys "github.com/magicalhell/horde/internal/core/system"
)

// EventDispatchSystem makes last tick's events readable and runs the push
// subscribers. Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
