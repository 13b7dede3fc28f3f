// Package input is the per-tick snapshot of player controls, polled once per
// tick by the host and handed to the simulation.
package input

import "github.com/magicalhell/horde/internal/geom"

type State struct {
	Up, Down, Left, Right bool
	Fire                  bool
	// Cursor is the pointer in world coordinates; nil when unknown.
	Cursor *geom.Vec2
}

// Axis returns the raw keyboard direction: each component is -1, 0 or 1.
func (s State) Axis() geom.Vec2 {
	var v geom.Vec2
	if s.Right {
		v.X++
	}
	if s.Left {
		v.X--
	}
	if s.Up {
		v.Y++
	}
	if s.Down {
		v.Y--
	}
	return v
}

// AimTarget returns the cursor, or fallback when the cursor is unknown.
func (s State) AimTarget(fallback geom.Vec2) geom.Vec2 {
	if s.Cursor == nil {
		return fallback
	}
	return *s.Cursor
}

// Snapshot holds the latest input for systems to read during a tick.
type Snapshot struct {
	cur State
}

func (s *Snapshot) Set(st State) { s.cur = st }
func (s *Snapshot) Get() State   { return s.cur }
