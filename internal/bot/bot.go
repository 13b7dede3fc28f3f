// Package bot drives a Game headlessly: a scripted player that aims at the
// nearest enemy and a host loop that feeds the physics collaborator.
package bot

import (
	"math"
	"time"

	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/input"
	"github.com/magicalhell/horde/internal/physics"
	"github.com/magicalhell/horde/internal/sim"
	"github.com/magicalhell/horde/internal/world"
)

// Pilot picks the input for the next tick. It holds fire, aims at the
// nearest enemy and, when KiteDistance is set, backs away from any enemy
// closer than that.
type Pilot struct {
	KiteDistance float64
	// Fire is held only while an enemy is within range; 0 means always.
	Range float64
}

func (p Pilot) Next(ws *world.State) input.State {
	_, ptr, ok := ws.Player()
	if !ok {
		return input.State{}
	}
	target, dist, found := nearestEnemy(ws, ptr.Pos)
	if !found {
		return input.State{}
	}

	in := input.State{
		Cursor: &target,
		Fire:   p.Range == 0 || dist <= p.Range,
	}
	if p.KiteDistance > 0 && dist < p.KiteDistance {
		away := ptr.Pos.Sub(target)
		in.Right = away.X > 0
		in.Left = away.X < 0
		in.Up = away.Y > 0
		in.Down = away.Y < 0
	}
	return in
}

func nearestEnemy(ws *world.State, from geom.Vec2) (geom.Vec2, float64, bool) {
	best := math.Inf(1)
	var at geom.Vec2
	for _, id := range ws.Enemies.IDs() {
		pos, ok := ws.Position(id)
		if !ok {
			continue
		}
		if d := from.DistanceTo(pos); d < best {
			best, at = d, pos
		}
	}
	return at, best, !math.IsInf(best, 1)
}

// Host runs the frame loop a renderer would: tick the game, hand the Outbox
// to physics, step physics, then report contacts and positions back.
type Host struct {
	Game    *sim.Game
	Physics *physics.World
	Pilot   Pilot
}

func NewHost(g *sim.Game, p Pilot) *Host {
	return &Host{Game: g, Physics: physics.New(), Pilot: p}
}

// Step advances one frame and returns that frame's Outbox.
func (h *Host) Step(dt time.Duration) *world.Outbox {
	in := h.Pilot.Next(h.Game.World())
	out := h.Game.Tick(dt, in)
	h.Physics.Apply(out)
	for _, c := range h.Physics.Step(dt) {
		h.Game.PushContact(c.A, c.B)
	}
	h.Physics.Moved(h.Game.SetPosition)
	return out
}
