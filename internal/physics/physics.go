// Package physics is a minimal headless stand-in for the physics engine the
// simulation core delegates to. It realises the Outbox requests of each
// tick, moves bodies and reports contact-begin pairs using bounding circles.
package physics

import (
	"sort"
	"time"

	"github.com/magicalhell/horde/internal/component"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/world"
)

// Contact is a pair of bodies whose shapes started touching this step.
type Contact struct {
	A, B ecs.EntityID
}

type body struct {
	pos      geom.Vec2
	vel      geom.Vec2 // units per second
	radius   float64
	kind     component.BodyType
	moved    bool
	children []ecs.EntityID
}

type pairKey struct {
	lo, hi ecs.EntityID
}

func keyOf(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// World tracks every collider-bearing body. Not safe for concurrent use.
type World struct {
	bodies   map[ecs.EntityID]*body
	touching map[pairKey]struct{}
	ids      []ecs.EntityID
}

func New() *World {
	return &World{
		bodies:   make(map[ecs.EntityID]*body),
		touching: make(map[pairKey]struct{}),
	}
}

func (w *World) Len() int { return len(w.bodies) }

// Apply realises one tick's requests: despawns first, then spawns, then
// the kinematic moves.
func (w *World) Apply(out *world.Outbox) {
	for _, d := range out.Despawns {
		w.remove(d.ID, d.Recursive)
	}
	for _, s := range out.Spawns {
		if p, ok := w.bodies[s.Parent]; ok && !s.Parent.IsZero() {
			p.children = append(p.children, s.ID)
		}
		if s.Collider.Shape == component.ShapeNone {
			continue
		}
		w.bodies[s.ID] = &body{
			pos:    s.Transform.Pos,
			vel:    s.Velocity,
			radius: s.Collider.BoundingRadius(),
			kind:   s.Body,
		}
	}
	for _, m := range out.Moves {
		b, ok := w.bodies[m.ID]
		if !ok || b.kind != component.BodyKinematicPosition {
			continue
		}
		b.pos = b.pos.Add(m.Translation)
		b.moved = true
	}
}

func (w *World) remove(id ecs.EntityID, recursive bool) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	if recursive {
		for _, c := range b.children {
			w.remove(c, true)
		}
	}
	delete(w.bodies, id)
	for k := range w.touching {
		if k.lo == id || k.hi == id {
			delete(w.touching, k)
		}
	}
}

// Step integrates velocity bodies over dt and returns the pairs that began
// touching, in ascending ID order. Pairs already touching are not repeated
// until they separate.
func (w *World) Step(dt time.Duration) []Contact {
	for _, b := range w.bodies {
		if b.kind == component.BodyKinematicVelocity && !b.vel.IsZero() {
			b.pos = b.pos.Add(b.vel.Scale(dt.Seconds()))
			b.moved = true
		}
	}

	w.ids = w.ids[:0]
	for id := range w.bodies {
		w.ids = append(w.ids, id)
	}
	sort.Slice(w.ids, func(i, j int) bool { return w.ids[i] < w.ids[j] })

	var began []Contact
	for i, a := range w.ids {
		ba := w.bodies[a]
		for _, b := range w.ids[i+1:] {
			bb := w.bodies[b]
			k := pairKey{lo: a, hi: b}
			_, was := w.touching[k]
			if overlaps(ba, bb) {
				if !was {
					w.touching[k] = struct{}{}
					began = append(began, Contact{A: a, B: b})
				}
			} else if was {
				delete(w.touching, k)
			}
		}
	}
	return began
}

func overlaps(a, b *body) bool {
	r := a.radius + b.radius
	d := b.pos.Sub(a.pos)
	return d.Dot(d) < r*r
}

// Moved calls fn for every body whose position changed since the last call.
func (w *World) Moved(fn func(id ecs.EntityID, pos geom.Vec2)) {
	for _, id := range w.ids {
		b, ok := w.bodies[id]
		if !ok || !b.moved {
			continue
		}
		b.moved = false
		fn(id, b.pos)
	}
}

// Position returns the simulated position of a body.
func (w *World) Position(id ecs.EntityID) (geom.Vec2, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return geom.Vec2{}, false
	}
	return b.pos, true
}

// Touching reports whether a and b are currently in contact.
func (w *World) Touching(a, b ecs.EntityID) bool {
	_, ok := w.touching[keyOf(a, b)]
	return ok
}
