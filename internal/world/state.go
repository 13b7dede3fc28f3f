package world

import (
	"github.com/magicalhell/horde/internal/component"
	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/clock"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/data"
	"github.com/magicalhell/horde/internal/geom"
)

// Sizes are the collider dimensions derived from the sprite tile size and
// render scale.
type Sizes struct {
	Scale        float64
	PlayerHalf   float64
	EnemyHalf    float64
	BulletRadius float64
}

func SizesFrom(cfg config.WorldConfig) Sizes {
	edge := cfg.TileSize * cfg.SpriteScale
	return Sizes{
		Scale:        cfg.SpriteScale,
		PlayerHalf:   edge / 4,
		EnemyHalf:    edge / 6,
		BulletRadius: 2,
	}
}

// State is the entity registry of the simulation: the ECS arena, one typed
// side-table per component, the match clock and the per-tick Outbox.
// Accessed only from the game loop goroutine; no locks needed.
type State struct {
	ECS *ecs.World

	Transforms  *ecs.PtrComponentStore[component.Transform]
	Healths     *ecs.PtrComponentStore[component.Health]
	Players     *ecs.PtrComponentStore[component.Player]
	Enemies     *ecs.PtrComponentStore[component.Enemy]
	Guns        *ecs.PtrComponentStore[component.Gun]
	Bullets     *ecs.PtrComponentStore[component.Bullet]
	Kinematics  *ecs.PtrComponentStore[component.Kinematic]
	Velocities  *ecs.PtrComponentStore[component.Velocity]
	Colliders   *ecs.PtrComponentStore[component.Collider]
	Sprites     *ecs.PtrComponentStore[component.Sprite]
	Members     *ecs.PtrComponentStore[component.MatchMember]
	Decorations *ecs.PtrComponentStore[component.Decoration]

	Clock  clock.Clock
	Outbox Outbox

	sizes Sizes
}

func NewState(sizes Sizes) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	s := &State{
		ECS:         w,
		Transforms:  ecs.Store[component.Transform](r),
		Healths:     ecs.Store[component.Health](r),
		Players:     ecs.Store[component.Player](r),
		Enemies:     ecs.Store[component.Enemy](r),
		Guns:        ecs.Store[component.Gun](r),
		Bullets:     ecs.Store[component.Bullet](r),
		Kinematics:  ecs.Store[component.Kinematic](r),
		Velocities:  ecs.Store[component.Velocity](r),
		Colliders:   ecs.Store[component.Collider](r),
		Sprites:     ecs.Store[component.Sprite](r),
		Members:     ecs.Store[component.MatchMember](r),
		Decorations: ecs.Store[component.Decoration](r),
		sizes:       sizes,
	}
	w.OnDestroy(func(id ecs.EntityID, recursive bool) {
		s.Outbox.Despawns = append(s.Outbox.Despawns, DespawnRequest{ID: id, Recursive: recursive})
	})
	return s
}

// ---------- Lookups ----------

// Player returns the player singleton. ok is false outside a match.
func (s *State) Player() (ecs.EntityID, *component.Transform, bool) {
	id, _, ok := s.Players.First()
	if !ok {
		return 0, nil, false
	}
	tr, ok := s.Transforms.Get(id)
	if !ok {
		return 0, nil, false
	}
	return id, tr, true
}

// Gun returns the gun singleton.
func (s *State) Gun() (ecs.EntityID, *component.Gun, bool) {
	return s.Guns.First()
}

func (s *State) EnemyCount() int { return s.Enemies.Len() }

func (s *State) BulletCount() int { return s.Bullets.Len() }

// Alive reports whether id refers to a live entity.
func (s *State) Alive(id ecs.EntityID) bool { return s.ECS.Alive(id) }

// KindOf classifies a live entity; stale IDs are KindUnknown.
func (s *State) KindOf(id ecs.EntityID) Kind {
	if !s.ECS.Alive(id) {
		return KindUnknown
	}
	switch {
	case s.Players.Has(id):
		return KindPlayer
	case s.Enemies.Has(id):
		return KindEnemy
	case s.Bullets.Has(id):
		return KindBullet
	case s.Guns.Has(id):
		return KindGun
	case s.Decorations.Has(id):
		return KindDecoration
	}
	return KindUnknown
}

// Position returns the world position of id.
func (s *State) Position(id ecs.EntityID) (geom.Vec2, bool) {
	tr, ok := s.Transforms.Get(id)
	if !ok {
		return geom.Vec2{}, false
	}
	return tr.Pos, true
}

// SetPosition stores a position resolved by the physics collaborator.
func (s *State) SetPosition(id ecs.EntityID, pos geom.Vec2) {
	if tr, ok := s.Transforms.Get(id); ok {
		tr.Pos = pos
	}
}

// SetIntent records this tick's desired translation for a kinematic body.
func (s *State) SetIntent(id ecs.EntityID, translation geom.Vec2) {
	k, ok := s.Kinematics.Get(id)
	if !ok {
		return
	}
	k.Intent = translation
	s.Outbox.Moves = append(s.Outbox.Moves, MoveIntent{ID: id, Translation: translation})
}

// ---------- Spawning ----------

func (s *State) create(req SpawnRequest) ecs.EntityID {
	id := s.ECS.CreateEntity()
	req.ID = id
	tr := req.Transform
	s.Transforms.Set(id, &tr)
	if req.Collider.Shape != component.ShapeNone {
		c := req.Collider
		s.Colliders.Set(id, &c)
	}
	s.Sprites.Set(id, &component.Sprite{Index: req.Sprite})
	switch req.Body {
	case component.BodyKinematicPosition:
		s.Kinematics.Set(id, &component.Kinematic{})
	case component.BodyKinematicVelocity:
		s.Velocities.Set(id, &component.Velocity{Linear: req.Velocity})
	}
	if req.MatchMember {
		s.Members.Set(id, &component.MatchMember{})
	}
	if !req.Parent.IsZero() {
		s.ECS.Attach(id, req.Parent)
	}
	s.Outbox.Spawns = append(s.Outbox.Spawns, req)
	return id
}

// SpawnPlayer creates the player at pos with full health.
func (s *State) SpawnPlayer(pos geom.Vec2, health uint32) ecs.EntityID {
	id := s.create(SpawnRequest{
		Kind:        KindPlayer,
		MatchMember: true,
		Transform:   component.Transform{Pos: pos, Scale: s.sizes.Scale},
		Collider: component.Collider{
			Shape:       component.ShapeCuboid,
			HalfExtents: geom.V(s.sizes.PlayerHalf, s.sizes.PlayerHalf),
		},
		Body:   component.BodyKinematicPosition,
		Sprite: SpritePlayer,
	})
	s.Players.Set(id, &component.Player{State: component.Idle})
	s.Healths.Set(id, component.NewHealth(health))
	return id
}

// SpawnGun attaches a gun to owner. The gun is not match-tagged itself; it
// goes away with its owner.
func (s *State) SpawnGun(owner ecs.EntityID, cooldown *clock.Cadence) ecs.EntityID {
	pos, _ := s.Position(owner)
	id := s.create(SpawnRequest{
		Kind:      KindGun,
		Parent:    owner,
		Transform: component.Transform{Pos: pos, Scale: 1},
		Sprite:    SpriteGun,
	})
	s.Guns.Set(id, &component.Gun{Owner: owner, Cooldown: cooldown})
	return id
}

// SpawnEnemy creates a match-tagged enemy of the given kind with full health.
func (s *State) SpawnEnemy(kind data.EnemyKind, pos geom.Vec2, health uint32) ecs.EntityID {
	id := s.create(SpawnRequest{
		Kind:        KindEnemy,
		MatchMember: true,
		Transform:   component.Transform{Pos: pos, Scale: s.sizes.Scale},
		Collider: component.Collider{
			Shape:       component.ShapeCuboid,
			HalfExtents: geom.V(s.sizes.EnemyHalf, s.sizes.EnemyHalf),
		},
		Body:   component.BodyKinematicPosition,
		Sprite: kind.Sprite,
	})
	s.Enemies.Set(id, &component.Enemy{Kind: kind.Name})
	s.Healths.Set(id, component.NewHealth(health))
	return id
}

// SpawnBullet creates a match-tagged bullet stamped with the current match time.
func (s *State) SpawnBullet(pos, velocity geom.Vec2, damage uint32) ecs.EntityID {
	id := s.create(SpawnRequest{
		Kind:        KindBullet,
		MatchMember: true,
		Transform:   component.Transform{Pos: pos, Scale: s.sizes.Scale},
		Collider:    component.Collider{Shape: component.ShapeBall, Radius: s.sizes.BulletRadius},
		Body:        component.BodyKinematicVelocity,
		Velocity:    velocity,
		Sprite:      SpriteBullet,
	})
	s.Bullets.Set(id, &component.Bullet{Damage: damage, SpawnedAt: s.Clock.Now()})
	return id
}

// SpawnDecoration creates match-tagged scenery.
func (s *State) SpawnDecoration(pos geom.Vec2, sprite int) ecs.EntityID {
	id := s.create(SpawnRequest{
		Kind:        KindDecoration,
		MatchMember: true,
		Transform:   component.Transform{Pos: pos, Scale: s.sizes.Scale},
		Sprite:      sprite,
	})
	s.Decorations.Set(id, &component.Decoration{})
	return id
}

// ---------- Removal ----------

// Despawn queues id for removal at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	s.ECS.MarkForDestruction(id, false)
}

// DespawnRecursive queues id and all of its children for removal.
func (s *State) DespawnRecursive(id ecs.EntityID) {
	s.ECS.MarkForDestruction(id, true)
}

// Flush applies all queued removals.
func (s *State) Flush() {
	s.ECS.FlushDestroyQueue()
}

// MatchMembers returns every match-tagged entity in ascending ID order.
func (s *State) MatchMembers() []ecs.EntityID {
	return s.Members.IDs()
}
