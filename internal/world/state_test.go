package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicalhell/horde/internal/component"
	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/clock"
	"github.com/magicalhell/horde/internal/data"
	"github.com/magicalhell/horde/internal/geom"
)

func newTestState() *State {
	return NewState(SizesFrom(config.Default().World))
}

func TestSizesFromDefaults(t *testing.T) {
	sz := SizesFrom(config.Default().World)
	assert.Equal(t, 8.0, sz.PlayerHalf)
	assert.InDelta(t, 32.0/6, sz.EnemyHalf, 1e-12)
	assert.Equal(t, 2.0, sz.Scale)
}

func TestPlayerAndGunSingletons(t *testing.T) {
	s := newTestState()
	_, _, ok := s.Player()
	assert.False(t, ok, "no player before a match")

	pid := s.SpawnPlayer(geom.V(1, 2), 100)
	gid := s.SpawnGun(pid, clock.NewCadence(time.Second))

	id, tr, ok := s.Player()
	require.True(t, ok)
	assert.Equal(t, pid, id)
	assert.Equal(t, geom.V(1, 2), tr.Pos)

	g, gun, ok := s.Gun()
	require.True(t, ok)
	assert.Equal(t, gid, g)
	assert.Equal(t, pid, gun.Owner)

	parent, ok := s.ECS.Parent(gid)
	require.True(t, ok)
	assert.Equal(t, pid, parent)

	assert.True(t, s.Members.Has(pid))
	assert.False(t, s.Members.Has(gid), "gun goes with its owner, not by tag")

	h, _ := s.Healths.Get(pid)
	assert.Equal(t, uint32(100), h.Current)
	assert.Equal(t, KindPlayer, s.KindOf(pid))
	assert.Equal(t, KindGun, s.KindOf(gid))

	require.Len(t, s.Outbox.Spawns, 2)
	assert.Equal(t, pid, s.Outbox.Spawns[0].ID)
	assert.Equal(t, component.BodyKinematicPosition, s.Outbox.Spawns[0].Body)
	assert.Equal(t, pid, s.Outbox.Spawns[1].Parent)
	assert.Equal(t, SpriteGun, s.Outbox.Spawns[1].Sprite)
}

func TestRecursiveDespawnRemovesGun(t *testing.T) {
	s := newTestState()
	pid := s.SpawnPlayer(geom.Vec2{}, 100)
	gid := s.SpawnGun(pid, clock.NewCadence(time.Second))
	s.Outbox.Reset()

	s.DespawnRecursive(pid)
	assert.True(t, s.Alive(gid), "removal is deferred")
	s.Flush()

	assert.False(t, s.Alive(pid))
	assert.False(t, s.Alive(gid))
	assert.Zero(t, s.Guns.Len())
	assert.Zero(t, s.Transforms.Len())
	assert.Equal(t, []DespawnRequest{{ID: pid, Recursive: true}}, s.Outbox.Despawns)
	assert.Equal(t, KindUnknown, s.KindOf(pid))
}

func TestSpawnEnemyAndBullet(t *testing.T) {
	s := newTestState()
	s.Clock.Advance(3 * time.Second)

	eid := s.SpawnEnemy(data.EnemyKind{Name: "red", Sprite: 12}, geom.V(500, 0), 100)
	bid := s.SpawnBullet(geom.V(10, 0), geom.V(300, 0), 15)

	assert.Equal(t, 1, s.EnemyCount())
	assert.Equal(t, 1, s.BulletCount())
	assert.Equal(t, KindEnemy, s.KindOf(eid))
	assert.Equal(t, KindBullet, s.KindOf(bid))

	e, _ := s.Enemies.Get(eid)
	assert.Equal(t, "red", e.Kind)
	b, _ := s.Bullets.Get(bid)
	assert.Equal(t, 3*time.Second, b.SpawnedAt)
	assert.Equal(t, uint32(15), b.Damage)

	v, ok := s.Velocities.Get(bid)
	require.True(t, ok)
	assert.Equal(t, geom.V(300, 0), v.Linear)
	assert.True(t, s.Kinematics.Has(eid))

	c, _ := s.Colliders.Get(bid)
	assert.Equal(t, component.ShapeBall, c.Shape)
	sp, _ := s.Sprites.Get(eid)
	assert.Equal(t, 12, sp.Index)
}

func TestSetIntentAndPosition(t *testing.T) {
	s := newTestState()
	pid := s.SpawnPlayer(geom.Vec2{}, 100)
	did := s.SpawnDecoration(geom.V(5, 5), SpriteDecorationMin)

	s.SetIntent(pid, geom.V(1, 0))
	s.SetIntent(did, geom.V(1, 0))
	assert.Equal(t, []MoveIntent{{ID: pid, Translation: geom.V(1, 0)}}, s.Outbox.Moves,
		"only kinematic bodies take intents")

	s.SetPosition(pid, geom.V(4, 4))
	pos, ok := s.Position(pid)
	require.True(t, ok)
	assert.Equal(t, geom.V(4, 4), pos)
}

func TestMatchMembersSorted(t *testing.T) {
	s := newTestState()
	a := s.SpawnDecoration(geom.Vec2{}, 24)
	b := s.SpawnDecoration(geom.Vec2{}, 25)
	assert.Equal(t, 2, len(s.MatchMembers()))
	assert.Less(t, a, b)
	assert.Equal(t, a, s.MatchMembers()[0])
}
