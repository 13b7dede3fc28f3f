package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/event"
	"github.com/magicalhell/horde/internal/core/rng"
	"github.com/magicalhell/horde/internal/data"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/input"
	"github.com/magicalhell/horde/internal/match"
	"github.com/magicalhell/horde/internal/world"
)

const dt = 20 * time.Millisecond

func newTestGame(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	g, err := New(Options{Config: cfg, Rand: rng.New(42)})
	require.NoError(t, err)
	return g
}

// startMatch drives Loading → MainMenu → GameInit → InGame and returns the
// Outbox of the first in-game tick.
func startMatch(t *testing.T, g *Game) *world.Outbox {
	t.Helper()
	if g.State() == match.Loading {
		require.NoError(t, g.Request(match.MainMenu))
		g.Tick(dt, input.State{})
	}
	require.NoError(t, g.Request(match.GameInit))
	out := g.Tick(dt, input.State{})
	require.Equal(t, match.InGame, g.State())
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.Max = 0
	_, err := New(Options{Config: cfg})
	assert.Error(t, err)
}

func TestSystemsIdleOutsideMatch(t *testing.T) {
	g := newTestGame(t, nil)
	for i := 0; i < 200; i++ {
		out := g.Tick(dt, input.State{Fire: true, Up: true})
		assert.Empty(t, out.Spawns)
		assert.Empty(t, out.Moves)
	}
	assert.Equal(t, match.Loading, g.State())
	assert.Zero(t, g.World().ECS.Pool().Live())
	assert.Zero(t, g.Now())
}

func TestInvalidRequestIsRejected(t *testing.T) {
	g := newTestGame(t, nil)
	assert.ErrorIs(t, g.Request(match.InGame), match.ErrInvalidTransition)
	assert.Equal(t, match.Loading, g.State())
}

func TestMatchStartCreatesOnePlayerAndGun(t *testing.T) {
	cfg := config.Default()
	cfg.World.Decorations = 3
	g := newTestGame(t, cfg)
	out := startMatch(t, g)

	assert.Equal(t, []match.State{match.GameInit, match.InGame}, out.Transitions,
		"init and start happen in the same tick")
	ws := g.World()
	assert.Equal(t, 1, ws.Players.Len())
	assert.Equal(t, 1, ws.Guns.Len())
	assert.Equal(t, 3, ws.Decorations.Len())
	assert.Zero(t, ws.EnemyCount())

	kinds := map[world.Kind]int{}
	for _, s := range out.Spawns {
		kinds[s.Kind]++
	}
	assert.Equal(t, map[world.Kind]int{world.KindPlayer: 1, world.KindGun: 1, world.KindDecoration: 3}, kinds)
	assert.Equal(t, dt, g.Now(), "the first in-game tick already advanced the clock")
	assert.NotEmpty(t, g.Stats().MatchID)
}

func TestEnemiesArriveEachSpawnInterval(t *testing.T) {
	g := newTestGame(t, nil)
	startMatch(t, g)

	// The start tick counts: 50 ticks of 20ms is one spawn interval.
	for i := 0; i < 48; i++ {
		g.Tick(dt, input.State{})
	}
	assert.Zero(t, g.World().EnemyCount())

	out := g.Tick(dt, input.State{})
	assert.Equal(t, config.Default().Enemy.Max, g.World().EnemyCount())
	assert.Len(t, out.Spawns, config.Default().Enemy.Max)

	for i := 0; i < 200; i++ {
		g.Tick(dt, input.State{})
		assert.LessOrEqual(t, g.World().EnemyCount(), config.Default().Enemy.Max)
	}
}

func TestEnemiesPursueThePlayer(t *testing.T) {
	g := newTestGame(t, nil)
	startMatch(t, g)
	ws := g.World()
	e := ws.SpawnEnemy(data.DefaultEnemyTable().At(0), geom.V(0, 100), 100)

	out := g.Tick(dt, input.State{})
	var got *world.MoveIntent
	for i := range out.Moves {
		if out.Moves[i].ID == e {
			got = &out.Moves[i]
		}
	}
	require.NotNil(t, got)
	assert.InDelta(t, 0, got.Translation.X, 1e-12)
	assert.InDelta(t, -1, got.Translation.Y, 1e-12)
}

func TestPlayerDeathReturnsToMenuOnce(t *testing.T) {
	g := newTestGame(t, nil)
	startMatch(t, g)
	ws := g.World()
	pid, _, _ := ws.Player()
	h, _ := ws.Healths.Get(pid)
	h.Current = 1
	a := ws.SpawnEnemy(data.DefaultEnemyTable().At(0), geom.V(3, 0), 100)
	b := ws.SpawnEnemy(data.DefaultEnemyTable().At(1), geom.V(-3, 0), 100)

	g.PushContact(a, pid)
	g.PushContact(pid, b)
	out := g.Tick(dt, input.State{})
	assert.Empty(t, out.Transitions, "the transition applies at the next tick")
	assert.Zero(t, h.Current)
	assert.Equal(t, match.InGame, g.State())

	out = g.Tick(dt, input.State{})
	assert.Equal(t, []match.State{match.MainMenu}, out.Transitions)
	assert.Equal(t, match.MainMenu, g.State())
	assert.Zero(t, ws.ECS.Pool().Live(), "every match entity is gone")
	assert.NotEmpty(t, out.Despawns)

	st := g.Stats()
	assert.True(t, st.Died)
	assert.Equal(t, uint64(1), st.DamageTaken)
	assert.Equal(t, 2*dt, st.Survived)

	for i := 0; i < 10; i++ {
		out = g.Tick(dt, input.State{})
		assert.Empty(t, out.Transitions)
	}
}

func TestMatchCanBeReplayed(t *testing.T) {
	g := newTestGame(t, nil)
	startMatch(t, g)
	first := g.Stats().MatchID
	pid, _, _ := g.World().Player()
	h, _ := g.World().Healths.Get(pid)
	h.Current = 0
	g.Tick(dt, input.State{})
	g.Tick(dt, input.State{})
	require.Equal(t, match.MainMenu, g.State())

	startMatch(t, g)
	assert.Equal(t, 1, g.World().Players.Len())
	assert.Equal(t, 1, g.World().Guns.Len())
	assert.NotEqual(t, first, g.Stats().MatchID)
	assert.Equal(t, uint64(1), g.Stats().Ticks)
}

func TestFiringCountsBullets(t *testing.T) {
	g := newTestGame(t, nil)
	startMatch(t, g)
	cursor := geom.V(0, 50)
	for i := 0; i < 50; i++ {
		g.Tick(dt, input.State{Fire: true, Cursor: &cursor})
	}
	// 51 ticks of 20ms with a 200ms interval.
	assert.Equal(t, 5, g.World().BulletCount())
	g.Tick(dt, input.State{})
	assert.Equal(t, 5, g.Stats().BulletsFired)
}

func TestContactsOutsideMatchAreDropped(t *testing.T) {
	g := newTestGame(t, nil)
	g.PushContact(1, 2)
	startMatch(t, g)
	pid, _, _ := g.World().Player()
	g.Tick(dt, input.State{})
	h, _ := g.World().Healths.Get(pid)
	assert.Equal(t, config.Default().Player.Health, h.Current)
}

func TestStateChangesDeliveredInTheirTick(t *testing.T) {
	g := newTestGame(t, nil)
	var seen []event.StateChanged
	event.Subscribe(g.Bus(), func(e event.StateChanged) { seen = append(seen, e) })

	require.NoError(t, g.Request(match.MainMenu))
	g.Tick(dt, input.State{})
	require.Len(t, seen, 1)
	assert.Equal(t, event.StateChanged{From: match.Loading, To: match.MainMenu}, seen[0])

	seen = nil
	startMatch(t, g)
	require.Len(t, seen, 2)
	assert.Equal(t, match.GameInit, seen[0].To)
	assert.Equal(t, match.InGame, seen[1].To)

	seen = nil
	for i := 0; i < 5; i++ {
		g.Tick(dt, input.State{})
	}
	assert.Empty(t, seen)

	require.NoError(t, g.Request(match.MainMenu))
	g.Tick(dt, input.State{})
	require.Len(t, seen, 1)
	assert.Equal(t, match.InGame, seen[0].From)
	assert.Equal(t, match.MainMenu, seen[0].To)

	// Nothing is left over for the next match.
	seen = nil
	startMatch(t, g)
	require.Len(t, seen, 2)
	assert.Equal(t, match.MainMenu, seen[0].From)
}
