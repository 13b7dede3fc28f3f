// Package sim wires the simulation core together behind a single per-frame
// entry point.
package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/core/event"
	"github.com/magicalhell/horde/internal/core/rng"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/data"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/input"
	"github.com/magicalhell/horde/internal/match"
	"github.com/magicalhell/horde/internal/system"
	"github.com/magicalhell/horde/internal/world"
)

// Options are the collaborators a Game is built from. Zero values pick the
// defaults: built-in enemy kinds, fixed damage, a seeded source from
// Config.Sim.Seed and a no-op logger.
type Options struct {
	Config *config.Config
	Kinds  *data.EnemyTable
	Damage system.DamageCalculator
	Rand   rng.Source
	Log    *zap.Logger
}

// Game is the simulation core. All methods must be called from one
// goroutine, the host's frame loop.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	world   *world.State
	bus     *event.Bus
	machine *match.Machine
	runner  *coresys.Runner
	input   *input.Snapshot
	rand    rng.Source
	spawner *system.SpawnSystem
	stats   statsCollector
}

func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	kinds := opts.Kinds
	if kinds == nil {
		kinds = data.DefaultEnemyTable()
	}
	src := opts.Rand
	if src == nil {
		src = rng.New(cfg.Sim.Seed)
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	g := &Game{
		cfg:     cfg,
		log:     log,
		world:   world.NewState(world.SizesFrom(cfg.World)),
		bus:     event.NewBus(),
		machine: match.NewMachine(log),
		runner:  coresys.NewRunner(),
		input:   &input.Snapshot{},
		rand:    src,
	}
	g.stats.reset()
	g.stats.subscribe(g.bus)

	// Registration order is execution order within a phase.
	g.spawner = system.NewSpawnSystem(g.world, kinds, src, cfg.Enemy, log)
	g.runner.Register(system.NewInputSystem(g.world, g.input, cfg.Player.Speed))
	g.runner.Register(system.NewEventDispatchSystem(g.bus))
	g.runner.Register(g.spawner)
	g.runner.Register(system.NewPursuitSystem(g.world, cfg.Enemy.Speed))
	g.runner.Register(system.NewGunAimSystem(g.world, g.input, cfg.Gun.OrbitRadius))
	g.runner.Register(system.NewGunFireSystem(g.world, g.input, g.bus, src, cfg.Gun, log))
	g.runner.Register(system.NewProjectileSystem(g.world, cfg.Gun.BulletLifetime))
	g.runner.Register(system.NewCombatSystem(g.world, g.bus, opts.Damage, cfg.Enemy.ContactDamage, cfg.Combat, log))
	g.runner.Register(system.NewDeathSystem(g.world, g.bus, g.machine, log))
	g.runner.Register(system.NewCleanupSystem(g.world))

	g.machine.OnEnter(match.GameInit, g.enterGameInit)
	g.machine.OnExit(match.InGame, g.exitInGame)
	g.machine.Observe(func(tr match.Transition) {
		g.world.Outbox.Transitions = append(g.world.Outbox.Transitions, tr.To)
		event.Emit(g.bus, event.StateChanged{From: tr.From, To: tr.To, At: g.world.Clock.Now()})
	})
	log.Debug("systems registered", zap.Int("count", len(g.runner.Systems())))
	return g, nil
}

func (g *Game) enterGameInit() {
	g.stats.reset()
	g.spawner.Reset()
	system.InitMatch(g.world, g.cfg, g.rand, g.log)
	if err := g.machine.Request(match.InGame); err != nil {
		g.log.Error("start match", zap.Error(err))
	}
}

func (g *Game) exitInGame() {
	// Deliver the final tick's events before the match is torn down.
	g.bus.SwapBuffers()
	g.bus.DispatchAll()
	g.bus.Reset()

	if !g.stats.cur.Died {
		g.stats.cur.Survived = g.world.Clock.Now()
	}
	s := g.stats.cur
	g.log.Info("match over",
		zap.String("match", s.MatchID),
		zap.Duration("survived", s.Survived),
		zap.Uint64("ticks", s.Ticks),
		zap.Int("kills", s.Kills),
		zap.Int("bullets", s.BulletsFired),
		zap.Uint64("damage_taken", s.DamageTaken),
	)
	system.CleanupMatch(g.world, g.log)
}

// Tick advances the simulation by one frame. Pending state transitions are
// applied first; the systems run only while a match is in progress. Events
// raised by a transition are delivered within the same tick. The returned
// Outbox is valid until the next call.
func (g *Game) Tick(dt time.Duration, in input.State) *world.Outbox {
	g.world.Outbox.Reset()
	g.input.Set(in)
	g.machine.Apply()

	if !g.machine.Is(match.InGame) {
		// No dispatch system runs outside a match.
		g.bus.SwapBuffers()
		g.bus.DispatchAll()
		return &g.world.Outbox
	}
	g.world.Clock.Advance(dt)
	g.stats.cur.Ticks++
	g.runner.Tick(dt)
	return &g.world.Outbox
}

// Request queues a match-state transition for the start of the next tick.
func (g *Game) Request(next match.State) error {
	return g.machine.Request(next)
}

// State is the current match state.
func (g *Game) State() match.State { return g.machine.Current() }

// PushContact reports that the shapes of a and b started touching. The
// event is resolved during the next tick. Contacts outside a match are
// dropped.
func (g *Game) PushContact(a, b ecs.EntityID) {
	if !g.machine.Is(match.InGame) {
		return
	}
	event.Emit(g.bus, event.ContactBegan{A: a, B: b})
}

// SetPosition stores a position resolved by the physics collaborator.
func (g *Game) SetPosition(id ecs.EntityID, pos geom.Vec2) {
	g.world.SetPosition(id, pos)
}

// World exposes the entity registry for read access by hosts and tests.
func (g *Game) World() *world.State { return g.world }

// Bus exposes the event bus so hosts can subscribe to game events.
func (g *Game) Bus() *event.Bus { return g.bus }

// Now is the simulated time since the current match began.
func (g *Game) Now() time.Duration { return g.world.Clock.Now() }

// Stats returns a copy of the current (or last finished) match's statistics.
func (g *Game) Stats() Stats { return g.stats.snapshot() }
