package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/core/event"
	coresys "github.com/magicalhell/horde/internal/core/system"
	"github.com/magicalhell/horde/internal/scripting"
	"github.com/magicalhell/horde/internal/world"
)

// DamageCalculator turns a contact into a damage amount. The Lua engine
// implements it; FixedDamage is the script-free fallback.
type DamageCalculator interface {
	ContactDamage(ctx scripting.ContactContext) uint32
	BulletDamage(ctx scripting.BulletHitContext) uint32
}

// FixedDamage deals the base amount of every context.
type FixedDamage struct{}

func (FixedDamage) ContactDamage(ctx scripting.ContactContext) uint32  { return ctx.Base }
func (FixedDamage) BulletDamage(ctx scripting.BulletHitContext) uint32 { return ctx.Base }

// CombatSystem resolves last tick's contact-begin events: an enemy touching
// the player deals contact damage, a bullet touching an enemy deals its
// damage and is spent. Phase 3 (PostUpdate).
type CombatSystem struct {
	world         *world.State
	bus           *event.Bus
	calc          DamageCalculator
	contactDamage uint32
	cfg           config.CombatConfig
	log           *zap.Logger
}

func NewCombatSystem(ws *world.State, bus *event.Bus, calc DamageCalculator, contactDamage uint32, cfg config.CombatConfig, log *zap.Logger) *CombatSystem {
	if calc == nil {
		calc = FixedDamage{}
	}
	return &CombatSystem{
		world:         ws,
		bus:           bus,
		calc:          calc,
		contactDamage: contactDamage,
		cfg:           cfg,
		log:           log,
	}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CombatSystem) Update(_ time.Duration) {
	contacts := event.Read[event.ContactBegan](s.bus)
	if len(contacts) == 0 {
		return
	}

	var hitBy map[ecs.EntityID]struct{}
	if s.cfg.DedupeContacts {
		hitBy = make(map[ecs.EntityID]struct{})
	}

	for _, c := range contacts {
		a, b := c.A, c.B
		ka, kb := s.world.KindOf(a), s.world.KindOf(b)
		// Order each pair so the enemy is always second.
		if ka == world.KindEnemy {
			a, b = b, a
			ka, kb = kb, ka
		}
		if kb != world.KindEnemy {
			continue
		}

		switch ka {
		case world.KindPlayer:
			if hitBy != nil {
				if _, dup := hitBy[b]; dup {
					continue
				}
				hitBy[b] = struct{}{}
			}
			s.hitPlayer(a, b)
		case world.KindBullet:
			if s.cfg.BulletHitsEnemies {
				s.hitEnemy(a, b)
			}
		}
	}
}

func (s *CombatSystem) hitPlayer(player, enemy ecs.EntityID) {
	// Killed by a bullet earlier in this tick's contacts.
	if eh, ok := s.world.Healths.Get(enemy); ok && eh.Dead() {
		return
	}
	h, ok := s.world.Healths.Get(player)
	if !ok {
		return
	}
	kind := ""
	if e, ok := s.world.Enemies.Get(enemy); ok {
		kind = e.Kind
	}
	amount := s.calc.ContactDamage(scripting.ContactContext{
		Base:         s.contactDamage,
		PlayerHealth: h.Current,
		EnemyKind:    kind,
	})
	dealt := h.Damage(amount)
	event.Emit(s.bus, event.PlayerDamaged{EntityID: player, Amount: dealt, Health: h.Current})
	s.log.Debug("player hit",
		zap.Uint64("enemy", uint64(enemy)),
		zap.Uint32("damage", dealt),
		zap.Uint32("health", h.Current),
	)
}

func (s *CombatSystem) hitEnemy(bullet, enemy ecs.EntityID) {
	// A bullet is spent by its first hit or by expiring earlier this tick.
	if s.world.ECS.PendingDestruction(bullet) {
		return
	}
	h, ok := s.world.Healths.Get(enemy)
	if !ok || h.Dead() {
		return
	}
	b, _ := s.world.Bullets.Get(bullet)
	e, _ := s.world.Enemies.Get(enemy)

	amount := s.calc.BulletDamage(scripting.BulletHitContext{
		Base:           b.Damage,
		EnemyHealth:    h.Current,
		EnemyMaxHealth: h.Max,
		EnemyKind:      e.Kind,
		BulletAge:      s.world.Clock.Since(b.SpawnedAt),
	})
	h.Damage(amount)
	s.world.Despawn(bullet)
}
