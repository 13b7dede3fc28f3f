package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/magicalhell/horde/internal/core/event"
)

// Stats summarises one match.
type Stats struct {
	MatchID      string
	Ticks        uint64
	Survived     time.Duration
	Kills        int
	KillsByKind  map[string]int
	BulletsFired int
	DamageTaken  uint64
	Died         bool
}

// statsCollector keeps Stats current from bus events.
type statsCollector struct {
	cur Stats
}

func (c *statsCollector) reset() {
	c.cur = Stats{
		MatchID:     uuid.NewString(),
		KillsByKind: make(map[string]int),
	}
}

func (c *statsCollector) subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(e event.EnemyKilled) {
		c.cur.Kills++
		c.cur.KillsByKind[e.Kind]++
	})
	event.Subscribe(bus, func(event.BulletFired) {
		c.cur.BulletsFired++
	})
	event.Subscribe(bus, func(e event.PlayerDamaged) {
		c.cur.DamageTaken += uint64(e.Amount)
	})
	event.Subscribe(bus, func(e event.PlayerDied) {
		c.cur.Died = true
		c.cur.Survived = e.At
	})
}

func (c *statsCollector) snapshot() Stats {
	s := c.cur
	s.KillsByKind = make(map[string]int, len(c.cur.KillsByKind))
	for k, v := range c.cur.KillsByKind {
		s.KillsByKind[k] = v
	}
	return s
}
