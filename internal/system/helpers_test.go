package system

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/ecs"
	"github.com/magicalhell/horde/internal/core/event"
	"github.com/magicalhell/horde/internal/match"
	"github.com/magicalhell/horde/internal/world"
)

func newTestWorld() *world.State {
	return world.NewState(world.SizesFrom(config.Default().World))
}

// deliverContacts emits contact-begin events and swaps them into the front
// buffer, as the next tick's dispatch phase would.
func deliverContacts(bus *event.Bus, pairs ...[2]ecs.EntityID) {
	for _, p := range pairs {
		event.Emit(bus, event.ContactBegan{A: p[0], B: p[1]})
	}
	bus.SwapBuffers()
}

func inGameMachine(t *testing.T) *match.Machine {
	t.Helper()
	m := match.NewMachine(zap.NewNop())
	for _, s := range []match.State{match.MainMenu, match.GameInit, match.InGame} {
		require.NoError(t, m.Request(s))
		m.Apply()
	}
	return m
}
