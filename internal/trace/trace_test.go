package trace

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicalhell/horde/internal/component"
	"github.com/magicalhell/horde/internal/geom"
	"github.com/magicalhell/horde/internal/match"
	"github.com/magicalhell/horde/internal/world"
)

func TestFrameOfDoesNotAliasOutbox(t *testing.T) {
	out := &world.Outbox{
		Spawns: []world.SpawnRequest{{
			ID:        7,
			Kind:      world.KindEnemy,
			Transform: component.Transform{Pos: geom.V(500, -3)},
			Sprite:    12,
		}},
		Despawns:    []world.DespawnRequest{{ID: 4, Recursive: true}},
		Moves:       []world.MoveIntent{{ID: 7}},
		Transitions: []match.State{match.InGame},
	}
	f := FrameOf(3, 50*time.Millisecond, match.InGame, out)
	out.Reset()

	assert.Equal(t, "in-game", f.State)
	require.Len(t, f.Spawns, 1)
	assert.Equal(t, Spawn{ID: 7, Kind: world.KindEnemy.String(), X: 500, Y: -3, Sprite: 12}, f.Spawns[0])
	assert.Equal(t, []uint64{4}, f.Despawns)
	assert.Equal(t, 1, f.Moves)
	assert.Equal(t, []string{"in-game"}, f.Transitions)
}

func TestRecorderStream(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, rec.Record(Frame{Tick: i, At: time.Duration(i) * time.Millisecond, State: "in-game"}))
	}
	assert.Equal(t, 3, rec.Frames())

	r := NewReader(&buf)
	for i := uint64(1); i <= 3; i++ {
		f, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, i, f.Tick)
		assert.Equal(t, time.Duration(i)*time.Millisecond, f.At)
	}
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderRejectsGarbage(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0xc1})).Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}
