// Package trace records the per-tick collaborator requests of a run as a
// stream of msgpack frames, for offline inspection and replay comparison.
package trace

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/magicalhell/horde/internal/world"
)

// Frame is one tick of output.
type Frame struct {
	Tick        uint64        `msgpack:"tick"`
	At          time.Duration `msgpack:"at"`
	State       string        `msgpack:"state"`
	Spawns      []Spawn       `msgpack:"spawns,omitempty"`
	Despawns    []uint64      `msgpack:"despawns,omitempty"`
	Moves       int           `msgpack:"moves"`
	Transitions []string      `msgpack:"transitions,omitempty"`
}

type Spawn struct {
	ID     uint64  `msgpack:"id"`
	Kind   string  `msgpack:"kind"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Sprite int     `msgpack:"sprite"`
}

// FrameOf snapshots an Outbox. The Outbox is reused by the next tick, so
// nothing in the frame aliases it.
func FrameOf(tick uint64, at time.Duration, state fmt.Stringer, out *world.Outbox) Frame {
	f := Frame{
		Tick:  tick,
		At:    at,
		State: state.String(),
		Moves: len(out.Moves),
	}
	for _, s := range out.Spawns {
		f.Spawns = append(f.Spawns, Spawn{
			ID:     uint64(s.ID),
			Kind:   s.Kind.String(),
			X:      s.Transform.Pos.X,
			Y:      s.Transform.Pos.Y,
			Sprite: s.Sprite,
		})
	}
	for _, d := range out.Despawns {
		f.Despawns = append(f.Despawns, uint64(d.ID))
	}
	for _, st := range out.Transitions {
		f.Transitions = append(f.Transitions, st.String())
	}
	return f
}

// Recorder appends frames to a writer.
type Recorder struct {
	enc    *msgpack.Encoder
	frames int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

func (r *Recorder) Record(f Frame) error {
	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Tick, err)
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() int { return r.frames }

// Reader decodes frames written by a Recorder.
type Reader struct {
	dec *msgpack.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}
