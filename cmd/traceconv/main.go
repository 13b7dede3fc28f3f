// traceconv converts a msgpack run trace (written by horde with HORDE_TRACE)
// into a readable YAML timeline.
//
// Produces:
//   - horde_trace.yaml: one entry per tick that spawned, despawned or
//     changed match state, plus per-kind totals
//
// Usage:
//
//	go run ./cmd/traceconv [trace-file] [output-file]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/magicalhell/horde/internal/trace"
)

// ---------------------------------------------------------------------------
// YAML structures
// ---------------------------------------------------------------------------

type TimelineEntry struct {
	Tick        uint64   `yaml:"tick"`
	AtMs        int64    `yaml:"at_ms"`
	State       string   `yaml:"state"`
	Spawned     []string `yaml:"spawned,omitempty"`
	Despawned   int      `yaml:"despawned,omitempty"`
	Transitions []string `yaml:"transitions,omitempty"`
}

type KindTotal struct {
	Kind    string `yaml:"kind"`
	Spawned int    `yaml:"spawned"`
}

type TimelineFile struct {
	Frames   int             `yaml:"frames"`
	Totals   []KindTotal     `yaml:"totals"`
	Timeline []TimelineEntry `yaml:"timeline"`
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	inputPath := "horde.trace"
	outputPath := "horde_trace.yaml"

	if len(os.Args) >= 2 {
		inputPath = os.Args[1]
	}
	if len(os.Args) >= 3 {
		outputPath = os.Args[2]
	}

	// ---- Read trace ----
	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}
	defer f.Close()

	out, err := convert(trace.NewReader(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error converting trace: %v\n", err)
		os.Exit(1)
	}

	// ---- Write YAML ----
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}
	yamlData, err := yaml.Marshal(&out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshalling YAML: %v\n", err)
		os.Exit(1)
	}
	header := fmt.Sprintf("# Run timeline - converted from %s\n\n", filepath.Base(inputPath))
	if err := os.WriteFile(outputPath, append([]byte(header), yamlData...), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d timeline entries (%d frames) to %s\n", len(out.Timeline), out.Frames, outputPath)
}

// convert keeps only the frames that changed the entity set or match state.
func convert(r *trace.Reader) (TimelineFile, error) {
	var out TimelineFile
	totals := make(map[string]int)
	for {
		fr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return TimelineFile{}, err
		}
		out.Frames++
		if len(fr.Spawns) == 0 && len(fr.Despawns) == 0 && len(fr.Transitions) == 0 {
			continue
		}
		e := TimelineEntry{
			Tick:        fr.Tick,
			AtMs:        fr.At.Milliseconds(),
			State:       fr.State,
			Despawned:   len(fr.Despawns),
			Transitions: fr.Transitions,
		}
		for _, s := range fr.Spawns {
			e.Spawned = append(e.Spawned, fmt.Sprintf("%s#%d", s.Kind, s.ID))
			totals[s.Kind]++
		}
		out.Timeline = append(out.Timeline, e)
	}

	for kind, n := range totals {
		out.Totals = append(out.Totals, KindTotal{Kind: kind, Spawned: n})
	}
	sort.Slice(out.Totals, func(i, j int) bool {
		return out.Totals[i].Kind < out.Totals[j].Kind
	})
	return out, nil
}
