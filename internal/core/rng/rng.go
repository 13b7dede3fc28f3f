// Package rng is the injectable randomness used for spawn placement, enemy
// kind selection and bullet spread.
package rng

import (
	"math/rand"
	"time"
)

// Source draws uniform values from half-open ranges.
type Source interface {
	// Float64Range returns a value in [lo, hi).
	Float64Range(lo, hi float64) float64
	// IntRange returns a value in [lo, hi). hi must be greater than lo.
	IntRange(lo, hi int) int
}

// Rand is a Source backed by math/rand. Not safe for concurrent use; the
// simulation owns one per game loop.
type Rand struct {
	r *rand.Rand
}

// New creates a seeded Rand. Seed 0 picks a time-based seed.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (s *Rand) Float64Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

func (s *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

// Fixed always lands at the same fraction of every range. Fraction 0.5
// yields midpoints, i.e. zero spread for symmetric ranges.
type Fixed struct {
	Fraction float64
}

func (f Fixed) Float64Range(lo, hi float64) float64 {
	return lo + f.Fraction*(hi-lo)
}

func (f Fixed) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := lo + int(f.Fraction*float64(hi-lo))
	if n >= hi {
		n = hi - 1
	}
	return n
}
