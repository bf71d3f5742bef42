package rng

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the random capability handed to every engine.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n).
	IntN(n int) int
}

// New returns a seeded PCG source. A zero seed picks one from the clock.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence replays a fixed list of draws, cycling when exhausted.
type Sequence struct {
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return min(n-1, int(s.Float64()*float64(n)))
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.next
}

// Pick returns a random element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Delta returns an integer in [-r, r-1] for a symmetric variance draw.
func Delta(src Source, r int) int {
	return int(math.Floor((src.Float64()*2 - 1) * float64(r)))
}
