package caseopening

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness consumed by the selector and sequencer.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type runtimeSource struct{}

func (runtimeSource) Float64() float64 { return rand.Float64() }
func (runtimeSource) IntN(n int) int   { return rand.IntN(n) }

// DefaultSource returns a goroutine-safe source backed by the runtime
// generator of math/rand/v2.
func DefaultSource() Source {
	return runtimeSource{}
}

// lockedSource serialises access to a *rand.Rand, which is not safe for
// concurrent use on its own.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a deterministic goroutine-safe source.
func NewSeededSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
