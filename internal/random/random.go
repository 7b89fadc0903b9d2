// Package random provides the injectable random source used by the drill engine.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the engine draws from.
type Source interface {
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) int
}

// New returns a seeded generator. A zero seed falls back to the current time.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Scripted replays a fixed sequence of values, each reduced modulo n.
// Once exhausted it starts again from the beginning.
type Scripted struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewScripted creates a scripted source replaying values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pos++
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[(s.pos-1)%len(s.values)]
	if v < 0 {
		v = -v
	}
	return v % n
}

// Calls reports how many values have been consumed.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
