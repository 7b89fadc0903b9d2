// Package game holds the drill engine: the word selector and the session state machine.
package game

import (
	"fmt"

	"derdiedas/internal/models"
	"derdiedas/internal/random"
)

// Selector draws words from a fixed pool without repeating a word until every
// word has been drawn once. A Selector is a value: its methods return a new
// Selector and leave the receiver untouched.
type Selector struct {
	pool    []models.Word
	drawn   map[string]struct{}
	current int // index into pool, -1 before the first draw
}

// NewSelector validates pool and returns a selector that has drawn nothing yet
func NewSelector(pool []models.Word) (Selector, error) {
	if len(pool) == 0 {
		return Selector{}, ErrPoolEmpty
	}

	seen := make(map[string]struct{}, len(pool))
	for _, w := range pool {
		if _, ok := seen[w.Text]; ok {
			return Selector{}, fmt.Errorf("%w: %q", ErrDuplicateWord, w.Text)
		}
		seen[w.Text] = struct{}{}
	}

	owned := make([]models.Word, len(pool))
	copy(owned, pool)
	return Selector{pool: owned, current: -1}, nil
}

// Next draws a word uniformly from those not drawn in the current lap.
//
// Once every word has been drawn the lap rolls over: the drawn set is cleared and,
// for pools of two or more words, the word just shown is skipped for this one draw
// so it is never shown twice in a row.
func (s Selector) Next(rng random.Source) (Selector, models.Word) {
	if len(s.pool) == 0 {
		panic("game: Next on selector without pool")
	}

	drawn := s.drawn
	excluded := -1
	if len(drawn) >= len(s.pool) {
		drawn = nil
		if len(s.pool) > 1 {
			excluded = s.current
		}
	}

	available := make([]int, 0, len(s.pool)-len(drawn))
	for i, w := range s.pool {
		if i == excluded {
			continue
		}
		if _, ok := drawn[w.Text]; ok {
			continue
		}
		available = append(available, i)
	}

	pick := available[rng.Intn(len(available))]

	next := make(map[string]struct{}, len(drawn)+1)
	for text := range drawn {
		next[text] = struct{}{}
	}
	next[s.pool[pick].Text] = struct{}{}

	return Selector{pool: s.pool, drawn: next, current: pick}, s.pool[pick]
}

// Current returns the most recently drawn word
func (s Selector) Current() (models.Word, bool) {
	if s.current < 0 || s.current >= len(s.pool) {
		return models.Word{}, false
	}
	return s.pool[s.current], true
}

// Remaining is the number of words left in the current lap
func (s Selector) Remaining() int {
	return len(s.pool) - len(s.drawn)
}

// Size is the number of words in the pool
func (s Selector) Size() int {
	return len(s.pool)
}

// Reset forgets the drawn set and the current word. It does not draw.
func (s Selector) Reset() Selector {
	return Selector{pool: s.pool, current: -1}
}
