package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derdiedas/internal/models"
	"derdiedas/internal/random"
)

func testPool(n int) []models.Word {
	pool := make([]models.Word, n)
	for i := range pool {
		pool[i] = models.Word{Text: fmt.Sprintf("Wort%d", i), Article: models.Genders[i%3]}
	}
	return pool
}

func TestNewSelectorValidation(t *testing.T) {
	_, err := NewSelector(nil)
	assert.ErrorIs(t, err, ErrPoolEmpty)

	_, err = NewSelector([]models.Word{
		{Text: "See", Article: models.Der},
		{Text: "See", Article: models.Die},
	})
	assert.ErrorIs(t, err, ErrDuplicateWord)

	sel, err := NewSelector(testPool(4))
	require.NoError(t, err)
	assert.Equal(t, 4, sel.Remaining())
	_, ok := sel.Current()
	assert.False(t, ok)
}

func TestSelectorDoesNotMutateReceiver(t *testing.T) {
	sel, err := NewSelector(testPool(3))
	require.NoError(t, err)

	rng := random.New(1)
	after, word := sel.Next(rng)

	assert.Equal(t, 3, sel.Remaining())
	assert.Equal(t, 2, after.Remaining())
	current, ok := after.Current()
	require.True(t, ok)
	assert.Equal(t, word, current)

	// drawing twice from the same value must not leak state between branches
	branch, _ := after.Next(rng)
	assert.Equal(t, 1, branch.Remaining())
	assert.Equal(t, 2, after.Remaining())
}

func TestSelectorLapsCoverPoolWithoutRepeats(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8} {
		t.Run(fmt.Sprintf("pool of %d", n), func(t *testing.T) {
			sel, err := NewSelector(testPool(n))
			require.NoError(t, err)

			rng := random.New(int64(n) * 7919)
			var draws []string
			for i := 0; i < n*10; i++ {
				var w models.Word
				sel, w = sel.Next(rng)
				draws = append(draws, w.Text)
			}

			for i := 1; i < len(draws); i++ {
				assert.NotEqual(t, draws[i-1], draws[i], "immediate repeat at draw %d", i)
			}

			for lap := 0; lap < 10; lap++ {
				seen := map[string]bool{}
				for _, text := range draws[lap*n : (lap+1)*n] {
					assert.False(t, seen[text], "lap %d repeats %s", lap, text)
					seen[text] = true
				}
				assert.Len(t, seen, n)
			}
		})
	}
}

func TestSelectorRolloverExcludesCurrentWord(t *testing.T) {
	pool := testPool(2)
	sel, err := NewSelector(pool)
	require.NoError(t, err)

	// always pick the first available word
	rng := random.NewScripted(0)
	sel, first := sel.Next(rng)
	sel, second := sel.Next(rng)
	assert.Equal(t, pool[0], first)
	assert.Equal(t, pool[1], second)
	assert.Equal(t, 0, sel.Remaining())

	sel, third := sel.Next(rng)
	assert.Equal(t, pool[0], third)
	assert.Equal(t, 1, sel.Remaining())
}

func TestSelectorReset(t *testing.T) {
	pool := testPool(3)
	sel, err := NewSelector(pool)
	require.NoError(t, err)

	rng := random.NewScripted(0)
	sel, first := sel.Next(rng)
	sel, _ = sel.Next(rng)

	sel = sel.Reset()
	assert.Equal(t, len(pool), sel.Remaining())
	_, ok := sel.Current()
	assert.False(t, ok)

	_, again := sel.Next(rng)
	assert.Equal(t, first, again)
}

func TestSelectorSingleWordPool(t *testing.T) {
	pool := []models.Word{{Text: "Haus", Article: models.Das}}
	sel, err := NewSelector(pool)
	require.NoError(t, err)

	rng := random.New(3)
	for i := 0; i < 5; i++ {
		var w models.Word
		sel, w = sel.Next(rng)
		assert.Equal(t, pool[0], w)
		assert.Equal(t, 0, sel.Remaining())
	}
}
