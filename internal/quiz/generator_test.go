package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derdiedas/internal/models"
	"derdiedas/internal/random"
)

func TestGenerateScripted(t *testing.T) {
	tests := []struct {
		name            string
		script          []int
		wantAdjective   string
		wantPreposition string
		wantCase        models.Case
		wantDirectional bool
		wantPresent     bool
	}{
		{
			name:            "two-way directional",
			script:          []int{1, 0, 1, 0},
			wantAdjective:   "groß",
			wantPreposition: "auf",
			wantCase:        models.Accusative,
			wantDirectional: true,
			wantPresent:     true,
		},
		{
			name:            "two-way locational",
			script:          []int{0, 0, 3, 1},
			wantAdjective:   "gut",
			wantPreposition: "in",
			wantCase:        models.Dative,
			wantPresent:     true,
		},
		{
			name:            "fixed accusative",
			script:          []int{2, 1, 0, 1},
			wantAdjective:   "klein",
			wantPreposition: "für",
			wantCase:        models.Accusative,
		},
		{
			name:            "fixed dative",
			script:          []int{40, 1, 1, 3},
			wantAdjective:   "spät",
			wantPreposition: "mit",
			wantCase:        models.Dative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := random.NewScripted(tt.script...)
			c := Generate(rng)

			assert.Equal(t, tt.wantAdjective, c.Adjective)
			assert.Equal(t, tt.wantPreposition, c.Preposition.Word())
			assert.Equal(t, tt.wantCase, c.Case())

			directional, present := c.IsDirectional()
			assert.Equal(t, tt.wantPresent, present)
			assert.Equal(t, tt.wantDirectional, directional)
			assert.Equal(t, 4, rng.Calls())
		})
	}
}

func TestGenerateStaysInVocabulary(t *testing.T) {
	rng := random.New(42)
	for i := 0; i < 500; i++ {
		c := Generate(rng)
		assert.Contains(t, Adjectives, c.Adjective)

		switch p := c.Preposition.(type) {
		case TwoWayPreposition:
			assert.Contains(t, TwoWayPrepositions, p.Text)
		case FixedCasePreposition:
			if p.Governed == models.Accusative {
				assert.Contains(t, AccusativePrepositions, p.Text)
			} else {
				require.Equal(t, models.Dative, p.Governed)
				assert.Contains(t, DativePrepositions, p.Text)
			}
		default:
			t.Fatalf("unexpected preposition type %T", p)
		}
	}
}

func TestChallengeJSON(t *testing.T) {
	fixed := Challenge{Adjective: "alt", Preposition: FixedCasePreposition{Text: "mit", Governed: models.Dative}}
	data, err := json.Marshal(fixed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"adjective":"alt","preposition":"mit","case":"dative"}`, string(data))

	twoWay := Challenge{Adjective: "alt", Preposition: TwoWayPreposition{Text: "in", Directional: false}}
	data, err = json.Marshal(twoWay)
	require.NoError(t, err)
	assert.JSONEq(t, `{"adjective":"alt","preposition":"in","case":"dative","is_directional":false}`, string(data))
}
