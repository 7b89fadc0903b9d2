// Package quiz builds the remedial challenge shown after a wrong gender guess.
package quiz

import (
	"encoding/json"

	"derdiedas/internal/models"
	"derdiedas/internal/random"
)

// Adjectives is the vocabulary the challenge adjective is drawn from
var Adjectives = []string{
	"gut", "groß", "klein", "neu", "alt", "schön", "schlecht", "wichtig",
	"einfach", "schwierig", "schnell", "langsam", "teuer", "billig",
	"interessant", "langweilig", "glücklich", "traurig", "müde", "gesund",
	"krank", "freundlich", "unfreundlich", "nett", "stark", "schwach",
	"kalt", "warm", "heiß", "sauber", "schmutzig", "fern", "weit", "ruhig",
	"laut", "frei", "lustig", "ernst", "gefährlich", "pünktlich", "spät",
}

var (
	AccusativePrepositions = []string{"durch", "für", "gegen", "ohne", "um", "entlang", "wider"}
	DativePrepositions     = []string{"aus", "außer", "bei", "mit", "nach", "seit", "von", "zu", "gegenüber"}
	TwoWayPrepositions     = []string{"an", "auf", "hinter", "in", "neben", "über", "unter", "vor", "zwischen"}
)

// Preposition is either a FixedCasePreposition or a TwoWayPreposition
type Preposition interface {
	Word() string
	Case() models.Case
	isPreposition()
}

// FixedCasePreposition always governs the same case
type FixedCasePreposition struct {
	Text     string
	Governed models.Case
}

func (p FixedCasePreposition) Word() string      { return p.Text }
func (p FixedCasePreposition) Case() models.Case { return p.Governed }
func (FixedCasePreposition) isPreposition()      {}

// TwoWayPreposition takes the accusative for motion and the dative for location
type TwoWayPreposition struct {
	Text        string
	Directional bool
}

func (p TwoWayPreposition) Word() string { return p.Text }

func (p TwoWayPreposition) Case() models.Case {
	if p.Directional {
		return models.Accusative
	}
	return models.Dative
}

func (TwoWayPreposition) isPreposition() {}

// Challenge asks for the declined article and adjective ending after a preposition
type Challenge struct {
	Adjective   string
	Preposition Preposition
}

// Case is the case the preposition governs in this challenge
func (c Challenge) Case() models.Case {
	return c.Preposition.Case()
}

// IsDirectional reports the direction of a two-way preposition.
// present is false for fixed-case prepositions.
func (c Challenge) IsDirectional() (directional bool, present bool) {
	if tw, ok := c.Preposition.(TwoWayPreposition); ok {
		return tw.Directional, true
	}
	return false, false
}

type challengeJSON struct {
	Adjective     string      `json:"adjective"`
	Preposition   string      `json:"preposition"`
	Case          models.Case `json:"case"`
	IsDirectional *bool       `json:"is_directional,omitempty"`
}

// MarshalJSON renders is_directional only for two-way prepositions
func (c Challenge) MarshalJSON() ([]byte, error) {
	v := challengeJSON{
		Adjective:   c.Adjective,
		Preposition: c.Preposition.Word(),
		Case:        c.Case(),
	}
	if d, ok := c.IsDirectional(); ok {
		v.IsDirectional = &d
	}
	return json.Marshal(v)
}

// Generate draws a random challenge.
//
// Draw order: adjective index, branch coin (0 selects two-way), then for two-way
// the preposition index followed by the direction coin (0 is directional), and for
// fixed-case the case coin (0 is accusative) followed by the preposition index.
func Generate(rng random.Source) Challenge {
	adjective := Adjectives[rng.Intn(len(Adjectives))]

	if rng.Intn(2) == 0 {
		text := TwoWayPrepositions[rng.Intn(len(TwoWayPrepositions))]
		return Challenge{
			Adjective:   adjective,
			Preposition: TwoWayPreposition{Text: text, Directional: rng.Intn(2) == 0},
		}
	}

	set, c := DativePrepositions, models.Dative
	if rng.Intn(2) == 0 {
		set, c = AccusativePrepositions, models.Accusative
	}
	return Challenge{
		Adjective:   adjective,
		Preposition: FixedCasePreposition{Text: set[rng.Intn(len(set))], Governed: c},
	}
}
