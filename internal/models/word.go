package models

import "time"

// Gender is the grammatical gender of a noun, named by its definite article
type Gender string

const (
	Der Gender = "der"
	Die Gender = "die"
	Das Gender = "das"
)

// Genders lists the three genders in presentation order
var Genders = []Gender{Der, Die, Das}

// Case is a German grammatical case
type Case string

const (
	Nominative Case = "nominative"
	Accusative Case = "accusative"
	Dative     Case = "dative"
)

// Cases lists the supported cases
var Cases = []Case{Nominative, Accusative, Dative}

// MagicalSuffix splits a noun into a stem and a gender-predicting ending
type MagicalSuffix struct {
	Stem   string `json:"stem"`
	Suffix string `json:"suffix"`
}

// Word represents a noun in the drill pool
type Word struct {
	Text          string         `json:"text"`
	Article       Gender         `json:"article"`
	Note          string         `json:"note,omitempty"`
	Example       string         `json:"example,omitempty"`
	MagicalSuffix *MagicalSuffix `json:"magical_suffix,omitempty"`
}

// StoredWord is a noun row in the database
type StoredWord struct {
	ID        int64
	Word      Word
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
