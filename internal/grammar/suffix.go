package grammar

import (
	"strings"
	"unicode"

	"derdiedas/internal/models"
)

type genderSuffix struct {
	suffix string
	gender models.Gender
}

// Endings that reliably predict a noun's gender. Longer suffixes come first
// so that "tum" wins over "um".
var predictiveSuffixes = []genderSuffix{
	{"schaft", models.Die},
	{"ismus", models.Der},
	{"heit", models.Die},
	{"keit", models.Die},
	{"ling", models.Der},
	{"chen", models.Das},
	{"lein", models.Das},
	{"ment", models.Das},
	{"ung", models.Die},
	{"ion", models.Die},
	{"tät", models.Die},
	{"enz", models.Die},
	{"anz", models.Die},
	{"ist", models.Der},
	{"ich", models.Der},
	{"ant", models.Der},
	{"eur", models.Der},
	{"tum", models.Das},
	{"ik", models.Die},
	{"ei", models.Die},
	{"ur", models.Die},
	{"or", models.Der},
	{"ig", models.Der},
	{"um", models.Das},
}

// MagicalSuffix finds a gender-predicting ending of text that agrees with gender.
// The returned stem keeps the original spelling of text.
func MagicalSuffix(text string, gender models.Gender) (models.MagicalSuffix, bool) {
	runes := []rune(strings.TrimSpace(text))
	for _, ps := range predictiveSuffixes {
		if ps.gender != gender {
			continue
		}
		suffix := []rune(ps.suffix)
		// the suffix alone is not a word ending
		if len(runes) <= len(suffix) {
			continue
		}
		tail := runes[len(runes)-len(suffix):]
		if equalFoldRunes(tail, suffix) {
			return models.MagicalSuffix{
				Stem:   string(runes[:len(runes)-len(suffix)]),
				Suffix: string(tail),
			}, true
		}
	}
	return models.MagicalSuffix{}, false
}

// Annotate fills in the magical suffix of w unless it already carries one
func Annotate(w models.Word) models.Word {
	if w.MagicalSuffix != nil {
		return w
	}
	if ms, ok := MagicalSuffix(w.Text, w.Article); ok {
		w.MagicalSuffix = &ms
	}
	return w
}

func equalFoldRunes(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}
