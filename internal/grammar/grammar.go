// Package grammar resolves German articles and adjective endings.
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"derdiedas/internal/models"
)

var (
	ErrUnknownGender = errors.New("unknown gender")
	ErrUnknownCase   = errors.New("unknown case")
)

// declined article by case, then base gender
var articleMatrix = map[models.Case]map[models.Gender]string{
	models.Nominative: {models.Der: "der", models.Die: "die", models.Das: "das"},
	models.Accusative: {models.Der: "den", models.Die: "die", models.Das: "das"},
	models.Dative:     {models.Der: "dem", models.Die: "der", models.Das: "dem"},
}

// weak adjective ending after a definite article
var endingMatrix = map[models.Case]map[models.Gender]string{
	models.Nominative: {models.Der: "e", models.Die: "e", models.Das: "e"},
	models.Accusative: {models.Der: "en", models.Die: "e", models.Das: "e"},
	models.Dative:     {models.Der: "en", models.Die: "en", models.Das: "en"},
}

// ArticleChoices are the declined articles a learner picks from in the quiz
var ArticleChoices = []string{"der", "die", "das", "den", "dem"}

// EndingChoices are the adjective endings a learner picks from in the quiz
var EndingChoices = []string{"er", "e", "es", "en"}

// ResolveArticle returns the definite article of base declined for c
func ResolveArticle(base models.Gender, c models.Case) string {
	return articleMatrix[c][base]
}

// ResolveEnding returns the adjective ending after the definite article of base in case c
func ResolveEnding(base models.Gender, c models.Case) string {
	return endingMatrix[c][base]
}

// ParseGender converts user input into a Gender
func ParseGender(s string) (models.Gender, error) {
	g := models.Gender(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case models.Der, models.Die, models.Das:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

// ParseCase converts user input into a Case
func ParseCase(s string) (models.Case, error) {
	c := models.Case(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case models.Nominative, models.Accusative, models.Dative:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCase, s)
}

// IsArticleChoice reports whether s is one of ArticleChoices
func IsArticleChoice(s string) bool {
	return contains(ArticleChoices, s)
}

// IsEndingChoice reports whether s is one of EndingChoices
func IsEndingChoice(s string) bool {
	return contains(EndingChoices, s)
}

func contains(choices []string, s string) bool {
	for _, c := range choices {
		if c == s {
			return true
		}
	}
	return false
}
