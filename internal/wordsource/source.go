// Package wordsource loads the noun pool a drill session draws from.
package wordsource

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"derdiedas/internal/game"
	"derdiedas/internal/grammar"
	"derdiedas/internal/models"
)

// Source produces the full noun pool
type Source interface {
	Load(ctx context.Context) ([]models.Word, error)
}

// CSVFile loads nouns from a CSV file on disk
type CSVFile struct {
	Path string
}

func (s CSVFile) Load(ctx context.Context) ([]models.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, unavailable(err)
	}
	defer f.Close()

	words, err := ParseCSV(f)
	if err != nil {
		return nil, unavailable(fmt.Errorf("%s: %w", s.Path, err))
	}
	return annotate(words), nil
}

// CSVURL downloads nouns from a CSV served over HTTP
type CSVURL struct {
	URL    string
	Client *http.Client
}

// NewCSVURL creates a CSV source with a 30 second download timeout
func NewCSVURL(url string) *CSVURL {
	return &CSVURL{URL: url, Client: &http.Client{Timeout: 30 * time.Second}}
}

func (s *CSVURL) Load(ctx context.Context) ([]models.Word, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, unavailable(err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(fmt.Errorf("bad status code from %s: %d", s.URL, resp.StatusCode))
	}

	words, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, unavailable(fmt.Errorf("%s: %w", s.URL, err))
	}
	return annotate(words), nil
}

// WordLister is the part of the noun repository a Repository source needs
type WordLister interface {
	ListWords(ctx context.Context) ([]models.StoredWord, error)
}

// Repository loads nouns from the database
type Repository struct {
	Words WordLister
}

func (s Repository) Load(ctx context.Context) ([]models.Word, error) {
	stored, err := s.Words.ListWords(ctx)
	if err != nil {
		return nil, unavailable(err)
	}

	words := make([]models.Word, len(stored))
	for i, sw := range stored {
		words[i] = sw.Word
	}
	return annotate(words), nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", game.ErrDataUnavailable, err)
}

func annotate(words []models.Word) []models.Word {
	for i := range words {
		words[i] = grammar.Annotate(words[i])
	}
	return words
}
