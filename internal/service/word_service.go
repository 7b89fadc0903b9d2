package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"derdiedas/internal/grammar"
	"derdiedas/internal/models"
	"derdiedas/internal/wordsource"
)

// WordStore is the noun repository as seen by the word and backup services
type WordStore interface {
	ListWords(ctx context.Context) ([]models.StoredWord, error)
	ImportWords(ctx context.Context, words []models.Word, replace bool) error
	CountWords(ctx context.Context) (int, error)
}

// ImportResult summarises one import
type ImportResult struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// WordService manages the stored noun pool
type WordService struct {
	words WordStore
	log   *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(words WordStore, log *zap.Logger) *WordService {
	return &WordService{words: words, log: log}
}

// SeedFromCSV imports path when the noun table is empty
func (s *WordService) SeedFromCSV(ctx context.Context, path string) (int, error) {
	count, err := s.words.CountWords(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("noun pool already populated", zap.Int("count", count))
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	res, err := s.ImportCSV(ctx, f, false)
	if err != nil {
		return 0, err
	}
	s.log.Info("noun pool seeded", zap.String("path", path), zap.Int("count", res.Imported))
	return res.Imported, nil
}

// ImportCSV parses CSV nouns and upserts them. With replace set the pool
// becomes exactly the imported nouns.
func (s *WordService) ImportCSV(ctx context.Context, r io.Reader, replace bool) (ImportResult, error) {
	words, err := wordsource.ParseCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	return s.Import(ctx, words, replace)
}

// Import stores already validated nouns, deriving magical suffixes where missing
func (s *WordService) Import(ctx context.Context, words []models.Word, replace bool) (ImportResult, error) {
	annotated := make([]models.Word, len(words))
	for i, w := range words {
		annotated[i] = grammar.Annotate(w)
	}

	if err := s.words.ImportWords(ctx, annotated, replace); err != nil {
		return ImportResult{}, err
	}

	total, err := s.words.CountWords(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	s.log.Info("nouns imported", zap.Int("imported", len(words)), zap.Int("total", total), zap.Bool("replace", replace))
	return ImportResult{Imported: len(words), Total: total}, nil
}

// ExportCSV writes the stored pool as CSV
func (s *WordService) ExportCSV(ctx context.Context, w io.Writer) error {
	stored, err := s.words.ListWords(ctx)
	if err != nil {
		return err
	}
	words := make([]models.Word, len(stored))
	for i, sw := range stored {
		words[i] = sw.Word
	}
	return wordsource.WriteCSV(w, words)
}
