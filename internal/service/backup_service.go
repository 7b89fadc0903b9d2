package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"derdiedas/internal/models"
	"derdiedas/internal/validation"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData represents the complete noun pool backup structure
type BackupData struct {
	Version      string       `json:"version"`
	ExportedAt   time.Time    `json:"exported_at"`
	DatabaseType string       `json:"database_type"`
	Words        []WordBackup `json:"words"`
}

// WordBackup represents a noun for backup
type WordBackup struct {
	Text       string    `json:"text"`
	Article    string    `json:"article"`
	Note       string    `json:"note,omitempty"`
	Example    string    `json:"example,omitempty"`
	SuffixStem string    `json:"suffix_stem,omitempty"`
	Suffix     string    `json:"suffix,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// BackupService handles noun pool export and restore
type BackupService struct {
	words        WordStore
	databaseType string
	log          *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(words WordStore, databaseType string, log *zap.Logger) *BackupService {
	return &BackupService{words: words, databaseType: databaseType, log: log}
}

// Export writes the whole noun pool as indented JSON
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	stored, err := s.words.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export words: %w", err)
	}

	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.databaseType,
		Words:        make([]WordBackup, 0, len(stored)),
	}
	for _, sw := range stored {
		wb := WordBackup{
			Text:      sw.Word.Text,
			Article:   string(sw.Word.Article),
			Note:      sw.Word.Note,
			Example:   sw.Word.Example,
			Position:  sw.Position,
			CreatedAt: sw.CreatedAt,
		}
		if ms := sw.Word.MagicalSuffix; ms != nil {
			wb.SuffixStem, wb.Suffix = ms.Stem, ms.Suffix
		}
		backup.Words = append(backup.Words, wb)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("noun pool exported", zap.Int("words", len(backup.Words)))
	return backup, nil
}

// Import restores nouns from a backup. Entries are validated like CSV rows and
// stored in their recorded order. With replace set existing nouns are removed.
func (s *BackupService) Import(ctx context.Context, r io.Reader, replace bool) (ImportResult, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return ImportResult{}, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return ImportResult{}, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	rows := make([]validation.WordRow, len(backup.Words))
	for i, wb := range backup.Words {
		rows[i] = validation.WordRow{Text: wb.Text, Article: wb.Article, Note: wb.Note, Example: wb.Example}
	}
	words, err := validation.ValidateWords(rows)
	if err != nil {
		return ImportResult{}, err
	}
	for i, wb := range backup.Words {
		if wb.Suffix != "" {
			words[i].MagicalSuffix = &models.MagicalSuffix{Stem: wb.SuffixStem, Suffix: wb.Suffix}
		}
	}

	if err := s.words.ImportWords(ctx, words, replace); err != nil {
		return ImportResult{}, fmt.Errorf("failed to import words: %w", err)
	}
	total, err := s.words.CountWords(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	s.log.Info("noun pool restored",
		zap.Int("words", len(words)),
		zap.Int("total", total),
		zap.String("source_database", backup.DatabaseType))
	return ImportResult{Imported: len(words), Total: total}, nil
}
