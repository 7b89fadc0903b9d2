package repository

import (
	"context"
	"database/sql"
	"fmt"

	"derdiedas/internal/database"
	"derdiedas/internal/models"
)

const nounColumns = "id, word, article, note, example, suffix_stem, suffix, position, created_at, updated_at"

// WordRepository handles database operations for the noun pool
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// ListWords retrieves every noun in import order
func (r *WordRepository) ListWords(ctx context.Context) ([]models.StoredWord, error) {
	query := "SELECT " + nounColumns + " FROM nouns ORDER BY position, id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nouns: %w", err)
	}
	defer rows.Close()

	var words []models.StoredWord
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nouns: %w", err)
	}

	return words, nil
}

// GetWord retrieves a noun by its text. It returns nil when no such noun exists.
func (r *WordRepository) GetWord(ctx context.Context, text string) (*models.StoredWord, error) {
	query := "SELECT " + nounColumns + " FROM nouns WHERE word = ?"
	w, err := scanWord(r.db.QueryRowContext(ctx, query, text))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpsertWord inserts a noun or overwrites the stored noun with the same text
func (r *WordRepository) UpsertWord(ctx context.Context, w models.Word, position int) error {
	return upsertWord(ctx, r.db, w, position)
}

// ImportWords upserts words in one transaction, numbering them in slice order.
// With replace set, nouns missing from words are removed first.
func (r *WordRepository) ImportWords(ctx context.Context, words []models.Word, replace bool) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		if replace {
			if _, err := tx.ExecContext(ctx, "DELETE FROM nouns"); err != nil {
				return fmt.Errorf("failed to clear nouns: %w", err)
			}
		}
		for i, w := range words {
			if err := upsertWord(ctx, tx, w, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountWords returns the size of the noun pool
func (r *WordRepository) CountWords(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nouns").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nouns: %w", err)
	}
	return count, nil
}

// DeleteWord removes a noun by its text
func (r *WordRepository) DeleteWord(ctx context.Context, text string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM nouns WHERE word = ?", text); err != nil {
		return fmt.Errorf("failed to delete noun: %w", err)
	}
	return nil
}

// DeleteAll empties the noun pool
func (r *WordRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM nouns"); err != nil {
		return fmt.Errorf("failed to delete nouns: %w", err)
	}
	return nil
}

func upsertWord(ctx context.Context, q database.DBTX, w models.Word, position int) error {
	var stem, suffix string
	if w.MagicalSuffix != nil {
		stem, suffix = w.MagicalSuffix.Stem, w.MagicalSuffix.Suffix
	}
	_, err := q.ExecContext(ctx, q.GetDialect().UpsertWordQuery(),
		w.Text, string(w.Article), w.Note, w.Example, stem, suffix, position)
	if err != nil {
		return fmt.Errorf("failed to upsert noun %q: %w", w.Text, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWord(row rowScanner) (models.StoredWord, error) {
	var (
		w       models.StoredWord
		article string
		stem    string
		suffix  string
	)
	err := row.Scan(
		&w.ID,
		&w.Word.Text,
		&article,
		&w.Word.Note,
		&w.Word.Example,
		&stem,
		&suffix,
		&w.Position,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return w, err
	}
	if err != nil {
		return w, fmt.Errorf("failed to scan noun: %w", err)
	}

	w.Word.Article = models.Gender(article)
	if suffix != "" {
		w.Word.MagicalSuffix = &models.MagicalSuffix{Stem: stem, Suffix: suffix}
	}
	return w, nil
}
