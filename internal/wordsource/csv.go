package wordsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"derdiedas/internal/models"
	"derdiedas/internal/validation"
)

// ErrMissingColumn is returned when the header lacks Word or Article
var ErrMissingColumn = errors.New("missing required column")

// ParseCSV reads nouns from CSV with a header row naming Word and Article
// columns and optionally Note and Example. Header names are case-insensitive,
// blank lines are skipped and articles are lowercased.
func ParseCSV(r io.Reader) ([]models.Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, required := range []string{"word", "article"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []validation.WordRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, validation.WordRow{
			Text:    field(record, "word"),
			Article: strings.ToLower(field(record, "article")),
			Note:    field(record, "note"),
			Example: field(record, "example"),
		})
	}

	return validation.ValidateWords(rows)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes words in the format ParseCSV reads
func WriteCSV(w io.Writer, words []models.Word) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Word", "Article", "Note", "Example"}); err != nil {
		return err
	}
	for _, word := range words {
		if err := cw.Write([]string{word.Text, string(word.Article), word.Note, word.Example}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
