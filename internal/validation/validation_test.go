package validation

import (
	"errors"
	"testing"

	"derdiedas/internal/models"
)

func TestValidateWordRow(t *testing.T) {
	tests := []struct {
		name      string
		row       WordRow
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid row",
			row:     WordRow{Text: "Tisch", Article: "der"},
			wantErr: false,
		},
		{
			name:    "article is case-insensitive",
			row:     WordRow{Text: "Lampe", Article: "Die"},
			wantErr: false,
		},
		{
			name:      "missing text",
			row:       WordRow{Article: "das"},
			wantErr:   true,
			wantField: "text",
		},
		{
			name:      "declined article is not a gender",
			row:       WordRow{Text: "Tisch", Article: "den"},
			wantErr:   true,
			wantField: "article",
		},
		{
			name:      "comma in text",
			row:       WordRow{Text: "Tisch, Stuhl", Article: "der"},
			wantErr:   true,
			wantField: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%+v) error = %v, wantErr %v", tt.row, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidateAnswerTags(t *testing.T) {
	type answer struct {
		Article string `validate:"required,article_choice"`
		Ending  string `validate:"required,ending_choice"`
	}

	if err := Validate(answer{Article: "DEN", Ending: "en"}); err != nil {
		t.Errorf("expected valid answer, got %v", err)
	}
	if err := Validate(answer{Article: "des", Ending: "em"}); err == nil {
		t.Error("expected invalid answer to fail")
	} else if verrs, ok := err.(ValidationErrors); !ok || len(verrs) != 2 {
		t.Errorf("expected two field errors, got %v", err)
	}
}

func TestValidateWords(t *testing.T) {
	words, err := ValidateWords([]WordRow{
		{Text: " Tisch ", Article: "DER", Note: "der Tisch"},
		{Text: "Lampe", Article: "die"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Word{
		{Text: "Tisch", Article: models.Der, Note: "der Tisch"},
		{Text: "Lampe", Article: models.Die},
	}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %+v, want %+v", i, words[i], want[i])
		}
	}

	_, err = ValidateWords([]WordRow{
		{Text: "See", Article: "der"},
		{Text: "See", Article: "die"},
		{Text: "", Article: "das"},
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 errors, got %v", verrs)
	}
}
