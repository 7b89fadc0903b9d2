// Package validation checks imported rows and request bodies.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"derdiedas/internal/grammar"
	"derdiedas/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		_, err := grammar.ParseGender(fl.Field().String())
		return err == nil
	})
	validate.RegisterValidation("article_choice", func(fl validator.FieldLevel) bool {
		return grammar.IsArticleChoice(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
	validate.RegisterValidation("ending_choice", func(fl validator.FieldLevel) bool {
		return grammar.IsEndingChoice(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failed field of one value
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks data against its validate struct tags.
// It returns nil or a ValidationErrors.
func Validate(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gender":
		return "must be der, die or das"
	case "article_choice":
		return "must be one of " + strings.Join(grammar.ArticleChoices, ", ")
	case "ending_choice":
		return "must be one of " + strings.Join(grammar.EndingChoices, ", ")
	}
	return fmt.Sprintf("must satisfy %s", fe.Tag())
}

// WordRow is one noun as read from an import file
type WordRow struct {
	Text    string `validate:"required,max=100,excludesall=0x2C"`
	Article string `validate:"required,gender"`
	Note    string `validate:"max=500"`
	Example string `validate:"max=500"`
}

// Word converts a valid row into a noun
func (r WordRow) Word() models.Word {
	g, _ := grammar.ParseGender(r.Article)
	return models.Word{
		Text:    strings.TrimSpace(r.Text),
		Article: g,
		Note:    strings.TrimSpace(r.Note),
		Example: strings.TrimSpace(r.Example),
	}
}

// ValidateWords checks rows and the uniqueness of their texts.
// Row numbers in messages count from 1.
func ValidateWords(rows []WordRow) ([]models.Word, error) {
	words := make([]models.Word, 0, len(rows))
	seen := make(map[string]int, len(rows))
	var errs ValidationErrors

	for i, row := range rows {
		if err := Validate(row); err != nil {
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				return nil, err
			}
			for _, ve := range verrs {
				errs = append(errs, ValidationError{Field: fmt.Sprintf("row %d %s", i+1, ve.Field), Message: ve.Message})
			}
			continue
		}

		w := row.Word()
		if first, ok := seen[w.Text]; ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("row %d text", i+1),
				Message: fmt.Sprintf("duplicates row %d", first),
			})
			continue
		}
		seen[w.Text] = i + 1
		words = append(words, w)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return words, nil
}
