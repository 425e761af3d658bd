package snippet

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// CreateInput holds the parameters for creating a snippet.
type CreateInput struct {
	RawText       string
	Lemma         *string
	PartOfSpeech  *string
	LanguageCode  string
	SourceContext string
	Tags          []string
}

// Validate checks all fields and collects all errors. Length bounds count
// runes, matching the store's char_length checks.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.RawText == "" {
		errs = append(errs, domain.FieldError{Field: "rawText", Message: "required"})
	} else if utf8.RuneCountInString(i.RawText) > domain.MaxRawTextLen {
		errs = append(errs, domain.FieldError{Field: "rawText", Message: "too long (max 500)"})
	}

	if i.SourceContext == "" {
		errs = append(errs, domain.FieldError{Field: "sourceContext", Message: "required"})
	} else if utf8.RuneCountInString(i.SourceContext) > domain.MaxSourceContextLen {
		errs = append(errs, domain.FieldError{Field: "sourceContext", Message: "too long (max 20000)"})
	}

	if i.Lemma != nil && utf8.RuneCountInString(*i.Lemma) > domain.MaxLemmaLen {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "too long (max 500)"})
	}

	if i.PartOfSpeech != nil && utf8.RuneCountInString(*i.PartOfSpeech) > domain.MaxPartOfSpeechLen {
		errs = append(errs, domain.FieldError{Field: "partOfSpeech", Message: "too long (max 50)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for partially updating a snippet.
// nil fields are left untouched; the whitelist matches domain.SnippetUpdate.
type UpdateInput struct {
	ID           uuid.UUID
	RawText      *string
	Lemma        *string
	PartOfSpeech *string
	LanguageCode *string
	Tags         []string
}

// Validate checks all provided fields against the same bounds as create.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}

	if i.RawText != nil {
		if *i.RawText == "" {
			errs = append(errs, domain.FieldError{Field: "rawText", Message: "required"})
		} else if utf8.RuneCountInString(*i.RawText) > domain.MaxRawTextLen {
			errs = append(errs, domain.FieldError{Field: "rawText", Message: "too long (max 500)"})
		}
	}

	if i.Lemma != nil && utf8.RuneCountInString(*i.Lemma) > domain.MaxLemmaLen {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "too long (max 500)"})
	}

	if i.PartOfSpeech != nil && utf8.RuneCountInString(*i.PartOfSpeech) > domain.MaxPartOfSpeechLen {
		errs = append(errs, domain.FieldError{Field: "partOfSpeech", Message: "too long (max 50)"})
	}

	if i.LanguageCode != nil && *i.LanguageCode == "" {
		errs = append(errs, domain.FieldError{Field: "languageCode", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AnalyzeInput holds the parameters for an analysis request.
type AnalyzeInput struct {
	Text             string
	Context          string
	LearningLanguage string
	BaseLanguage     string
}

// Validate checks all fields and collects all errors.
func (i *AnalyzeInput) Validate() error {
	var errs []domain.FieldError

	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(i.Text) > domain.MaxRawTextLen {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long (max 500)"})
	}

	if i.Context == "" {
		errs = append(errs, domain.FieldError{Field: "context", Message: "required"})
	} else if utf8.RuneCountInString(i.Context) > domain.MaxSourceContextLen {
		errs = append(errs, domain.FieldError{Field: "context", Message: "too long (max 20000)"})
	}

	if i.LearningLanguage == "" {
		errs = append(errs, domain.FieldError{Field: "learning_language", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// FlashcardsInput holds the parameters for flashcard generation.
// Translation is optional: analysis results are never persisted, so the
// caller re-supplies it from the analysis it holds in memory.
type FlashcardsInput struct {
	SnippetID   uuid.UUID
	Translation string
}

// Validate checks all fields.
func (i *FlashcardsInput) Validate() error {
	if i.SnippetID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}

// QuizInput holds the parameters for quiz generation. Translation and
// Grammar are optional, re-supplied by the caller from a prior analysis.
type QuizInput struct {
	SnippetID   uuid.UUID
	Translation string
	Grammar     []string
}

// Validate checks all fields.
func (i *QuizInput) Validate() error {
	if i.SnippetID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}
