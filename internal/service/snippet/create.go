package snippet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// Create validates the input, fills defaults and identity, and persists a
// new snippet. The write is all-or-nothing.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Snippet, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	languageCode := input.LanguageCode
	if languageCode == "" {
		languageCode = domain.DefaultLanguageCode
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	record := &domain.Snippet{
		ID:            uuid.New(),
		RawText:       input.RawText,
		Lemma:         input.Lemma,
		PartOfSpeech:  input.PartOfSpeech,
		LanguageCode:  languageCode,
		SourceContext: input.SourceContext,
		Tags:          tags,
		Difficulty:    domain.DefaultDifficulty,
		ReviewCount:   0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.snippets.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create snippet: %w", err)
	}

	s.log.InfoContext(ctx, "snippet created",
		"snippet_id", created.ID,
		"language_code", created.LanguageCode,
	)

	return created, nil
}
