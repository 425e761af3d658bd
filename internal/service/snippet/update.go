package snippet

import (
	"context"
	"fmt"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// Update applies a partial update to a snippet. Only the whitelisted fields
// (rawText, lemma, partOfSpeech, languageCode, tags) can change; an empty
// update still bumps updated_at.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Snippet, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.snippets.Update(ctx, input.ID, domain.SnippetUpdate{
		RawText:      input.RawText,
		Lemma:        input.Lemma,
		PartOfSpeech: input.PartOfSpeech,
		LanguageCode: input.LanguageCode,
		Tags:         input.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("update snippet: %w", err)
	}

	s.log.InfoContext(ctx, "snippet updated", "snippet_id", updated.ID)

	return updated, nil
}
