package snippet

import (
	"context"

	"github.com/heartmarshall/lingosnip/internal/analysis"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

// GenerateFlashcards produces 2-3 study cards for a saved snippet.
// The cards are ephemeral and never persisted.
func (s *Service) GenerateFlashcards(ctx context.Context, input FlashcardsInput) ([]domain.Flashcard, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	snip, err := s.snippets.GetByID(ctx, input.SnippetID)
	if err != nil {
		return nil, err
	}

	req := analysis.BuildFlashcardRequest(snip.RawText, input.Translation, snip.LanguageCode)

	body, err := s.llm.Complete(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "flashcard completion failed",
			"snippet_id", snip.ID,
			"error", err.Error(),
		)
		return nil, domain.NewServiceResponseError("completion request failed", err)
	}

	cards, err := analysis.ParseFlashcardResponse(body)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "flashcards generated",
		"snippet_id", snip.ID,
		"count", len(cards),
	)

	return cards, nil
}
