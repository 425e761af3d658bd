package snippet

import (
	"context"

	"github.com/heartmarshall/lingosnip/internal/analysis"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

// GenerateQuiz produces one multiple-choice question for a saved snippet.
// The question is ephemeral and never persisted.
func (s *Service) GenerateQuiz(ctx context.Context, input QuizInput) (domain.QuizQuestion, error) {
	if err := input.Validate(); err != nil {
		return domain.QuizQuestion{}, err
	}

	snip, err := s.snippets.GetByID(ctx, input.SnippetID)
	if err != nil {
		return domain.QuizQuestion{}, err
	}

	req := analysis.BuildQuizRequest(snip.RawText, input.Translation, input.Grammar, snip.LanguageCode)

	body, err := s.llm.Complete(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "quiz completion failed",
			"snippet_id", snip.ID,
			"error", err.Error(),
		)
		return domain.QuizQuestion{}, domain.NewServiceResponseError("completion request failed", err)
	}

	question, err := analysis.ParseQuizResponse(body)
	if err != nil {
		return domain.QuizQuestion{}, err
	}

	s.log.InfoContext(ctx, "quiz generated", "snippet_id", snip.ID)

	return question, nil
}
