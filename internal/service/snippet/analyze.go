package snippet

import (
	"context"

	"github.com/heartmarshall/lingosnip/internal/analysis"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

// Analyze runs the capture-and-analysis pipeline for a text selection:
// builds the prompt, calls the text-completion service, and parses the
// response. The result is ephemeral and never persisted.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (domain.AnalysisResult, error) {
	if err := input.Validate(); err != nil {
		return domain.AnalysisResult{}, err
	}

	baseLanguage := input.BaseLanguage
	if baseLanguage == "" {
		baseLanguage = domain.DefaultLanguageCode
	}

	req := analysis.BuildRequest(input.Text, input.Context, input.LearningLanguage, baseLanguage)

	body, err := s.llm.Complete(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "analysis completion failed",
			"model", s.llm.Model(),
			"error", err.Error(),
		)
		return domain.AnalysisResult{}, domain.NewServiceResponseError("completion request failed", err)
	}

	result, err := analysis.ParseResponse(body)
	if err != nil {
		s.log.ErrorContext(ctx, "analysis response unparseable",
			"model", s.llm.Model(),
			"error", err.Error(),
		)
		return domain.AnalysisResult{}, err
	}

	s.log.InfoContext(ctx, "snippet analyzed",
		"model", s.llm.Model(),
		"learning_language", input.LearningLanguage,
		"examples", len(result.Examples),
	)

	return result, nil
}
