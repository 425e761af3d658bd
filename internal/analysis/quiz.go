package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

const quizSystemPrompt = "You are a language learning assistant creating quiz questions. Always respond with valid JSON."

const quizPromptFormat = `Create a multiple-choice quiz question based on this %[1]s learning material:

Snippet: "%[2]s"
Translation: "%[3]s"
Grammar points: %[4]s

Create ONE quiz question that tests understanding of:
- Translation/meaning
- Grammar usage
- Vocabulary

Provide 4 options with only one correct answer.

Format as JSON:
{
  "question": "...",
  "options": ["option1", "option2", "option3", "option4"],
  "correctAnswer": 0,
  "explanation": "Brief explanation of the correct answer"
}

correctAnswer should be the index (0-3) of the correct option.`

// BuildQuizRequest assembles the completion request for a quiz question
// from a saved snippet and optional grammar notes.
func BuildQuizRequest(text, translation string, grammar []string, languageCode string) llm.Request {
	return llm.Request{
		System: quizSystemPrompt,
		User: fmt.Sprintf(quizPromptFormat,
			domain.LanguageName(languageCode), text, translation, strings.Join(grammar, "; ")),
	}
}

// ParseQuizResponse decodes a quiz response. Same contract as ParseResponse.
func ParseQuizResponse(body string) (domain.QuizQuestion, error) {
	if strings.TrimSpace(body) == "" {
		return domain.QuizQuestion{}, domain.NewServiceResponseError("empty body", nil)
	}

	jsonStr, ok := extractJSON(body)
	if !ok {
		return domain.QuizQuestion{}, domain.NewServiceResponseError("no JSON object in body", nil)
	}

	var q domain.QuizQuestion
	if err := json.Unmarshal([]byte(jsonStr), &q); err != nil {
		return domain.QuizQuestion{}, domain.NewServiceResponseError("invalid JSON", err)
	}

	return q, nil
}
