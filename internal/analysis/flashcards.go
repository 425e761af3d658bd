package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

const flashcardSystemPrompt = "You are a language learning assistant creating flashcards. Always respond with valid JSON."

const flashcardPromptFormat = `Based on this %[1]s snippet and its translation, generate 2-3 useful flashcards for learning.

Snippet: "%[2]s"
Translation: "%[3]s"

Create flashcards that help learn:
- The main phrase/sentence
- Key vocabulary words
- Important grammar patterns

Format as JSON:
{
  "flashcards": [
    {"front": "%[1]s text", "back": "English meaning"},
    {"front": "%[1]s text", "back": "English meaning"}
  ]
}`

// BuildFlashcardRequest assembles the completion request for flashcard
// generation from a saved snippet.
func BuildFlashcardRequest(text, translation, languageCode string) llm.Request {
	return llm.Request{
		System: flashcardSystemPrompt,
		User:   fmt.Sprintf(flashcardPromptFormat, domain.LanguageName(languageCode), text, translation),
	}
}

// ParseFlashcardResponse decodes a flashcard response. Same contract as
// ParseResponse: valid JSON or ServiceResponseError, no shape validation.
func ParseFlashcardResponse(body string) ([]domain.Flashcard, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.NewServiceResponseError("empty body", nil)
	}

	jsonStr, ok := extractJSON(body)
	if !ok {
		return nil, domain.NewServiceResponseError("no JSON object in body", nil)
	}

	var wrapper struct {
		Flashcards []domain.Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &wrapper); err != nil {
		return nil, domain.NewServiceResponseError("invalid JSON", err)
	}

	return wrapper.Flashcards, nil
}
