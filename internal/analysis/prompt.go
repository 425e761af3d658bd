// Package analysis turns a captured text selection into a completion request
// and a completion response into a typed AnalysisResult.
//
// The downstream service is natural-language generation, not a typed RPC, so
// the prompt itself carries the output contract: it enumerates the exact key
// names and array shapes the parser will look for, with one worked example to
// anchor format and granularity.
package analysis

import (
	"fmt"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

const systemPrompt = "You are a helpful language learning assistant. Always respond with valid JSON."

const userPromptFormat = `You are a language learning assistant. Analyze the following %[1]s text and provide a comprehensive learning breakdown.

Text: "%[3]s"
Context: "%[4]s"

Please provide:
1. Contextual meaning of the text in the context where it was found. If the context is the same as the text or the context is insufficient, go for the most common meaning.
2. 3-4 example sentences for the most common usages (in %[1]s with %[2]s translations).
3. Each meaning with explanations about the structure, words, or usage and a set examples.
4. %[2]s translation.

Format your response as JSON with this structure:
{
  "contextualExplanation": "...",
  "examples": [
    {"example": "...", "translation": "..."},
    {"example": "...", "translation": "..."},
    {"example": "...", "translation": "..."}
  ],
  "explanations": ["...", "...", "...", "..."],
  "translation": "..."
}

For example, for the text "lustig" in German in the context of "etwas lustig zu machen", the response could look like this:
{
  "contextualExplanation": "In this context of 'etwas lustig zu machen', 'lustig' translates to funny, indicating that the action involves adding humor to a situation or event.",
  "examples": [
    {"example": "Der Lehrer wollte den Unterricht etwas lustig machen.", "translation": "The teacher wanted to make the lesson a bit funny."},
    {"example": "Die Komödie war so lustig, dass wir alle laut gelacht haben.", "translation": "The comedy was so funny that we all laughed out loud."},
    {"example": "Kannst du das etwas lustig machen, damit es interessanter wird?", "translation": "Can you make it a bit funny so that it becomes more interesting?"}
  ],
  "explanations": [
    "'Lustig' generally means 'funny' or 'amusing.' It is used to describe something that causes laughter or entertainment. The word operates as an adjective in sentences, modifying nouns.",
    "The phrase 'etwas lustig machen' implies the act of introducing humor into a situation. Here, 'etwas' means 'something,' 'lustig' means 'funny,' and 'machen' means 'to make.' It demonstrates an action focused on transforming a serious or bland context into a humorous experience.",
    "'Lustig' can also pertain to a person's character or behavior, suggesting that someone is humorous or light-hearted. For example, 'Er ist sehr lustig' means 'He is very funny.'"
  ],
  "translation": "funny"
}`

// BuildRequest assembles the completion request for one analysis.
// Language codes resolve to names best-effort; unknown codes pass through.
func BuildRequest(text, context, learningCode, baseCode string) llm.Request {
	learning := domain.LanguageName(learningCode)
	base := domain.LanguageName(baseCode)

	return llm.Request{
		System: systemPrompt,
		User:   fmt.Sprintf(userPromptFormat, learning, base, text, context),
	}
}
