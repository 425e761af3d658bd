package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field bounds enforced on both create and update.
const (
	MaxRawTextLen       = 500
	MaxLemmaLen         = 500
	MaxPartOfSpeechLen  = 50
	MaxSourceContextLen = 20000
)

// DefaultLanguageCode is applied when a snippet is created without one.
const DefaultLanguageCode = "en"

// DefaultDifficulty is the initial value of the reserved difficulty field.
const DefaultDifficulty = 0.5

// Snippet is the durable unit of captured learning material.
//
// Difficulty, NextReview, and ReviewCount are reserved for a future review
// scheduler: they are stored with their defaults (0.5, NULL, 0), never read
// or mutated by any current operation, and excluded from the update whitelist.
type Snippet struct {
	ID            uuid.UUID
	RawText       string
	Lemma         *string
	PartOfSpeech  *string
	LanguageCode  string
	SourceContext string
	Tags          []string
	Difficulty    float64
	NextReview    *time.Time
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SnippetFilter is a conjunction of optional list predicates.
// nil fields match everything.
type SnippetFilter struct {
	LanguageCode *string
	Tag          *string
}

// SnippetUpdate carries a partial update. nil fields are left untouched.
// Only these five fields may be changed after creation.
type SnippetUpdate struct {
	RawText      *string
	Lemma        *string
	PartOfSpeech *string
	LanguageCode *string
	Tags         []string
}

// IsEmpty reports whether the update would change nothing.
func (u SnippetUpdate) IsEmpty() bool {
	return u.RawText == nil && u.Lemma == nil && u.PartOfSpeech == nil &&
		u.LanguageCode == nil && u.Tags == nil
}

// AnalysisResult is the ephemeral AI-derived breakdown of a snippet.
// It is never persisted: every field is optional and absent-tolerant,
// and the save boundary strips it back to the Snippet schema.
type AnalysisResult struct {
	ContextualExplanation string            `json:"contextualExplanation,omitempty"`
	Examples              []AnalysisExample `json:"examples,omitempty"`
	Explanations          []string          `json:"explanations,omitempty"`
	Translation           string            `json:"translation,omitempty"`
}

// AnalysisExample is one usage example with its base-language translation.
type AnalysisExample struct {
	Example     string `json:"example"`
	Translation string `json:"translation"`
}

// Flashcard is an ephemeral AI-generated study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion is an ephemeral AI-generated multiple-choice question.
// CorrectAnswer is the index (0-3) into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}
