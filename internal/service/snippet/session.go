package snippet

import (
	"context"
	"errors"
	"sync"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// SessionState is the capture session's position in the
// Idle -> Selected -> Analyzing -> AnalysisReady -> Saved/Discarded flow.
type SessionState string

// Capture session states.
const (
	StateIdle          SessionState = "idle"
	StateSelected      SessionState = "selected"
	StateAnalyzing     SessionState = "analyzing"
	StateAnalysisReady SessionState = "analysis_ready"
)

// Session-level errors.
var (
	// ErrNoSelection is returned when an operation needs an active candidate
	// and the session has none.
	ErrNoSelection = errors.New("no active selection")

	// ErrEmptySelection is returned when the selected range trims to nothing.
	ErrEmptySelection = errors.New("empty selection")

	// ErrSelectionChanged is returned when an analysis completes after the
	// selection it was started for has been superseded. The stale result is
	// dropped, never merged into the newer candidate.
	ErrSelectionChanged = errors.New("selection changed during analysis")
)

// Candidate is a pending snippet: capture fields plus the optional analysis
// attached for display. Only the capture fields survive a save.
type Candidate struct {
	Text          string
	SourceContext string
	LanguageCode  string
	Analysis      *domain.AnalysisResult
}

// CaptureSession owns the mutable capture state for one user session:
// the pending selection and its analysis candidate. All methods are safe
// for concurrent use; network calls run outside the lock and revalidate
// the selection generation on completion.
type CaptureSession struct {
	svc              *Service
	learningLanguage string
	baseLanguage     string

	mu         sync.Mutex
	state      SessionState
	generation uint64
	candidate  *Candidate
	staged     []*Candidate
}

// NewCaptureSession creates an idle capture session for a language pair.
func NewCaptureSession(svc *Service, learningLanguage, baseLanguage string) *CaptureSession {
	if learningLanguage == "" {
		learningLanguage = domain.DefaultLanguageCode
	}
	if baseLanguage == "" {
		baseLanguage = domain.DefaultLanguageCode
	}
	return &CaptureSession{
		svc:              svc,
		learningLanguage: learningLanguage,
		baseLanguage:     baseLanguage,
		state:            StateIdle,
	}
}

// State returns the current session state.
func (c *CaptureSession) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Candidate returns a copy of the pending candidate, or false when none.
func (c *CaptureSession) Candidate() (Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.candidate == nil {
		return Candidate{}, false
	}
	return *c.candidate, true
}

// StagedCount returns the number of candidates parked for SaveAll.
func (c *CaptureSession) StagedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.staged)
}

// Select extracts the [start, end) rune range from buffer as the new pending
// candidate. Selecting while an analysis is in flight is permitted and
// supersedes that analysis: its result will be dropped when it resolves.
func (c *CaptureSession) Select(buffer string, start, end int) error {
	text, ok := domain.ExtractSelection(buffer, start, end)
	if !ok {
		return ErrEmptySelection
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.candidate = &Candidate{
		Text:          text,
		SourceContext: buffer,
		LanguageCode:  c.learningLanguage,
	}
	c.state = StateSelected

	return nil
}

// Analyze runs the analysis pipeline for the current selection. The lock is
// released for the duration of the network call; if the selection changed
// before the result arrived, the result is dropped and ErrSelectionChanged
// is returned. On upstream failure the session returns to idle with no
// partial candidate.
func (c *CaptureSession) Analyze(ctx context.Context) (domain.AnalysisResult, error) {
	c.mu.Lock()
	if c.candidate == nil {
		c.mu.Unlock()
		return domain.AnalysisResult{}, ErrNoSelection
	}
	gen := c.generation
	input := AnalyzeInput{
		Text:             c.candidate.Text,
		Context:          c.candidate.SourceContext,
		LearningLanguage: c.learningLanguage,
		BaseLanguage:     c.baseLanguage,
	}
	c.state = StateAnalyzing
	c.mu.Unlock()

	result, err := c.svc.Analyze(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		// A newer selection owns the session now; this result is stale.
		return domain.AnalysisResult{}, ErrSelectionChanged
	}

	if err != nil {
		c.candidate = nil
		c.state = StateIdle
		return domain.AnalysisResult{}, err
	}

	c.candidate.Analysis = &result
	c.state = StateAnalysisReady

	return result, nil
}

// Save persists the pending candidate. Analysis fields are stripped: only
// the capture fields pass to the store. On success the candidate is cleared;
// on failure it stays pending. The direct path (save without analysis) is
// allowed from the selected state.
func (c *CaptureSession) Save(ctx context.Context) (*domain.Snippet, error) {
	c.mu.Lock()
	if c.candidate == nil {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}
	gen := c.generation
	cand := *c.candidate
	c.mu.Unlock()

	created, err := c.svc.Create(ctx, captureFields(cand))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation == gen {
		c.candidate = nil
		c.state = StateIdle
	}

	return created, nil
}

// Stage parks the pending candidate for a later SaveAll and frees the
// session for a new selection.
func (c *CaptureSession) Stage() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.candidate == nil {
		return ErrNoSelection
	}

	c.staged = append(c.staged, c.candidate)
	c.generation++
	c.candidate = nil
	c.state = StateIdle

	return nil
}

// SaveAll persists the staged candidates sequentially. The batch is not
// atomic: the first failure stops it, earlier creates stay persisted and
// are unstaged, the failed and later candidates stay pending.
func (c *CaptureSession) SaveAll(ctx context.Context) ([]*domain.Snippet, error) {
	c.mu.Lock()
	pending := make([]*Candidate, len(c.staged))
	copy(pending, c.staged)
	c.mu.Unlock()

	var (
		saved   []*domain.Snippet
		savedBy = make(map[*Candidate]bool, len(pending))
		saveErr error
	)

	for _, cand := range pending {
		created, err := c.svc.Create(ctx, captureFields(*cand))
		if err != nil {
			saveErr = err
			break
		}
		saved = append(saved, created)
		savedBy[cand] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.staged[:0]
	for _, cand := range c.staged {
		if !savedBy[cand] {
			remaining = append(remaining, cand)
		}
	}
	c.staged = remaining

	return saved, saveErr
}

// Discard clears the pending candidate without persisting it.
func (c *CaptureSession) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.candidate = nil
	c.state = StateIdle
}

// captureFields maps a candidate to create input, dropping the analysis.
func captureFields(cand Candidate) CreateInput {
	return CreateInput{
		RawText:       cand.Text,
		LanguageCode:  cand.LanguageCode,
		SourceContext: cand.SourceContext,
	}
}
