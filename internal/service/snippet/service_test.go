package snippet

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockSnippetRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Snippet, error)
	ListFunc    func(ctx context.Context, filter domain.SnippetFilter) ([]*domain.Snippet, error)
	CreateFunc  func(ctx context.Context, s *domain.Snippet) (*domain.Snippet, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, update domain.SnippetUpdate) (*domain.Snippet, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSnippetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Snippet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSnippetRepo) List(ctx context.Context, filter domain.SnippetFilter) ([]*domain.Snippet, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.Snippet{}, nil
}

func (m *mockSnippetRepo) Create(ctx context.Context, s *domain.Snippet) (*domain.Snippet, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return s, nil
}

func (m *mockSnippetRepo) Update(ctx context.Context, id uuid.UUID, update domain.SnippetUpdate) (*domain.Snippet, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSnippetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockCompleter struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "{}", nil
}

func (m *mockCompleter) Model() string { return "test-model" }

type testDeps struct {
	snippets *mockSnippetRepo
	llm      *mockCompleter
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		snippets: &mockSnippetRepo{},
		llm:      &mockCompleter{},
	}
	svc := NewService(slog.Default(), deps.snippets, deps.llm)
	return svc, deps
}

func ptrString(s string) *string { return &s }

func validCreateInput() CreateInput {
	return CreateInput{
		RawText:       "Hallo",
		SourceContext: "Sag Hallo zu mir",
		LanguageCode:  "de",
	}
}

// ===========================================================================
// 1. Create Tests
// ===========================================================================

func TestService_Create_Success(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	var captured *domain.Snippet
	deps.snippets.CreateFunc = func(_ context.Context, s *domain.Snippet) (*domain.Snippet, error) {
		captured = s
		return s, nil
	}

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEqual(t, uuid.Nil, captured.ID)
	assert.Equal(t, "Hallo", captured.RawText)
	assert.Equal(t, "de", captured.LanguageCode)
	assert.Equal(t, domain.DefaultDifficulty, captured.Difficulty)
	assert.Equal(t, 0, captured.ReviewCount)
	assert.Nil(t, captured.NextReview)
	assert.NotNil(t, captured.Tags)
	assert.Empty(t, captured.Tags)
	assert.False(t, captured.CreatedAt.IsZero())
	assert.Equal(t, captured.CreatedAt, captured.UpdatedAt)
}

func TestService_Create_DefaultLanguageCode(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	var captured *domain.Snippet
	deps.snippets.CreateFunc = func(_ context.Context, s *domain.Snippet) (*domain.Snippet, error) {
		captured = s
		return s, nil
	}

	input := validCreateInput()
	input.LanguageCode = ""

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguageCode, captured.LanguageCode)
}

func TestService_Create_MissingRawText(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	input := validCreateInput()
	input.RawText = ""

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Create_MissingSourceContext(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	input := validCreateInput()
	input.SourceContext = ""

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Create_RawTextTooLong(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	input := validCreateInput()
	input.RawText = strings.Repeat("a", domain.MaxRawTextLen+1)

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Create_RawTextAtBoundary(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	input := validCreateInput()
	input.RawText = strings.Repeat("a", domain.MaxRawTextLen)

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
}

func TestService_Create_BoundsCountRunes(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	// 500 multi-byte runes are within bounds even though the byte length is not.
	input := validCreateInput()
	input.RawText = strings.Repeat("ü", domain.MaxRawTextLen)

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
}

func TestService_Create_SourceContextTooLong(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	input := validCreateInput()
	input.SourceContext = strings.Repeat("a", domain.MaxSourceContextLen+1)

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Create_StoreFailurePropagates(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	storeErr := errors.New("connection reset")
	deps.snippets.CreateFunc = func(_ context.Context, _ *domain.Snippet) (*domain.Snippet, error) {
		return nil, storeErr
	}

	_, err := svc.Create(context.Background(), validCreateInput())
	require.ErrorIs(t, err, storeErr)
}

// ===========================================================================
// 2. Update Tests
// ===========================================================================

func TestService_Update_WhitelistPassthrough(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	id := uuid.New()

	var captured domain.SnippetUpdate
	deps.snippets.UpdateFunc = func(_ context.Context, gotID uuid.UUID, update domain.SnippetUpdate) (*domain.Snippet, error) {
		assert.Equal(t, id, gotID)
		captured = update
		return &domain.Snippet{ID: gotID}, nil
	}

	_, err := svc.Update(context.Background(), UpdateInput{
		ID:    id,
		Lemma: ptrString("gehen"),
		Tags:  []string{"verbs"},
	})
	require.NoError(t, err)

	assert.Equal(t, "gehen", *captured.Lemma)
	assert.Equal(t, []string{"verbs"}, captured.Tags)
	assert.Nil(t, captured.RawText)
	assert.Nil(t, captured.PartOfSpeech)
	assert.Nil(t, captured.LanguageCode)
}

func TestService_Update_EmptyStillReachesStore(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	id := uuid.New()

	var called bool
	deps.snippets.UpdateFunc = func(_ context.Context, _ uuid.UUID, update domain.SnippetUpdate) (*domain.Snippet, error) {
		called = true
		assert.True(t, update.IsEmpty())
		return &domain.Snippet{ID: id}, nil
	}

	// An empty update is legal: it only bumps updated_at.
	_, err := svc.Update(context.Background(), UpdateInput{ID: id})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestService_Update_RawTextTooLong(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), UpdateInput{
		ID:      uuid.New(),
		RawText: ptrString(strings.Repeat("a", domain.MaxRawTextLen+1)),
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Update_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), UpdateInput{
		ID:    uuid.New(),
		Lemma: ptrString("gone"),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// 3. Delete Tests
// ===========================================================================

func TestService_Delete_ReturnsIdentity(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	id := uuid.New()

	got, err := svc.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.snippets.DeleteFunc = func(_ context.Context, _ uuid.UUID) error {
		return domain.ErrNotFound
	}

	_, err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// 4. Analyze Tests
// ===========================================================================

func TestService_Analyze_Success(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.llm.CompleteFunc = func(_ context.Context, req llm.Request) (string, error) {
		assert.Contains(t, req.User, `Text: "lustig"`)
		assert.Contains(t, req.User, "German")
		return `{"contextualExplanation":"funny in this context","translation":"funny"}`, nil
	}

	result, err := svc.Analyze(context.Background(), AnalyzeInput{
		Text:             "lustig",
		Context:          "etwas lustig zu machen",
		LearningLanguage: "de",
		BaseLanguage:     "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "funny", result.Translation)
	assert.Equal(t, "funny in this context", result.ContextualExplanation)
	assert.Empty(t, result.Examples)
	assert.Empty(t, result.Explanations)
}

func TestService_Analyze_MissingFields(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	tests := []struct {
		name  string
		input AnalyzeInput
	}{
		{"missing text", AnalyzeInput{Context: "ctx", LearningLanguage: "de"}},
		{"missing context", AnalyzeInput{Text: "word", LearningLanguage: "de"}},
		{"missing learning language", AnalyzeInput{Text: "word", Context: "ctx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Analyze(context.Background(), tt.input)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_Analyze_UpstreamFailure(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.llm.CompleteFunc = func(_ context.Context, _ llm.Request) (string, error) {
		return "", errors.New("upstream timeout")
	}

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Text:             "word",
		Context:          "some word here",
		LearningLanguage: "de",
	})
	require.ErrorIs(t, err, domain.ErrServiceResponse)
}

func TestService_Analyze_NonJSONBody(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.llm.CompleteFunc = func(_ context.Context, _ llm.Request) (string, error) {
		return "Sorry, I cannot help with that.", nil
	}

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Text:             "word",
		Context:          "some word here",
		LearningLanguage: "de",
	})
	require.ErrorIs(t, err, domain.ErrServiceResponse)
}

func TestService_Analyze_DefaultBaseLanguage(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.llm.CompleteFunc = func(_ context.Context, req llm.Request) (string, error) {
		assert.Contains(t, req.User, "English")
		return "{}", nil
	}

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Text:             "word",
		Context:          "some word here",
		LearningLanguage: "de",
	})
	require.NoError(t, err)
}

// ===========================================================================
// 5. Flashcards & Quiz Tests
// ===========================================================================

func TestService_GenerateFlashcards_Success(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	id := uuid.New()

	deps.snippets.GetByIDFunc = func(_ context.Context, gotID uuid.UUID) (*domain.Snippet, error) {
		assert.Equal(t, id, gotID)
		return &domain.Snippet{ID: id, RawText: "lustig", LanguageCode: "de"}, nil
	}
	deps.llm.CompleteFunc = func(_ context.Context, req llm.Request) (string, error) {
		assert.Contains(t, req.User, "lustig")
		return `{"flashcards":[{"front":"lustig","back":"funny"},{"front":"etwas","back":"something"}]}`, nil
	}

	cards, err := svc.GenerateFlashcards(context.Background(), FlashcardsInput{
		SnippetID:   id,
		Translation: "funny",
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "lustig", cards[0].Front)
	assert.Equal(t, "funny", cards[0].Back)
}

func TestService_GenerateFlashcards_SnippetNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.GenerateFlashcards(context.Background(), FlashcardsInput{SnippetID: uuid.New()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_GenerateQuiz_Success(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	id := uuid.New()

	deps.snippets.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Snippet, error) {
		return &domain.Snippet{ID: id, RawText: "lustig", LanguageCode: "de"}, nil
	}
	deps.llm.CompleteFunc = func(_ context.Context, _ llm.Request) (string, error) {
		return `{"question":"What does lustig mean?","options":["funny","sad","tall","loud"],"correctAnswer":0,"explanation":"lustig means funny"}`, nil
	}

	q, err := svc.GenerateQuiz(context.Background(), QuizInput{SnippetID: id})
	require.NoError(t, err)
	assert.Equal(t, "What does lustig mean?", q.Question)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, 0, q.CorrectAnswer)
}

func TestService_GenerateQuiz_UpstreamFailure(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	id := uuid.New()

	deps.snippets.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Snippet, error) {
		return &domain.Snippet{ID: id, RawText: "lustig", LanguageCode: "de"}, nil
	}
	deps.llm.CompleteFunc = func(_ context.Context, _ llm.Request) (string, error) {
		return "", errors.New("overloaded")
	}

	_, err := svc.GenerateQuiz(context.Background(), QuizInput{SnippetID: id})
	require.ErrorIs(t, err, domain.ErrServiceResponse)
}
