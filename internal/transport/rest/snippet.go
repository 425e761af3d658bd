package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingosnip/internal/domain"
	snippetsvc "github.com/heartmarshall/lingosnip/internal/service/snippet"
)

// snippetService defines the minimal interface needed by SnippetHandler.
type snippetService interface {
	Create(ctx context.Context, input snippetsvc.CreateInput) (*domain.Snippet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Snippet, error)
	List(ctx context.Context, filter domain.SnippetFilter) ([]*domain.Snippet, error)
	Update(ctx context.Context, input snippetsvc.UpdateInput) (*domain.Snippet, error)
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Analyze(ctx context.Context, input snippetsvc.AnalyzeInput) (domain.AnalysisResult, error)
	GenerateFlashcards(ctx context.Context, input snippetsvc.FlashcardsInput) ([]domain.Flashcard, error)
	GenerateQuiz(ctx context.Context, input snippetsvc.QuizInput) (domain.QuizQuestion, error)
}

// SnippetHandler serves snippet REST endpoints.
type SnippetHandler struct {
	svc snippetService
	log *slog.Logger
}

// NewSnippetHandler creates a SnippetHandler.
func NewSnippetHandler(svc snippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{svc: svc, log: logger.With("handler", "snippet")}
}

// Register mounts the snippet routes on the mux.
func (h *SnippetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/snippets", h.List)
	mux.HandleFunc("POST /api/snippets", h.Create)
	mux.HandleFunc("POST /api/snippets/analyze", h.Analyze)
	mux.HandleFunc("GET /api/snippets/{id}", h.Get)
	mux.HandleFunc("PUT /api/snippets/{id}", h.Update)
	mux.HandleFunc("DELETE /api/snippets/{id}", h.Delete)
	mux.HandleFunc("POST /api/snippets/{id}/flashcards", h.Flashcards)
	mux.HandleFunc("POST /api/snippets/{id}/quiz", h.Quiz)
}

// ---------------------------------------------------------------------------
// Request / response shapes
// ---------------------------------------------------------------------------

type createSnippetRequest struct {
	RawText       string   `json:"rawText"`
	Lemma         *string  `json:"lemma"`
	PartOfSpeech  *string  `json:"partOfSpeech"`
	LanguageCode  string   `json:"languageCode"`
	SourceContext string   `json:"sourceContext"`
	Tags          []string `json:"tags"`
}

type updateSnippetRequest struct {
	RawText      *string  `json:"rawText"`
	Lemma        *string  `json:"lemma"`
	PartOfSpeech *string  `json:"partOfSpeech"`
	LanguageCode *string  `json:"languageCode"`
	Tags         []string `json:"tags"`
}

type analyzeRequest struct {
	Text             string `json:"text"`
	Context          string `json:"context"`
	LearningLanguage string `json:"learning_language"`
	BaseLanguage     string `json:"base_language"`
}

type analyzeResponse struct {
	Text     string                `json:"text"`
	Analysis domain.AnalysisResult `json:"analysis"`
}

type flashcardsRequest struct {
	Translation string `json:"translation"`
}

type flashcardsResponse struct {
	Flashcards []domain.Flashcard `json:"flashcards"`
}

type quizRequest struct {
	Translation string   `json:"translation"`
	Grammar     []string `json:"grammar"`
}

type deleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type snippetResponse struct {
	ID            string     `json:"id"`
	RawText       string     `json:"rawText"`
	Lemma         *string    `json:"lemma,omitempty"`
	PartOfSpeech  *string    `json:"partOfSpeech,omitempty"`
	LanguageCode  string     `json:"languageCode"`
	SourceContext string     `json:"sourceContext"`
	Tags          []string   `json:"tags"`
	Difficulty    float64    `json:"difficulty"`
	NextReview    *time.Time `json:"nextReview,omitempty"`
	ReviewCount   int        `json:"reviewCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toSnippetResponse(s *domain.Snippet) snippetResponse {
	return snippetResponse{
		ID:            s.ID.String(),
		RawText:       s.RawText,
		Lemma:         s.Lemma,
		PartOfSpeech:  s.PartOfSpeech,
		LanguageCode:  s.LanguageCode,
		SourceContext: s.SourceContext,
		Tags:          s.Tags,
		Difficulty:    s.Difficulty,
		NextReview:    s.NextReview,
		ReviewCount:   s.ReviewCount,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// List handles GET /api/snippets?languageCode=&tag=.
func (h *SnippetHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.SnippetFilter
	if v := r.URL.Query().Get("languageCode"); v != "" {
		filter.LanguageCode = &v
	}
	if v := r.URL.Query().Get("tag"); v != "" {
		filter.Tag = &v
	}

	snippets, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]snippetResponse, 0, len(snippets))
	for _, s := range snippets {
		resp = append(resp, toSnippetResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/snippets.
func (h *SnippetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), snippetsvc.CreateInput{
		RawText:       req.RawText,
		Lemma:         req.Lemma,
		PartOfSpeech:  req.PartOfSpeech,
		LanguageCode:  req.LanguageCode,
		SourceContext: req.SourceContext,
		Tags:          req.Tags,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSnippetResponse(created))
}

// Get handles GET /api/snippets/{id}.
func (h *SnippetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	snip, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSnippetResponse(snip))
}

// Update handles PUT /api/snippets/{id}.
func (h *SnippetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), snippetsvc.UpdateInput{
		ID:           id,
		RawText:      req.RawText,
		Lemma:        req.Lemma,
		PartOfSpeech: req.PartOfSpeech,
		LanguageCode: req.LanguageCode,
		Tags:         req.Tags,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSnippetResponse(updated))
}

// Delete handles DELETE /api/snippets/{id}.
func (h *SnippetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		Message: "snippet deleted",
		ID:      deleted.String(),
	})
}

// Analyze handles POST /api/snippets/analyze.
func (h *SnippetHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Analyze(r.Context(), snippetsvc.AnalyzeInput{
		Text:             req.Text,
		Context:          req.Context,
		LearningLanguage: req.LearningLanguage,
		BaseLanguage:     req.BaseLanguage,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Text: req.Text, Analysis: result})
}

// Flashcards handles POST /api/snippets/{id}/flashcards. The body is
// optional: the client may pass the translation from a prior analysis.
func (h *SnippetHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req flashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cards, err := h.svc.GenerateFlashcards(r.Context(), snippetsvc.FlashcardsInput{
		SnippetID:   id,
		Translation: req.Translation,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, flashcardsResponse{Flashcards: cards})
}

// Quiz handles POST /api/snippets/{id}/quiz. The body is optional.
func (h *SnippetHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.svc.GenerateQuiz(r.Context(), snippetsvc.QuizInput{
		SnippetID:   id,
		Translation: req.Translation,
		Grammar:     req.Grammar,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// pathID parses the {id} path segment. A malformed id is answered as 404:
// the boundary does not distinguish malformed from absent identifiers.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "snippet not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *SnippetHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "snippet not found")
	case errors.Is(err, domain.ErrServiceResponse):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
