// Package snippet implements the snippet business logic: lifecycle operations
// over the store, AI-backed analysis, and the capture session state machine.
package snippet

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type snippetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Snippet, error)
	List(ctx context.Context, filter domain.SnippetFilter) ([]*domain.Snippet, error)
	Create(ctx context.Context, s *domain.Snippet) (*domain.Snippet, error)
	Update(ctx context.Context, id uuid.UUID, update domain.SnippetUpdate) (*domain.Snippet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
	Model() string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the snippet business logic.
type Service struct {
	log      *slog.Logger
	snippets snippetRepo
	llm      completer
}

// NewService creates a new Snippet service.
func NewService(logger *slog.Logger, snippets snippetRepo, llm completer) *Service {
	return &Service{
		log:      logger.With("service", "snippet"),
		snippets: snippets,
		llm:      llm,
	}
}
