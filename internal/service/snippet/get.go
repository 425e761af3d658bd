package snippet

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// GetByID returns a snippet by id or domain.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Snippet, error) {
	return s.snippets.GetByID(ctx, id)
}
