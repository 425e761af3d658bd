package snippet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Delete removes a snippet and returns its identity for confirmation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if err := s.snippets.Delete(ctx, id); err != nil {
		return uuid.Nil, fmt.Errorf("delete snippet: %w", err)
	}

	s.log.InfoContext(ctx, "snippet deleted", "snippet_id", id)

	return id, nil
}
