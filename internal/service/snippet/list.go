package snippet

import (
	"context"

	"github.com/heartmarshall/lingosnip/internal/domain"
)

// List returns snippets matching the filter, newest first. An empty filter
// returns the full collection.
func (s *Service) List(ctx context.Context, filter domain.SnippetFilter) ([]*domain.Snippet, error) {
	return s.snippets.List(ctx, filter)
}
