package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lingosnip/internal/config"
	"github.com/heartmarshall/lingosnip/internal/transport/middleware"
)

// NewRouter assembles the HTTP surface: snippet and health routes behind
// the RequestID -> Logger -> Recovery -> CORS middleware chain.
func NewRouter(
	logger *slog.Logger,
	corsCfg config.CORSConfig,
	snippets *SnippetHandler,
	health *HealthHandler,
) http.Handler {
	mux := http.NewServeMux()
	snippets.Register(mux)
	health.Register(mux)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(corsCfg),
	)

	return chain(mux)
}
