// Package app wires the application together: configuration, logging,
// database, LLM client, services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/adapter/postgres"
	snippetrepo "github.com/heartmarshall/lingosnip/internal/adapter/postgres/snippet"
	"github.com/heartmarshall/lingosnip/internal/config"
	snippetsvc "github.com/heartmarshall/lingosnip/internal/service/snippet"
	"github.com/heartmarshall/lingosnip/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// dependencies bottom-up, starts the HTTP server, and shuts it down
// gracefully when the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	completer, err := llm.New(llm.Config{
		Provider:      cfg.LLM.Provider,
		APIKey:        cfg.LLM.APIKey,
		BaseURL:       cfg.LLM.BaseURL,
		Model:         cfg.LLM.Model,
		MaxTokens:     cfg.LLM.MaxTokens,
		Timeout:       cfg.LLM.Timeout,
		RetryAttempts: cfg.LLM.RetryAttempts,
	})
	if err != nil {
		return fmt.Errorf("create llm client: %w", err)
	}

	repo := snippetrepo.New(pool)
	svc := snippetsvc.NewService(logger, repo, completer)

	router := rest.NewRouter(
		logger,
		cfg.CORS,
		rest.NewSnippetHandler(svc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		slog.Duration("timeout", cfg.Server.ShutdownTimeout),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
