// Command capture selects a span from a text file, optionally runs the AI
// analysis on it, and saves the result as a snippet. It drives the same
// capture session the API uses, end to end against a live database and
// completion service.
//
// Usage:
//
//	capture -file page.txt -start 21 -end 27 -lang de [-base en] [-analyze] [-discard]
//
// Offsets are rune offsets into the file contents, half-open [start, end).
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/lingosnip/internal/adapter/llm"
	"github.com/heartmarshall/lingosnip/internal/adapter/postgres"
	snippetrepo "github.com/heartmarshall/lingosnip/internal/adapter/postgres/snippet"
	"github.com/heartmarshall/lingosnip/internal/config"
	snippetsvc "github.com/heartmarshall/lingosnip/internal/service/snippet"
)

func main() {
	var (
		file    = flag.String("file", "", "path to the source text file (required)")
		start   = flag.Int("start", 0, "selection start (rune offset, inclusive)")
		end     = flag.Int("end", 0, "selection end (rune offset, exclusive)")
		lang    = flag.String("lang", "", "learning language code (default en)")
		base    = flag.String("base", "en", "base language code")
		analyze = flag.Bool("analyze", false, "run AI analysis before saving")
		discard = flag.Bool("discard", false, "print the candidate and discard instead of saving")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if *file == "" {
		logger.Error("missing -file flag")
		os.Exit(1)
	}

	buf, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read source file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
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
		logger.Error("create llm client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := snippetsvc.NewService(logger, snippetrepo.New(pool), completer)
	session := snippetsvc.NewCaptureSession(svc, *lang, *base)

	if err := session.Select(string(buf), *start, *end); err != nil {
		logger.Error("select span", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *analyze {
		result, err := session.Analyze(ctx)
		if err != nil {
			logger.Error("analyze selection", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := enc.Encode(result); err != nil {
			logger.Error("encode analysis", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *discard {
		cand, _ := session.Candidate()
		if err := enc.Encode(map[string]string{"selected": cand.Text, "status": "discarded"}); err != nil {
			logger.Error("encode candidate", slog.String("error", err.Error()))
			os.Exit(1)
		}
		session.Discard()
		return
	}

	created, err := session.Save(ctx)
	if err != nil {
		logger.Error("save snippet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := enc.Encode(map[string]string{"id": created.ID.String(), "rawText": created.RawText}); err != nil {
		logger.Error("encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
