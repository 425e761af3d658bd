// Package llm provides the text-completion service client. The service is
// treated as unreliable prose generation: the only contract is that a prompt
// goes in and a string comes out. Response interpretation lives in the
// analysis package.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider constants for completion provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Request is one role-tagged completion request.
type Request struct {
	System    string
	User      string
	MaxTokens int
}

// Completer sends a completion request and returns the raw response text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// Config holds completion client configuration.
type Config struct {
	Provider      string // "openai" or "anthropic"
	APIKey        string
	BaseURL       string // optional custom endpoint
	Model         string // empty selects the provider default
	MaxTokens     int
	Timeout       time.Duration // per-attempt timeout; 0 disables
	RetryAttempts uint          // extra attempts on retryable errors
}

// New creates a Completer for the configured provider, wrapped with
// per-attempt timeouts and bounded retry.
func New(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}

	var (
		base Completer
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = newAnthropicCompleter(cfg)
	case ProviderOpenAI, "":
		base, err = newOpenAICompleter(cfg)
	default:
		return nil, fmt.Errorf("llm: unsupported provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return &retryingCompleter{
		next:     base,
		attempts: cfg.RetryAttempts + 1,
		timeout:  cfg.Timeout,
	}, nil
}
