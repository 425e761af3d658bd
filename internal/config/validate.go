package config

import (
	"fmt"
	"strings"
)

// llmProviders lists supported text-completion providers.
var llmProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	provider := strings.ToLower(strings.TrimSpace(l.Provider))
	if !llmProviders[provider] {
		return fmt.Errorf("provider must be one of openai, anthropic (got %q)", l.Provider)
	}
	l.Provider = provider

	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}

	return nil
}
