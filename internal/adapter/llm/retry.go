package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/avast/retry-go"
	"github.com/openai/openai-go"
)

// retryingCompleter wraps a Completer with a per-attempt timeout and bounded
// backoff retry on retryable provider errors (429, 5xx, network).
type retryingCompleter struct {
	next     Completer
	attempts uint
	timeout  time.Duration
}

func (c *retryingCompleter) Complete(ctx context.Context, req Request) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			attemptCtx := ctx
			if c.timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
				defer cancel()
			}

			response, err := c.next.Complete(attemptCtx, req)
			if err != nil {
				if !isRetryable(ctx, err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (c *retryingCompleter) Model() string {
	return c.next.Model()
}

// isRetryable classifies provider errors. Rate limits and server errors are
// worth another attempt; everything the caller did wrong is not.
func isRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return retryableStatus(ctx, openaiErr.StatusCode)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return retryableStatus(ctx, anthropicErr.StatusCode)
	}

	// Per-attempt deadline without an API response: the call hung, retry.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	slog.WarnContext(ctx, "completion network error, will retry", slog.String("error", errStr))
	return true
}

func retryableStatus(ctx context.Context, status int) bool {
	switch {
	case status == 429:
		slog.WarnContext(ctx, "completion rate limited, will retry", slog.Int("status_code", status))
		return true
	case status >= 500:
		slog.WarnContext(ctx, "completion server error, will retry", slog.Int("status_code", status))
		return true
	default:
		return false
	}
}
