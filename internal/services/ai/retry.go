// File: internal/services/ai/retry.go
package ai

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
)

// withRetry executes an operation with exponential backoff. Config and
// validation errors are permanent and never retried.
func withRetry[T any](ctx context.Context, cfg *Config, operation func() (T, error)) (T, error) {
	var result T

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(cfg.RetryDelay),
		backoff.WithMaxElapsedTime(cfg.MaxElapsedTime),
	), uint64(cfg.MaxRetries)), ctx)

	err := backoff.Retry(func() error {
		var opErr error
		result, opErr = operation()
		if opErr == nil {
			return nil
		}
		var aiErr *AIError
		if errors.As(opErr, &aiErr) {
			if aiErr.Type == ErrTypeConfig || aiErr.Type == ErrTypeValidation {
				return backoff.Permanent(opErr)
			}
		}
		return opErr
	}, b)

	return result, err
}
