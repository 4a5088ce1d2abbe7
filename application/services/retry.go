package services

import (
	"context"
	"errors"
	"time"

	"storyspark-api/domain"
)

// retryTransient runs fn with a per-call timeout, retrying transient
// provider failures with exponential backoff up to attempts tries.
// Permanent failures and context cancellation return immediately. This is
// the fault-tolerance budget; the safety revision loop is a separate,
// semantic retry owned by the orchestrator.
func retryTransient(ctx context.Context, attempts int, baseDelay, timeout time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := baseDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		err = fn(callCtx)
		cancel()

		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// A blown per-call deadline counts as transient even when the
		// adapter did not classify it.
		if !domain.IsTransient(err) && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}
	return err
}
