package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/cenkalti/backoff/v4"
)

// retryPolicy bounds how often a unit of work is re-run after a retryable failure.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
}

// maxBackoffShift caps the exponential growth at baseDelay*2^16.
const maxBackoffShift = 16

func (p retryPolicy) attempts() int {
	if p.maxAttempts < 1 {
		return 1
	}
	return p.maxAttempts
}

// backOff builds the jittered exponential schedule for one run. A zero base
// delay retries immediately.
func (p retryPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	var b backoff.BackOff = &backoff.ZeroBackOff{}
	if p.baseDelay > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = p.baseDelay
		eb.MaxInterval = p.baseDelay << maxBackoffShift
		eb.MaxElapsedTime = 0
		eb.Reset()
		b = eb
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.attempts()-1)), ctx)
}

// isRetryable reports whether err may go away on a fresh attempt.
func isRetryable(err error) bool {
	return errors.Is(err, apperrors.ErrEntryNumberConflict) || errors.Is(err, apperrors.ErrTransient)
}

// run executes fn until it succeeds, fails with a non-retryable error, or the
// attempts are exhausted. onRetry is called before each sleep.
func (p retryPolicy) run(ctx context.Context, fn func(attempt int) error, onRetry func(attempt int, err error)) error {
	attempt := 0
	operation := func() error {
		err := fn(attempt)
		attempt++
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, _ time.Duration) {
		if onRetry != nil {
			onRetry(attempt-1, err)
		}
	}

	err := backoff.RetryNotify(operation, p.backOff(ctx), notify)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return fmt.Errorf("retry aborted: %w", err)
	case isRetryable(err):
		return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
	default:
		return err
	}
}
