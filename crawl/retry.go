package crawl

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFunc is notified before each retry with the attempt about to run
// (starting at 2) and the error that caused it.
type RetryFunc func(attempt int, err error)

// Retry calls fn until it succeeds, retryable reports false, or the delays
// are used up, so fn runs at most len(delays)+1 times. A nil retryable
// retries every error.
func Retry[T any](
	ctx context.Context,
	delays []time.Duration,
	fn func(ctx context.Context) (T, error),
	retryable func(error) bool,
	onRetry RetryFunc,
) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		if retryable != nil && !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}
