package registry

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc retrieves one resource.
type FetchFunc[T any] func(ctx context.Context, url string) (T, error)

// FetchWithRetryDelays calls fetch until it succeeds, sleeping delays[i]
// before retry i+1, for at most len(delays)+1 attempts. Retries are logged
// at debug level. Cancellation of ctx ends the loop with ctx.Err().
func FetchWithRetryDelays[T any](ctx context.Context, url string, fetch FetchFunc[T], logger *slog.Logger, delays []time.Duration) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fetch(ctx, url)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if logger != nil {
			logger.Debug("retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
