package httpx

import (
	"context"
	"log/slog"
	"time"

	"streamscout/internal/logging"
	"streamscout/internal/services"
)

// Retry runs fn up to attempts times with a fixed delay between attempts,
// returning the first success. Exhaustion yields the zero value and false
// rather than an error, so enrichment phases compose as "try, then fall
// through" without exception plumbing. Definitive failures (configuration,
// not-found, parse) stop immediately.
func Retry[T any](ctx context.Context, logger *slog.Logger, name string, attempts int, delay time.Duration, fn func(context.Context) (T, error)) (T, bool) {
	var zero T
	if logger == nil {
		logger = logging.NewNop()
	}
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := fn(ctx)
		if err == nil {
			return value, true
		}

		logger.Warn("call failed",
			logging.String("call", name),
			logging.Int("attempt", attempt),
			logging.Int("attempts", attempts),
			logging.Error(err))

		if !services.Retryable(err) || attempt == attempts {
			return zero, false
		}
		select {
		case <-ctx.Done():
			return zero, false
		case <-time.After(delay):
		}
	}
	return zero, false
}
