package middleware

import (
	"context"
	"time"

	"github.com/tidefall/fetchable"
)

// Timing logs fetches whose duration exceeds threshold.
func Timing[T any](name string, threshold time.Duration, logger fetchable.Logger) Middleware[T] {
	return func(f fetchable.Fetchable[T]) fetchable.Fetchable[T] {
		return fetchable.FetchFunc[T](func(ctx context.Context) (T, error) {
			start := time.Now()
			v, err := f.Fetch(ctx)
			elapsed := time.Since(start)

			if elapsed > threshold {
				logger.Info(ctx, "slow fetch",
					"name", name,
					"duration", elapsed,
					"threshold", threshold)
			}

			return v, err
		})
	}
}
