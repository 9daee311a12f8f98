package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/tidefall/fetchable"
)

// Logging adds structured logging around a capability's fetch.
func Logging[T any](name string, logger fetchable.Logger) Middleware[T] {
	return func(f fetchable.Fetchable[T]) fetchable.Fetchable[T] {
		return fetchable.FetchFunc[T](func(ctx context.Context) (T, error) {
			logger.Debug(ctx, "fetch starting", "name", name)
			start := time.Now()

			v, err := f.Fetch(ctx)

			if err != nil {
				logger.Error(ctx, "fetch failed",
					"name", name,
					"duration", time.Since(start),
					"error", err)
			} else {
				logger.Info(ctx, "fetch completed",
					"name", name,
					"duration", time.Since(start),
					"result_type", fmt.Sprintf("%T", v))
			}

			return v, err
		})
	}
}
