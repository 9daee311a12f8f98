// Package middleware provides capability enhancement patterns for
// cross-cutting concerns like logging, timing, and metrics.
package middleware

import (
	"github.com/tidefall/fetchable"
)

// Middleware modifies a capability's behavior while preserving its
// result type and single-outcome contract.
type Middleware[T any] func(fetchable.Fetchable[T]) fetchable.Fetchable[T]

// Chain combines multiple middlewares into a single middleware.
// Middlewares are applied in reverse order (like function composition).
func Chain[T any](middlewares ...Middleware[T]) Middleware[T] {
	return func(f fetchable.Fetchable[T]) fetchable.Fetchable[T] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			f = middlewares[i](f)
		}
		return f
	}
}

// Apply applies middleware to a capability.
func Apply[T any](f fetchable.Fetchable[T], middlewares ...Middleware[T]) fetchable.Fetchable[T] {
	for _, mw := range middlewares {
		f = mw(f)
	}
	return f
}
