// Package fallback provides resilience wrappers for fetch capabilities:
// ordered fallback chains and a circuit breaker.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidefall/fetchable"
)

// Chain tries a sequence of capabilities in order until one succeeds.
// It is itself a Fetchable[T], so chains nest and erase like any other
// capability.
type Chain[T any] struct {
	fetchables []fetchable.Fetchable[T]
	onAttempt  func(index int, err error)
}

// NewChain creates a fallback chain over the given capabilities.
func NewChain[T any](fs ...fetchable.Fetchable[T]) *Chain[T] {
	return &Chain[T]{fetchables: fs}
}

// OnAttempt registers a hook invoked after each failed attempt with the
// attempt's index and error. Returns the chain for chaining.
func (c *Chain[T]) OnAttempt(fn func(index int, err error)) *Chain[T] {
	c.onAttempt = fn
	return c
}

// Fetch tries each capability in order, returning the first success.
// When every capability fails, the errors are joined so callers can
// still match individual failures with errors.Is and errors.As.
// Cancellation is checked between attempts.
func (c *Chain[T]) Fetch(ctx context.Context) (T, error) {
	var zero T
	if len(c.fetchables) == 0 {
		return zero, fmt.Errorf("fallback: empty chain")
	}

	errs := make([]error, 0, len(c.fetchables))
	for i, f := range c.fetchables {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := f.Fetch(ctx)
		if err == nil {
			return v, nil
		}

		if c.onAttempt != nil {
			c.onAttempt(i, err)
		}
		errs = append(errs, err)
	}

	return zero, fmt.Errorf("fallback: all %d capabilities failed: %w", len(c.fetchables), errors.Join(errs...))
}
