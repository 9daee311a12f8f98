// Package fetchable provides generic fetch capabilities with type-erased
// handles and a decoding network client. See doc.go for an overview.
package fetchable

import (
	"context"
	"errors"
)

// ErrNoCapability is returned when a zero-value handle is invoked.
var ErrNoCapability = errors.New("fetchable: no capability wrapped")

// Fetchable produces exactly one value of type T per Fetch call.
// Exactly one of the returned value or error is meaningful; a call never
// yields both a usable value and an error, and never yields neither.
type Fetchable[T any] interface {
	// Fetch retrieves one value. The context governs cancellation and
	// deadlines for the underlying operation.
	Fetch(ctx context.Context) (T, error)
}

// FetchFunc adapts an ordinary function to the Fetchable interface.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Fetch calls the wrapped function.
func (f FetchFunc[T]) Fetch(ctx context.Context) (T, error) {
	return f(ctx)
}

// AnyFetchable is a type-erased handle over some concrete Fetchable[T].
// It captures the wrapped capability's operation at construction time,
// fixing the result type while hiding the implementing type. The handle
// adds no behavior: the outcome of Fetch is exactly the outcome the
// wrapped capability would have produced directly.
//
// A handle wraps exactly one capability and is immutable after creation.
type AnyFetchable[T any] struct {
	fetch func(ctx context.Context) (T, error)
}

// NewAny wraps a concrete capability in a type-erased handle.
func NewAny[T any](f Fetchable[T]) AnyFetchable[T] {
	if f == nil {
		return AnyFetchable[T]{}
	}
	return AnyFetchable[T]{fetch: f.Fetch}
}

// AnyFunc wraps a bare function in a type-erased handle.
func AnyFunc[T any](fn func(ctx context.Context) (T, error)) AnyFetchable[T] {
	return AnyFetchable[T]{fetch: fn}
}

// Fetch delegates to the captured operation. A zero-value handle reports
// ErrNoCapability.
func (a AnyFetchable[T]) Fetch(ctx context.Context) (T, error) {
	if a.fetch == nil {
		var zero T
		return zero, ErrNoCapability
	}
	return a.fetch(ctx)
}

// Result is the single terminal outcome of an asynchronous fetch.
// Exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Go starts f in its own goroutine and returns a channel that delivers
// exactly one Result and is then closed. The channel is buffered, so the
// result is never dropped even if the receiver is slow to arrive.
func Go[T any](ctx context.Context, f Fetchable[T]) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		v, err := f.Fetch(ctx)
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}
