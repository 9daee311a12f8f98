// Package pipeline provides composable transformation stages over fetch
// results: a source, a status validation stage, and decode/extract stages
// that short-circuit on the first failure.
package pipeline

import (
	"context"

	"github.com/tidefall/fetchable"
)

// Stage transforms a value of type In into a value of type Out. A stage
// either succeeds with exactly one output or fails with exactly one error;
// composition stops at the first failing stage.
type Stage[In, Out any] interface {
	Run(ctx context.Context, in In) (Out, error)
}

// StageFunc adapts an ordinary function to the Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Run calls the wrapped function.
func (f StageFunc[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// Join composes two stages into one. The second stage runs only if the
// first succeeds.
func Join[A, B, C any](first Stage[A, B], second Stage[B, C]) Stage[A, C] {
	return StageFunc[A, C](func(ctx context.Context, in A) (C, error) {
		var zero C
		mid, err := first.Run(ctx, in)
		if err != nil {
			return zero, err
		}
		return second.Run(ctx, mid)
	})
}

// Transform lifts a pure function into a stage that cannot fail.
func Transform[In, Out any](fn func(In) Out) Stage[In, Out] {
	return StageFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
		return fn(in), nil
	})
}

// Tap runs a side effect and passes the value through unchanged.
func Tap[T any](fn func(ctx context.Context, v T)) Stage[T, T] {
	return StageFunc[T, T](func(ctx context.Context, v T) (T, error) {
		fn(ctx, v)
		return v, nil
	})
}

// Erase hides a stage's concrete type behind a uniform handle, the same
// way fetchable.AnyFetchable hides a capability's implementing type.
// Callers see only the In and Out parameters regardless of how the stage
// was assembled.
func Erase[In, Out any](s Stage[In, Out]) Stage[In, Out] {
	return StageFunc[In, Out](s.Run)
}

// Bind attaches a stage to a capability, producing a new type-erased
// capability whose output type is fixed at the boundary. The internal
// pipeline shape is invisible to the holder.
func Bind[A, B any](f fetchable.Fetchable[A], s Stage[A, B]) fetchable.AnyFetchable[B] {
	return fetchable.AnyFunc[B](func(ctx context.Context) (B, error) {
		var zero B
		v, err := f.Fetch(ctx)
		if err != nil {
			return zero, err
		}
		return s.Run(ctx, v)
	})
}
