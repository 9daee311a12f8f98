// Package batch provides concurrent fan-out over fetch capabilities.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tidefall/fetchable"
)

// Option configures a batch operation.
type Option func(*options)

type options struct {
	maxConcurrency int
}

// WithConcurrency sets the maximum concurrent fetches. Zero or negative
// means unbounded.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxConcurrency: 10}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// All fetches every capability concurrently and returns the results in
// input order. The first failure cancels the remaining fetches and is
// returned; partial results are discarded.
func All[T any](ctx context.Context, fs []fetchable.Fetchable[T], opts ...Option) ([]T, error) {
	o := buildOptions(opts)

	g, gctx := errgroup.WithContext(ctx)
	if o.maxConcurrency > 0 {
		g.SetLimit(o.maxConcurrency)
	}

	results := make([]T, len(fs))
	for i, f := range fs {
		g.Go(func() error {
			v, err := f.Fetch(gctx)
			if err != nil {
				return fmt.Errorf("fetch %d: %w", i, err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Collect fetches every capability concurrently and returns a Result per
// input, in input order. Unlike All, one failure does not cancel the
// rest; callers inspect each Result individually.
func Collect[T any](ctx context.Context, fs []fetchable.Fetchable[T], opts ...Option) []fetchable.Result[T] {
	o := buildOptions(opts)

	var sem chan struct{}
	if o.maxConcurrency > 0 {
		sem = make(chan struct{}, o.maxConcurrency)
	}

	results := make([]fetchable.Result[T], len(fs))
	var wg sync.WaitGroup
	for i, f := range fs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			v, err := f.Fetch(ctx)
			results[i] = fetchable.Result[T]{Value: v, Err: err}
		}()
	}
	wg.Wait()

	return results
}

// First races every capability and returns the first success, canceling
// the rest. When all fail, the joined errors are returned.
func First[T any](ctx context.Context, fs []fetchable.Fetchable[T]) (T, error) {
	var zero T
	if len(fs) == 0 {
		return zero, fmt.Errorf("batch: no capabilities to race")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, len(fs))

	for _, f := range fs {
		go func() {
			v, err := f.Fetch(ctx)
			ch <- outcome{value: v, err: err}
		}()
	}

	errs := make([]error, 0, len(fs))
	for range fs {
		out := <-ch
		if out.err == nil {
			return out.value, nil
		}
		errs = append(errs, out.err)
	}

	return zero, fmt.Errorf("batch: all %d capabilities failed: %w", len(fs), errors.Join(errs...))
}
