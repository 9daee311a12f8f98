package batch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/batch"
)

func constant(v int) fetchable.Fetchable[int] {
	return fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
		return v, nil
	})
}

func TestAllPreservesOrder(t *testing.T) {
	fs := []fetchable.Fetchable[int]{constant(10), constant(20), constant(30)}

	got, err := batch.All(context.Background(), fs)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	want := []int{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestAllFailsFast(t *testing.T) {
	sentinel := errors.New("second failed")
	fs := []fetchable.Fetchable[int]{
		constant(1),
		fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
			return 0, sentinel
		}),
		fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
			// The group context is canceled once a sibling fails.
			<-ctx.Done()
			return 0, ctx.Err()
		}),
	}

	_, err := batch.All(context.Background(), fs)
	if !errors.Is(err, sentinel) {
		t.Errorf("All() error = %v, want sentinel", err)
	}
}

func TestAllRespectsConcurrencyLimit(t *testing.T) {
	var active, peak int64
	fs := make([]fetchable.Fetchable[int], 8)
	for i := range fs {
		fs[i] = fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
			n := atomic.AddInt64(&active, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
			return 0, nil
		})
	}

	if _, err := batch.All(context.Background(), fs, batch.WithConcurrency(2)); err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if p := atomic.LoadInt64(&peak); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestCollectReturnsPartialResults(t *testing.T) {
	sentinel := errors.New("middle failed")
	fs := []fetchable.Fetchable[int]{
		constant(1),
		fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
			return 0, sentinel
		}),
		constant(3),
	}

	results := batch.Collect(context.Background(), fs)
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	if results[0].Err != nil || results[0].Value != 1 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if !errors.Is(results[1].Err, sentinel) {
		t.Errorf("results[1].Err = %v, want sentinel", results[1].Err)
	}
	if results[2].Err != nil || results[2].Value != 3 {
		t.Errorf("results[2] = %+v", results[2])
	}
}

func TestFirstReturnsFastestSuccess(t *testing.T) {
	slow := fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	fast := fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
		return 2, nil
	})

	got, err := batch.First(context.Background(), []fetchable.Fetchable[int]{slow, fast})
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if got != 2 {
		t.Errorf("First() = %d, want 2", got)
	}
}

func TestFirstJoinsAllFailures(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	fs := []fetchable.Fetchable[int]{
		fetchable.FetchFunc[int](func(ctx context.Context) (int, error) { return 0, errA }),
		fetchable.FetchFunc[int](func(ctx context.Context) (int, error) { return 0, errB }),
	}

	_, err := batch.First(context.Background(), fs)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("First() error = %v, want both failures", err)
	}
}

func TestFirstEmptyFails(t *testing.T) {
	if _, err := batch.First[int](context.Background(), nil); err == nil {
		t.Error("First() succeeded with no capabilities")
	}
}
