package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/tidefall/fetchable"
)

// MetricsCollector receives fetch lifecycle events.
type MetricsCollector interface {
	RecordFetchStart(name string)
	RecordFetchEnd(name string, duration time.Duration, err error)
}

// Metrics adds metrics collection to a capability.
func Metrics[T any](name string, collector MetricsCollector) Middleware[T] {
	return func(f fetchable.Fetchable[T]) fetchable.Fetchable[T] {
		return fetchable.FetchFunc[T](func(ctx context.Context) (T, error) {
			collector.RecordFetchStart(name)
			start := time.Now()
			v, err := f.Fetch(ctx)
			collector.RecordFetchEnd(name, time.Since(start), err)
			return v, err
		})
	}
}

// Collector is an in-memory MetricsCollector.
type Collector struct {
	mu        sync.RWMutex
	starts    map[string]int64
	successes map[string]int64
	failures  map[string]int64
	totalTime map[string]time.Duration
}

// NewCollector creates an in-memory collector.
func NewCollector() *Collector {
	return &Collector{
		starts:    make(map[string]int64),
		successes: make(map[string]int64),
		failures:  make(map[string]int64),
		totalTime: make(map[string]time.Duration),
	}
}

// RecordFetchStart implements MetricsCollector.
func (c *Collector) RecordFetchStart(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.starts[name]++
}

// RecordFetchEnd implements MetricsCollector.
func (c *Collector) RecordFetchEnd(name string, duration time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failures[name]++
	} else {
		c.successes[name]++
	}
	c.totalTime[name] += duration
}

// Stats is a snapshot of one capability's counters.
type Stats struct {
	Starts    int64
	Successes int64
	Failures  int64
	TotalTime time.Duration
}

// Stats returns a snapshot of the counters recorded under name.
func (c *Collector) Stats(name string) Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Starts:    c.starts[name],
		Successes: c.successes[name],
		Failures:  c.failures[name],
		TotalTime: c.totalTime[name],
	}
}
