package fetchable

import (
	"context"
	"fmt"
	"sync"
)

// Cache provides thread-safe storage for fetched results.
type Cache interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key string) (value any, exists bool)

	// Set stores a value with the given key.
	Set(ctx context.Context, key string, value any) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Scope returns a new cache view with the given prefix.
	Scope(prefix string) Cache
}

// cache is the internal implementation with a mutex. Scoped views share
// the parent's map and mutex.
type cache struct {
	mu     *sync.RWMutex
	data   map[string]any
	prefix string
}

// NewCache creates a new thread-safe cache.
func NewCache() Cache {
	return &cache{
		mu:   &sync.RWMutex{},
		data: make(map[string]any),
	}
}

// Get retrieves a value by key.
func (c *cache) Get(ctx context.Context, key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fullKey := c.prefix + key
	val, exists := c.data[fullKey]
	return val, exists
}

// Set stores a value with the given key.
func (c *cache) Set(ctx context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fullKey := c.prefix + key
	c.data[fullKey] = value
	return nil
}

// Delete removes a key from the cache.
func (c *cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fullKey := c.prefix + key
	delete(c.data, fullKey)
	return nil
}

// Scope returns a new cache view with the given prefix.
func (c *cache) Scope(prefix string) Cache {
	return &cache{
		mu:     c.mu,
		data:   c.data,
		prefix: c.prefix + prefix + ":",
	}
}

// TypedCache provides type-safe cache operations.
type TypedCache[T any] interface {
	Get(ctx context.Context, key string) (T, bool, error)
	Set(ctx context.Context, key string, value T) error
	Delete(ctx context.Context, key string) error
}

// NewTypedCache creates a type-safe wrapper around a Cache.
func NewTypedCache[T any](c Cache) TypedCache[T] {
	return &typedCache[T]{cache: c}
}

type typedCache[T any] struct {
	cache Cache
}

func (t *typedCache[T]) Get(ctx context.Context, key string) (value T, exists bool, err error) {
	var zero T
	val, ok := t.cache.Get(ctx, key)
	if !ok {
		return zero, false, nil
	}

	typed, ok := val.(T)
	if !ok {
		return zero, false, fmt.Errorf("type mismatch: expected %T, got %T", zero, val)
	}

	return typed, true, nil
}

func (t *typedCache[T]) Set(ctx context.Context, key string, value T) error {
	return t.cache.Set(ctx, key, value)
}

func (t *typedCache[T]) Delete(ctx context.Context, key string) error {
	return t.cache.Delete(ctx, key)
}

// Cached decorates a capability with fetch-through caching: a hit under
// key returns the stored value without invoking f; a successful fetch is
// stored before it is returned. Failures are never cached.
func Cached[T any](c Cache, key string, f Fetchable[T]) Fetchable[T] {
	typed := NewTypedCache[T](c)
	return FetchFunc[T](func(ctx context.Context) (T, error) {
		if v, ok, err := typed.Get(ctx, key); err == nil && ok {
			return v, nil
		}

		v, err := f.Fetch(ctx)
		if err != nil {
			return v, err
		}
		if err := typed.Set(ctx, key, v); err != nil {
			return v, err
		}
		return v, nil
	})
}
