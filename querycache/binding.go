package querycache

import (
	"context"
	"time"
)

// Binding pairs a cache key with a fetch function and a staleness window.
// A binding whose Enabled predicate fails is disabled: Get returns the zero
// value without fetching.
type Binding[T any] struct {
	cache   *Cache
	key     string
	ttl     time.Duration
	fetch   func(ctx context.Context) (T, error)
	enabled func() bool
}

// NewBinding creates a read binding for key over fetch.
func NewBinding[T any](cache *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) *Binding[T] {
	return &Binding[T]{cache: cache, key: key, ttl: ttl, fetch: fetch}
}

// WithEnabled sets the binding's precondition. Get short-circuits to the zero
// value while the predicate returns false.
func (b *Binding[T]) WithEnabled(pred func() bool) *Binding[T] {
	b.enabled = pred
	return b
}

// Get serves the cached value when fresh, otherwise fetches, stores and
// returns it. Fetch failures are not cached.
func (b *Binding[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if b.enabled != nil && !b.enabled() {
		return zero, nil
	}
	if v, ok := b.cache.Get(b.key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	return b.Refetch(ctx)
}

// Refetch bypasses the cached value, fetches and stores the fresh one.
func (b *Binding[T]) Refetch(ctx context.Context) (T, error) {
	var zero T
	v, err := b.fetch(ctx)
	if err != nil {
		return zero, err
	}
	b.cache.Set(b.key, v, b.ttl)
	return v, nil
}

// Invalidate drops this binding's entry.
func (b *Binding[T]) Invalidate() {
	b.cache.Invalidate(b.key)
}

// Mutate runs a mutation and, only on success, invalidates the named keys.
func Mutate[T any](ctx context.Context, cache *Cache, run func(ctx context.Context) (T, error), invalidates ...string) (T, error) {
	v, err := run(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	cache.Invalidate(invalidates...)
	return v, nil
}
