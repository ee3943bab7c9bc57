package store

import (
	"context"
	"fmt"
	"sync"
)

// Collection is a typed view over one key. Reads return the whole collection
// in insertion order; writes replace it. Mutate serializes read-modify-write
// cycles made through the same Collection value, so domains should share one
// Collection per key. Writers in other processes are not coordinated.
type Collection[T any] struct {
	store Store
	key   string
	mu    sync.Mutex
}

func NewCollection[T any](s Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

// All returns the full collection. A key that was never saved yields an empty
// slice.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.store.Load(ctx, c.key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Replace overwrites the stored collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.store.Save(ctx, c.key, items)
}

// Mutate loads the collection, passes it to fn, and saves whatever fn
// returns. Nothing is written when fn returns an error.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.All(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.key, err)
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(ctx, updated)
}
