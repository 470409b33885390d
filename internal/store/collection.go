package store

import (
	"context"

	"lsers_hub_backend/internal/platform/kv"

	"go.uber.org/zap"
)

// Collection is a slot holding an ordered list. Every mutation rewrites the whole list.
type Collection[T any] struct {
	*Slot[[]T]
}

func NewCollection[T any](backend kv.Backend, key string, seed func() []T, logger *zap.Logger) *Collection[T] {
	return &Collection[T]{Slot: NewSlot(backend, key, seed, logger)}
}

// All returns a copy of every element in stored order.
func (c *Collection[T]) All(ctx context.Context) []T {
	items := c.Get(ctx)
	if items == nil {
		return []T{}
	}
	return items
}

// Find returns the first element matching pred.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool) {
	for _, item := range c.All(ctx) {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Prepend puts item at the head of the list.
func (c *Collection[T]) Prepend(ctx context.Context, item T) {
	_, _ = c.Update(ctx, func(items []T) ([]T, error) {
		return append([]T{item}, items...), nil
	})
}

// Append adds item at the tail of the list.
func (c *Collection[T]) Append(ctx context.Context, item T) {
	_, _ = c.Update(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}
