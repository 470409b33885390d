package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"lsers_hub_backend/internal/platform/kv"

	"go.uber.org/zap"
)

// Slot is one typed, durably mirrored value. The in-memory copy is authoritative:
// durable reads and writes that fail are logged and never reach the caller.
type Slot[T any] struct {
	key     string
	backend kv.Backend
	seed    func() T
	clone   func(T) T
	logger  *zap.Logger

	writeBackSeed bool

	mu     sync.Mutex
	loaded bool
	value  T
}

// SlotOption tweaks a Slot at construction.
type SlotOption[T any] func(*Slot[T])

// WithoutSeedWriteBack keeps an absent slot absent until the first explicit Save.
func WithoutSeedWriteBack[T any]() SlotOption[T] {
	return func(s *Slot[T]) { s.writeBackSeed = false }
}

// WithCloner replaces the default JSON deep copy used to hand values out.
func WithCloner[T any](fn func(T) T) SlotOption[T] {
	return func(s *Slot[T]) { s.clone = fn }
}

// NewSlot builds a slot that seeds itself from seed the first time it is read.
func NewSlot[T any](backend kv.Backend, key string, seed func() T, logger *zap.Logger, opts ...SlotOption[T]) *Slot[T] {
	s := &Slot[T]{
		key:           key,
		backend:       backend,
		seed:          seed,
		clone:         jsonClone[T],
		logger:        logger.With(zap.String("slot", key)),
		writeBackSeed: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the durable slot name.
func (s *Slot[T]) Key() string { return s.key }

// Get returns a copy of the current value, loading it on first use.
func (s *Slot[T]) Get(ctx context.Context) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.clone(s.value)
}

// Save replaces the value and mirrors it durably.
func (s *Slot[T]) Save(ctx context.Context, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.value = s.clone(v)
	s.persist(ctx)
}

// Update applies fn to a copy of the current value under the slot lock. If fn succeeds the
// result becomes the new value and the whole value is rewritten durably; otherwise nothing changes.
func (s *Slot[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	next, err := fn(s.clone(s.value))
	if err != nil {
		var zero T
		return zero, err
	}
	// fn may return slices that alias memory the caller keeps using.
	s.value = s.clone(next)
	s.persist(ctx)
	return s.clone(s.value), nil
}

// Reload drops the in-memory copy so the next read comes from durable storage.
func (s *Slot[T]) Reload() {
	s.mu.Lock()
	s.loaded = false
	var zero T
	s.value = zero
	s.mu.Unlock()
}

func (s *Slot[T]) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := s.backend.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.value = s.seed()
		if s.writeBackSeed {
			s.persist(ctx)
		}
		return
	case err != nil:
		// Leave the durable copy alone: it may be fine once the backend recovers.
		s.logger.Error("Failed to read slot, using seeded default", zap.Error(err))
		s.value = s.seed()
		return
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Error("Corrupt slot data, falling back to seeded default", zap.Error(err))
		s.value = s.seed()
		if s.writeBackSeed {
			s.persist(ctx)
		}
		return
	}
	s.value = v
}

func (s *Slot[T]) persist(ctx context.Context) {
	raw, err := json.Marshal(s.value)
	if err != nil {
		s.logger.Error("Failed to encode slot", zap.Error(err))
		return
	}
	// The write outlives the request that triggered it.
	if err := s.backend.Set(context.WithoutCancel(ctx), s.key, raw); err != nil {
		if errors.Is(err, kv.ErrQuotaExceeded) {
			s.logger.Warn("Storage full, keeping slot in memory only", zap.Error(err))
			return
		}
		s.logger.Error("Failed to persist slot", zap.Error(err))
	}
}

func jsonClone[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
