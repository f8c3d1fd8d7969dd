package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is a cached value with its expiry.
type Entry[T any] struct {
	Value     T
	ExpiresAt time.Time
}

// IsExpired reports whether the entry is stale at now.
func (e Entry[T]) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Slot holds a single cached value. An expired value is recomputed by the
// caller that finds it stale while the slot's lock is held, so concurrent
// callers wait for the fresh value instead of seeing the old one.
type Slot[T any] struct {
	TTL time.Duration
	Now func() time.Time

	mu    sync.Mutex
	entry *Entry[T]
}

func (s *Slot[T]) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get returns the cached value, refreshing it first when missing or expired.
// A failed refresh leaves the slot untouched and returns the error.
func (s *Slot[T]) Get(ctx context.Context, refresh func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry != nil && !s.entry.IsExpired(s.now()) {
		return s.entry.Value, nil
	}
	v, err := refresh(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.entry = &Entry[T]{Value: v, ExpiresAt: s.now().Add(s.TTL)}
	return v, nil
}

// Invalidate drops the cached value.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()
}

// Views keeps one Slot per view key.
type Views[K comparable, T any] struct {
	TTL time.Duration
	Now func() time.Time

	mu    sync.Mutex
	slots map[K]*Slot[T]
}

// Slot returns the slot for key, creating it on first use.
func (v *Views[K, T]) Slot(key K) *Slot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.slots == nil {
		v.slots = make(map[K]*Slot[T])
	}
	s, ok := v.slots[key]
	if !ok {
		s = &Slot[T]{TTL: v.TTL, Now: v.Now}
		v.slots[key] = s
	}
	return s
}

// Get is shorthand for v.Slot(key).Get(ctx, refresh).
func (v *Views[K, T]) Get(ctx context.Context, key K, refresh func(context.Context) (T, error)) (T, error) {
	return v.Slot(key).Get(ctx, refresh)
}
