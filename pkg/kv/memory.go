package kv

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

type memItem[V any] struct {
	value     V
	expiresAt time.Time
}

func (it memItem[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !now.Before(it.expiresAt)
}

// Memory is an in-process Store. Expired keys are dropped lazily on access
// and by an optional background sweep.
type Memory[V any] struct {
	mu     sync.RWMutex
	items  map[string]memItem[V]
	now    func() time.Time
	done   chan struct{}
	closed bool
}

// MemoryOption configures a Memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	sweepInterval time.Duration
	now           func() time.Time
}

// WithSweepInterval starts a background goroutine removing expired keys.
// Zero (default) disables it.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.sweepInterval = d }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := &memoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items: make(map[string]memItem[V]),
		now:   o.now,
		done:  make(chan struct{}),
	}
	if o.sweepInterval > 0 {
		go m.sweep(o.sweepInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.RLock()
	it, ok := m.items[key]
	closed := m.closed
	m.mu.RUnlock()

	switch {
	case closed:
		return zero, ErrClosed
	case !ok:
		return zero, ErrNotFound
	case it.expired(m.now()):
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.expired(m.now()) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return zero, ErrNotFound
	}
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	it := memItem[V]{value: value}
	if ttl > 0 {
		it.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = it
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

func (m *Memory[V]) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	now := m.now()
	keys := make([]string, 0, len(m.items))
	for k, it := range m.items {
		if !it.expired(now) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Close stops the sweeper and drops all keys. It is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	clear(m.items)
	return nil
}

func (m *Memory[V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			now := m.now()
			maps.DeleteFunc(m.items, func(_ string, it memItem[V]) bool {
				return it.expired(now)
			})
			m.mu.Unlock()
		}
	}
}

var _ Store[any] = (*Memory[any])(nil)
