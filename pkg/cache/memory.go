package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time // zero = never
}

// Memory is an in-process LRU store with lazy TTL expiry.
// Expired entries are dropped when read or when space is needed.
type Memory[V any] struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List // front = most recently used
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
	closed     bool
}

// MemoryOption configures a Memory store.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
}

// WithDefaultTTL sets the TTL used when Set receives zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.defaultTTL = d
	}
}

// WithMaxEntries bounds the store size; the least recently used entry is
// evicted when full. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) {
		c.maxEntries = max(n, 0)
	}
}

// WithNow replaces the clock, for tests.
func WithNow(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemory creates an in-memory store.
//
//	drafts := cache.NewMemory[string](cache.WithMaxEntries(10_000))
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := &memoryConfig{defaultTTL: time.Hour, now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Memory[V]{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		defaultTTL: cfg.defaultTTL,
		maxEntries: cfg.maxEntries,
		now:        cfg.now,
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := elem.Value.(*memoryEntry[V])
	if m.expired(e) {
		m.remove(elem)
		return zero, ErrNotFound
	}

	m.order.MoveToFront(elem)
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	var expiresAt time.Time
	if d := resolveTTL(ttl, m.defaultTTL); d > 0 {
		expiresAt = m.now().Add(d)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memoryEntry[V])
		e.value = value
		e.expiresAt = expiresAt
		m.order.MoveToFront(elem)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		m.makeRoom()
	}

	m.items[key] = m.order.PushFront(&memoryEntry[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for _, key := range keys {
		if elem, ok := m.items[key]; ok {
			m.remove(elem)
		}
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// dropped.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close drops all entries. Further calls return ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = make(map[string]*list.Element)
	m.order.Init()
	return nil
}

func (m *Memory[V]) expired(e *memoryEntry[V]) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

// makeRoom drops expired entries, then the least recently used one if the
// store is still full. Caller holds the mutex.
func (m *Memory[V]) makeRoom() {
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		if m.expired(elem.Value.(*memoryEntry[V])) {
			m.remove(elem)
		}
		elem = prev
	}
	if len(m.items) >= m.maxEntries {
		if oldest := m.order.Back(); oldest != nil {
			m.remove(oldest)
		}
	}
}

func (m *Memory[V]) remove(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry[V]).key)
}

var _ Cache[string] = (*Memory[string])(nil)
