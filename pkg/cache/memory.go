package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	expiresAt time.Time // zero: never
	value     V
	key       string
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Memory is an in-memory LRU cache with per-entry TTL.
// The front of the recency list holds the most recently used entry.
type Memory[V any] struct {
	index   map[string]*list.Element
	order   *list.List
	opts    *memoryOptions
	onEvict func(key string, value V)
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates an in-memory cache.
//
//	templates := cache.NewMemory[*template.Template](
//	    cache.WithDefaultTTL(-1),
//	    cache.WithMaxEntries(512),
//	)
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		index: make(map[string]*list.Element),
		order: list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.sweepLoop()
	}
	return m
}

// SetEvictCallback registers fn to be called for every entry that leaves
// the cache: LRU eviction, expiry, Delete and Clear.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get returns the value for key and marks it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.order.MoveToFront(el)
	return it.value, nil
}

// Set stores value under key.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expiresAt = value, expiresAt
		m.order.MoveToFront(el)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.index) >= m.opts.maxEntries {
		if last := m.order.Back(); last != nil {
			m.remove(last)
		}
	}
	m.index[key] = m.order.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.index[key]; ok {
		m.remove(el)
	}
	return nil
}

// Has reports whether key is present and not expired.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.index[key]
	if !ok {
		return false, nil
	}
	if el.Value.(*item[V]).expired(time.Now()) {
		m.remove(el)
		return false, nil
	}
	return true, nil
}

// Len returns the number of stored entries, expired ones included until swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

// Clear removes all entries.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.onEvict != nil {
		for el := m.order.Front(); el != nil; el = el.Next() {
			it := el.Value.(*item[V])
			m.onEvict(it.key, it.value)
		}
	}
	clear(m.index)
	m.order.Init()
	return nil
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) sweepLoop() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

func (m *Memory[V]) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for el := m.order.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*item[V]).expired(now) {
			m.remove(el)
		}
		el = prev
	}
}

// remove must be called with mu held.
func (m *Memory[V]) remove(el *list.Element) {
	m.order.Remove(el)
	it := el.Value.(*item[V])
	delete(m.index, it.key)
	if m.onEvict != nil {
		m.onEvict(it.key, it.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
