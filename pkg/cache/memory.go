package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	key      string
	value    V
	deadline time.Time // zero: no expiry
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.deadline.IsZero() && now.After(it.deadline)
}

// Memory is a process-local cache. Reads and writes move an entry to the
// front of the recency list; with WithMaxEntries the back is evicted,
// or, with WithRejectWhenFull, new keys are refused with ErrFull.
type Memory[V any] struct {
	mu     sync.Mutex
	index  map[string]*list.Element
	recent *list.List
	opts   *memoryOptions
	stop   chan struct{}
	closed bool
}

// NewMemory creates a memory cache and starts its janitor unless the
// cleanup interval is zero. Call Close to stop the janitor.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		index:  make(map[string]*list.Element),
		recent: list.New(),
		opts:   o,
		stop:   make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.sweepEvery(o.cleanupInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return zero, ErrClosed
	}

	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(time.Now()) {
		m.drop(el)
		return zero, ErrNotFound
	}

	m.recent.MoveToFront(el)
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.deadline = value, deadline
		m.recent.MoveToFront(el)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.index) >= m.opts.maxEntries {
		if m.opts.rejectWhenFull {
			m.sweepLocked(time.Now())
			if len(m.index) >= m.opts.maxEntries {
				return ErrFull
			}
		} else if last := m.recent.Back(); last != nil {
			m.drop(last)
		}
	}
	m.index[key] = m.recent.PushFront(&item[V]{key: key, value: value, deadline: deadline})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.index[key]; ok {
		m.drop(el)
	}
	return nil
}

// Len counts stored entries, including expired ones not yet swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

// Close stops the janitor. Later calls return ErrClosed; Close itself is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweepEvery(d time.Duration) {
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-t.C:
			m.sweep(now)
		}
	}
}

func (m *Memory[V]) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(now)
}

// sweepLocked requires m.mu.
func (m *Memory[V]) sweepLocked(now time.Time) {
	for el := m.recent.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*item[V]).expired(now) {
			m.drop(el)
		}
		el = next
	}
}

// drop requires m.mu.
func (m *Memory[V]) drop(el *list.Element) {
	m.recent.Remove(el)
	delete(m.index, el.Value.(*item[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
