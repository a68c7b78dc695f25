package cache

import (
	"context"
	"sync"
	"time"
)

// Memo is the server tier: a TTL store whose entries can be purged by tag.
type Memo interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error
	InvalidateTags(ctx context.Context, tags []string) (int, error)
	// Sweep drops expired entries and reports how many went.
	Sweep(ctx context.Context) (int, error)
}

type memoEntry struct {
	value   []byte
	expires time.Time
	tags    []string
}

func (e memoEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryMemo is the in-process Memo.
type MemoryMemo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
	tags    map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemoryMemo() *MemoryMemo {
	return &MemoryMemo{
		entries: make(map[string]memoEntry),
		tags:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (m *MemoryMemo) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		m.remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemoryMemo) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(key)

	e := memoEntry{value: value, tags: tags}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	for _, tag := range tags {
		if m.tags[tag] == nil {
			m.tags[tag] = make(map[string]struct{})
		}
		m.tags[tag][key] = struct{}{}
	}
	return nil
}

// remove must be called with mu held.
func (m *MemoryMemo) remove(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, tag := range e.tags {
		delete(m.tags[tag], key)
		if len(m.tags[tag]) == 0 {
			delete(m.tags, tag)
		}
	}
}

func (m *MemoryMemo) InvalidateTags(_ context.Context, tags []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, tag := range tags {
		for key := range m.tags[tag] {
			m.remove(key)
			n++
		}
	}
	return n, nil
}

func (m *MemoryMemo) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for key, e := range m.entries {
		if e.expired(now) {
			m.remove(key)
			n++
		}
	}
	return n, nil
}

func (m *MemoryMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
