package cache

import (
	"sync"
	"time"
)

// QueryEntry is a settled client tier result.
type QueryEntry struct {
	Key       Key       `json:"key"`
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QueryCache is the client tier. It does not expire entries on its own:
// staleness is bounded when a snapshot is restored, and the coordinator
// decides when a "both" entry needs revalidating.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]QueryEntry
	now     func() time.Time
}

func newQueryCache(now func() time.Time) *QueryCache {
	return &QueryCache{
		entries: make(map[string]QueryEntry),
		now:     now,
	}
}

func (q *QueryCache) Get(key Key) (QueryEntry, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	e, ok := q.entries[key.String()]
	return e, ok
}

func (q *QueryCache) Set(key Key, data []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key.String()] = QueryEntry{Key: key, Data: data, UpdatedAt: q.now()}
}

// Remove drops every entry carrying one of tags.
func (q *QueryCache) Remove(tags []string) int {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for id, e := range q.entries {
		for _, t := range e.Key.Tags() {
			if want[t] {
				delete(q.entries, id)
				n++
				break
			}
		}
	}
	return n
}

// Snapshot returns the entries accepted by keep.
func (q *QueryCache) Snapshot(keep func(Key) bool) []QueryEntry {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([]QueryEntry, 0, len(q.entries))
	for _, e := range q.entries {
		if keep == nil || keep(e.Key) {
			out = append(out, e)
		}
	}
	return out
}

// Restore loads a snapshot's entries, keeping newer local ones.
func (q *QueryCache) Restore(entries []QueryEntry) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, e := range entries {
		id := e.Key.String()
		if cur, ok := q.entries[id]; ok && cur.UpdatedAt.After(e.UpdatedAt) {
			continue
		}
		q.entries[id] = e
		n++
	}
	return n
}

func (q *QueryCache) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}
