package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
)

// FetchFunc produces a value on a miss in every tier.
type FetchFunc func(ctx context.Context) ([]byte, error)

type Options struct {
	// Memo defaults to an in-process MemoryMemo.
	Memo Memo
	// Persister is optional; without it the client tier lives in memory
	// only.
	Persister Persister
	// Buster invalidates every persisted snapshot written under another
	// value.
	Buster string
	// MaxAge bounds the age of a restorable snapshot.
	MaxAge time.Duration
	Logger *slog.Logger
	// Clock defaults to time.Now. Every tier created by New shares it.
	Clock func() time.Time
}

// Coordinator routes reads through the server tier, the client tier and
// the fetch function according to each key's Meta. Concurrent reads of one
// key share a single fetch.
type Coordinator struct {
	memo      Memo
	query     *QueryCache
	pages     *PageCache
	persister Persister
	buster    string
	maxAge    time.Duration
	logger    *slog.Logger

	group     singleflight.Group
	persistMu sync.Mutex
	now       func() time.Time
}

func New(opts Options) *Coordinator {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	if opts.Memo == nil {
		memo := NewMemoryMemo()
		memo.now = now
		opts.Memo = memo
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Coordinator{
		memo:      opts.Memo,
		query:     newQueryCache(now),
		pages:     newPageCache(now),
		persister: opts.Persister,
		buster:    opts.Buster,
		maxAge:    opts.MaxAge,
		logger:    opts.Logger,
		now:       now,
	}
}

func (c *Coordinator) Pages() *PageCache {
	return c.pages
}

func (c *Coordinator) Query(ctx context.Context, key Key, fetch FetchFunc) ([]byte, error) {
	meta := GetCacheMeta(key)
	if data, ok := c.lookup(ctx, key, meta); ok {
		return data, nil
	}

	ch := c.group.DoChan(key.String(), func() (any, error) {
		if data, ok := c.lookup(ctx, key, meta); ok {
			return data, nil
		}

		// the fetch outlives any single waiter
		fetchCtx := context.WithoutCancel(ctx)
		data, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.settle(fetchCtx, key, meta, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// lookup serves a key from the cheapest tier that holds it. A "both" key
// stays in the client tier for its Revalidate lifetime only; after that the
// server tier or a fetch has to confirm it.
func (c *Coordinator) lookup(ctx context.Context, key Key, meta Meta) ([]byte, bool) {
	if meta.Strategy.client() {
		e, ok := c.query.Get(key)
		if ok && (meta.Strategy != StrategyBoth || meta.Revalidate <= 0 || c.now().Sub(e.UpdatedAt) < meta.Revalidate) {
			return e.Data, true
		}
	}
	if meta.Strategy.server() {
		data, ok, err := c.memo.Get(ctx, key.String())
		if err != nil {
			c.logger.Warn("server cache read failed", "key", key.String(), "error", err)
			return nil, false
		}
		if ok {
			if meta.Strategy.client() {
				c.query.Set(key, data)
			}
			return data, true
		}
	}
	return nil, false
}

func (c *Coordinator) settle(ctx context.Context, key Key, meta Meta, data []byte) {
	if meta.Strategy.server() {
		err := c.memo.Set(ctx, key.String(), data, meta.Revalidate, key.Tags())
		if err != nil {
			c.logger.Warn("server cache write failed", "key", key.String(), "error", err)
		}
	}
	if meta.Strategy.client() {
		c.query.Set(key, data)
		if meta.Persist {
			c.persist(ctx)
		}
	}
}

// persist writes the whole persistable client tier as one blob. Snapshots
// are taken and written under one lock so the last settle wins.
func (c *Coordinator) persist(ctx context.Context) {
	if c.persister == nil {
		return
	}

	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	blob, err := encodeSnapshot(Snapshot{
		Buster:    c.buster,
		Timestamp: c.now(),
		Entries:   c.query.Snapshot(ShouldPersist),
	})
	if err != nil {
		c.logger.Warn("could not encode cache snapshot", "error", err)
		return
	}
	if err := c.persister.Save(ctx, PersistKey, blob); err != nil {
		c.logger.Warn("could not persist cache snapshot", "error", err)
	}
}

// Restore seeds the client tier from the durable tier. A missing, stale or
// unreadable snapshot is a silent miss.
func (c *Coordinator) Restore(ctx context.Context) int {
	if c.persister == nil {
		return 0
	}

	blob, err := c.persister.Load(ctx, PersistKey)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			c.logger.Warn("could not restore cache snapshot", "error", err)
		}
		return 0
	}

	snapshot, ok := decodeSnapshot(blob, c.buster, c.maxAge, c.now())
	if !ok {
		c.logger.Info("discarding persisted cache snapshot")
		return 0
	}

	entries := make([]QueryEntry, 0, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		if ShouldPersist(e.Key) {
			entries = append(entries, e)
		}
	}
	n := c.query.Restore(entries)
	c.logger.Info("restored cache snapshot", "entries", n)
	return n
}

type InvalidationResult struct {
	Entries int `json:"entries"`
	Pages   int `json:"pages"`
}

// Invalidate purges every entry and rendered page carrying one of tags,
// and every page stored under one of paths.
func (c *Coordinator) Invalidate(ctx context.Context, tags []string, paths []string) (InvalidationResult, error) {
	var res InvalidationResult

	if len(tags) > 0 {
		n, err := c.memo.InvalidateTags(ctx, tags)
		if err != nil {
			return res, fmt.Errorf("error while invalidating tags: %w", err)
		}
		res.Entries = n + c.query.Remove(tags)
		c.persist(ctx)
	}
	res.Pages = c.pages.PurgeTags(tags) + c.pages.Purge(paths)

	c.logger.Info("cache invalidated", "tags", tags, "paths", paths, "entries", res.Entries, "pages", res.Pages)
	return res, nil
}

// Sweep drops expired server tier entries and pages.
func (c *Coordinator) Sweep(ctx context.Context) {
	n, err := c.memo.Sweep(ctx)
	if err != nil {
		c.logger.Warn("server cache sweep failed", "error", err)
	}
	p := c.pages.Sweep()
	c.logger.Debug("cache swept", "entries", n, "pages", p)
}

// StartSweeper runs Sweep on a cron schedule until the returned stop
// function is called.
func (c *Coordinator) StartSweeper(schedule string) (func(), error) {
	sched := cron.New()
	_, err := sched.AddFunc(schedule, func() {
		c.Sweep(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	sched.Start()

	return func() {
		<-sched.Stop().Done()
	}, nil
}
