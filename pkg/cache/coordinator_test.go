package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func constant(value string, calls *atomic.Int32) FetchFunc {
	return func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte(value), nil
	}
}

func TestQueryDeduplicatesConcurrentFetches(t *testing.T) {
	c := New(Options{})

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte(`{"id":25}`), nil
	}

	const callers = 10
	var started, done sync.WaitGroup
	results := make([][]byte, callers)
	for i := range callers {
		started.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			started.Done()
			data, err := c.Query(context.Background(), NewKey("pokemon", 25), fetch)
			assert.NoError(t, err)
			results[i] = data
		}()
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.JSONEq(t, `{"id":25}`, string(r))
	}
}

func TestQueryRoutesByStrategy(t *testing.T) {
	memo := NewMemoryMemo()
	c := New(Options{Memo: memo})
	ctx := context.Background()
	var calls atomic.Int32

	_, err := c.Query(ctx, NewKey("generation", 1), constant(`"gen1"`, &calls))
	require.NoError(t, err)
	_, ok := c.query.Get(NewKey("generation", 1))
	assert.False(t, ok, "server-only entries stay out of the client tier")

	_, err = c.Query(ctx, NewKey("pokemon-encounters", 25), constant(`[]`, &calls))
	require.NoError(t, err)
	_, ok, _ = memo.Get(ctx, NewKey("pokemon-encounters", 25).String())
	assert.False(t, ok, "client-only entries stay out of the server tier")

	_, err = c.Query(ctx, NewKey("pokemon", 25), constant(`{}`, &calls))
	require.NoError(t, err)
	_, ok, _ = memo.Get(ctx, NewKey("pokemon", 25).String())
	assert.True(t, ok)
	_, ok = c.query.Get(NewKey("pokemon", 25))
	assert.True(t, ok)

	for _, key := range []Key{NewKey("generation", 1), NewKey("pokemon-encounters", 25), NewKey("pokemon", 25)} {
		_, err := c.Query(ctx, key, constant(`"again"`, &calls))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestQueryDoesNotCacheFailures(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := c.Query(ctx, NewKey("move", 1), func(context.Context) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	var calls atomic.Int32
	data, err := c.Query(ctx, NewKey("move", 1), constant(`{"id":1}`, &calls))
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(data))
	assert.Equal(t, int32(1), calls.Load())
}

func TestServerTierExpires(t *testing.T) {
	memo := NewMemoryMemo()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	memo.now = func() time.Time { return now }
	c := New(Options{Memo: memo})
	ctx := context.Background()
	var calls atomic.Int32

	_, err := c.Query(ctx, NewKey("generation", 1), constant(`1`, &calls))
	require.NoError(t, err)

	now = now.Add(23 * time.Hour)
	_, err = c.Query(ctx, NewKey("generation", 1), constant(`1`, &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Hour)
	n, err := memo.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, memo.Len())
}

func TestPersistRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	var calls atomic.Int32

	first := New(Options{Persister: store, Buster: "v1"})
	for _, key := range []Key{
		NewKey("pokemon", 25),
		NewKey("pokemon-encounters", 25),
		NewKey("generation", 1),
		NewKey("berry", 1),
	} {
		_, err := first.Query(ctx, key, constant(`{"ok":true}`, &calls))
		require.NoError(t, err)
	}

	blob, err := store.Load(ctx, PersistKey)
	require.NoError(t, err)
	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(blob, &snapshot))
	assert.Equal(t, "v1", snapshot.Buster)

	var keys []string
	for _, e := range snapshot.Entries {
		keys = append(keys, e.Key.String())
	}
	assert.ElementsMatch(t, []string{`["pokemon",25]`, `["pokemon-encounters",25]`}, keys)

	second := New(Options{Persister: store, Buster: "v1"})
	assert.Equal(t, 2, second.Restore(ctx))

	data, err := second.Query(ctx, NewKey("pokemon", 25), func(context.Context) ([]byte, error) {
		t.Fatal("restored entry should be served without fetching")
		return nil, nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestRestoreDiscardsMismatchedOrStaleSnapshots(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	var calls atomic.Int32

	writer := New(Options{Persister: store, Buster: "v1"})
	_, err := writer.Query(ctx, NewKey("pokemon", 25), constant(`{}`, &calls))
	require.NoError(t, err)

	assert.Equal(t, 0, New(Options{Persister: store, Buster: "v2"}).Restore(ctx))

	later := New(Options{Persister: store, Buster: "v1", MaxAge: time.Hour})
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 0, later.Restore(ctx))

	assert.Equal(t, 0, New(Options{Persister: openStore(t)}).Restore(ctx))
}

type brokenPersister struct{}

func (brokenPersister) Save(context.Context, string, []byte) error { return errors.New("disk full") }
func (brokenPersister) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func TestPersistenceErrorsAreSwallowed(t *testing.T) {
	c := New(Options{Persister: brokenPersister{}})
	ctx := context.Background()
	var calls atomic.Int32

	data, err := c.Query(ctx, NewKey("pokemon", 25), constant(`{}`, &calls))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
	assert.Equal(t, 0, c.Restore(ctx))
}

func TestInvalidate(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls atomic.Int32

	for _, key := range []Key{NewKey("pokemon", 25), NewKey("pokemon", 26), NewKey("move", 85)} {
		_, err := c.Query(ctx, key, constant(`{}`, &calls))
		require.NoError(t, err)
	}

	res, err := c.Invalidate(ctx, []string{"pokemon-25"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Entries, "one server and one client entry")

	_, err = c.Query(ctx, NewKey("pokemon", 25), constant(`{}`, &calls))
	require.NoError(t, err)
	_, err = c.Query(ctx, NewKey("pokemon", 26), constant(`{}`, &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())

	res, err = c.Invalidate(ctx, []string{"move"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Entries)
}

func TestInvalidatePurgesTaggedPages(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	c.pages.put("/api/pokemon/pikachu|", Page{Status: 200, Tags: []string{"pokemon", "pokemon-25"}}, time.Hour)
	c.pages.put("/api/pokemon/26|", Page{Status: 200, Tags: []string{"pokemon", "pokemon-26"}}, time.Hour)

	res, err := c.Invalidate(ctx, []string{"pokemon-25"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	_, ok := c.pages.get("/api/pokemon/26|")
	assert.True(t, ok)
}

func TestBothStrategyRevalidates(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(Options{Clock: func() time.Time { return now }})
	ctx := context.Background()
	var calls atomic.Int32

	_, err := c.Query(ctx, NewKey("pokemon", 25), constant(`{"v":1}`, &calls))
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	data, err := c.Query(ctx, NewKey("pokemon", 25), constant(`{"v":2}`, &calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(data))
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Hour)
	data, err = c.Query(ctx, NewKey("pokemon", 25), constant(`{"v":2}`, &calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(data), "past the revalidate lifetime the entry is refetched")
	assert.Equal(t, int32(2), calls.Load())

	_, err = c.Query(ctx, NewKey("pokemon-encounters", 25), constant(`[]`, &calls))
	require.NoError(t, err)
	now = now.Add(10 * 24 * time.Hour)
	_, err = c.Query(ctx, NewKey("pokemon-encounters", 25), constant(`[]`, &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load(), "client-only entries are not aged out on read")
}

func TestRestoreKeepsWholeSnapshot(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	var calls atomic.Int32
	written := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	writer := New(Options{Persister: store, Clock: func() time.Time { return written }})
	for _, key := range []Key{NewKey("search", "scarlet-violet", "en"), NewKey("pokemon", 25)} {
		_, err := writer.Query(ctx, key, constant(`{}`, &calls))
		require.NoError(t, err)
	}

	// older than the search namespace's own max age, within the store's
	later := New(Options{Persister: store, Clock: func() time.Time { return written.Add(36 * time.Hour) }})
	assert.Equal(t, 2, later.Restore(ctx))
	_, err := later.Query(ctx, NewKey("search", "scarlet-violet", "en"), constant(`{}`, &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	expired := New(Options{Persister: store, Clock: func() time.Time { return written.Add(8 * 24 * time.Hour) }})
	assert.Zero(t, expired.Restore(ctx))
}

func TestStartSweeper(t *testing.T) {
	c := New(Options{})

	stop, err := c.StartSweeper("@every 1h")
	require.NoError(t, err)
	stop()

	_, err = c.StartSweeper("not a schedule")
	assert.Error(t, err)
}
