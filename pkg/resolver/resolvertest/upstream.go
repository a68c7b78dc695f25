// Package resolvertest provides a canned upstream API and a ready Resolver
// for tests.
package resolvertest

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/reftable/reftabletest"
	"github.com/notjagan/pokeguide/pkg/resolver"
)

//go:embed testdata/*.json
var payloads embed.FS

// fixtures maps API paths to embedded payload files.
var fixtures = map[string]string{
	"pokemon/25":            "testdata/pokemon-25.json",
	"pokemon/25/encounters": "testdata/encounters-25.json",
	"move/85":               "testdata/move-85.json",
	"ability/9":             "testdata/ability-9.json",
	"item/213":              "testdata/item-213.json",
	"item/9999":             "testdata/item-9999.json",
}

// Upstream serves the embedded payloads and records every request.
type Upstream struct {
	mu    sync.Mutex
	calls map[string]int
	fail  error
}

func NewUpstream() *Upstream {
	return &Upstream{calls: make(map[string]int)}
}

func (u *Upstream) GetRaw(_ context.Context, path string) ([]byte, error) {
	u.mu.Lock()
	u.calls[path]++
	fail := u.fail
	u.mu.Unlock()

	if fail != nil {
		return nil, fail
	}
	file, ok := fixtures[strings.Trim(path, "/")]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, path)
	}
	return payloads.ReadFile(file)
}

// Fail makes every following request return err; nil restores service.
func (u *Upstream) Fail(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.fail = err
}

func (u *Upstream) Calls(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[path]
}

// New returns a Resolver over the fixture tables and a fresh Upstream.
func New(t testing.TB) (*resolver.Resolver, *Upstream) {
	t.Helper()
	return NewWithCache(t, cache.New(cache.Options{}))
}

// NewWithCache is New reading through a caller owned coordinator.
func NewWithCache(t testing.TB, coordinator *cache.Coordinator) (*resolver.Resolver, *Upstream) {
	t.Helper()
	upstream := NewUpstream()
	return resolver.New(reftabletest.Tables(t), coordinator, upstream, nil), upstream
}
