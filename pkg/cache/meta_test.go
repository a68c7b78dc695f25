package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCacheMeta(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want Meta
	}{
		{"pokemon", NewKey("pokemon", 25), Meta{Strategy: StrategyBoth, Persist: true, Revalidate: time.Hour}},
		{"move", NewKey("move", "thunderbolt"), Meta{Strategy: StrategyBoth, Persist: true, Revalidate: time.Hour}},
		{"type", NewKey("type", 10), Meta{Strategy: StrategyBoth, Persist: true, Revalidate: 24 * time.Hour}},
		{"generation", NewKey("generation", 1), Meta{Strategy: StrategyServer, Revalidate: 24 * time.Hour}},
		{"encounters", NewKey("pokemon-encounters", 25), Meta{Strategy: StrategyClient, Persist: true, MaxAge: 2592000 * time.Second}},
		{"search", NewKey("search", "9//", "ko"), Meta{Strategy: StrategyClient, Persist: true, MaxAge: 86400 * time.Second}},
		{"proxy", NewKey("proxy", "/pokemon"), Meta{Strategy: StrategyServer, Revalidate: time.Hour}},
		{"unknown", NewKey("berry", 1), Meta{Strategy: StrategyBoth}},
		{"empty", Key{}, Meta{Strategy: StrategyBoth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCacheMeta(tt.key))
			assert.Equal(t, tt.want.Persist, ShouldPersist(tt.key))
		})
	}
}

func TestGetCacheMetaDependsOnNamespaceOnly(t *testing.T) {
	assert.Equal(t, GetCacheMeta(NewKey("pokemon", 1)), GetCacheMeta(NewKey("pokemon", "pikachu", "extra")))
}

func TestKey(t *testing.T) {
	k := NewKey("pokemon", 25)
	assert.Equal(t, `["pokemon",25]`, k.String())
	assert.Equal(t, []string{"pokemon", "pokemon-25"}, k.Tags())
	assert.Len(t, k.Hash(), 64)

	assert.Equal(t, []string{"search"}, NewKey("search").Tags())
	assert.Nil(t, Key{}.Tags())
}

func TestCacheControl(t *testing.T) {
	assert.Equal(t, "public, max-age=0, s-maxage=3600, stale-while-revalidate=3600", GetCacheMeta(NewKey("pokemon")).CacheControl())
	assert.Equal(t, "no-cache", GetCacheMeta(NewKey("search")).CacheControl())
}
