package cache

import (
	"fmt"
	"time"
)

// DefaultMaxAge bounds the age of a restorable client tier snapshot.
const DefaultMaxAge = 7 * 24 * time.Hour

// Meta is the caching policy of one namespace. Revalidate is the server
// tier lifetime. MaxAge is the retention a client namespace asks for; it is
// advisory, the persisted snapshot is bounded as a whole.
type Meta struct {
	Strategy   Strategy      `json:"strategy"`
	Persist    bool          `json:"persist"`
	Revalidate time.Duration `json:"revalidate,omitempty"`
	MaxAge     time.Duration `json:"max_age,omitempty"`
}

const (
	hour  = time.Hour
	day   = 24 * time.Hour
	month = 30 * day
)

var entityMeta = Meta{Strategy: StrategyBoth, Persist: true, Revalidate: hour}

var policies = map[string]Meta{
	"pokemon":         entityMeta,
	"pokemon-species": entityMeta,
	"move":            entityMeta,
	"ability":         entityMeta,
	"item":            entityMeta,

	"type": {Strategy: StrategyBoth, Persist: true, Revalidate: day},

	"generation":    {Strategy: StrategyServer, Revalidate: day},
	"version-group": {Strategy: StrategyServer, Revalidate: day},
	"version":       {Strategy: StrategyServer, Revalidate: day},

	"pokemon-encounters": {Strategy: StrategyClient, Persist: true, MaxAge: month},
	"search":             {Strategy: StrategyClient, Persist: true, MaxAge: day},

	"proxy": {Strategy: StrategyServer, Revalidate: hour},
}

var defaultMeta = Meta{Strategy: StrategyBoth}

// GetCacheMeta looks up the policy of a key's namespace. It is a pure
// function of key[0].
func GetCacheMeta(key Key) Meta {
	if m, ok := policies[key.Namespace()]; ok {
		return m
	}
	return defaultMeta
}

func ShouldPersist(key Key) bool {
	return GetCacheMeta(key).Persist
}

// CacheControl renders the server tier lifetime as a response directive.
func (m Meta) CacheControl() string {
	if m.Revalidate <= 0 {
		return "no-cache"
	}
	secs := int(m.Revalidate / time.Second)
	return fmt.Sprintf("public, max-age=0, s-maxage=%d, stale-while-revalidate=%d", secs, secs)
}
