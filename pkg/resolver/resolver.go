package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
	"github.com/notjagan/pokeguide/pkg/reftable"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

// Upstream fetches raw resource bodies by API path.
type Upstream interface {
	GetRaw(ctx context.Context, path string) ([]byte, error)
}

// Resolver turns entity references into version-aware views. It only
// exists once the reference tables are loaded, and it never caches on its
// own: every upstream read goes through the coordinator.
type Resolver struct {
	tables   *reftable.Tables
	cache    *cache.Coordinator
	upstream Upstream
	logger   *slog.Logger
}

func New(tables *reftable.Tables, coordinator *cache.Coordinator, upstream Upstream, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		tables:   tables,
		cache:    coordinator,
		upstream: upstream,
		logger:   logger,
	}
}

func (r *Resolver) Tables() *reftable.Tables {
	return r.tables
}

// Normalize fills the coarser levels of a version context.
func (r *Resolver) Normalize(vc model.VersionContext) model.VersionContext {
	return r.tables.Normalize(vc)
}

// TypeChartFor selects the chart of the context's generation.
func (r *Resolver) TypeChartFor(vc model.VersionContext) *typechart.Chart {
	return typechart.ChartForGeneration(r.tables.Normalize(vc).Generation)
}

func (r *Resolver) Resolve(ctx context.Context, kind model.Kind, ref model.Ref, vc model.VersionContext, lang model.LocalizationCode) (Resolved, error) {
	switch kind {
	case model.KindPokemon:
		return r.Pokemon(ctx, ref, vc, lang)
	case model.KindMove:
		return r.Move(ctx, ref, vc, lang)
	case model.KindAbility:
		return r.Ability(ctx, ref, vc, lang)
	case model.KindItem:
		return r.Item(ctx, ref, vc, lang)
	default:
		return nil, fmt.Errorf("unknown kind %s: %w", kind, model.ErrNotFound)
	}
}

// fetch reads one upstream resource through the cache under key.
func fetch[T any](ctx context.Context, r *Resolver, key cache.Key, path string) (*T, error) {
	raw, err := r.cache.Query(ctx, key, func(ctx context.Context) ([]byte, error) {
		return r.upstream.GetRaw(ctx, path)
	})
	if err != nil {
		return nil, fmt.Errorf("error while fetching %s: %w", path, err)
	}
	return pokeapi.Decode[T](raw)
}

func fetchEntity[T any](ctx context.Context, r *Resolver, e reftable.Entry) (*T, error) {
	ns := e.Kind.String()
	return fetch[T](ctx, r, cache.NewKey(ns, e.ID), pokeapi.ResourcePath(ns, e.ID))
}

// entry resolves a reference and rejects entities introduced after the
// context's generation.
func (r *Resolver) entry(kind model.Kind, ref model.Ref, vc model.VersionContext) (reftable.Entry, error) {
	e, err := r.tables.Resolve(kind, ref)
	if err != nil {
		return reftable.Entry{}, err
	}
	if e.GenerationID > vc.Generation {
		return reftable.Entry{}, fmt.Errorf("%s %q in %s: %w", kind, e.Identifier, vc, model.ErrWrongGeneration)
	}
	return e, nil
}

// name localizes an entity, preferring the reference tables over names
// embedded in the payload, then over names the caller passed inline.
func (r *Resolver) name(e reftable.Entry, lang model.LocalizationCode, payload []pokeapi.Name) string {
	if _, ok := r.tables.Entry(e.Kind, e.ID); ok {
		return r.tables.DisplayName(e.Kind, e.ID, lang)
	}
	names := pokeapi.Names(payload)
	if len(names) == 0 {
		names = e.Names
	}
	return names.Localize(lang, e.Identifier)
}

func (r *Resolver) summary(e reftable.Entry, lang model.LocalizationCode, payload []pokeapi.Name) Entity {
	return Entity{
		Kind:       e.Kind,
		ID:         e.ID,
		Identifier: e.Identifier,
		Name:       r.name(e, lang, payload),
		Generation: e.GenerationID,
	}
}

// ref summarises an embedded resource of another entity.
func (r *Resolver) ref(kind model.Kind, res model.NamedResource, lang model.LocalizationCode) Entity {
	e, err := r.tables.Resolve(kind, model.InlineRef(res))
	if err != nil {
		return Entity{Kind: kind, ID: res.ID(), Identifier: res.Name, Name: model.IdentifierName(res.Name)}
	}
	return r.summary(e, lang, nil)
}

// Provider builds the Resolver once the reference tables have loaded. A
// failed load is retried on the next call.
type Provider struct {
	store    *reftable.Store
	cache    *cache.Coordinator
	upstream Upstream
	logger   *slog.Logger

	mu       sync.Mutex
	resolver *Resolver
}

func NewProvider(store *reftable.Store, coordinator *cache.Coordinator, upstream Upstream, logger *slog.Logger) *Provider {
	return &Provider{store: store, cache: coordinator, upstream: upstream, logger: logger}
}

func (p *Provider) Get(ctx context.Context) (*Resolver, error) {
	p.mu.Lock()
	r := p.resolver
	p.mu.Unlock()
	if r != nil {
		return r, nil
	}

	tables, err := p.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolver == nil {
		p.resolver = New(tables, p.cache, p.upstream, p.logger)
	}
	return p.resolver, nil
}
