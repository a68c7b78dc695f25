package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/resolver"
)

// Entry is one searchable entity.
type Entry struct {
	ID         int        `json:"id"`
	Identifier string     `json:"identifier"`
	Name       string     `json:"name"`
	Category   model.Kind `json:"category"`
}

// Index holds every entity of a version context and language, grouped by
// category in listing order.
type Index struct {
	Pokemon   []Entry `json:"pokemon"`
	Moves     []Entry `json:"moves"`
	Abilities []Entry `json:"abilities"`
	Items     []Entry `json:"items"`
}

func (idx *Index) category(kind model.Kind) *[]Entry {
	switch kind {
	case model.KindMove:
		return &idx.Moves
	case model.KindAbility:
		return &idx.Abilities
	case model.KindItem:
		return &idx.Items
	default:
		return &idx.Pokemon
	}
}

func (idx Index) Len() int {
	return len(idx.Pokemon) + len(idx.Moves) + len(idx.Abilities) + len(idx.Items)
}

// Source lists entities for a context.
type Source interface {
	Normalize(vc model.VersionContext) model.VersionContext
	List(ctx context.Context, kind model.Kind, vc model.VersionContext, lang model.LocalizationCode) ([]resolver.Entity, error)
}

// Builder aggregates the four listings into an Index. Indexes are always
// rebuilt whole and cached per version context and language.
type Builder struct {
	source Source
	cache  *cache.Coordinator
	logger *slog.Logger
}

func NewBuilder(source Source, coordinator *cache.Coordinator, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{source: source, cache: coordinator, logger: logger}
}

func (b *Builder) Build(ctx context.Context, vc model.VersionContext, lang model.LocalizationCode) (*Index, error) {
	vc = b.source.Normalize(vc)
	key := cache.NewKey("search", vc.Key(), string(lang))

	raw, err := b.cache.Query(ctx, key, func(ctx context.Context) ([]byte, error) {
		idx, err := b.build(ctx, vc, lang)
		if err != nil {
			return nil, err
		}
		return json.Marshal(idx)
	})
	if err != nil {
		return nil, fmt.Errorf("error while building search index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("error while decoding search index: %w", err)
	}
	return &idx, nil
}

func (b *Builder) build(ctx context.Context, vc model.VersionContext, lang model.LocalizationCode) (*Index, error) {
	idx := &Index{}
	for _, kind := range model.KindValues() {
		list, err := b.source.List(ctx, kind, vc, lang)
		if err != nil {
			return nil, fmt.Errorf("error while listing %s: %w", kind, err)
		}

		entries := idx.category(kind)
		*entries = make([]Entry, 0, len(list))
		for _, e := range list {
			name := e.Name
			if name == "" {
				name = model.IdentifierName(e.Identifier)
			}
			*entries = append(*entries, Entry{ID: e.ID, Identifier: e.Identifier, Name: name, Category: kind})
		}
	}

	b.logger.Debug("search index built", "version", vc.String(), "lang", lang, "entries", idx.Len())
	return idx, nil
}
