package resolver

import (
	"context"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
)

func (r *Resolver) Item(ctx context.Context, ref model.Ref, vc model.VersionContext, lang model.LocalizationCode) (*Item, error) {
	vc = r.tables.Normalize(vc)
	e, err := r.entry(model.KindItem, ref, vc)
	if err != nil {
		return nil, err
	}

	payload, err := fetchEntity[pokeapi.Item](ctx, r, e)
	if err != nil {
		return nil, err
	}

	versions := r.tables.VersionsIn(vc)
	item := &Item{
		Entity:     r.summary(e, lang, payload.Names),
		Cost:       payload.Cost,
		Category:   payload.Category.Name,
		Effect:     effectText(payload.EffectEntries, lang),
		FlavorText: flavorText(payload.FlavorTextEntries, vc, lang),
		Sprite:     payload.Sprites.Default,
		HeldBy:     make([]ItemHolder, 0, len(payload.HeldByPokemon)),
	}
	for _, h := range payload.HeldByPokemon {
		if !hasRarity(h.VersionDetails) {
			continue
		}
		holder := r.ref(model.KindPokemon, h.Pokemon, lang)
		if !available(holder, vc, versions) {
			continue
		}
		d, _ := r.pickRarity(h.VersionDetails, vc)
		item.HeldBy = append(item.HeldBy, ItemHolder{Entity: holder, Rarity: d.Rarity, Version: d.Version.Name})
	}
	return item, nil
}
