package resolver

import (
	"context"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
)

func (r *Resolver) Ability(ctx context.Context, ref model.Ref, vc model.VersionContext, lang model.LocalizationCode) (*Ability, error) {
	vc = r.tables.Normalize(vc)
	e, err := r.entry(model.KindAbility, ref, vc)
	if err != nil {
		return nil, err
	}

	payload, err := fetchEntity[pokeapi.Ability](ctx, r, e)
	if err != nil {
		return nil, err
	}

	versions := r.tables.VersionsIn(vc)
	a := &Ability{
		Entity:     r.summary(e, lang, payload.Names),
		Effect:     effectText(payload.EffectEntries, lang),
		FlavorText: flavorText(payload.FlavorTextEntries, vc, lang),
		Pokemon:    make([]AbilityHolder, 0, len(payload.Pokemon)),
	}
	for _, p := range payload.Pokemon {
		holder := r.ref(model.KindPokemon, p.Pokemon, lang)
		if !available(holder, vc, versions) {
			continue
		}
		a.Pokemon = append(a.Pokemon, AbilityHolder{Entity: holder, Hidden: p.IsHidden})
	}
	return a, nil
}
