package resolver

import (
	"context"
	"slices"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
)

// Encounters lists where a creature can be found in the games of a
// context, one row per location and game.
func (r *Resolver) Encounters(ctx context.Context, ref model.Ref, vc model.VersionContext, lang model.LocalizationCode) ([]Encounter, error) {
	vc = r.tables.Normalize(vc)
	e, err := r.entry(model.KindPokemon, ref, vc)
	if err != nil {
		return nil, err
	}

	payload, err := fetch[[]pokeapi.LocationAreaEncounter](ctx, r,
		cache.NewKey("pokemon-encounters", e.ID),
		pokeapi.ResourcePath("pokemon", e.ID, "encounters"),
	)
	if err != nil {
		return nil, err
	}

	versions := r.tables.VersionsIn(vc)
	encounters := make([]Encounter, 0)
	for _, area := range *payload {
		for _, vd := range area.VersionDetails {
			if !slices.Contains(versions, vd.Version.Name) {
				continue
			}
			enc := Encounter{
				Location:  model.IdentifierName(area.LocationArea.Name),
				Version:   vd.Version.Name,
				MaxChance: vd.MaxChance,
			}
			for i, d := range vd.EncounterDetails {
				if i == 0 || d.MinLevel < enc.MinLevel {
					enc.MinLevel = d.MinLevel
				}
				enc.MaxLevel = max(enc.MaxLevel, d.MaxLevel)
				if !slices.Contains(enc.Methods, d.Method.Name) {
					enc.Methods = append(enc.Methods, d.Method.Name)
				}
			}
			encounters = append(encounters, enc)
		}
	}
	return encounters, nil
}
