package resolver

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
	"github.com/notjagan/pokeguide/pkg/reftable"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

func (r *Resolver) Pokemon(ctx context.Context, ref model.Ref, vc model.VersionContext, lang model.LocalizationCode) (*Pokemon, error) {
	vc = r.tables.Normalize(vc)
	e, err := r.entry(model.KindPokemon, ref, vc)
	if err != nil {
		return nil, err
	}

	payload, err := fetchEntity[pokeapi.Pokemon](ctx, r, e)
	if err != nil {
		return nil, err
	}

	chart := typechart.ChartForGeneration(vc.Generation)
	types := r.pokemonTypes(e, payload, vc)

	p := &Pokemon{
		Entity:    r.summary(e, lang, nil),
		Species:   payload.Species.Name,
		Height:    payload.Height,
		Weight:    payload.Weight,
		Types:     types,
		TypeNames: make([]string, 0, len(types)),
		Abilities: r.abilitySlots(payload.Abilities, vc, lang),
		Stats:     make([]Stat, 0, len(payload.Stats)),
		Moves:     r.learnableMoves(payload.Moves, vc, lang),
		HeldItems: r.heldItems(payload.HeldItems, vc, lang),
		Artwork:   payload.Sprites.Artwork(),
		Chart:     chart.ID(),
		Defense:   typechart.DefenseProfile(chart, types...),
	}
	if match, ok := model.MatchVariant(e.Identifier); ok {
		p.Variant = match.Variant.Tag
	}
	for _, t := range types {
		p.TypeNames = append(p.TypeNames, r.tables.TypeName(string(t), lang))
	}
	for _, s := range payload.Stats {
		p.Stats = append(p.Stats, Stat{Identifier: s.Stat.Name, Base: s.BaseStat})
	}
	p.Sprite = payload.Sprites.Artwork()
	if vc.VersionGroup != "" {
		p.Sprite = payload.Sprites.ForVersion(model.GenerationIdentifier(vc.Generation), vc.VersionGroup)
	}

	return p, nil
}

// pokemonTypes applies the payload's past types: each entry holds the
// types a creature had up to and including its generation.
func (r *Resolver) pokemonTypes(e reftable.Entry, payload *pokeapi.Pokemon, vc model.VersionContext) []typechart.Type {
	current := payload.Types
	best := 0
	for _, past := range payload.PastTypes {
		gen := model.ParseGeneration(past.Generation.Name)
		if gen >= vc.Generation && (best == 0 || gen < best) {
			best = gen
			current = past.Types
		}
	}

	slots := slices.Clone(current)
	slices.SortFunc(slots, func(a, b pokeapi.PokemonType) int { return cmp.Compare(a.Slot, b.Slot) })

	types := make([]typechart.Type, 0, len(slots))
	for _, s := range slots {
		types = append(types, typechart.Type(s.Type.Name))
	}
	if len(types) == 0 {
		for _, identifier := range r.tables.PokemonTypes(e.ID) {
			types = append(types, typechart.Type(identifier))
		}
	}
	return types
}

func (r *Resolver) abilitySlots(abilities []pokeapi.PokemonAbility, vc model.VersionContext, lang model.LocalizationCode) []AbilitySlot {
	slots := make([]AbilitySlot, 0, len(abilities))
	for _, a := range abilities {
		summary := r.ref(model.KindAbility, a.Ability, lang)
		if summary.Generation > vc.Generation {
			continue
		}
		slots = append(slots, AbilitySlot{Entity: summary, Hidden: a.IsHidden, Slot: a.Slot})
	}
	slices.SortFunc(slots, func(a, b AbilitySlot) int { return cmp.Compare(a.Slot, b.Slot) })
	return slots
}

// eligible reports whether a learn record applies to the context: an exact
// version group match when the context has one, otherwise any version
// group of the context's generation or earlier.
func (r *Resolver) eligible(d pokeapi.MoveLearnDetail, vc model.VersionContext) bool {
	if vc.VersionGroup != "" {
		return d.VersionGroup.Name == vc.VersionGroup
	}
	gen := r.tables.GenerationOfVersionGroup(d.VersionGroup.Name)
	return gen != 0 && gen <= vc.Generation
}

// newer orders learn records so that the most recent version group wins.
func (r *Resolver) newer(a, b pokeapi.MoveLearnDetail) bool {
	va, _ := r.tables.VersionGroup(a.VersionGroup.Name)
	vb, _ := r.tables.VersionGroup(b.VersionGroup.Name)
	return va.Order > vb.Order
}

func (r *Resolver) learnableMoves(moves []pokeapi.PokemonMove, vc model.VersionContext, lang model.LocalizationCode) []LearnableMove {
	type learnKey struct {
		move   int
		method model.LearnMethodName
	}

	chosen := make(map[learnKey]pokeapi.MoveLearnDetail)
	var keys []learnKey
	summaries := make(map[int]Entity)

	for _, m := range moves {
		summary := r.ref(model.KindMove, m.Move, lang)
		if summary.Generation > vc.Generation {
			continue
		}
		for _, d := range m.VersionGroupDetails {
			if !r.eligible(d, vc) {
				continue
			}
			key := learnKey{move: summary.ID, method: model.LearnMethodName(d.MoveLearnMethod.Name)}
			cur, ok := chosen[key]
			if !ok {
				keys = append(keys, key)
			}
			if !ok || r.newer(d, cur) {
				chosen[key] = d
			}
		}
		summaries[summary.ID] = summary
	}

	learnable := make([]LearnableMove, 0, len(keys))
	for _, key := range keys {
		d := chosen[key]
		lm := LearnableMove{
			Entity:       summaries[key.move],
			Method:       key.method,
			Level:        d.LevelLearnedAt,
			VersionGroup: d.VersionGroup.Name,
		}
		if row, ok := r.tables.Move(key.move); ok {
			if t, ok := r.tables.TypeIdentifier(row.TypeID); ok {
				lm.Type = typechart.Type(t)
			}
		}
		if key.method == model.Machine {
			lm.Machine = r.machineLabel(d.VersionGroup.Name, key.move)
		}
		learnable = append(learnable, lm)
	}

	slices.SortStableFunc(learnable, func(a, b LearnableMove) int {
		return cmp.Or(
			cmp.Compare(model.LearnMethodRank(a.Method), model.LearnMethodRank(b.Method)),
			cmp.Compare(a.Level, b.Level),
			cmp.Compare(a.Machine, b.Machine),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return learnable
}

func (r *Resolver) machineLabel(versionGroup string, moveID int) string {
	vg, ok := r.tables.VersionGroup(versionGroup)
	if !ok {
		return ""
	}
	m, item, ok := r.tables.Machine(vg.ID, moveID)
	if !ok {
		return ""
	}
	if item.Identifier != "" {
		return strings.ToUpper(item.Identifier)
	}
	return fmt.Sprintf("TM%02d", m.Number)
}

// pickRarity chooses the rarity shown for a context: the exact game, then
// any game of the same generation, then the first entry.
func (r *Resolver) pickRarity(details []pokeapi.VersionRarity, vc model.VersionContext) (pokeapi.VersionRarity, bool) {
	if len(details) == 0 {
		return pokeapi.VersionRarity{}, false
	}
	if vc.Game != "" {
		for _, d := range details {
			if d.Version.Name == vc.Game {
				return d, true
			}
		}
	}
	for _, d := range details {
		if r.tables.GenerationOfVersion(d.Version.Name) == vc.Generation {
			return d, true
		}
	}
	return details[0], true
}

func hasRarity(details []pokeapi.VersionRarity) bool {
	return slices.ContainsFunc(details, func(d pokeapi.VersionRarity) bool { return d.Rarity > 0 })
}

func (r *Resolver) heldItems(items []pokeapi.HeldItem, vc model.VersionContext, lang model.LocalizationCode) []HeldItem {
	held := make([]HeldItem, 0, len(items))
	for _, h := range items {
		if !hasRarity(h.VersionDetails) {
			continue
		}
		d, _ := r.pickRarity(h.VersionDetails, vc)
		held = append(held, HeldItem{
			Entity:  r.ref(model.KindItem, h.Item, lang),
			Rarity:  d.Rarity,
			Version: d.Version.Name,
		})
	}
	return held
}
