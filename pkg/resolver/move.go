package resolver

import (
	"cmp"
	"context"
	"slices"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

func (r *Resolver) Move(ctx context.Context, ref model.Ref, vc model.VersionContext, lang model.LocalizationCode) (*Move, error) {
	vc = r.tables.Normalize(vc)
	e, err := r.entry(model.KindMove, ref, vc)
	if err != nil {
		return nil, err
	}

	payload, err := fetchEntity[pokeapi.Move](ctx, r, e)
	if err != nil {
		return nil, err
	}
	r.applyPastValues(payload, vc)

	chart := typechart.ChartForGeneration(vc.Generation)
	t := typechart.Type(payload.Type.Name)

	m := &Move{
		Entity:      r.summary(e, lang, payload.Names),
		Type:        t,
		TypeName:    r.tables.TypeName(payload.Type.Name, lang),
		DamageClass: payload.DamageClass.Name,
		Power:       payload.Power,
		PP:          payload.PP,
		Accuracy:    payload.Accuracy,
		Priority:    payload.Priority,
		Effect:      effectText(payload.EffectEntries, lang),
		FlavorText:  flavorText(payload.FlavorTextEntries, vc, lang),
		Chart:       chart.ID(),
		Coverage:    typechart.AttackProfile(chart, t),
	}
	if vc.VersionGroup != "" {
		m.Machine = r.machineLabel(vc.VersionGroup, e.ID)
	}
	return m, nil
}

// contextOrder is the release order a context stands for: its version
// group, or the last group of its generation.
func (r *Resolver) contextOrder(vc model.VersionContext) int {
	if vg, ok := r.tables.VersionGroup(vc.VersionGroup); ok {
		return vg.Order
	}
	groups := r.tables.VersionGroupsIn(vc.Generation)
	if len(groups) == 0 {
		return 0
	}
	return groups[len(groups)-1].Order
}

// applyPastValues rewinds a move to the values it had in the context. Each
// past entry holds the values in force before its version group, so the
// earliest change after the context applies.
func (r *Resolver) applyPastValues(m *pokeapi.Move, vc model.VersionContext) {
	order := r.contextOrder(vc)
	if order == 0 {
		return
	}

	type change struct {
		order  int
		values pokeapi.PastMoveValues
	}
	var changes []change
	for _, pv := range m.PastValues {
		vg, ok := r.tables.VersionGroup(pv.VersionGroup.Name)
		if !ok || vg.Order <= order {
			continue
		}
		changes = append(changes, change{order: vg.Order, values: pv})
	}
	if len(changes) == 0 {
		return
	}
	slices.SortFunc(changes, func(a, b change) int { return cmp.Compare(a.order, b.order) })

	pv := changes[0].values
	if pv.Power != nil {
		m.Power = pv.Power
	}
	if pv.PP != nil {
		m.PP = pv.PP
	}
	if pv.Accuracy != nil {
		m.Accuracy = pv.Accuracy
	}
	if pv.Type != nil {
		m.Type = *pv.Type
	}
}
