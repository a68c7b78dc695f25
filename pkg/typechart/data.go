package typechart

import "slices"

var gen6PlusRelations = map[Type]DamageRelations{
	Normal: {
		HalfDamageTo: []Type{Rock, Steel},
		NoDamageTo:   []Type{Ghost},
	},
	Fighting: {
		DoubleDamageTo: []Type{Normal, Ice, Rock, Dark, Steel},
		HalfDamageTo:   []Type{Flying, Poison, Bug, Psychic, Fairy},
		NoDamageTo:     []Type{Ghost},
	},
	Flying: {
		DoubleDamageTo: []Type{Fighting, Bug, Grass},
		HalfDamageTo:   []Type{Rock, Steel, Electric},
	},
	Poison: {
		DoubleDamageTo: []Type{Grass, Fairy},
		HalfDamageTo:   []Type{Poison, Ground, Rock, Ghost},
		NoDamageTo:     []Type{Steel},
	},
	Ground: {
		DoubleDamageTo: []Type{Poison, Rock, Steel, Fire, Electric},
		HalfDamageTo:   []Type{Bug, Grass},
		NoDamageTo:     []Type{Flying},
	},
	Rock: {
		DoubleDamageTo: []Type{Flying, Bug, Fire, Ice},
		HalfDamageTo:   []Type{Fighting, Ground, Steel},
	},
	Bug: {
		DoubleDamageTo: []Type{Grass, Psychic, Dark},
		HalfDamageTo:   []Type{Fighting, Flying, Poison, Ghost, Steel, Fire, Fairy},
	},
	Ghost: {
		DoubleDamageTo: []Type{Ghost, Psychic},
		HalfDamageTo:   []Type{Dark},
		NoDamageTo:     []Type{Normal},
	},
	Steel: {
		DoubleDamageTo: []Type{Rock, Ice, Fairy},
		HalfDamageTo:   []Type{Steel, Fire, Water, Electric},
	},
	Fire: {
		DoubleDamageTo: []Type{Bug, Steel, Grass, Ice},
		HalfDamageTo:   []Type{Rock, Fire, Water, Dragon},
	},
	Water: {
		DoubleDamageTo: []Type{Ground, Rock, Fire},
		HalfDamageTo:   []Type{Water, Grass, Dragon},
	},
	Grass: {
		DoubleDamageTo: []Type{Ground, Rock, Water},
		HalfDamageTo:   []Type{Flying, Poison, Bug, Steel, Fire, Grass, Dragon},
	},
	Electric: {
		DoubleDamageTo: []Type{Flying, Water},
		HalfDamageTo:   []Type{Grass, Electric, Dragon},
		NoDamageTo:     []Type{Ground},
	},
	Psychic: {
		DoubleDamageTo: []Type{Fighting, Poison},
		HalfDamageTo:   []Type{Steel, Psychic},
		NoDamageTo:     []Type{Dark},
	},
	Ice: {
		DoubleDamageTo: []Type{Flying, Ground, Grass, Dragon},
		HalfDamageTo:   []Type{Steel, Fire, Water, Ice},
	},
	Dragon: {
		DoubleDamageTo: []Type{Dragon},
		HalfDamageTo:   []Type{Steel},
		NoDamageTo:     []Type{Fairy},
	},
	Dark: {
		DoubleDamageTo: []Type{Ghost, Psychic},
		HalfDamageTo:   []Type{Fighting, Dark, Fairy},
	},
	Fairy: {
		DoubleDamageTo: []Type{Fighting, Dragon, Dark},
		HalfDamageTo:   []Type{Poison, Steel, Fire},
	},
}

// Before generation 6 there was no fairy type and steel resisted ghost and
// dark.
var gen2to5Relations = patch(without(gen6PlusRelations, Fairy), map[Type]DamageRelations{
	Ghost: {HalfDamageTo: []Type{Steel}},
	Dark:  {HalfDamageTo: []Type{Steel}},
})

// Generation 1 had neither dark nor steel, bug and poison were mutually
// super effective, ghost could not hit psychic and ice was neutral on fire.
var gen1Relations = patch(
	drop(without(gen2to5Relations, Dark, Steel), map[Type]DamageRelations{
		Bug:   {HalfDamageTo: []Type{Poison}},
		Ghost: {DoubleDamageTo: []Type{Psychic}},
		Ice:   {HalfDamageTo: []Type{Fire}},
	}),
	map[Type]DamageRelations{
		Bug:    {DoubleDamageTo: []Type{Poison}},
		Poison: {DoubleDamageTo: []Type{Bug}},
		Ghost:  {NoDamageTo: []Type{Psychic}},
	},
)

// without removes the given types both as attackers and as defenders.
func without(base map[Type]DamageRelations, types ...Type) map[Type]DamageRelations {
	keep := func(ts []Type) []Type {
		out := make([]Type, 0, len(ts))
		for _, t := range ts {
			if !slices.Contains(types, t) {
				out = append(out, t)
			}
		}
		return out
	}

	out := make(map[Type]DamageRelations, len(base))
	for attack, dr := range base {
		if slices.Contains(types, attack) {
			continue
		}
		out[attack] = DamageRelations{
			DoubleDamageTo: keep(dr.DoubleDamageTo),
			HalfDamageTo:   keep(dr.HalfDamageTo),
			NoDamageTo:     keep(dr.NoDamageTo),
		}
	}
	return out
}

// patch adds edges.
func patch(base map[Type]DamageRelations, extra map[Type]DamageRelations) map[Type]DamageRelations {
	out := without(base)
	for attack, dr := range extra {
		cur := out[attack]
		cur.DoubleDamageTo = append(slices.Clone(cur.DoubleDamageTo), dr.DoubleDamageTo...)
		cur.HalfDamageTo = append(slices.Clone(cur.HalfDamageTo), dr.HalfDamageTo...)
		cur.NoDamageTo = append(slices.Clone(cur.NoDamageTo), dr.NoDamageTo...)
		out[attack] = cur
	}
	return out
}

// drop removes individual edges.
func drop(base map[Type]DamageRelations, edges map[Type]DamageRelations) map[Type]DamageRelations {
	out := without(base)
	remove := func(ts, gone []Type) []Type {
		return slices.DeleteFunc(slices.Clone(ts), func(t Type) bool {
			return slices.Contains(gone, t)
		})
	}
	for attack, dr := range edges {
		cur := out[attack]
		cur.DoubleDamageTo = remove(cur.DoubleDamageTo, dr.DoubleDamageTo)
		cur.HalfDamageTo = remove(cur.HalfDamageTo, dr.HalfDamageTo)
		cur.NoDamageTo = remove(cur.NoDamageTo, dr.NoDamageTo)
		out[attack] = cur
	}
	return out
}
