package reftable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/reftable"
	"github.com/notjagan/pokeguide/pkg/reftable/reftabletest"
)

func TestResolveRefs(t *testing.T) {
	tables := reftabletest.Tables(t)

	tests := []struct {
		name string
		kind model.Kind
		ref  model.Ref
		want int
	}{
		{"by_id", model.KindPokemon, model.ByID(25), 25},
		{"by_identifier", model.KindMove, model.ByIdentifier("thunderbolt"), 85},
		{"inline_known", model.KindAbility, model.ByInline{ID: 9, Identifier: "static"}, 9},
		{"inline_identifier_only", model.KindItem, model.ByInline{Identifier: "light-ball"}, 213},
		{"inline_unknown", model.KindItem, model.ByInline{ID: 9999, Identifier: "mystery-orb"}, 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tables.Resolve(tt.kind, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.ID)
			assert.Equal(t, tt.kind, e.Kind)
		})
	}

	_, err := tables.Resolve(model.KindPokemon, model.ByIdentifier("missingno"))
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = tables.Resolve(model.KindPokemon, model.ByID(0))
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = tables.Resolve(model.KindItem, model.ByInline{Identifier: "mystery-orb"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	names := model.Names{"en": "Mystery Orb"}
	e, err := tables.Resolve(model.KindItem, model.ByInline{ID: 9999, Identifier: "mystery-orb", Names: names})
	require.NoError(t, err)
	assert.Equal(t, names, e.Names)
	e, err = tables.Resolve(model.KindItem, model.ByInline{ID: 213, Identifier: "light-ball", Names: names})
	require.NoError(t, err)
	assert.Nil(t, e.Names, "table rows keep their own names")
}

func TestDisplayName(t *testing.T) {
	tables := reftabletest.Tables(t)

	tests := []struct {
		name string
		kind model.Kind
		id   int
		lang model.LocalizationCode
		want string
	}{
		{"korean", model.KindPokemon, 25, model.LocalizationCodeKorean, "피카츄"},
		{"english", model.KindPokemon, 25, model.LocalizationCodeEnglish, "Pikachu"},
		{"unlisted_language_falls_back_to_korean", model.KindMove, 85, "ja", "10만볼트"},
		{"korean_missing_falls_back_to_english", model.KindPokemon, 906, model.LocalizationCodeKorean, "Sprigatito"},
		{"variant_unlisted_language", model.KindPokemon, 10196, "ja", "거다이맥스 리자몽"},
		{"variant_english", model.KindPokemon, 10100, model.LocalizationCodeEnglish, "Alolan Raichu"},
		{"variant_extra", model.KindPokemon, 10034, model.LocalizationCodeEnglish, "Mega Charizard X"},
		{"no_names", model.KindItem, 328, model.LocalizationCodeKorean, "TM24"},
		{"unknown", model.KindItem, 4242, model.LocalizationCodeKorean, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.DisplayName(tt.kind, tt.id, tt.lang))
		})
	}
}

func TestJoins(t *testing.T) {
	tables := reftabletest.Tables(t)

	assert.Equal(t, []string{"grass", "poison"}, tables.PokemonTypes(1))
	assert.Equal(t, []string{"electric", "psychic"}, tables.PokemonTypes(10100))
	assert.Empty(t, tables.PokemonTypes(4242))

	abilities := tables.PokemonAbilities(1)
	require.Len(t, abilities, 2)
	assert.Equal(t, 65, abilities[0].AbilityID)
	assert.True(t, abilities[1].IsHidden)

	m, item, ok := tables.Machine(1, 85)
	require.True(t, ok)
	assert.Equal(t, 24, m.Number)
	assert.Equal(t, "tm24", item.Identifier)
	_, _, ok = tables.Machine(25, 85)
	assert.False(t, ok)

	assert.Equal(t, "페어리", tables.TypeName("fairy", model.LocalizationCodeKorean))
	assert.Equal(t, "shadow", tables.TypeName("shadow", model.LocalizationCodeKorean))
	assert.Len(t, tables.TypeIdentifiers(), 18)
	assert.Len(t, tables.TypesIn(1), 15)
	assert.Len(t, tables.TypesIn(5), 17)
	assert.NotContains(t, tables.TypesIn(5), "fairy")
}

func TestListExcludesNonMainSeriesAbilities(t *testing.T) {
	tables := reftabletest.Tables(t)

	abilities := tables.List(model.KindAbility)
	ids := make([]int, 0, len(abilities))
	for _, a := range abilities {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int{9, 31, 34, 65, 66, 94}, ids)

	pokemon := tables.List(model.KindPokemon)
	assert.Equal(t, 1, pokemon[0].ID)
	assert.Equal(t, 10196, pokemon[len(pokemon)-1].ID)
	assert.Equal(t, 1, pokemon[len(pokemon)-1].GenerationID)
}

func TestNormalize(t *testing.T) {
	tables := reftabletest.Tables(t)

	tests := []struct {
		name string
		in   model.VersionContext
		want model.VersionContext
	}{
		{"empty_is_latest", model.VersionContext{}, model.VersionContext{Generation: 9}},
		{"game", model.VersionContext{Game: "sword"}, model.VersionContext{Generation: 8, VersionGroup: "sword-shield", Game: "sword"}},
		{"game_wins", model.VersionContext{Generation: 1, Game: "x"}, model.VersionContext{Generation: 6, VersionGroup: "x-y", Game: "x"}},
		{"version_group", model.VersionContext{VersionGroup: "gold-silver"}, model.VersionContext{Generation: 2, VersionGroup: "gold-silver"}},
		{"unknown_game_degrades", model.VersionContext{Game: "stadium", VersionGroup: "red-blue"}, model.VersionContext{Generation: 1, VersionGroup: "red-blue"}},
		{"unknown_everything", model.VersionContext{Game: "stadium", Generation: 42}, model.VersionContext{Generation: 9}},
		{"generation_only", model.VersionContext{Generation: 4}, model.VersionContext{Generation: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.Normalize(tt.in))
		})
	}
}

func TestVersionsIn(t *testing.T) {
	tables := reftabletest.Tables(t)

	assert.Equal(t, []string{"moon"}, tables.VersionsIn(model.VersionContext{Game: "moon"}))
	assert.Equal(t, []string{"red", "blue"}, tables.VersionsIn(model.VersionContext{VersionGroup: "red-blue"}))
	assert.Equal(t, []string{"scarlet", "violet"}, tables.VersionsIn(model.VersionContext{}))
	assert.Empty(t, tables.VersionsIn(model.VersionContext{Generation: 4}))

	assert.Equal(t, 8, tables.GenerationOfVersion("shield"))

	versions := tables.Versions()
	require.Len(t, versions, 12)
	assert.Equal(t, "red", versions[0].Identifier)
	assert.Equal(t, "violet", versions[11].Identifier)
	assert.Equal(t, 0, tables.GenerationOfVersion("stadium"))
	assert.Equal(t, 7, tables.GenerationOfVersionGroup("sun-moon"))
}

var _ reftable.Source = reftable.DirSource(".")
