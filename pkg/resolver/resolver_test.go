package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/reftable/reftabletest"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/resolver/resolvertest"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

var (
	redBlue = model.VersionContext{VersionGroup: "red-blue"}
	shield  = model.VersionContext{Game: "shield"}
	gen2    = model.VersionContext{Generation: 2}
)

func moveSummary(moves []resolver.LearnableMove) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, string(m.Method)+":"+m.Identifier)
	}
	return out
}

func TestPokemonInVersionGroup(t *testing.T) {
	r, _ := resolvertest.New(t)

	p, err := r.Pokemon(context.Background(), model.ByID(25), redBlue, model.LocalizationCodeKorean)
	require.NoError(t, err)

	assert.Equal(t, "피카츄", p.Name)
	assert.Equal(t, 1, p.Generation)
	assert.Equal(t, []typechart.Type{typechart.Electric}, p.Types)
	assert.Equal(t, []string{"전기"}, p.TypeNames)
	assert.Empty(t, p.Abilities, "abilities did not exist in generation I")
	assert.Equal(t, []string{"level-up:thunder-shock", "machine:thunderbolt"}, moveSummary(p.Moves))
	assert.Equal(t, "TM24", p.Moves[1].Machine)
	assert.Equal(t, typechart.Electric, p.Moves[1].Type)

	require.Len(t, p.HeldItems, 1)
	assert.Equal(t, "light-ball", p.HeldItems[0].Identifier)
	assert.Equal(t, "gold", p.HeldItems[0].Version, "no generation I entry, first entry wins")
	assert.Equal(t, 5, p.HeldItems[0].Rarity)

	assert.Equal(t, typechart.Gen1, p.Chart)
	assert.Equal(t, []typechart.Type{typechart.Ground}, p.Defense.Double)
	assert.Equal(t, []typechart.Type{typechart.Flying, typechart.Electric}, p.Defense.Half)

	assert.EqualValues(t, "https://img.example/red-blue/25.png", p.Sprite)
	assert.EqualValues(t, "https://img.example/artwork/25.png", p.Artwork)
}

func TestPokemonInGame(t *testing.T) {
	r, _ := resolvertest.New(t)

	p, err := r.Pokemon(context.Background(), model.ByIdentifier("pikachu"), shield, model.LocalizationCodeEnglish)
	require.NoError(t, err)

	assert.Equal(t, "Pikachu", p.Name)
	assert.Equal(t,
		[]string{"level-up:thunder-shock", "level-up:thunderbolt", "egg:volt-tackle"},
		moveSummary(p.Moves),
	)
	assert.Equal(t, 36, p.Moves[1].Level)

	require.Len(t, p.Abilities, 2)
	assert.Equal(t, "Static", p.Abilities[0].Name)
	assert.False(t, p.Abilities[0].Hidden)
	assert.Equal(t, "Lightning Rod", p.Abilities[1].Name)
	assert.True(t, p.Abilities[1].Hidden)

	require.Len(t, p.HeldItems, 1)
	assert.Equal(t, "shield", p.HeldItems[0].Version)
	assert.Equal(t, 2, p.HeldItems[0].Rarity)

	assert.Equal(t, typechart.Gen6Plus, p.Chart)
	assert.Equal(t, []typechart.Type{typechart.Flying, typechart.Steel, typechart.Electric}, p.Defense.Half)
	assert.EqualValues(t, "https://img.example/artwork/25.png", p.Sprite)
}

func TestPokemonByGenerationOnly(t *testing.T) {
	r, _ := resolvertest.New(t)

	p, err := r.Pokemon(context.Background(), model.ByID(25), gen2, model.LocalizationCodeKorean)
	require.NoError(t, err)

	assert.Equal(t, []string{"level-up:thunder-shock", "machine:thunderbolt"}, moveSummary(p.Moves))
	require.Len(t, p.HeldItems, 1)
	assert.Equal(t, "gold", p.HeldItems[0].Version, "same generation wins when the game is unknown")
	assert.Equal(t, typechart.Gen2to5, p.Chart)
}

func TestPokemonErrors(t *testing.T) {
	r, upstream := resolvertest.New(t)
	ctx := context.Background()

	_, err := r.Pokemon(ctx, model.ByIdentifier("greninja"), model.VersionContext{Game: "red"}, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrWrongGeneration)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Zero(t, upstream.Calls("pokemon/658"))

	_, err = r.Pokemon(ctx, model.ByIdentifier("missingno"), shield, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = r.Pokemon(ctx, model.ByID(26), shield, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrNotFound, "missing upstream payloads are terminal")
	assert.NotErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestUpstreamFailureIsRetryable(t *testing.T) {
	r, upstream := resolvertest.New(t)
	ctx := context.Background()

	upstream.Fail(errors.Join(model.ErrUpstreamUnavailable, errors.New("connection reset")))
	_, err := r.Pokemon(ctx, model.ByID(25), shield, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)

	upstream.Fail(nil)
	_, err = r.Pokemon(ctx, model.ByID(25), shield, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.Calls("pokemon/25"))
}

func TestResolutionGoesThroughCache(t *testing.T) {
	r, upstream := resolvertest.New(t)
	ctx := context.Background()

	for _, vc := range []model.VersionContext{redBlue, shield, gen2} {
		_, err := r.Pokemon(ctx, model.ByID(25), vc, model.LocalizationCodeKorean)
		require.NoError(t, err)
	}
	_, err := r.Pokemon(ctx, model.ByIdentifier("pikachu"), shield, model.LocalizationCodeEnglish)
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.Calls("pokemon/25"))
}

func TestMovePastValues(t *testing.T) {
	r, _ := resolvertest.New(t)
	ctx := context.Background()

	old, err := r.Move(ctx, model.ByID(85), redBlue, model.LocalizationCodeKorean)
	require.NoError(t, err)
	require.NotNil(t, old.Power)
	assert.Equal(t, 95, *old.Power)
	assert.Equal(t, 100, *old.Accuracy)
	assert.Equal(t, "TM24", old.Machine)
	assert.Equal(t, typechart.Gen1, old.Chart)
	assert.Equal(t, []typechart.Type{typechart.Flying, typechart.Water}, old.Coverage.Double)

	current, err := r.Move(ctx, model.ByIdentifier("thunderbolt"), shield, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Equal(t, 90, *current.Power)
	assert.Equal(t, "10만볼트", current.Name)
	assert.Equal(t, "전기", current.TypeName)
	assert.Equal(t, "강한 전기를 상대에게 퍼부어 공격한다.", current.FlavorText)
	assert.Equal(t, "Has a 10% chance to paralyze the target.", current.Effect)
	assert.Equal(t, "TM24", current.Machine)

	_, err = r.Move(ctx, model.ByIdentifier("moonblast"), redBlue, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrWrongGeneration)
}

func TestAbilityFiltersHolders(t *testing.T) {
	r, _ := resolvertest.New(t)
	ctx := context.Background()

	a, err := r.Ability(ctx, model.ByID(9), model.VersionContext{Game: "x"}, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Equal(t, "정전기", a.Name)

	var holders []string
	for _, p := range a.Pokemon {
		holders = append(holders, p.Identifier)
	}
	assert.Equal(t, []string{"pikachu", "raichu", "pichu"}, holders)

	a, err = r.Ability(ctx, model.ByID(9), model.VersionContext{Game: "moon"}, model.LocalizationCodeEnglish)
	require.NoError(t, err)
	assert.Len(t, a.Pokemon, 4)
	assert.Equal(t, "Alolan Raichu", a.Pokemon[3].Name)

	_, err = r.Ability(ctx, model.ByID(9), redBlue, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrWrongGeneration)
}

func TestItemHolders(t *testing.T) {
	r, _ := resolvertest.New(t)

	item, err := r.Item(context.Background(), model.ByIdentifier("light-ball"), model.VersionContext{Game: "silver"}, model.LocalizationCodeKorean)
	require.NoError(t, err)

	assert.Equal(t, "전기구슬", item.Name)
	assert.Equal(t, 1000, item.Cost)
	require.Len(t, item.HeldBy, 1)
	assert.Equal(t, "pikachu", item.HeldBy[0].Identifier)
	assert.Equal(t, "silver", item.HeldBy[0].Version)
	assert.Contains(t, item.FlavorText, "mysterious orb")
}

func TestInlineNamesFallback(t *testing.T) {
	r, _ := resolvertest.New(t)

	ref := model.ByInline{
		ID:         9999,
		Identifier: "mystery-orb",
		Names:      model.Names{"en": "Mystery Orb", "ko": "수수께끼구슬"},
	}
	item, err := r.Item(context.Background(), ref, gen2, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Equal(t, 9999, item.ID)
	assert.Equal(t, "수수께끼구슬", item.Name, "payload has no names, inline names apply")

	item, err = r.Item(context.Background(), model.ByInline{ID: 9999, Identifier: "mystery-orb"}, gen2, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Equal(t, "mystery orb", item.Name)
}

func TestEncounters(t *testing.T) {
	r, upstream := resolvertest.New(t)
	ctx := context.Background()

	enc, err := r.Encounters(ctx, model.ByID(25), model.VersionContext{Game: "red"}, model.LocalizationCodeKorean)
	require.NoError(t, err)
	require.Len(t, enc, 2)
	assert.Equal(t, resolver.Encounter{
		Location:  "power plant area",
		Version:   "red",
		MaxChance: 25,
		MinLevel:  20,
		MaxLevel:  26,
		Methods:   []string{"walk"},
	}, enc[1])

	enc, err = r.Encounters(ctx, model.ByID(25), redBlue, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Len(t, enc, 3)

	enc, err = r.Encounters(ctx, model.ByID(25), model.VersionContext{Game: "gold"}, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.NotNil(t, enc)
	assert.Empty(t, enc)

	assert.Equal(t, 1, upstream.Calls("pokemon/25/encounters"))
}

func TestListFiltersByVersion(t *testing.T) {
	r, upstream := resolvertest.New(t)
	ctx := context.Background()

	ids := func(vc model.VersionContext) []int {
		list, err := r.List(ctx, model.KindPokemon, vc, model.LocalizationCodeKorean)
		require.NoError(t, err)
		out := make([]int, 0, len(list))
		for _, e := range list {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []int{1, 6, 25, 26}, ids(redBlue))
	assert.Equal(t, []int{1, 6, 25, 26, 172, 658, 10034, 10100}, ids(model.VersionContext{Game: "sun"}))
	assert.Equal(t, []int{1, 6, 25, 26, 172, 658, 10100, 10196}, ids(shield))
	assert.Equal(t, []int{1, 6, 25, 26, 172, 658, 906, 10100}, ids(model.VersionContext{}))

	moves, err := r.List(ctx, model.KindMove, redBlue, model.LocalizationCodeEnglish)
	require.NoError(t, err)
	assert.Len(t, moves, 4)
	assert.Equal(t, "Tackle", moves[0].Name)

	for _, path := range []string{"pokemon/25", "move/85"} {
		assert.Zero(t, upstream.Calls(path), "listing never touches the network")
	}
}

func TestResolveDispatch(t *testing.T) {
	r, _ := resolvertest.New(t)
	ctx := context.Background()

	for kind, ref := range map[model.Kind]model.Ref{
		model.KindPokemon: model.ByID(25),
		model.KindMove:    model.ByID(85),
		model.KindAbility: model.ByID(9),
		model.KindItem:    model.ByID(213),
	} {
		res, err := r.Resolve(ctx, kind, ref, shield, model.LocalizationCodeKorean)
		require.NoError(t, err, kind.String())
		assert.Equal(t, kind, res.Summary().Kind)
	}

	_, err := r.Resolve(ctx, model.Kind(42), model.ByID(1), shield, model.LocalizationCodeKorean)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTypeChartFor(t *testing.T) {
	r, _ := resolvertest.New(t)

	assert.Equal(t, typechart.Gen1, r.TypeChartFor(redBlue).ID())
	assert.Equal(t, typechart.Gen2to5, r.TypeChartFor(gen2).ID())
	assert.Equal(t, typechart.Gen6Plus, r.TypeChartFor(model.VersionContext{}).ID())
}

func TestProviderWaitsForTables(t *testing.T) {
	p := resolver.NewProvider(reftabletest.Store(), cache.New(cache.Options{}), resolvertest.NewUpstream(), nil)

	first, err := p.Get(context.Background())
	require.NoError(t, err)
	second, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
