package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/resolver/resolvertest"
	"github.com/notjagan/pokeguide/pkg/search"
)

func build(t *testing.T, vc model.VersionContext, lang model.LocalizationCode) *search.Index {
	t.Helper()
	r, _ := resolvertest.New(t)
	b := search.NewBuilder(r, cache.New(cache.Options{}), nil)
	idx, err := b.Build(context.Background(), vc, lang)
	require.NoError(t, err)
	return idx
}

func identifiers(entries []search.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Identifier)
	}
	return out
}

func TestFilterPokemonByGeneration(t *testing.T) {
	tests := []struct {
		name string
		vc   model.VersionContext
		want []string
	}{
		{"red_blue", model.VersionContext{VersionGroup: "red-blue"}, []string{"pikachu", "raichu"}},
		{"gold", model.VersionContext{Game: "gold"}, []string{"pikachu", "raichu", "pichu"}},
		{"latest", model.VersionContext{}, []string{"pikachu", "raichu", "pichu", "raichu-alola"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := build(t, tt.vc, model.LocalizationCodeEnglish)
			assert.Equal(t, tt.want, identifiers(search.FilterPokemonByQuery(idx, "chu")))
		})
	}
}

func TestFilterByQuery(t *testing.T) {
	idx := build(t, model.VersionContext{Generation: 9}, model.LocalizationCodeEnglish)

	res := search.FilterByQuery(idx, "THUNDER")
	assert.Equal(t, []string{"thunder-shock", "thunderbolt", "thunder-wave"}, identifiers(res.Moves))
	assert.Empty(t, res.Pokemon)
	assert.Empty(t, res.Abilities)
	assert.Empty(t, res.Items)

	res = search.FilterByQuery(idx, "master ball")
	assert.Equal(t, []string{"master-ball"}, identifiers(res.Items))
	assert.Equal(t, model.KindItem, res.Items[0].Category)

	assert.Equal(t, []string{"static"}, identifiers(search.FilterAbilitiesByQuery(idx, "stat")))
	assert.Equal(t, []string{"light-ball"}, identifiers(search.FilterItemsByQuery(idx, "light")))
	assert.Equal(t, []string{"thunderbolt"}, identifiers(search.FilterMovesByQuery(idx, "bolt")))
}

func TestFilterKorean(t *testing.T) {
	idx := build(t, model.VersionContext{}, model.LocalizationCodeKorean)

	got := search.FilterPokemonByQuery(idx, "츄")
	assert.Equal(t, []string{"pikachu", "raichu", "pichu", "raichu-alola"}, identifiers(got))
	assert.Equal(t, "알로라 라이츄", got[3].Name)

	assert.Empty(t, search.FilterPokemonByQuery(idx, "pikachu"), "identifiers are not searched")
	assert.Empty(t, search.FilterMovesByQuery(idx, "thunder-shock"))
}

func TestBlankQuery(t *testing.T) {
	idx := build(t, model.VersionContext{}, model.LocalizationCodeEnglish)
	require.NotZero(t, idx.Len())

	for _, q := range []string{"", "   ", "\t"} {
		res := search.FilterByQuery(idx, q)
		assert.Zero(t, res.Len(), "query %q", q)
		assert.NotNil(t, res.Pokemon)
	}
}

func TestFilterEntries(t *testing.T) {
	idx := build(t, model.VersionContext{}, model.LocalizationCodeEnglish)

	assert.Equal(t, idx.Moves, idx.Category(model.KindMove))
	assert.Equal(t, []string{"pichu"}, identifiers(search.Filter(idx.Category(model.KindPokemon), "PICH")))

	types := []search.Entry{{Identifier: "electric", Name: "Electric"}, {Identifier: "fire", Name: "Fire"}}
	assert.Equal(t, []string{"fire"}, identifiers(search.Filter(types, "fi")))
	assert.Empty(t, search.Filter(types, " "))
}

type countingSource struct {
	*resolver.Resolver

	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingSource) List(ctx context.Context, kind model.Kind, vc model.VersionContext, lang model.LocalizationCode) ([]resolver.Entity, error) {
	s.mu.Lock()
	s.calls++
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Resolver.List(ctx, kind, vc, lang)
}

func TestBuildIsCached(t *testing.T) {
	r, _ := resolvertest.New(t)
	src := &countingSource{Resolver: r}
	b := search.NewBuilder(src, cache.New(cache.Options{}), nil)
	ctx := context.Background()

	first, err := b.Build(ctx, model.VersionContext{Game: "sun"}, model.LocalizationCodeEnglish)
	require.NoError(t, err)
	assert.Equal(t, 4, src.calls)

	// Equivalent contexts share one normalised key.
	second, err := b.Build(ctx, model.VersionContext{Game: "sun", Generation: 7}, model.LocalizationCodeEnglish)
	require.NoError(t, err)
	assert.Equal(t, 4, src.calls)
	assert.Equal(t, first, second)

	_, err = b.Build(ctx, model.VersionContext{Game: "sun"}, model.LocalizationCodeKorean)
	require.NoError(t, err)
	assert.Equal(t, 8, src.calls)
}

func TestBuildFailureIsNotCached(t *testing.T) {
	r, _ := resolvertest.New(t)
	src := &countingSource{Resolver: r, err: model.ErrReferenceLoad}
	b := search.NewBuilder(src, cache.New(cache.Options{}), nil)
	ctx := context.Background()

	_, err := b.Build(ctx, model.VersionContext{}, model.LocalizationCodeEnglish)
	assert.True(t, errors.Is(err, model.ErrReferenceLoad))

	src.err = nil
	idx, err := b.Build(ctx, model.VersionContext{}, model.LocalizationCodeEnglish)
	require.NoError(t, err)
	assert.NotEmpty(t, idx.Pokemon)
}

func TestSequence(t *testing.T) {
	var seq search.Sequence

	first := seq.Next()
	assert.True(t, seq.Current(first))

	second := seq.Next()
	assert.False(t, seq.Current(first))
	assert.True(t, seq.Current(second))
}
