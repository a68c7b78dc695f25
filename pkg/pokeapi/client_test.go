package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
)

func newTestClient(t *testing.T, handler http.Handler) *pokeapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := pokeapi.NewClient(pokeapi.Options{BaseURL: srv.URL + "/api/v2/"}, nil)
	require.NoError(t, err)
	return client
}

func TestGetRaw(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/pokemon/25", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":25,"name":"pikachu","types":[{"slot":1,"type":{"name":"electric","url":"https://pokeapi.co/api/v2/type/13/"}}]}`))
	})
	mux.HandleFunc("/api/v2/pokemon/0", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/v2/move/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/api/v2/item/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	raw, err := client.GetRaw(ctx, pokeapi.ResourcePath("pokemon", 25))
	require.NoError(t, err)
	p, err := pokeapi.Decode[pokeapi.Pokemon](raw)
	require.NoError(t, err)
	assert.Equal(t, "pikachu", p.Name)
	assert.Equal(t, 13, p.Types[0].Type.ID())

	_, err = client.GetRaw(ctx, "pokemon/0")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NotErrorIs(t, err, model.ErrUpstreamUnavailable)

	_, err = client.GetRaw(ctx, "move/1")
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)

	raw, err = client.GetRaw(ctx, "item/1")
	require.NoError(t, err)
	_, err = pokeapi.Decode[pokeapi.Item](raw)
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestGetRawTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := pokeapi.NewClient(pokeapi.Options{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.GetRaw(context.Background(), "pokemon/25")
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestForwardPassesStatusAndQuery(t *testing.T) {
	var gotQuery atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`"Not Found"`))
	}))

	resp, err := client.Forward(context.Background(), "pokemon", "limit=20&offset=40")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, `"Not Found"`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "limit=20&offset=40", gotQuery.Load())
}

func TestResourcePath(t *testing.T) {
	assert.Equal(t, "pokemon/25", pokeapi.ResourcePath("pokemon", 25))
	assert.Equal(t, "pokemon/25/encounters", pokeapi.ResourcePath("pokemon", 25, "encounters"))
	assert.Equal(t, "move/thunder-wave", pokeapi.ResourcePath("move", "thunder-wave"))
}

func TestNames(t *testing.T) {
	names := pokeapi.Names([]pokeapi.Name{
		{Name: "피카츄", Language: model.NamedResource{Name: "ko"}},
		{Name: "Pikachu", Language: model.NamedResource{Name: "en"}},
	})
	assert.Equal(t, "피카츄", names.Localize(model.LocalizationCodeKorean, "pikachu"))
	assert.Equal(t, "Pikachu", names.Localize(model.LocalizationCodeEnglish, "pikachu"))
}
