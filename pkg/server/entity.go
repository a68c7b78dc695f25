package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

func (s *Server) entity(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.resolvers.Get(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		ref := model.ParseRef(chi.URLParam(r, "ref"))
		entity, err := res.Resolve(r.Context(), kind, ref, versionContext(r), localization(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.TagPage(r.Context(), cache.NewKey(kind.String(), entity.Summary().ID).Tags()...)
		writeData(w, http.StatusOK, entity)
	}
}

func (s *Server) list(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.resolvers.Get(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		entities, err := res.List(r.Context(), kind, versionContext(r), localization(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, entities)
	}
}

func (s *Server) encounters(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolvers.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	ref := model.ParseRef(chi.URLParam(r, "ref"))
	encounters, err := res.Encounters(r.Context(), ref, versionContext(r), localization(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if e, err := res.Tables().Resolve(model.KindPokemon, ref); err == nil {
		cache.TagPage(r.Context(), cache.NewKey("pokemon-encounters", e.ID).Tags()...)
	}
	writeData(w, http.StatusOK, encounters)
}

func parseTypes(s string) ([]typechart.Type, error) {
	var types []typechart.Type
	for _, identifier := range splitList(s) {
		t := typechart.Type(identifier)
		if !t.Valid() {
			return nil, &paramError{name: "type", value: identifier}
		}
		types = append(types, t)
	}
	return types, nil
}

type matchup struct {
	Chart      typechart.ChartID `json:"chart"`
	Attack     typechart.Type    `json:"attack"`
	Defenders  []typechart.Type  `json:"defenders,omitempty"`
	Multiplier *float64          `json:"multiplier,omitempty"`
	Bucket     *typechart.Bucket `json:"bucket,omitempty"`
	Profile    typechart.Profile `json:"profile"`
}

// attack profiles one attacking type; with against it also rates the hit
// on that defender set.
func (s *Server) attack(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolvers.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	attack, err := parseTypes(r.URL.Query().Get("type"))
	if err != nil || len(attack) != 1 {
		writeError(w, r, &paramError{name: "type", value: r.URL.Query().Get("type")})
		return
	}
	defenders, err := parseTypes(r.URL.Query().Get("against"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	chart := res.TypeChartFor(versionContext(r))
	out := matchup{
		Chart:     chart.ID(),
		Attack:    attack[0],
		Defenders: defenders,
		Profile:   typechart.AttackProfile(chart, attack[0]),
	}
	if len(defenders) > 0 {
		m := typechart.AttackMultiplier(chart, attack[0], defenders...)
		b := typechart.BucketOf(m)
		out.Multiplier = &m
		out.Bucket = &b
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) defense(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolvers.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	defenders, err := parseTypes(r.URL.Query().Get("types"))
	if err != nil || len(defenders) == 0 || len(defenders) > 2 {
		writeError(w, r, &paramError{name: "types", value: r.URL.Query().Get("types")})
		return
	}

	chart := res.TypeChartFor(versionContext(r))
	writeData(w, http.StatusOK, struct {
		Chart     typechart.ChartID `json:"chart"`
		Defenders []typechart.Type  `json:"defenders"`
		Profile   typechart.Profile `json:"profile"`
	}{chart.ID(), defenders, typechart.DefenseProfile(chart, defenders...)})
}
