package server

import (
	"net/http"

	"github.com/notjagan/pokeguide/pkg/search"
)

func (s *Server) index(r *http.Request) (*search.Index, error) {
	res, err := s.resolvers.Get(r.Context())
	if err != nil {
		return nil, err
	}
	return search.NewBuilder(res, s.cache, s.logger).Build(r.Context(), versionContext(r), localization(r))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, search.FilterByQuery(idx, r.URL.Query().Get("q")))
}

func (s *Server) searchIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, idx)
}
