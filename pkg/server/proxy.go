package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
)

// proxy forwards /api/pokeapi/<path>?<query> upstream and relays the
// answer unchanged, except that upstream 5xx and transport failures
// become a plain 500.
func (s *Server) proxy(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	resp, err := s.upstream.Forward(r.Context(), path, r.URL.RawQuery)
	if err != nil {
		loggerFrom(r.Context()).WarnContext(r.Context(), "proxy request failed", "path", path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reach upstream api"})
		return
	}
	if resp.StatusCode >= 500 {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": http.StatusText(resp.StatusCode)})
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

type revalidateRequest struct {
	Token string   `json:"token"`
	Tags  []string `json:"tags"`
	Paths []string `json:"paths"`
}

type revalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Message     string `json:"message,omitempty"`
	cache.InvalidationResult
}

// revalidate purges server tier entries by tag and rendered pages by path.
func (s *Server) revalidate(w http.ResponseWriter, r *http.Request) {
	var req revalidateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", model.ErrInvalidInvalidation, err))
		return
	}
	if s.secret != "" && req.Token != s.secret {
		writeError(w, r, model.ErrUnauthorized)
		return
	}
	if len(req.Tags) == 0 && len(req.Paths) == 0 {
		writeJSON(w, http.StatusOK, revalidateResponse{Message: "nothing to revalidate"})
		return
	}

	res, err := s.cache.Invalidate(r.Context(), req.Tags, req.Paths)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revalidateResponse{Revalidated: true, InvalidationResult: res})
}
