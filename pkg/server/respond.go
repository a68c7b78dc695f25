package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/quiz"
)

var errBadRequest = errors.New("bad request")

type apiError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type envelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data})
}

// classify maps the error taxonomy onto a status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrReferenceLoad):
		return http.StatusServiceUnavailable, "REFERENCE_UNAVAILABLE"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, model.ErrInvalidInvalidation):
		return http.StatusBadRequest, "INVALID_INVALIDATION"
	case errors.Is(err, quiz.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, quiz.ErrInvalidChoice), errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "BAD_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	logger := loggerFrom(r.Context())
	if status >= 500 {
		logger.ErrorContext(r.Context(), "request failed", slog.String("code", code), slog.Any("error", err))
	} else {
		logger.DebugContext(r.Context(), "request rejected", slog.String("code", code), slog.Any("error", err))
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "an unexpected error occurred"
	}
	writeJSON(w, status, apiError{Code: code, Error: msg})
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s parameter %q", e.name, e.value)
}

func (e *paramError) Unwrap() error {
	return errBadRequest
}
