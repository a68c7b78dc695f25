package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

const maxBodySize = 64 << 10

// decodeBody reads an optional JSON body into v.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

type createQuizRequest struct {
	Total   int  `json:"total"`
	Pokemon bool `json:"pokemon"`
}

func (s *Server) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.resolvers.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	total := req.Total
	if total <= 0 {
		total = s.quizTotal
	}
	session := s.quiz.Create(res.Tables(), quiz.Options{
		Total:      total,
		Generation: res.Normalize(versionContext(r)).Generation,
		Lang:       localization(r),
		Pokemon:    req.Pokemon,
	})
	writeData(w, http.StatusCreated, session.Snapshot())
}

func (s *Server) session(r *http.Request) (*quiz.Session, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", chi.URLParam(r, "id"), quiz.ErrSessionNotFound)
	}
	return s.quiz.Get(id)
}

func (s *Server) getQuiz(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, session.Snapshot())
}

func (s *Server) generateQuestion(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q, err := session.Generate()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, q)
}

type answerRequest struct {
	Choice typechart.Bucket `json:"choice"`
}

func (s *Server) answerQuestion(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req := answerRequest{Choice: -1}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := session.Submit(req.Choice)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (s *Server) nextQuestion(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := session.Next()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, snap)
}

func (s *Server) resetQuiz(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	session.Reset()
	writeData(w, http.StatusOK, session.Snapshot())
}
