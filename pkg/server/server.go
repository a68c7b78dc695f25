package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/resolver"
)

// Resolvers hands out the resolver once reference data is available.
type Resolvers interface {
	Get(ctx context.Context) (*resolver.Resolver, error)
}

// Forwarder performs proxied upstream reads.
type Forwarder interface {
	Forward(ctx context.Context, path, rawQuery string) (*pokeapi.Response, error)
}

type Options struct {
	Resolvers Resolvers
	Cache     *cache.Coordinator
	Upstream  Forwarder
	Quiz      *quiz.Manager
	// Secret guards the invalidation endpoint when set.
	Secret    string
	QuizTotal int
	// RateLimit is requests per second per client; zero disables it.
	RateLimit float64
	RateBurst int
	// TrustProxy lets proxy headers name the client in logs and rate
	// limiting.
	TrustProxy bool
	Logger     *slog.Logger
}

type Server struct {
	resolvers  Resolvers
	cache      *cache.Coordinator
	upstream   Forwarder
	quiz       *quiz.Manager
	secret     string
	quizTotal  int
	trustProxy bool
	limiter    *RateLimiter
	logger     *slog.Logger
	router     chi.Router
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Quiz == nil {
		opts.Quiz = quiz.NewManager(0, opts.Logger)
	}

	s := &Server{
		resolvers:  opts.Resolvers,
		cache:      opts.Cache,
		upstream:   opts.Upstream,
		quiz:       opts.Quiz,
		secret:     opts.Secret,
		quizTotal:  opts.QuizTotal,
		trustProxy: opts.TrustProxy,
		logger:     opts.Logger,
	}
	if opts.RateLimit > 0 {
		s.limiter = NewRateLimiter(opts.RateLimit, opts.RateBurst, opts.TrustProxy)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(StructuredLogger(s.logger, s.trustProxy))
	r.Use(PanicRecovery)
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}
	r.Use(chimw.CleanPath)

	r.Get("/healthz", s.healthz)

	pages := s.cache.Pages()
	r.Route("/api", func(r chi.Router) {
		for _, kind := range model.KindValues() {
			ns := kind.String()
			r.Get("/"+ns, s.list(kind))
			r.With(pages.Middleware(ns)).Get("/"+ns+"/{ref}", s.entity(kind))
		}
		r.With(pages.Middleware("pokemon-encounters")).Get("/pokemon/{ref}/encounters", s.encounters)

		r.Get("/search", s.search)
		r.Get("/search/index", s.searchIndex)

		r.Get("/types/attack", s.attack)
		r.Get("/types/defense", s.defense)

		r.Route("/quiz", func(r chi.Router) {
			r.Post("/", s.createQuiz)
			r.Get("/{id}", s.getQuiz)
			r.Post("/{id}/generate", s.generateQuestion)
			r.Post("/{id}/answer", s.answerQuestion)
			r.Post("/{id}/next", s.nextQuestion)
			r.Post("/{id}/reset", s.resetQuiz)
		})

		r.With(pages.Middleware("proxy")).Get("/pokeapi/*", s.proxy)
		r.Post("/revalidate", s.revalidate)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if s.limiter != nil {
		go s.pruneClients(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error while serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error while shutting down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pruneClients(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.limiter.Prune()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	_, err := s.resolvers.Get(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "reference": err == nil})
}
