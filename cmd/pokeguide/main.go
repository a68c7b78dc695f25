package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/notjagan/pokeguide/pkg/bot"
	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/config"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/reftable"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/server"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal(err)
	}

	if _, err := os.Stat(*configPath); errors.Is(err, os.ErrNotExist) {
		*configPath = ""
	}
	cfg, err := config.Read(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = run(ctx, cfg, newLogger(cfg.Log))
	if err != nil {
		log.Fatal(err)
	}
}

func newLogger(cfg config.Log) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cacheOpts := cache.Options{
		Buster: cfg.Cache.Buster,
		MaxAge: cfg.Cache.MaxAge,
		Logger: logger,
	}

	if cfg.Cache.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		cacheOpts.Memo = cache.NewRedisMemo(client)
	}

	if cfg.Cache.Path != "" {
		store, err := cache.OpenSQLiteStore(ctx, cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		cacheOpts.Persister = store
	}

	coordinator := cache.New(cacheOpts)
	if n := coordinator.Restore(ctx); n > 0 {
		logger.Info("restored query cache", "entries", n)
	}
	stopSweeper, err := coordinator.StartSweeper(cfg.Cache.SweepSchedule)
	if err != nil {
		return err
	}
	defer stopSweeper()

	client, err := pokeapi.NewClient(pokeapi.Options{
		BaseURL:           cfg.Upstream.BaseURL,
		Timeout:           cfg.Upstream.Timeout,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
		Burst:             cfg.Upstream.Burst,
		UserAgent:         cfg.Upstream.UserAgent,
	}, logger)
	if err != nil {
		return err
	}

	provider := resolver.NewProvider(reftable.NewStore(reftable.DirSource(cfg.Reference.Dir), logger), coordinator, client, logger)

	quizzes := quiz.NewManager(cfg.Quiz.IdleTimeout, logger)
	stopEvictor, err := quizzes.StartEvictor(cfg.Quiz.EvictSchedule)
	if err != nil {
		return err
	}
	defer stopEvictor()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv := server.New(server.Options{
			Resolvers:  provider,
			Cache:      coordinator,
			Upstream:   client,
			Quiz:       quizzes,
			Secret:     cfg.Revalidate.Secret,
			QuizTotal:  cfg.Quiz.Total,
			RateLimit:  cfg.Server.RateLimit,
			RateBurst:  cfg.Server.RateBurst,
			TrustProxy: cfg.Server.TrustProxy,
			Logger:     logger,
		})
		return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	})

	if cfg.Discord.Enabled() {
		g.Go(func() error {
			return bot.New(bot.Options{
				Token:         cfg.Discord.Token,
				ResourceGuild: cfg.Discord.ResourceGuild,
				Resolvers:     provider,
				Cache:         coordinator,
				Quizzes:       quizzes,
				Logger:        logger,
			}).Run(ctx)
		})
	} else {
		logger.Info("discord token not set, bot disabled")
	}

	return g.Wait()
}
