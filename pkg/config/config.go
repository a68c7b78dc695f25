package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// EnvPrefix prefixes every environment override, e.g. POKEGUIDE_SERVER_ADDR.
const EnvPrefix = "POKEGUIDE_"

var ErrInvalidConfig = errors.New("invalid config")

type Server struct {
	Addr         string        `toml:"addr" env:"ADDR"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	// RateLimit is requests per second per client address. Zero disables
	// limiting.
	RateLimit float64 `toml:"rate_limit" env:"RATE_LIMIT"`
	RateBurst int     `toml:"rate_burst" env:"RATE_BURST"`
	// TrustProxy honours X-Forwarded-For; enable only behind a reverse proxy.
	TrustProxy bool `toml:"trust_proxy" env:"TRUST_PROXY"`
}

type Upstream struct {
	BaseURL           string        `toml:"base_url" env:"BASE_URL"`
	Timeout           time.Duration `toml:"timeout" env:"TIMEOUT"`
	RequestsPerSecond float64       `toml:"requests_per_second" env:"REQUESTS_PER_SECOND"`
	Burst             int           `toml:"burst" env:"BURST"`
	UserAgent         string        `toml:"user_agent" env:"USER_AGENT"`
}

type Reference struct {
	// Dir holds one CSV file per reference table.
	Dir string `toml:"dir" env:"DIR"`
}

type Cache struct {
	// Path is the SQLite database of the persisted tier. Empty disables
	// persistence.
	Path string `toml:"path" env:"PATH"`
	// RedisURL switches the server tier to a shared Redis memo.
	RedisURL string `toml:"redis_url" env:"REDIS_URL"`
	// Buster invalidates every persisted snapshot when changed.
	Buster        string        `toml:"buster" env:"BUSTER"`
	MaxAge        time.Duration `toml:"max_age" env:"MAX_AGE"`
	SweepSchedule string        `toml:"sweep_schedule" env:"SWEEP_SCHEDULE"`
}

type Revalidate struct {
	Secret string `toml:"secret" env:"SECRET"`
}

type Quiz struct {
	Total         int           `toml:"total" env:"TOTAL"`
	IdleTimeout   time.Duration `toml:"idle_timeout" env:"IDLE_TIMEOUT"`
	EvictSchedule string        `toml:"evict_schedule" env:"EVICT_SCHEDULE"`
}

type Discord struct {
	Token string `toml:"token" env:"TOKEN"`
	// ResourceGuild holds the custom type emojis.
	ResourceGuild string `toml:"resource_guild" env:"RESOURCE_GUILD"`
}

type Log struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"`
}

type Config struct {
	Server     Server     `toml:"server" envPrefix:"SERVER_"`
	Upstream   Upstream   `toml:"upstream" envPrefix:"UPSTREAM_"`
	Reference  Reference  `toml:"reference" envPrefix:"REFERENCE_"`
	Cache      Cache      `toml:"cache" envPrefix:"CACHE_"`
	Revalidate Revalidate `toml:"revalidate" envPrefix:"REVALIDATE_"`
	Quiz       Quiz       `toml:"quiz" envPrefix:"QUIZ_"`
	Discord    Discord    `toml:"discord" envPrefix:"DISCORD_"`
	Log        Log        `toml:"log" envPrefix:"LOG_"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateBurst:    20,
		},
		Upstream: Upstream{
			BaseURL:   "https://pokeapi.co/api/v2",
			Timeout:   10 * time.Second,
			Burst:     10,
			UserAgent: "pokeguide",
		},
		Reference: Reference{Dir: "data"},
		Cache: Cache{
			Path:          "pokeguide.db",
			MaxAge:        7 * 24 * time.Hour,
			SweepSchedule: "@every 5m",
		},
		Quiz: Quiz{
			Total:         10,
			IdleTimeout:   30 * time.Minute,
			EvictSchedule: "@every 1m",
		},
		Log: Log{Level: "info", Format: "json"},
	}
}

// Read loads the TOML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("error while reading config file %q: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error while reading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(cfg.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("upstream.base_url %q is not an absolute url", cfg.Upstream.BaseURL))
	}
	if cfg.Reference.Dir == "" {
		errs = append(errs, errors.New("reference.dir is required"))
	}
	for name, schedule := range map[string]string{
		"cache.sweep_schedule": cfg.Cache.SweepSchedule,
		"quiz.evict_schedule":  cfg.Quiz.EvictSchedule,
	} {
		if _, err := cron.ParseStandard(schedule); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", name, schedule, err))
		}
	}
	if cfg.Quiz.Total <= 0 {
		errs = append(errs, fmt.Errorf("quiz.total must be positive, got %d", cfg.Quiz.Total))
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format %q must be json or text", cfg.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", l.Level, err)
	}
	return level, nil
}

func (d Discord) Enabled() bool {
	return d.Token != ""
}
