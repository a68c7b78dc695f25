package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/config"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := config.Read("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Upstream.BaseURL)
	assert.Equal(t, 10, cfg.Quiz.Total)
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.MaxAge)
	assert.False(t, cfg.Discord.Enabled())
}

func TestReadFileAndEnv(t *testing.T) {
	path := writeFile(t, `
[server]
addr = ":9000"
rate_limit = 5.0

[cache]
path = "/var/lib/pokeguide/cache.db"
buster = "v2"
sweep_schedule = "*/10 * * * *"

[quiz]
total = 5
idle_timeout = "10m"

[discord]
token = "from-file"
`)
	t.Setenv("POKEGUIDE_DISCORD_TOKEN", "from-env")
	t.Setenv("POKEGUIDE_REVALIDATE_SECRET", "s3cret")
	t.Setenv("POKEGUIDE_UPSTREAM_TIMEOUT", "3s")

	cfg, err := config.Read(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.Equal(t, "/var/lib/pokeguide/cache.db", cfg.Cache.Path)
	assert.Equal(t, "v2", cfg.Cache.Buster)
	assert.Equal(t, 5, cfg.Quiz.Total)
	assert.Equal(t, 10*time.Minute, cfg.Quiz.IdleTimeout)
	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, "s3cret", cfg.Revalidate.Secret)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, "@every 1m", cfg.Quiz.EvictSchedule)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"schedule", "[cache]\nsweep_schedule = \"every tuesday\"\n"},
		{"base_url", "[upstream]\nbase_url = \"pokeapi\"\n"},
		{"quiz_total", "[quiz]\ntotal = 0\n"},
		{"log_level", "[log]\nlevel = \"loud\"\n"},
		{"log_format", "[log]\nformat = \"xml\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Read(writeFile(t, tt.contents))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := config.Read(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
