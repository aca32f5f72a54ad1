package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerchace/MusicTheory-sub000/pkg/config"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvRedisURL, "")
	t.Setenv(config.EnvAddr, "")
	t.Setenv(config.EnvCacheDir, "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, rank.DefaultWeights(), cfg.Ranking.Weights)
	assert.Equal(t, 250, cfg.Layout.Iterations)
	assert.Equal(t, 50, cfg.Display.Complexity)
	assert.Equal(t, 3, cfg.Display.Threshold)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "chordmap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ranking]
mode = "color"

[ranking.weights]
mode_bonus = 12

[layout]
mode = "quadrant"
iterations = 400
node_size = 48

[display]
complexity = 70
exhaustive = true

[cache]
dir = "/tmp/chordmap"
ttl = "12h"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "color", cfg.Ranking.Mode)
	assert.Equal(t, 12.0, cfg.Ranking.Weights.ModeBonus)
	assert.Equal(t, 10.0, cfg.Ranking.Weights.Family)
	assert.Equal(t, radial.ModeQuadrant, cfg.Layout.Mode)
	assert.Equal(t, 400, cfg.Layout.Iterations)
	assert.Equal(t, 48.0, cfg.Layout.NodeSize)
	assert.Equal(t, 0.08, cfg.Layout.Attraction)
	assert.Equal(t, 70, cfg.Display.Complexity)
	assert.True(t, cfg.Display.Exhaustive)

	ttl, err := cfg.Cache.TTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, ttl)
}

func TestLoadDefaultPath(t *testing.T) {
	isolate(t)
	def, err := config.DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(def), 0o755))
	require.NoError(t, os.WriteFile(def, []byte("[server]\naddr = \":9000\"\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, def, cfg.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadMissingExplicit(t *testing.T) {
	isolate(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644))

	t.Setenv(config.EnvConfig, path)
	t.Setenv(config.EnvAddr, ":7000")
	t.Setenv(config.EnvRedisURL, "redis://localhost:6379/1")
	t.Setenv(config.EnvCacheDir, "/var/cache/chordmap")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Cache.RedisURL)
	assert.Equal(t, "/var/cache/chordmap", cfg.Cache.Dir)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[ranking"},
		{"unknown key", "[display]\ncolour = 1\n"},
		{"bad ranking", "[ranking]\nmode = \"loud\"\n"},
		{"bad layout mode", "[layout]\nmode = \"spiral\"\n"},
		{"empty radius band", "[layout]\nmin_radius = 400\n"},
		{"complexity", "[display]\ncomplexity = 101\n"},
		{"filter", "[display]\nfilter = \"weird\"\n"},
		{"ttl", "[cache]\nttl = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestParseZeroWeightsFallBack(t *testing.T) {
	cfg, err := config.Parse("[ranking.weights]\ntier = 0\ngood = 6\n")
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Ranking.Weights.Tier)
	assert.Equal(t, 6.0, cfg.Ranking.Weights.Good)
}
