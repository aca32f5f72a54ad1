// Package config loads chordmap settings from a TOML file and the
// environment.
//
// Every section is optional. Values left out of the file keep the package
// defaults of the component they configure ([rank.DefaultWeights],
// [radial.DefaultOptions]), and environment variables win over the file:
//
//	CHORDMAP_CONFIG     path of the config file
//	CHORDMAP_REDIS_URL  cache.redis_url
//	CHORDMAP_ADDR       server.addr
//	CHORDMAP_CACHE_DIR  cache.dir
//
// Example file:
//
//	[ranking]
//	mode = "color"
//
//	[ranking.weights]
//	mode_bonus = 12
//
//	[layout]
//	iterations = 400
//	node_size = 48
//
//	[display]
//	complexity = 70
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cluster"
	"github.com/parkerchace/MusicTheory-sub000/pkg/filter"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
)

// Environment variables.
const (
	EnvConfig   = "CHORDMAP_CONFIG"
	EnvRedisURL = "CHORDMAP_REDIS_URL"
	EnvAddr     = "CHORDMAP_ADDR"
	EnvCacheDir = "CHORDMAP_CACHE_DIR"
)

// FileName is the config file looked up under the user config directory.
const FileName = "config.toml"

// Config is the full settings tree.
type Config struct {
	Ranking Ranking        `toml:"ranking"`
	Layout  radial.Options `toml:"layout"`
	Display Display        `toml:"display"`
	Cache   Cache          `toml:"cache"`
	Server  Server         `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Ranking selects the ranking profile and distance weights.
type Ranking struct {
	Mode    string       `toml:"mode"`
	Weights rank.Weights `toml:"weights"`
}

// Display holds the menu defaults.
type Display struct {
	Complexity int    `toml:"complexity"`
	Threshold  int    `toml:"threshold"`
	Exhaustive bool   `toml:"exhaustive"`
	Filter     string `toml:"filter"`
}

// Cache configures the result cache. RedisURL wins over Dir.
type Cache struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	TTL      string `toml:"ttl"`
	Disabled bool   `toml:"disabled"`
}

// Server configures the HTTP API.
type Server struct {
	Addr       string `toml:"addr"`
	CORSOrigin string `toml:"cors_origin"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Ranking: Ranking{Mode: string(rank.ModeFunctional), Weights: rank.DefaultWeights()},
		Layout:  radial.DefaultOptions(),
		Display: Display{
			Complexity: 50,
			Threshold:  cluster.DefaultThreshold,
			Filter:     string(filter.ModeAll),
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path, or $CHORDMAP_CONFIG, or the default file if it exists.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		if def, err := DefaultPath(); err == nil {
			path = def
		}
	}

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			if keys := md.Undecoded(); len(keys) > 0 {
				return Config{}, fmt.Errorf("%s: unknown keys: %s", path, joinKeys(keys))
			}
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults without consulting the
// environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("unknown keys: %s", joinKeys(keys))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
}

// Validate checks every section and fills in zero weights.
func (c *Config) Validate() error {
	if _, err := rank.ParseMode(c.Ranking.Mode); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	c.Ranking.Weights = c.Ranking.Weights.Merge(rank.DefaultWeights())

	if err := c.Layout.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if c.Display.Complexity < 0 || c.Display.Complexity > 100 {
		return fmt.Errorf("display: complexity %d out of range 0-100", c.Display.Complexity)
	}
	if c.Display.Threshold < 0 {
		return fmt.Errorf("display: threshold %d is negative", c.Display.Threshold)
	}
	if _, err := filter.ParseMode(c.Display.Filter); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if _, err := c.Cache.TTLDuration(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

// TTLDuration parses Cache.TTL. Empty means zero (use per-entry defaults).
func (c Cache) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("ttl: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ttl %s is negative", c.TTL)
	}
	return d, nil
}

// DefaultPath returns the config file location (~/.config/chordmap/config.toml).
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chordmap", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chordmap", FileName), nil
}

func joinKeys(keys []toml.Key) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = k.String()
	}
	return strings.Join(s, ", ")
}
