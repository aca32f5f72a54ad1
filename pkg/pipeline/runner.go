package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cache"
	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/observability"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the server and the browser all use it.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → menu → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	start := time.Now()
	cands, hit, err := r.SubstitutionsWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Candidates = cands
	result.Stats.Candidates = len(cands)
	result.Stats.GenerateTime = time.Since(start)
	result.CacheInfo.GenerateHit = hit

	r.Logger.Info("generated substitutions",
		"chord", opts.String(),
		"candidates", len(cands),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Menu
	start = time.Now()
	m, hit, err := r.MenuWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Menu = m
	result.Stats.Visible = m.Stats.Visible
	result.Stats.MenuTime = time.Since(start)
	result.CacheInfo.MenuHit = hit
	if data, err := menu.Marshal(m); err == nil {
		result.MenuHash = cache.Hash(data)
	}

	r.Logger.Info("computed menu",
		"nodes", len(m.Nodes),
		"hidden", m.Stats.Hidden,
		"iterations", m.Stats.Iterations,
		"duration", result.Stats.MenuTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SubstitutionsWithCacheInfo generates and grades candidates with caching
// and reports whether the result came from the cache.
func (r *Runner) SubstitutionsWithCacheInfo(ctx context.Context, opts Options) ([]substitution.Candidate, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.SubstitutionsKey(opts.SubstitutionKeyOpts())
	var cached []substitution.Candidate
	if r.lookup(ctx, "substitutions", key, opts.Refresh, &cached) {
		return cached, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Chord)
	start := time.Now()

	a, err := Analyze(opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Chord, 0, time.Since(start), err)
		return nil, false, err
	}
	cands := Generate(a, opts)
	hooks.OnGenerateComplete(ctx, opts.Chord, len(cands), time.Since(start), nil)

	r.store(ctx, "substitutions", key, cands, r.ttl(cache.TTLSubstitutions))
	return cands, false, nil
}

// Substitutions is a convenience wrapper that discards the cache hit info.
func (r *Runner) Substitutions(ctx context.Context, opts Options) ([]substitution.Candidate, error) {
	cands, _, err := r.SubstitutionsWithCacheInfo(ctx, opts)
	return cands, err
}

// MenuWithCacheInfo builds a laid-out menu with caching. Menus built with an
// injected Rand are never cached since they are not a function of the options.
func (r *Runner) MenuWithCacheInfo(ctx context.Context, opts Options) (menu.Menu, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return menu.Menu{}, false, err
	}
	if err := opts.ValidateForMenu(); err != nil {
		return menu.Menu{}, false, err
	}

	cacheable := opts.Rand == nil
	key := r.Keyer.MenuKey(opts.MenuKeyOpts())
	var cached menu.Menu
	if cacheable && r.lookup(ctx, "menu", key, opts.Refresh, &cached) {
		return cached, true, nil
	}

	a, err := Analyze(opts)
	if err != nil {
		return menu.Menu{}, false, err
	}
	graded, _, err := r.SubstitutionsWithCacheInfo(ctx, opts)
	if err != nil {
		return menu.Menu{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Layout, len(graded))
	start := time.Now()
	m := BuildMenu(a, graded, opts)
	hooks.OnLayoutComplete(ctx, opts.Layout, m.Stats.Iterations, time.Since(start), nil)

	if cacheable {
		r.store(ctx, "menu", key, m, r.ttl(cache.TTLMenu))
	}
	return m, false, nil
}

// Menu is a convenience wrapper that discards the cache hit info.
func (r *Runner) Menu(ctx context.Context, opts Options) (menu.Menu, error) {
	m, _, err := r.MenuWithCacheInfo(ctx, opts)
	return m, err
}

// RenderWithCacheInfo renders artifacts with caching and reports whether all
// of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m menu.Menu, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := menu.Marshal(m)
	if err != nil {
		return nil, false, fmt.Errorf("serialize menu for cache key: %w", err)
	}
	menuHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if opts.Refresh {
			break
		}
		key := r.Keyer.ArtifactKey(menuHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, m, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(menuHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m menu.Menu, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup decodes a cached JSON value into v. Decode failures count as misses
// and fall through to recompute.
func (r *Runner) lookup(ctx context.Context, kind, key string, refresh bool, v any) bool {
	if refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "kind", kind, "error", err)
	}
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, kind)
		return false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return true
}

func (r *Runner) store(ctx context.Context, kind, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
