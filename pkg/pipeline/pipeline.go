// Package pipeline runs the chordmap menu pipeline.
//
// This package wires the engine packages into the one flow every entry point
// uses, so the CLI, the HTTP server and the interactive browser always agree.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Generate: propose substitutions for a chord and grade them
//     ([substitution], [rank])
//  2. Menu: filter to the visible set, cluster it and lay it out
//     ([filter], [cluster], [radial])
//  3. Render: export the menu as JSON, DOT, SVG, PDF or PNG ([render])
//
// Each stage can be run on its own or through [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Chord:   "G7",
//	    Key:     "C",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Results are pure functions of the defaulted options, which is what makes
// them safe to cache. Nothing from a previous run is reused except through
// the cache.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cache"
	"github.com/parkerchace/MusicTheory-sub000/pkg/cluster"
	"github.com/parkerchace/MusicTheory-sub000/pkg/errors"
	"github.com/parkerchace/MusicTheory-sub000/pkg/filter"
	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
	"github.com/parkerchace/MusicTheory-sub000/pkg/render"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultKey is the key used when none is given.
	DefaultKey = "C"

	// DefaultScale is the scale used when none is given.
	DefaultScale = string(theory.Major)

	// DefaultComplexity is the complexity used when none is given. Values up
	// to 20 all give the minimum cap.
	DefaultComplexity = 50

	// DefaultSeed seeds layout jitter and surprise sampling.
	DefaultSeed = uint64(42)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Chord   string       `json:"chord"`
	Key     string       `json:"key,omitempty"`
	Scale   string       `json:"scale,omitempty"`
	Passing string       `json:"passing,omitempty"` // target chord; builds a passing menu from Chord into it
	Ranking string       `json:"ranking,omitempty"`
	Weights rank.Weights `json:"weights,omitempty"`

	// Menu options
	Filter     string  `json:"filter,omitempty"`
	Layout     string  `json:"layout,omitempty"`
	Exhaustive bool    `json:"exhaustive,omitempty"`
	Complexity int     `json:"complexity,omitempty"`
	Threshold  int     `json:"threshold,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Params radial.Options `json:"-"` // base layout parameters, usually from config
	Rand   *rand.Rand     `json:"-"` // overrides the seeded surprise sampler; disables menu caching
	Logger *log.Logger    `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Candidates is the full graded candidate list.
	Candidates []substitution.Candidate

	// Menu is the laid-out menu.
	Menu menu.Menu

	// MenuHash is the content hash of the serialized menu.
	MenuHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Candidates   int
	Visible      int
	GenerateTime time.Duration
	MenuTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool
	MenuHit     bool
	RenderHit   bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !render.ValidFormat(f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, pdf, png)", f)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForMenu(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks the chord, tonal context and ranking.
func (o *Options) ValidateForGenerate() error {
	if o.Chord == "" {
		return errors.New(errors.ErrCodeInvalidInput, "chord is required")
	}
	if err := errors.ValidateChordSymbol(o.Chord); err != nil {
		return err
	}
	if o.Passing != "" {
		if err := errors.ValidateChordSymbol(o.Passing); err != nil {
			return err
		}
	}
	if o.Key == "" {
		o.Key = DefaultKey
	}
	if err := errors.ValidatePitchName(o.Key); err != nil {
		return err
	}
	if o.Scale == "" {
		o.Scale = DefaultScale
	}
	s, ok := theory.ParseScale(o.Scale)
	if !ok {
		return errors.ValidateScale(o.Scale)
	}
	o.Scale = string(s)

	m, err := rank.ParseMode(o.Ranking)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "ranking")
	}
	o.Ranking = string(m)
	o.Weights = o.Weights.Merge(rank.DefaultWeights())

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForMenu checks filter and layout settings.
func (o *Options) ValidateForMenu() error {
	fm, err := filter.ParseMode(o.Filter)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "filter")
	}
	o.Filter = string(fm)

	if o.Layout == "" {
		o.Layout = string(o.Params.Mode)
	}
	lm, err := radial.ParseMode(o.Layout)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "layout")
	}
	o.Layout = string(lm)

	if o.Complexity == 0 {
		o.Complexity = DefaultComplexity
	}
	if err := errors.ValidateComplexity(o.Complexity); err != nil {
		return err
	}
	if o.Threshold == 0 {
		o.Threshold = cluster.DefaultThreshold
	}
	if o.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "threshold must be positive")
	}
	if !finite(o.Width) || !finite(o.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "viewport %gx%g is not a finite size", o.Width, o.Height)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport %gx%g is negative", o.Width, o.Height)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	lo := o.LayoutOptions()
	if err := lo.ValidateAndSetDefaults(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "layout parameters")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateForRender checks the output formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatJSON}
	}
	return ValidateFormats(o.Formats)
}

// IsPassing reports whether this run builds a passing-chord menu.
func (o *Options) IsPassing() bool { return o.Passing != "" }

// LayoutOptions returns the radial options for this run: Params with the
// run's mode, viewport and seed applied.
func (o *Options) LayoutOptions() radial.Options {
	ro := o.Params
	ro.Mode = radial.Mode(o.Layout)
	if o.Width > 0 {
		ro.Width = o.Width
	}
	if o.Height > 0 {
		ro.Height = o.Height
	}
	ro.Seed = o.Seed
	ro.Logger = o.Logger
	return ro
}

// SubstitutionKeyOpts returns cache key options for the graded list.
func (o *Options) SubstitutionKeyOpts() cache.SubstitutionKeyOpts {
	return cache.SubstitutionKeyOpts{
		Chord:   o.Chord,
		Key:     o.Key,
		Scale:   o.Scale,
		Ranking: o.Ranking,
		Passing: o.Passing,
		Weights: cache.HashJSON(o.Weights),
	}
}

// MenuKeyOpts returns cache key options for the laid-out menu.
func (o *Options) MenuKeyOpts() cache.MenuKeyOpts {
	params := o.LayoutOptions()
	params.Logger, params.Rand = nil, nil
	return cache.MenuKeyOpts{
		SubstitutionKeyOpts: o.SubstitutionKeyOpts(),
		Filter:              o.Filter,
		Layout:              o.Layout,
		Exhaustive:          o.Exhaustive,
		Complexity:          o.Complexity,
		Threshold:           o.Threshold,
		Width:               o.Width,
		Height:              o.Height,
		Seed:                o.Seed,
		Params:              cache.HashJSON(params),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
}

// String describes the run for log lines.
func (o *Options) String() string {
	s := fmt.Sprintf("%s in %s %s", o.Chord, o.Key, o.Scale)
	if o.IsPassing() {
		s = fmt.Sprintf("%s → %s in %s %s", o.Chord, o.Passing, o.Key, o.Scale)
	}
	return s
}
