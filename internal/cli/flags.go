package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/parkerchace/MusicTheory-sub000/pkg/filter"
	"github.com/parkerchace/MusicTheory-sub000/pkg/pipeline"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
)

// contextFlags holds the tonal context shared by every command that takes a
// chord.
type contextFlags struct {
	key     string
	scale   string
	ranking string
	noCache bool
}

func (f *contextFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.key, "key", "k", pipeline.DefaultKey, "key tonic")
	fs.StringVarP(&f.scale, "scale", "s", pipeline.DefaultScale, "scale or mode of the key")
	fs.StringVarP(&f.ranking, "ranking", "r", "", "ranking mode: "+joinModes(rank.Modes()))
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
}

// apply copies set flags onto opts. Unset ranking keeps the config value.
func (f *contextFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	opts.Key = f.key
	opts.Scale = f.scale
	if fs.Changed("ranking") {
		opts.Ranking = f.ranking
	}
}

// menuFlags holds display and layout settings.
type menuFlags struct {
	filter     string
	layout     string
	exhaustive bool
	complexity int
	threshold  int
	width      float64
	height     float64
	seed       uint64
}

func (f *menuFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.filter, "filter", "f", "", "intent filter: "+joinModes(filter.Modes()))
	fs.StringVarP(&f.layout, "layout", "l", "", "layout mode: "+joinModes([]radial.Mode{radial.ModeAuto, radial.ModeQuadrant}))
	fs.BoolVarP(&f.exhaustive, "exhaustive", "x", false, "show every candidate instead of the complexity cap")
	fs.IntVarP(&f.complexity, "complexity", "c", 0, "complexity 0-100 controlling how many nodes are shown")
	fs.IntVar(&f.threshold, "threshold", 0, "smallest family size that collapses into a cluster node")
	fs.Float64Var(&f.width, "width", 0, "viewport width")
	fs.Float64Var(&f.height, "height", 0, "viewport height")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for layout jitter and surprise sampling")
}

// apply copies changed flags onto opts so config defaults survive.
func (f *menuFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("filter") {
		opts.Filter = f.filter
	}
	if fs.Changed("layout") {
		opts.Layout = f.layout
	}
	if fs.Changed("exhaustive") {
		opts.Exhaustive = f.exhaustive
	}
	if fs.Changed("complexity") {
		opts.Complexity = f.complexity
	}
	if fs.Changed("threshold") {
		opts.Threshold = f.threshold
	}
	opts.Width = f.width
	opts.Height = f.height
	opts.Seed = f.seed
}

func joinModes[M ~string](modes []M) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// menuTitle is the heading printed above a menu.
func menuTitle(opts pipeline.Options) string {
	return fmt.Sprintf("%s  %s", opts.String(), StyleDim.Render(opts.Filter+" · "+opts.Layout))
}
