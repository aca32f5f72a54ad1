package pipeline

import (
	"math/rand/v2"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cluster"
	"github.com/parkerchace/MusicTheory-sub000/pkg/filter"
	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// BuildMenu filters graded candidates to the visible set, clusters it and
// lays it out. Hidden candidates become a single "more" node.
func BuildMenu(a Analysis, graded []substitution.Candidate, opts Options) menu.Menu {
	fr := filter.Apply(graded, filter.Options{
		Mode:       filter.Mode(opts.Filter),
		Exhaustive: opts.Exhaustive,
		Complexity: opts.Complexity,
		ScaleNotes: a.Tonality.ScaleNotes(),
		Rand:       opts.sampler(),
	})

	groups := cluster.Group(fr.Visible, opts.Threshold)
	items := radial.Items(groups.Units(), fr.Hidden)
	lay := radial.Layout(items, opts.LayoutOptions())

	kind := menu.KindSubstitutions
	if a.Target != nil {
		kind = menu.KindPassing
	}
	m := menu.Menu{
		Kind:       kind,
		Key:        opts.Key,
		Scale:      opts.Scale,
		Ranking:    opts.Ranking,
		Filter:     opts.Filter,
		Layout:     opts.Layout,
		Exhaustive: opts.Exhaustive,
		Complexity: opts.Complexity,
		Width:      opts.Width,
		Height:     opts.Height,
		MaxRadius:  lay.MaxRadius,
		Center:     menu.FromChord(a.Chord, a.Context.Diatonic),
		Nodes:      lay.Nodes,
		Edges:      menu.Connect(lay.Nodes),
		Stats: menu.Stats{
			Candidates: len(graded),
			Visible:    len(fr.Visible),
			Hidden:     len(fr.Hidden),
			Clusters:   len(groups.SurfacedClusters()),
			Iterations: lay.Iterations,
			Converged:  lay.Converged,
		},
	}
	if a.Target != nil {
		t := menu.FromChord(*a.Target, a.Tonality.InScale(a.Target.Notes))
		m.Target = &t
	}
	return m
}

// sampler returns the surprise RNG: the injected one, or one seeded from Seed.
func (o *Options) sampler() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
}
