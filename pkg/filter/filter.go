// Package filter selects which graded candidates are shown.
//
// Selection runs in two steps. An intent filter ([Mode]) narrows the graded
// list, then a complexity-derived cap splits the result into a visible
// prefix of the distance-sorted list and a hidden overflow. Exhaustive mode
// skips the cap.
package filter

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// Mode is an intent filter.
type Mode string

// Intent filters.
const (
	ModeAll        Mode = "all"
	ModeDiatonic   Mode = "diatonic"
	ModeColor      Mode = "color"
	ModeChromatic  Mode = "chromatic"
	ModeContainers Mode = "containers"
	ModeSurprise   Mode = "surprise"
)

// Modes returns every intent filter.
func Modes() []Mode {
	return []Mode{ModeAll, ModeDiatonic, ModeColor, ModeChromatic, ModeContainers, ModeSurprise}
}

// ParseMode resolves a filter name. The empty string means all.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeAll, nil
	}
	if slices.Contains(Modes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown filter mode %q", s)
}

const (
	minCap   = 6
	maxCap   = 28
	minScale = 0.2

	// DefaultComplexity is used when callers do not set one.
	DefaultComplexity = 50

	// SurpriseTier is the lowest internal tier surprise draws from
	// ("tier 4/5" and above).
	SurpriseTier = 3

	surpriseMin    = 5
	surpriseSpread = 4
)

// exotic types count as chromatic regardless of their notes.
var exotic = []substitution.Type{
	substitution.TritoneSub,
	substitution.DiminishedApproach,
	substitution.ChromaticMediant,
	substitution.Neapolitan,
}

// Options control a filter pass.
type Options struct {
	Mode       Mode
	Exhaustive bool

	// Complexity in [0,100] scales the cap.
	Complexity int

	// ScaleNotes is the active scale, used by diatonic and chromatic.
	ScaleNotes []string

	// Rand drives surprise sampling. Nil draws from an unseeded source.
	Rand *rand.Rand
}

// Result is the outcome of a filter pass.
type Result struct {
	Visible []substitution.Candidate `json:"visible"`
	Hidden  []substitution.Candidate `json:"hidden"`
	Cap     int                      `json:"cap"`
}

// Cap returns the number of visible candidates for a complexity.
func Cap(complexity int) int {
	scale := math.Max(minScale, math.Min(1, float64(complexity)/100))
	return max(minCap, int(math.Round(maxCap*scale)))
}

// Apply runs the intent filter then the cap.
func Apply(cands []substitution.Candidate, opts Options) Result {
	kept := Intent(cands, opts)
	return Split(kept, opts.Exhaustive, opts.Complexity)
}

// Split sorts by harmonic distance and cuts at the cap. With exhaustive set
// everything is visible.
func Split(cands []substitution.Candidate, exhaustive bool, complexity int) Result {
	sorted := slices.Clone(cands)
	rank.Sort(sorted)
	r := Result{Cap: len(sorted), Visible: sorted, Hidden: []substitution.Candidate{}}
	if exhaustive {
		return r
	}
	r.Cap = Cap(complexity)
	if len(sorted) > r.Cap {
		r.Visible, r.Hidden = sorted[:r.Cap], sorted[r.Cap:]
	}
	return r
}

// Intent applies the intent filter, preserving input order.
func Intent(cands []substitution.Candidate, opts Options) []substitution.Candidate {
	switch opts.Mode {
	case ModeDiatonic:
		return keep(cands, func(c substitution.Candidate) bool {
			return theory.Contains(opts.ScaleNotes, c.Notes)
		})
	case ModeColor:
		return keep(cands, func(c substitution.Candidate) bool {
			switch c.Family {
			case substitution.FamilyModal, substitution.FamilyMediant, substitution.FamilyExtension:
				return true
			}
			return false
		})
	case ModeChromatic:
		return keep(cands, func(c substitution.Candidate) bool {
			return slices.Contains(exotic, c.Type) || !theory.Contains(opts.ScaleNotes, c.Notes)
		})
	case ModeContainers:
		return keep(cands, func(c substitution.Candidate) bool {
			return c.Type == substitution.Container
		})
	case ModeSurprise:
		return surprise(cands, opts.Rand)
	}
	return slices.Clone(cands)
}

func keep(cands []substitution.Candidate, pred func(substitution.Candidate) bool) []substitution.Candidate {
	out := []substitution.Candidate{}
	for _, c := range cands {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// surprise samples 5 to 8 outer-tier candidates.
func surprise(cands []substitution.Candidate, rng *rand.Rand) []substitution.Candidate {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pool := keep(cands, func(c substitution.Candidate) bool { return c.Tier >= SurpriseTier })
	n := min(len(pool), surpriseMin+rng.IntN(surpriseSpread))
	picked := rng.Perm(len(pool))[:n]
	slices.Sort(picked)
	out := make([]substitution.Candidate, n)
	for i, idx := range picked {
		out[i] = pool[idx]
	}
	return out
}
