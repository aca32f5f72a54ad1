package rank

import (
	"fmt"
	"slices"
	"strings"

	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// Mode selects which substitution types get the mode bonus.
type Mode string

// Ranking modes.
const (
	ModeFunctional Mode = "functional"
	ModeEmotional  Mode = "emotional"
	ModeColor      Mode = "color"
)

// Modes returns every ranking mode.
func Modes() []Mode { return []Mode{ModeFunctional, ModeEmotional, ModeColor} }

// ParseMode resolves a mode name. The empty string means functional.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeFunctional, nil
	case ModeFunctional, ModeEmotional, ModeColor:
		return m, nil
	}
	return "", fmt.Errorf("unknown ranking mode %q", s)
}

// preferred lists are disjoint so exactly one mode favours each type.
var preferred = map[Mode][]substitution.Type{
	ModeFunctional: {
		substitution.SecondaryDominant, substitution.IIVSetup,
		substitution.SecondaryIIV, substitution.TritoneSub, substitution.Relative,
	},
	ModeEmotional: {
		substitution.Deceptive, substitution.ModalInterchange,
		substitution.Parallel, substitution.Backdoor, substitution.Neapolitan,
	},
	ModeColor: {
		substitution.Container, substitution.ChromaticMediant,
		substitution.DiminishedApproach,
	},
}

// Preferred reports whether mode favours type t.
func (m Mode) Preferred(t substitution.Type) bool {
	return slices.Contains(preferred[m], t)
}

// familyPriority ranks families, dominant first.
var familyPriority = map[substitution.Family]int{
	substitution.FamilyDominant:  1,
	substitution.FamilySecondary: 2,
	substitution.FamilyTonic:     3,
	substitution.FamilyModal:     4,
	substitution.FamilyExtension: 5,
	substitution.FamilyMediant:   6,
}

// Weights are the factors of the distance formula.
type Weights struct {
	Family     float64 `toml:"family"`
	Tier       float64 `toml:"tier"`
	CommonTone float64 `toml:"common_tone"`
	ModeBonus  float64 `toml:"mode_bonus"`
	Perfect    float64 `toml:"perfect"`
	Excellent  float64 `toml:"excellent"`
	Good       float64 `toml:"good"`
}

// DefaultWeights returns the tuned weights.
func DefaultWeights() Weights {
	return Weights{
		Family:     10,
		Tier:       8,
		CommonTone: 5,
		ModeBonus:  10,
		Perfect:    15,
		Excellent:  10,
		Good:       5,
	}
}

// Merge returns w with every zero field taken from base.
func (w Weights) Merge(base Weights) Weights {
	pick := func(v, d float64) float64 {
		if v == 0 {
			return d
		}
		return v
	}
	return Weights{
		Family:     pick(w.Family, base.Family),
		Tier:       pick(w.Tier, base.Tier),
		CommonTone: pick(w.CommonTone, base.CommonTone),
		ModeBonus:  pick(w.ModeBonus, base.ModeBonus),
		Perfect:    pick(w.Perfect, base.Perfect),
		Excellent:  pick(w.Excellent, base.Excellent),
		Good:       pick(w.Good, base.Good),
	}
}

func (w Weights) gradeBonus(g substitution.Grade) float64 {
	switch g {
	case substitution.GradePerfect:
		return w.Perfect
	case substitution.GradeExcellent:
		return w.Excellent
	case substitution.GradeGood:
		return w.Good
	}
	return 0
}

// Grader assigns tiers and distances.
type Grader struct {
	Mode    Mode
	Weights Weights
}

// New returns a grader with default weights.
func New(mode Mode) *Grader {
	if mode == "" {
		mode = ModeFunctional
	}
	return &Grader{Mode: mode, Weights: DefaultWeights()}
}

// Distance computes the harmonic distance of c at its current tier.
func (g *Grader) Distance(c substitution.Candidate) float64 {
	w := g.Weights
	d := float64(familyPriority[c.Family])*w.Family -
		float64(c.Tier)*w.Tier -
		w.gradeBonus(c.Grade) -
		float64(c.CommonTones)*w.CommonTone
	if g.Mode.Preferred(c.Type) {
		d -= w.ModeBonus
	}
	return d
}

// Grade returns a copy of cands with Tier and HarmonicDistance filled in,
// sorted ascending by distance. Ties are broken as in [Sort].
func (g *Grader) Grade(cands []substitution.Candidate) []substitution.Candidate {
	out := slices.Clone(cands)
	for i := range out {
		out[i].Tier = Tier(out[i])
		out[i].HarmonicDistance = g.Distance(out[i])
	}
	Sort(out)
	return out
}

// Sort orders candidates by distance, breaking ties by type then name so the
// order does not depend on the input order.
func Sort(cands []substitution.Candidate) {
	slices.SortStableFunc(cands, func(a, b substitution.Candidate) int {
		switch {
		case a.HarmonicDistance < b.HarmonicDistance:
			return -1
		case a.HarmonicDistance > b.HarmonicDistance:
			return 1
		}
		if c := strings.Compare(string(a.Type), string(b.Type)); c != 0 {
			return c
		}
		return strings.Compare(a.FullName, b.FullName)
	})
}
