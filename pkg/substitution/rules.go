package substitution

import (
	"fmt"
	"slices"

	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// Proposal is a rule's raw suggestion before spelling and scoring.
type Proposal struct {
	Type    Type
	Root    string
	Quality string
	Label   string
	Grade   Grade

	// Extra is the number of added notes, set by container rules only.
	Extra int
}

// Rule proposes substitutions of one type.
type Rule interface {
	Type() Type
	Propose(in Input) []Proposal
}

// DefaultRules returns the generation table in evaluation order. Candidates
// come out in this order.
func DefaultRules() []Rule {
	return []Rule{
		tritoneRule{},
		backdoorRule{},
		iiVSetupRule{},
		diminishedRule{},
		secondaryDominantRule{},
		secondaryIIVRule{},
		relativeRule{},
		deceptiveRule{},
		parallelRule{},
		modalInterchangeRule{},
		neapolitanRule{},
		mediantRule{},
		containerRule{},
	}
}

// propose is a shorthand for a single transposed proposal. A root that does
// not resolve yields nothing.
func propose(in Input, from string, t Type, semis int, quality, label string, g Grade) []Proposal {
	root, ok := in.Transpose(from, semis)
	if !ok {
		return nil
	}
	return []Proposal{{Type: t, Root: root, Quality: quality, Label: label, Grade: g}}
}

// =============================================================================
// Dominant family
// =============================================================================

type tritoneRule struct{}

func (tritoneRule) Type() Type { return TritoneSub }

func (tritoneRule) Propose(in Input) []Proposal {
	if !in.Chord.HasFunction(theory.FunctionDominant) {
		return nil
	}
	return propose(in, in.Chord.Root, TritoneSub, 6, "7", "subV7", GradeExcellent)
}

type backdoorRule struct{}

func (backdoorRule) Type() Type { return Backdoor }

// Backdoor resolves to the tonic from a whole step below, so it only
// replaces V.
func (backdoorRule) Propose(in Input) []Proposal {
	if !in.Chord.HasFunction(theory.FunctionDominant) || in.Chord.Degree != 5 {
		return nil
	}
	root, ok := in.FromTonic(-2)
	if !ok {
		return nil
	}
	return []Proposal{{Type: Backdoor, Root: root, Quality: "7", Label: "bVII7", Grade: GradeGood}}
}

type iiVSetupRule struct{}

func (iiVSetupRule) Type() Type { return IIVSetup }

func (iiVSetupRule) Propose(in Input) []Proposal {
	if !in.Chord.HasFunction(theory.FunctionDominant) {
		return nil
	}
	return propose(in, in.Chord.Root, IIVSetup, 2, "m7", "ii7", GradeExcellent)
}

type diminishedRule struct{}

func (diminishedRule) Type() Type { return DiminishedApproach }

func (diminishedRule) Propose(in Input) []Proposal {
	if !in.Chord.HasFunction(theory.FunctionDominant) {
		return nil
	}
	return propose(in, in.Chord.Root, DiminishedApproach, 1, "dim7", "°7", GradeGood)
}

// =============================================================================
// Secondary family
// =============================================================================

type secondaryDominantRule struct{}

func (secondaryDominantRule) Type() Type { return SecondaryDominant }

func (secondaryDominantRule) Propose(in Input) []Proposal {
	if in.Chord.Degree == 5 {
		return nil
	}
	return propose(in, in.Chord.Root, SecondaryDominant, 7, "7", "V/"+target(in.Chord), GradeExcellent)
}

type secondaryIIVRule struct{}

func (secondaryIIVRule) Type() Type { return SecondaryIIV }

func (secondaryIIVRule) Propose(in Input) []Proposal {
	if in.Chord.Degree == 5 {
		return nil
	}
	return propose(in, in.Chord.Root, SecondaryIIV, 2, "m7", "ii/V/"+target(in.Chord), GradeGood)
}

// target names what a secondary chord points at: the scale degree when the
// chord has one, otherwise the chord itself.
func target(c theory.Chord) string {
	if c.Degree > 0 {
		return fmt.Sprint(c.Degree)
	}
	return c.Name()
}

// =============================================================================
// Tonic family
// =============================================================================

type relativeRule struct{}

func (relativeRule) Type() Type { return Relative }

func (relativeRule) Propose(in Input) []Proposal {
	q := theory.FlipQuality(in.Chord.Type)
	if theory.IsMinorQuality(in.Chord.Type) {
		return propose(in, in.Chord.Root, Relative, 3, q, "rel. major", GradePerfect)
	}
	return propose(in, in.Chord.Root, Relative, -3, q, "rel. minor", GradePerfect)
}

type deceptiveRule struct{}

func (deceptiveRule) Type() Type { return Deceptive }

// Deceptive replaces a tonic-function chord with the chord a minor third
// below, in the quality opposite the context mode.
func (deceptiveRule) Propose(in Input) []Proposal {
	if !in.Chord.HasFunction(theory.FunctionTonic) {
		return nil
	}
	seventh := theory.IsSeventh(in.Chord.Type)
	q := "m"
	switch {
	case in.MinorContext() && seventh:
		q = "maj7"
	case in.MinorContext():
		q = ""
	case seventh:
		q = "m7"
	}
	return propose(in, in.Chord.Root, Deceptive, -3, q, "deceptive", GradeExcellent)
}

// =============================================================================
// Modal family
// =============================================================================

type parallelRule struct{}

func (parallelRule) Type() Type { return Parallel }

func (parallelRule) Propose(in Input) []Proposal {
	q := theory.ParallelSeventh(in.Chord.Type)
	return []Proposal{{Type: Parallel, Root: in.Chord.Root, Quality: q, Label: "parallel", Grade: GradeGood}}
}

// borrowed maps a major-key degree to the parallel-minor chord on it, as
// semitones above the tonic plus quality.
var borrowed = map[int]struct {
	semis   int
	quality string
	label   string
}{
	1: {0, "m7", "i7"},
	2: {2, "m7b5", "iiø7"},
	3: {3, "maj7", "bIIImaj7"},
	4: {5, "m7", "iv7"},
	5: {7, "m7", "v7"},
	6: {8, "maj7", "bVImaj7"},
	7: {10, "7", "bVII7"},
}

type modalInterchangeRule struct{}

func (modalInterchangeRule) Type() Type { return ModalInterchange }

func (modalInterchangeRule) Propose(in Input) []Proposal {
	if in.MinorContext() {
		return nil
	}
	b, ok := borrowed[in.Chord.Degree]
	if !ok {
		return nil
	}
	root, ok := in.FromTonic(b.semis)
	if !ok {
		return nil
	}
	return []Proposal{{Type: ModalInterchange, Root: root, Quality: b.quality, Label: b.label, Grade: GradeGood}}
}

type neapolitanRule struct{}

func (neapolitanRule) Type() Type { return Neapolitan }

func (neapolitanRule) Propose(in Input) []Proposal {
	if in.MinorContext() || in.Chord.Degree != 2 {
		return nil
	}
	root, ok := in.FromTonic(1)
	if !ok {
		return nil
	}
	return []Proposal{{Type: Neapolitan, Root: root, Quality: "maj7", Label: "N7", Grade: GradeGood}}
}

// =============================================================================
// Mediant and extension families
// =============================================================================

type mediantRule struct{}

func (mediantRule) Type() Type { return ChromaticMediant }

func (mediantRule) Propose(in Input) []Proposal {
	q := theory.FlipQuality(in.Chord.Type)
	up := propose(in, in.Chord.Root, ChromaticMediant, 3, q, "mediant up", GradeFair)
	down := propose(in, in.Chord.Root, ChromaticMediant, -3, q, "mediant down", GradeFair)
	return append(up, down...)
}

type containerRule struct{}

func (containerRule) Type() Type { return Container }

// Container proposes chords that contain every note of the original. Grade
// falls with each added note; chords adding out-of-scale notes or more than
// two notes are discarded.
func (containerRule) Propose(in Input) []Proposal {
	if in.Ctx.Provider == nil || len(in.Chord.Notes) == 0 {
		return nil
	}
	have := theory.PitchSet(in.Chord.Notes)
	scale := theory.PitchSet(in.ScaleNotes())

	var out []Proposal
	for _, c := range in.Ctx.Provider.SupersetChords(in.Chord.Notes, in.ScaleNotes()) {
		extra, outside := 0, 0
		for _, p := range theory.PitchSet(c.Notes) {
			if slices.Contains(have, p) {
				continue
			}
			extra++
			if !slices.Contains(scale, p) {
				outside++
			}
		}
		g, ok := containerGrade(extra, outside)
		if !ok {
			continue
		}
		out = append(out, Proposal{
			Type: Container, Root: c.Root, Quality: c.Type,
			Label: c.Name(), Grade: g, Extra: extra,
		})
	}
	return out
}

func containerGrade(extra, outside int) (Grade, bool) {
	switch {
	case extra == 0:
		return GradePerfect, true
	case outside > 0:
		return "", false
	case extra == 1:
		return GradeExcellent, true
	case extra == 2:
		return GradeGood, true
	}
	return "", false
}
