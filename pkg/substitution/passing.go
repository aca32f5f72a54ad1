package substitution

import "github.com/parkerchace/MusicTheory-sub000/pkg/theory"

// PassingRules returns the rules used by [Generator.Passing]. Each one
// approaches Input.Chord, the target.
func PassingRules() []Rule {
	return []Rule{
		approachRule{typ: SecondaryDominant, semis: 7, quality: "7", prefix: "V/", grade: GradeExcellent},
		approachRule{typ: TritoneSub, semis: 1, quality: "7", prefix: "subV/", grade: GradeExcellent},
		approachRule{typ: DiminishedApproach, semis: -1, quality: "dim7", prefix: "vii°7/", grade: GradeGood},
		approachRule{typ: SecondaryIIV, semis: 2, quality: "m7", prefix: "ii/", grade: GradeGood},
		approachRule{typ: ChromaticMediant, semis: 1, same: true, prefix: "chrom/", grade: GradeFair},
		approachRule{typ: Backdoor, semis: -2, quality: "7", prefix: "bVII7/", grade: GradeFair},
	}
}

// Passing is shorthand for NewGenerator().Passing.
func Passing(from, to theory.Chord, ctx Context) []Candidate {
	return NewGenerator().Passing(from, to, ctx)
}

// approachRule proposes a chord a fixed distance from the target root. With
// same set it copies the target's quality.
type approachRule struct {
	typ     Type
	semis   int
	quality string
	same    bool
	prefix  string
	grade   Grade
}

func (r approachRule) Type() Type { return r.typ }

func (r approachRule) Propose(in Input) []Proposal {
	q := r.quality
	if r.same {
		q = in.Chord.Type
	}
	return propose(in, in.Chord.Root, r.typ, r.semis, q, r.prefix+in.Chord.Name(), r.grade)
}
