package rank

import (
	"fmt"

	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// MaxTier is the outermost tier.
const MaxTier = 4

// Tier returns the 0-indexed tier of a candidate.
func Tier(c substitution.Candidate) int {
	if c.Grade == substitution.GradePerfect {
		return 0
	}
	switch c.Type {
	case substitution.SecondaryDominant, substitution.Relative,
		substitution.Deceptive, substitution.IIVSetup:
		if c.Grade == substitution.GradeExcellent {
			return 0
		}
		return 1
	case substitution.TritoneSub, substitution.Backdoor, substitution.DiminishedApproach:
		return 1
	case substitution.ModalInterchange, substitution.Parallel, substitution.Neapolitan:
		return 2
	case substitution.Container:
		return clampTier(theory.ExtensionComplexity(c.ChordType))
	case substitution.ChromaticMediant:
		return 3
	}
	switch c.Grade {
	case substitution.GradeExcellent:
		return 1
	case substitution.GradeGood:
		return 2
	}
	return 3
}

func clampTier(t int) int {
	return max(0, min(MaxTier, t))
}

// TierLabel renders a tier the way users see it.
func TierLabel(tier int) string {
	return fmt.Sprintf("tier %d/%d", tier+1, MaxTier+1)
}
