// Package substitution generates harmonic substitution candidates for a
// chord in a tonal context.
//
// # Rules
//
// Generation is driven by an ordered table of [Rule] values, one variant per
// substitution [Type]. Each rule inspects the chord and context through an
// [Input] and returns zero or more [Proposal] values (root, quality, label,
// grade). The [Generator] turns proposals into [Candidate] values: it spells
// notes through the context's [theory.Provider], computes voice leading and
// common tones, assigns the [Family], and derives a stable ID.
//
// Proposals whose root cannot be resolved to a pitch class, or whose quality
// is unknown, are dropped silently. A proposal identical to the input chord,
// or to an earlier proposal with the same root and quality, is dropped too,
// so rule order decides which tag a chord carries.
//
// # Usage
//
//	t, _ := theory.NewTonality("C", theory.Major)
//	g7, _ := t.Analyze("G", "7")
//	cands := substitution.NewGenerator().Generate(g7, substitution.NewContext(t))
//
// The passing-chord variant menu uses the same machinery with
// [PassingRules]; see [Generator.Passing].
//
// Candidates leave this package ungraded: Tier and HarmonicDistance are
// filled in by the rank package.
package substitution
