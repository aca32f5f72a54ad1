package substitution

import (
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// Type tags a candidate with the substitution technique that produced it.
type Type string

// Substitution types.
const (
	TritoneSub         Type = "tritone_sub"
	Backdoor           Type = "backdoor"
	IIVSetup           Type = "ii_v_setup"
	DiminishedApproach Type = "diminished_approach"
	SecondaryDominant  Type = "secondary_dominant"
	SecondaryIIV       Type = "secondary_ii_v"
	ModalInterchange   Type = "modal_interchange"
	Neapolitan         Type = "neapolitan"
	ChromaticMediant   Type = "chromatic_mediant"
	Deceptive          Type = "deceptive"
	Relative           Type = "relative"
	Container          Type = "container"
	Parallel           Type = "parallel"
)

// Types returns every substitution type.
func Types() []Type {
	return []Type{
		TritoneSub, Backdoor, IIVSetup, DiminishedApproach,
		SecondaryDominant, SecondaryIIV, ModalInterchange, Neapolitan,
		ChromaticMediant, Deceptive, Relative, Container, Parallel,
	}
}

// Family is the coarse harmonic category of a substitution.
type Family string

// Families.
const (
	FamilyDominant  Family = "dominant"
	FamilySecondary Family = "secondary"
	FamilyTonic     Family = "tonic"
	FamilyModal     Family = "modal"
	FamilyExtension Family = "extension"
	FamilyMediant   Family = "mediant"
)

// Families returns the family enum in priority order.
func Families() []Family {
	return []Family{FamilyDominant, FamilySecondary, FamilyTonic, FamilyModal, FamilyExtension, FamilyMediant}
}

// Valid reports whether f is a member of the family enum.
func (f Family) Valid() bool {
	switch f {
	case FamilyDominant, FamilySecondary, FamilyTonic, FamilyModal, FamilyExtension, FamilyMediant:
		return true
	}
	return false
}

// FamilyOf returns the family a substitution type belongs to.
func FamilyOf(t Type) Family {
	switch t {
	case TritoneSub, Backdoor, DiminishedApproach:
		return FamilyDominant
	case SecondaryDominant, SecondaryIIV, IIVSetup:
		return FamilySecondary
	case Relative, Deceptive:
		return FamilyTonic
	case ModalInterchange, Neapolitan, Parallel:
		return FamilyModal
	case Container:
		return FamilyExtension
	case ChromaticMediant:
		return FamilyMediant
	}
	return FamilyMediant
}

// Grade is the qualitative fit of a substitution.
type Grade string

// Grades, best first.
const (
	GradePerfect   Grade = "perfect"
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
)

// Candidate is one proposed substitution.
type Candidate struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Root      string `json:"root"`
	ChordType string `json:"chordType"`
	FullName  string `json:"fullName"`
	Label     string `json:"label"`
	Family    Family `json:"family"`
	Grade     Grade  `json:"grade"`

	// Tier and HarmonicDistance are assigned by the grader.
	Tier             int     `json:"tier"`
	HarmonicDistance float64 `json:"harmonicDistance"`

	VoiceLeading string   `json:"voiceLeading"`
	Notes        []string `json:"notes"`
	MIDI         []int    `json:"midi,omitempty"`
	CommonTones  int      `json:"commonTones"`

	// ExtraNotes counts notes a container chord adds to the original.
	ExtraNotes int `json:"extraNotes,omitempty"`
}

// Context is the tonal context a chord is substituted in.
type Context struct {
	Key      string
	Scale    theory.Scale
	Diatonic bool
	Provider theory.Provider
}

// NewContext builds a context backed by a tonality.
func NewContext(t *theory.Tonality) Context {
	return Context{Key: t.Key, Scale: t.Scale, Provider: t}
}

// WithChord returns a copy of ctx with Diatonic set for chord.
func (ctx Context) WithChord(chord theory.Chord) Context {
	scale, err := theory.ScaleNotes(ctx.Key, ctx.Scale)
	ctx.Diatonic = err == nil && len(chord.Notes) > 0 && theory.Contains(scale, chord.Notes)
	return ctx
}
