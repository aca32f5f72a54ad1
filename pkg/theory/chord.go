package theory

import (
	"fmt"
	"slices"
	"strings"
)

// Function is a harmonic-function tag attached to a chord.
type Function string

// Harmonic functions.
const (
	FunctionTonic       Function = "tonic"
	FunctionDominant    Function = "dominant"
	FunctionPredominant Function = "predominant"
	FunctionSubdominant Function = "subdominant"
	FunctionLeadingTone Function = "leading-tone"
)

// Chord is a spelled chord with optional diatonic context.
type Chord struct {
	Root      string     `json:"root"`
	Type      string     `json:"type"`
	Notes     []string   `json:"notes"`
	Degree    int        `json:"degree,omitempty"` // 1-7, 0 when not diatonic
	Functions []Function `json:"functions,omitempty"`
}

// Name returns the chord symbol, e.g. "Db7".
func (c Chord) Name() string { return c.Root + c.Type }

// HasFunction reports whether f is among the chord's functions.
func (c Chord) HasFunction(f Function) bool {
	return slices.Contains(c.Functions, f)
}

// PitchClasses returns the distinct pitch classes of the chord's notes.
func (c Chord) PitchClasses() []PitchClass {
	return PitchSet(c.Notes)
}

// ParseSymbol splits a chord symbol into its root and canonical quality.
func ParseSymbol(symbol string) (root, quality string, err error) {
	symbol = normalizeAccidentals.Replace(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", "", fmt.Errorf("empty chord symbol")
	}
	root, rest := splitRoot(symbol)
	if _, ok := ParsePitch(root); !ok {
		return "", "", fmt.Errorf("unknown root %q", root)
	}
	q, ok := LookupQuality(rest)
	if !ok {
		return "", "", fmt.Errorf("unknown chord quality %q", rest)
	}
	return NormalizeName(root), q.Symbol, nil
}

// ChordNotes spells the notes of root+quality in voicing order without
// duplicate pitch classes.
func ChordNotes(root, quality string) ([]string, error) {
	pc, ok := ParsePitch(root)
	if !ok {
		return nil, fmt.Errorf("unknown root %q", root)
	}
	q, ok := LookupQuality(quality)
	if !ok {
		return nil, fmt.Errorf("unknown chord quality %q", quality)
	}
	sharps := prefersSharps(root, q)
	notes := make([]string, 0, len(q.Intervals))
	seen := make(map[PitchClass]bool, len(q.Intervals))
	for _, iv := range q.Intervals {
		p := pc.Add(iv)
		if seen[p] {
			continue
		}
		seen[p] = true
		if iv == 0 {
			notes = append(notes, root)
			continue
		}
		notes = append(notes, Spell(p, sharps))
	}
	return notes, nil
}

// NewChord builds a chord with spelled notes and no diatonic context.
func NewChord(root, quality string) (Chord, error) {
	notes, err := ChordNotes(root, quality)
	if err != nil {
		return Chord{}, err
	}
	return Chord{Root: root, Type: CanonicalQuality(quality), Notes: notes}, nil
}

// PitchSet returns the distinct pitch classes of notes, skipping names that
// do not parse.
func PitchSet(notes []string) []PitchClass {
	out := make([]PitchClass, 0, len(notes))
	for _, n := range notes {
		pc, ok := ParsePitch(n)
		if !ok || slices.Contains(out, pc) {
			continue
		}
		out = append(out, pc)
	}
	return out
}

// CommonTones counts pitch classes shared by a and b.
func CommonTones(a, b []string) int {
	sa, sb := PitchSet(a), PitchSet(b)
	n := 0
	for _, p := range sa {
		if slices.Contains(sb, p) {
			n++
		}
	}
	return n
}

// Contains reports whether every pitch class of sub appears in super.
func Contains(super, sub []string) bool {
	sp := PitchSet(super)
	for _, p := range PitchSet(sub) {
		if !slices.Contains(sp, p) {
			return false
		}
	}
	return true
}

// prefersSharps picks an accidental style for spelling the upper notes of a
// chord from its root.
func prefersSharps(root string, q Quality) bool {
	switch {
	case strings.Contains(root, "#"):
		return true
	case strings.Contains(root, "b"):
		return false
	}
	if q.Minor {
		return root == "E" || root == "B"
	}
	switch root {
	case "G", "D", "A", "E", "B":
		return true
	}
	return false
}
