package theory

import (
	"fmt"
	"slices"
)

// Provider is the tonal-context capability consumed by the substitution
// generator.
type Provider interface {
	// DiatonicChord returns the seventh chord built on a scale degree (1-7).
	DiatonicChord(degree int) (Chord, error)

	// ChordNotes spells root+quality.
	ChordNotes(root, quality string) ([]string, error)

	// SupersetChords returns chords whose pitch-class set contains every
	// target note, ordered by how many extra notes fall outside scaleNotes,
	// then by total extra notes.
	SupersetChords(target, scaleNotes []string) []Chord
}

// Tonality is a key bound to a scale. It implements [Provider].
type Tonality struct {
	Key   string
	Scale Scale

	tonic  PitchClass
	sharps bool
	notes  []string
	pcs    []PitchClass
}

// NewTonality validates key and scale and precomputes the scale notes.
func NewTonality(key string, s Scale) (*Tonality, error) {
	key = NormalizeName(key)
	tonic, ok := ParsePitch(key)
	if !ok {
		return nil, fmt.Errorf("unknown key %q", key)
	}
	notes, err := ScaleNotes(key, s)
	if err != nil {
		return nil, err
	}
	return &Tonality{
		Key:    key,
		Scale:  s,
		tonic:  tonic,
		sharps: KeyUsesSharps(key, s),
		notes:  notes,
		pcs:    PitchSet(notes),
	}, nil
}

// Tonic returns the pitch class of the key.
func (t *Tonality) Tonic() PitchClass { return t.tonic }

// Sharps reports whether chromatic notes in this key are spelled with sharps.
func (t *Tonality) Sharps() bool { return t.sharps }

// IsMinor reports whether the scale is a minor-third mode.
func (t *Tonality) IsMinor() bool { return t.Scale.IsMinor() }

// ScaleNotes returns the spelled scale.
func (t *Tonality) ScaleNotes() []string { return slices.Clone(t.notes) }

// Spell names a pitch class in this key, preferring scale spellings.
func (t *Tonality) Spell(p PitchClass) string {
	if i := slices.Index(t.pcs, p); i >= 0 {
		return t.notes[i]
	}
	return Spell(p, t.sharps)
}

// Transpose moves root by n semitones and spells the result in this key.
func (t *Tonality) Transpose(root string, n int) (string, bool) {
	pc, ok := ParsePitch(root)
	if !ok {
		return "", false
	}
	return t.Spell(pc.Add(n)), true
}

// Degree returns the 1-based scale degree of root, or 0 when root is not a
// scale tone.
func (t *Tonality) Degree(root string) int {
	pc, ok := ParsePitch(root)
	if !ok {
		return 0
	}
	return slices.Index(t.pcs, pc) + 1
}

// InScale reports whether every note is a scale tone.
func (t *Tonality) InScale(notes []string) bool {
	return Contains(t.notes, notes)
}

// DiatonicChord stacks thirds on a scale degree and names the result.
func (t *Tonality) DiatonicChord(degree int) (Chord, error) {
	if degree < 1 || degree > len(t.pcs) {
		return Chord{}, fmt.Errorf("degree %d out of range", degree)
	}
	i := degree - 1
	root := t.pcs[i]
	set := make([]int, 0, 4)
	for k := 0; k < 4; k++ {
		set = append(set, root.Interval(t.pcs[(i+2*k)%len(t.pcs)]))
	}
	quality, ok := matchQuality(set)
	if !ok {
		quality, ok = matchQuality(set[:3])
	}
	if !ok {
		return Chord{}, fmt.Errorf("degree %d of %s %s has no named quality", degree, t.Key, t.Scale)
	}
	c, err := t.Analyze(t.notes[i], quality)
	if err != nil {
		return Chord{}, err
	}
	return c, nil
}

// ChordNotes spells root+quality.
func (t *Tonality) ChordNotes(root, quality string) ([]string, error) {
	return ChordNotes(root, quality)
}

// Analyze builds a chord and fills in its degree, functions and spelling in
// this key. Degree is set whenever the root is a scale tone; degree functions
// are only attached to diatonic chords. Dominant-seventh qualities always
// carry the dominant function.
func (t *Tonality) Analyze(root, quality string) (Chord, error) {
	c, err := NewChord(root, quality)
	if err != nil {
		return Chord{}, err
	}
	c.Degree = t.Degree(root)
	if c.Degree > 0 && t.InScale(c.Notes) {
		c.Functions = append(c.Functions, FunctionsForDegree(c.Degree)...)
	}
	if IsDominantQuality(c.Type) && !c.HasFunction(FunctionDominant) {
		c.Functions = append(c.Functions, FunctionDominant)
	}
	return c, nil
}

// SupersetChords searches all roots and qualities for chords containing
// target. See [Provider].
func (t *Tonality) SupersetChords(target, scaleNotes []string) []Chord {
	want := PitchSet(target)
	if len(want) == 0 {
		return nil
	}
	scale := PitchSet(scaleNotes)

	type hit struct {
		chord          Chord
		outside, extra int
	}
	var hits []hit
	for r := 0; r < 12; r++ {
		root := PitchClass(r)
		for _, q := range qualities {
			set := make([]PitchClass, 0, len(q.Intervals))
			for _, iv := range q.Intervals {
				set = append(set, root.Add(iv))
			}
			if !containsAll(set, want) {
				continue
			}
			name := t.Spell(root)
			notes, err := ChordNotes(name, q.Symbol)
			if err != nil {
				continue
			}
			h := hit{chord: Chord{Root: name, Type: q.Symbol, Notes: notes}}
			for _, p := range PitchSet(notes) {
				if slices.Contains(want, p) {
					continue
				}
				h.extra++
				if !slices.Contains(scale, p) {
					h.outside++
				}
			}
			hits = append(hits, h)
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int {
		if a.outside != b.outside {
			return a.outside - b.outside
		}
		return a.extra - b.extra
	})
	out := make([]Chord, len(hits))
	for i, h := range hits {
		out[i] = h.chord
	}
	return out
}

// matchQuality finds the quality whose interval set equals ivs.
func matchQuality(ivs []int) (string, bool) {
	want := make([]PitchClass, len(ivs))
	for i, iv := range ivs {
		want[i] = PitchClass(mod12(iv))
	}
	for _, q := range qualities {
		if len(q.Intervals) != len(ivs) {
			continue
		}
		set := make([]PitchClass, len(q.Intervals))
		for i, iv := range q.Intervals {
			set[i] = PitchClass(mod12(iv))
		}
		if containsAll(set, want) && containsAll(want, set) {
			return q.Symbol, true
		}
	}
	return "", false
}

func containsAll(set, sub []PitchClass) bool {
	for _, p := range sub {
		if !slices.Contains(set, p) {
			return false
		}
	}
	return true
}

var _ Provider = (*Tonality)(nil)
