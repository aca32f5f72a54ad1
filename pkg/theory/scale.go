package theory

import (
	"fmt"
	"slices"
	"strings"
)

// Scale names a seven-note scale or mode.
type Scale string

// Supported scales.
const (
	Major         Scale = "major"
	Minor         Scale = "minor"
	HarmonicMinor Scale = "harmonic_minor"
	MelodicMinor  Scale = "melodic_minor"
	Dorian        Scale = "dorian"
	Phrygian      Scale = "phrygian"
	Lydian        Scale = "lydian"
	Mixolydian    Scale = "mixolydian"
	Locrian       Scale = "locrian"
)

var scaleSteps = map[Scale][]int{
	Major:         {0, 2, 4, 5, 7, 9, 11},
	Minor:         {0, 2, 3, 5, 7, 8, 10},
	HarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
	MelodicMinor:  {0, 2, 3, 5, 7, 9, 11},
	Dorian:        {0, 2, 3, 5, 7, 9, 10},
	Phrygian:      {0, 1, 3, 5, 7, 8, 10},
	Lydian:        {0, 2, 4, 6, 7, 9, 11},
	Mixolydian:    {0, 2, 4, 5, 7, 9, 10},
	Locrian:       {0, 1, 3, 5, 6, 8, 10},
}

// parentOffset is the distance from a mode's tonic down to the tonic of the
// major scale sharing its key signature.
var parentOffset = map[Scale]int{
	Major: 0, Dorian: 2, Phrygian: 4, Lydian: 5, Mixolydian: 7,
	Minor: 9, HarmonicMinor: 9, MelodicMinor: 9, Locrian: 11,
}

var scaleAliases = map[string]Scale{
	"ionian":        Major,
	"aeolian":       Minor,
	"natural_minor": Minor,
	"maj":           Major,
	"min":           Minor,
}

// ParseScale parses a scale name. Case, spaces and hyphens are ignored
// ("Harmonic Minor" == "harmonic-minor" == "harmonic_minor").
func ParseScale(name string) (Scale, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if s, ok := scaleAliases[key]; ok {
		return s, true
	}
	s := Scale(key)
	_, ok := scaleSteps[s]
	return s, ok
}

// Scales returns all supported scales in a stable order.
func Scales() []Scale {
	return []Scale{Major, Minor, HarmonicMinor, MelodicMinor, Dorian, Phrygian, Lydian, Mixolydian, Locrian}
}

// Steps returns the semitone offsets of the scale degrees above the tonic.
func (s Scale) Steps() []int {
	return slices.Clone(scaleSteps[s])
}

// IsMinor reports whether the scale has a minor third above its tonic.
func (s Scale) IsMinor() bool {
	steps := scaleSteps[s]
	return len(steps) > 2 && steps[2] == 3
}

// ScaleNotes spells the scale on key.
func ScaleNotes(key string, s Scale) ([]string, error) {
	key = NormalizeName(key)
	pc, ok := ParsePitch(key)
	if !ok {
		return nil, fmt.Errorf("unknown key %q", key)
	}
	steps, ok := scaleSteps[s]
	if !ok {
		return nil, fmt.Errorf("unknown scale %q", s)
	}
	sharps := KeyUsesSharps(key, s)
	first := strings.IndexByte(letters, upper(key[0]))
	notes := make([]string, len(steps))
	for i, st := range steps {
		if st == 0 {
			notes[i] = key
			continue
		}
		notes[i] = spellOnLetter(letters[(first+i)%len(letters)], pc.Add(st), sharps)
	}
	return notes, nil
}

// letters are the natural note letters in scale order.
const letters = "CDEFGAB"

// spellOnLetter names p using the given letter and up to two accidentals,
// falling back to [Spell] when the letter is too far away.
func spellOnLetter(letter byte, p PitchClass, sharps bool) string {
	offset := mod12(int(p) - letterBase[letter])
	if offset > 6 {
		offset -= 12
	}
	switch offset {
	case 0:
		return string(letter)
	case 1:
		return string(letter) + "#"
	case 2:
		return string(letter) + "##"
	case -1:
		return string(letter) + "b"
	case -2:
		return string(letter) + "bb"
	}
	return Spell(p, sharps)
}

// sharpParents are the natural-letter major keys written with sharps.
var sharpParents = []PitchClass{7, 2, 9, 4, 11}

// KeyUsesSharps reports whether the key signature of key in scale s is
// written with sharps. Keys spelled with an explicit accidental follow it;
// C major and its modes default to flats for chromatic spelling.
func KeyUsesSharps(key string, s Scale) bool {
	key = NormalizeName(key)
	if key == "" {
		return false
	}
	switch accidentals := key[1:]; {
	case strings.Contains(accidentals, "#"):
		return true
	case strings.Contains(accidentals, "b"):
		return false
	}
	pc, ok := ParsePitch(key)
	if !ok {
		return false
	}
	parent := pc.Add(-parentOffset[s])
	return slices.Contains(sharpParents, parent)
}

// FunctionsForDegree returns the harmonic functions conventionally carried
// by a scale degree.
func FunctionsForDegree(degree int) []Function {
	switch degree {
	case 1, 3, 6:
		return []Function{FunctionTonic}
	case 2:
		return []Function{FunctionPredominant}
	case 4:
		return []Function{FunctionSubdominant, FunctionPredominant}
	case 5:
		return []Function{FunctionDominant}
	case 7:
		return []Function{FunctionLeadingTone, FunctionDominant}
	}
	return nil
}
