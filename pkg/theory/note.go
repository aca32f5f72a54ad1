package theory

import "strings"

// PitchClass is a pitch modulo the octave: 0 = C, 1 = C#/Db, ... 11 = B.
type PitchClass int

var letterBase = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var (
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
)

// normalizeAccidentals rewrites Unicode accidentals to their ASCII form.
var normalizeAccidentals = strings.NewReplacer("♯", "#", "♭", "b", "𝄪", "x", "𝄫", "bb")

// ParsePitch parses a pitch-class name such as "C", "F#", "Bb", "E♭" or "Cx".
// Octave digits are not accepted; see [NoteToMIDI] for octave-qualified names.
func ParsePitch(name string) (PitchClass, bool) {
	name = normalizeAccidentals.Replace(strings.TrimSpace(name))
	if name == "" {
		return 0, false
	}
	base, ok := letterBase[upper(name[0])]
	if !ok {
		return 0, false
	}
	offset := 0
	for i := 1; i < len(name); i++ {
		switch name[i] {
		case '#':
			offset++
		case 'b':
			offset--
		case 'x':
			offset += 2
		default:
			return 0, false
		}
	}
	return PitchClass(mod12(base + offset)), true
}

// Add returns the pitch class n semitones above p.
func (p PitchClass) Add(n int) PitchClass {
	return PitchClass(mod12(int(p) + n))
}

// Interval returns the ascending distance from p to q in semitones (0..11).
func (p PitchClass) Interval(q PitchClass) int {
	return mod12(int(q) - int(p))
}

// Spell returns the conventional name of p using sharps or flats.
func Spell(p PitchClass, sharps bool) string {
	if sharps {
		return sharpNames[mod12(int(p))]
	}
	return flatNames[mod12(int(p))]
}

// Transpose moves a named root by n semitones and spells the result.
// It reports false when root is not a valid pitch name.
func Transpose(root string, n int, sharps bool) (string, bool) {
	pc, ok := ParsePitch(root)
	if !ok {
		return "", false
	}
	return Spell(pc.Add(n), sharps), true
}

// SamePitch reports whether two names denote the same pitch class.
func SamePitch(a, b string) bool {
	pa, okA := ParsePitch(a)
	pb, okB := ParsePitch(b)
	return okA && okB && pa == pb
}

// splitRoot separates the leading pitch name of a chord symbol from the rest.
func splitRoot(symbol string) (root, rest string) {
	if symbol == "" {
		return "", ""
	}
	i := 1
	for i < len(symbol) && (symbol[i] == '#' || symbol[i] == 'b') {
		i++
	}
	return symbol[:i], symbol[i:]
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// NormalizeName rewrites Unicode accidentals and capitalizes the letter
// ("e♭" → "Eb"). It does not validate the name.
func NormalizeName(name string) string {
	name = normalizeAccidentals.Replace(strings.TrimSpace(name))
	if name == "" {
		return name
	}
	return string(upper(name[0])) + name[1:]
}
