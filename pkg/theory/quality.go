package theory

import (
	"slices"
	"strings"
)

// Quality describes a chord quality symbol and its interval structure.
type Quality struct {
	// Symbol is the canonical suffix written after the root ("", "m7", "7alt").
	Symbol string

	// Intervals are semitone offsets above the root in voicing order.
	// Extensions above the octave keep their compound value (9 = 14).
	Intervals []int

	// Minor reports whether the quality belongs to the minor family
	// (minor third above the root).
	Minor bool

	// Complexity is the extension level: 2 for triads and sevenths, 3 for
	// ninths, suspensions and added tones, 4 for elevenths, thirteenths and
	// altered dominants.
	Complexity int
}

// qualities is the closed quality table in lookup order. Superset search
// walks it in this order, so simpler chords come first.
var qualities = []Quality{
	{Symbol: "", Intervals: []int{0, 4, 7}, Complexity: 2},
	{Symbol: "m", Intervals: []int{0, 3, 7}, Minor: true, Complexity: 2},
	{Symbol: "dim", Intervals: []int{0, 3, 6}, Minor: true, Complexity: 2},
	{Symbol: "aug", Intervals: []int{0, 4, 8}, Complexity: 2},
	{Symbol: "sus2", Intervals: []int{0, 2, 7}, Complexity: 3},
	{Symbol: "sus4", Intervals: []int{0, 5, 7}, Complexity: 3},
	{Symbol: "6", Intervals: []int{0, 4, 7, 9}, Complexity: 2},
	{Symbol: "m6", Intervals: []int{0, 3, 7, 9}, Minor: true, Complexity: 2},
	{Symbol: "7", Intervals: []int{0, 4, 7, 10}, Complexity: 2},
	{Symbol: "maj7", Intervals: []int{0, 4, 7, 11}, Complexity: 2},
	{Symbol: "m7", Intervals: []int{0, 3, 7, 10}, Minor: true, Complexity: 2},
	{Symbol: "m7b5", Intervals: []int{0, 3, 6, 10}, Minor: true, Complexity: 2},
	{Symbol: "dim7", Intervals: []int{0, 3, 6, 9}, Minor: true, Complexity: 2},
	{Symbol: "mMaj7", Intervals: []int{0, 3, 7, 11}, Minor: true, Complexity: 2},
	{Symbol: "aug7", Intervals: []int{0, 4, 8, 10}, Complexity: 2},
	{Symbol: "7sus4", Intervals: []int{0, 5, 7, 10}, Complexity: 3},
	{Symbol: "add9", Intervals: []int{0, 4, 7, 14}, Complexity: 3},
	{Symbol: "madd9", Intervals: []int{0, 3, 7, 14}, Minor: true, Complexity: 3},
	{Symbol: "9", Intervals: []int{0, 4, 7, 10, 14}, Complexity: 3},
	{Symbol: "maj9", Intervals: []int{0, 4, 7, 11, 14}, Complexity: 3},
	{Symbol: "m9", Intervals: []int{0, 3, 7, 10, 14}, Minor: true, Complexity: 3},
	{Symbol: "7b9", Intervals: []int{0, 4, 7, 10, 13}, Complexity: 4},
	{Symbol: "7#9", Intervals: []int{0, 4, 7, 10, 15}, Complexity: 4},
	{Symbol: "11", Intervals: []int{0, 4, 7, 10, 14, 17}, Complexity: 4},
	{Symbol: "m11", Intervals: []int{0, 3, 7, 10, 14, 17}, Minor: true, Complexity: 4},
	{Symbol: "7#11", Intervals: []int{0, 4, 7, 10, 18}, Complexity: 4},
	{Symbol: "maj7#11", Intervals: []int{0, 4, 7, 11, 18}, Complexity: 4},
	{Symbol: "13", Intervals: []int{0, 4, 7, 10, 14, 21}, Complexity: 4},
	{Symbol: "m13", Intervals: []int{0, 3, 7, 10, 14, 21}, Minor: true, Complexity: 4},
	{Symbol: "maj13", Intervals: []int{0, 4, 7, 11, 14, 21}, Complexity: 4},
	{Symbol: "7b13", Intervals: []int{0, 4, 7, 10, 20}, Complexity: 4},
	{Symbol: "7alt", Intervals: []int{0, 4, 10, 13, 15, 20}, Complexity: 4},
}

// qualityAliases maps alternative spellings onto canonical symbols.
var qualityAliases = map[string]string{
	"maj": "", "M": "", "major": "",
	"min": "m", "-": "m", "minor": "m",
	"°": "dim", "o": "dim",
	"+": "aug",
	"sus": "sus4",
	"dom7": "7",
	"M7": "maj7", "Δ": "maj7", "Δ7": "maj7", "ma7": "maj7",
	"min7": "m7", "-7": "m7",
	"ø": "m7b5", "ø7": "m7b5", "min7b5": "m7b5", "-7b5": "m7b5",
	"°7": "dim7", "o7": "dim7",
	"mM7": "mMaj7", "minMaj7": "mMaj7", "m(maj7)": "mMaj7",
	"7#5": "aug7", "+7": "aug7",
	"M9": "maj9", "min9": "m9",
	"M13": "maj13", "min11": "m11", "min13": "m13",
	"alt": "7alt",
	"2": "add9",
}

var qualityIndex = func() map[string]int {
	idx := make(map[string]int, len(qualities))
	for i, q := range qualities {
		idx[q.Symbol] = i
	}
	return idx
}()

// LookupQuality returns the quality for a symbol or alias.
func LookupQuality(symbol string) (Quality, bool) {
	symbol = CanonicalQuality(symbol)
	i, ok := qualityIndex[symbol]
	if !ok {
		return Quality{}, false
	}
	return qualities[i], true
}

// CanonicalQuality maps an alias to its canonical symbol. Unknown symbols are
// returned unchanged.
func CanonicalQuality(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if canon, ok := qualityAliases[symbol]; ok {
		return canon
	}
	return symbol
}

// Qualities returns the canonical quality table.
func Qualities() []Quality {
	out := make([]Quality, len(qualities))
	copy(out, qualities)
	return out
}

// IsMinorQuality reports whether symbol belongs to the minor family.
func IsMinorQuality(symbol string) bool {
	q, ok := LookupQuality(symbol)
	return ok && q.Minor
}

// IsSeventh reports whether the quality has four or more distinct tones.
func IsSeventh(symbol string) bool {
	q, ok := LookupQuality(symbol)
	return ok && len(q.Intervals) >= 4
}

// ExtensionComplexity returns [Quality.Complexity] for symbol, or 2 for
// unknown symbols.
func ExtensionComplexity(symbol string) int {
	if q, ok := LookupQuality(symbol); ok {
		return q.Complexity
	}
	return 2
}

// flips maps each quality onto its major/minor counterpart.
var flips = map[string]string{
	"": "m", "m": "",
	"dim": "", "aug": "m",
	"sus2": "m", "sus4": "m",
	"6": "m6", "m6": "6",
	"7": "m7", "maj7": "m7", "m7": "maj7",
	"m7b5": "maj7", "dim7": "7",
	"mMaj7": "maj7", "aug7": "m7", "7sus4": "m7",
	"add9": "madd9", "madd9": "add9",
	"9": "m9", "maj9": "m9", "m9": "maj9",
	"7b9": "m7", "7#9": "m7",
	"11": "m11", "m11": "11",
	"7#11": "m7", "maj7#11": "m7",
	"13": "m13", "m13": "maj13", "maj13": "m13",
	"7b13": "m7", "7alt": "m7",
}

// FlipQuality returns the quality on the opposite side of the major/minor
// divide, keeping the extension level where possible.
func FlipQuality(symbol string) string {
	if f, ok := flips[CanonicalQuality(symbol)]; ok {
		return f
	}
	return "m"
}

// ParallelSeventh returns the seventh chord of the opposite major/minor
// quality: minor-family qualities map to "maj7", everything else to "m7".
func ParallelSeventh(symbol string) string {
	if IsMinorQuality(symbol) {
		return "maj7"
	}
	return "m7"
}

// IsDominantQuality reports whether the quality contains a major third and a
// minor seventh above the root.
func IsDominantQuality(symbol string) bool {
	q, ok := LookupQuality(symbol)
	if !ok {
		return false
	}
	return slices.Contains(q.Intervals, 4) && slices.Contains(q.Intervals, 10)
}
