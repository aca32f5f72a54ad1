package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePitch(t *testing.T) {
	tests := []struct {
		name string
		want PitchClass
		ok   bool
	}{
		{"C", 0, true},
		{"c", 0, true},
		{"C#", 1, true},
		{"Db", 1, true},
		{"F♯", 6, true},
		{"E♭", 3, true},
		{"B#", 0, true},
		{"Cb", 11, true},
		{"Bbb", 9, true},
		{"Fx", 7, true},
		{"", 0, false},
		{"H", 0, false},
		{"C4", 0, false},
		{"Cm", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePitch(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTranspose(t *testing.T) {
	got, ok := Transpose("G", 6, false)
	require.True(t, ok)
	assert.Equal(t, "Db", got)

	got, ok = Transpose("G", 6, true)
	require.True(t, ok)
	assert.Equal(t, "C#", got)

	got, ok = Transpose("C", -2, false)
	require.True(t, ok)
	assert.Equal(t, "Bb", got)

	_, ok = Transpose("Q", 1, false)
	assert.False(t, ok)
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		symbol, root, quality string
	}{
		{"G7", "G", "7"},
		{"Bbm7", "Bb", "m7"},
		{"F", "F", ""},
		{"Cmaj7", "C", "maj7"},
		{"CΔ7", "C", "maj7"},
		{"Bø7", "B", "m7b5"},
		{"Ab°7", "Ab", "dim7"},
		{"f#m", "F#", "m"},
		{"E♭maj9", "Eb", "maj9"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			root, quality, err := ParseSymbol(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.quality, quality)
		})
	}

	for _, bad := range []string{"", "H7", "Cfoo", "7"} {
		_, _, err := ParseSymbol(bad)
		assert.Error(t, err, bad)
	}
}

func TestChordNotes(t *testing.T) {
	notes, err := ChordNotes("G", "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"G", "B", "D", "F"}, notes)

	notes, err = ChordNotes("Db", "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"Db", "F", "Ab", "B"}, notes)

	notes, err = ChordNotes("A", "m7")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "E", "G"}, notes)

	_, err = ChordNotes("C", "nope")
	assert.Error(t, err)
}

func TestFlipQuality(t *testing.T) {
	assert.Equal(t, "m", FlipQuality(""))
	assert.Equal(t, "", FlipQuality("m"))
	assert.Equal(t, "m7", FlipQuality("maj7"))
	assert.Equal(t, "maj7", FlipQuality("m7"))
	assert.Equal(t, "m7", FlipQuality("7"))
	for _, q := range Qualities() {
		assert.NotEqual(t, IsMinorQuality(q.Symbol), IsMinorQuality(FlipQuality(q.Symbol)),
			"flip of %q stays on the same side", q.Symbol)
	}
}

func TestParallelSeventh(t *testing.T) {
	assert.Equal(t, "m7", ParallelSeventh("7"))
	assert.Equal(t, "m7", ParallelSeventh(""))
	assert.Equal(t, "maj7", ParallelSeventh("m7"))
	assert.Equal(t, "maj7", ParallelSeventh("m"))
}

func TestExtensionComplexity(t *testing.T) {
	assert.Equal(t, 2, ExtensionComplexity("maj7"))
	assert.Equal(t, 2, ExtensionComplexity(""))
	assert.Equal(t, 3, ExtensionComplexity("9"))
	assert.Equal(t, 3, ExtensionComplexity("sus4"))
	assert.Equal(t, 3, ExtensionComplexity("add9"))
	assert.Equal(t, 4, ExtensionComplexity("13"))
	assert.Equal(t, 4, ExtensionComplexity("7alt"))
	assert.Equal(t, 4, ExtensionComplexity("7b9"))
}

func TestParseScale(t *testing.T) {
	for in, want := range map[string]Scale{
		"major":          Major,
		"Ionian":         Major,
		"aeolian":        Minor,
		"Harmonic Minor": HarmonicMinor,
		"melodic-minor":  MelodicMinor,
		"dorian":         Dorian,
	} {
		got, ok := ParseScale(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseScale("bebop")
	assert.False(t, ok)
}

func TestScaleNotes(t *testing.T) {
	notes, err := ScaleNotes("C", Major)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D", "E", "F", "G", "A", "B"}, notes)

	notes, err = ScaleNotes("D", Major)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "E", "F#", "G", "A", "B", "C#"}, notes)

	notes, err = ScaleNotes("F", Major)
	require.NoError(t, err)
	assert.Equal(t, []string{"F", "G", "A", "Bb", "C", "D", "E"}, notes)

	notes, err = ScaleNotes("A", Minor)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, notes)
}

func TestKeyUsesSharps(t *testing.T) {
	assert.False(t, KeyUsesSharps("C", Major))
	assert.True(t, KeyUsesSharps("G", Major))
	assert.True(t, KeyUsesSharps("E", Minor))
	assert.False(t, KeyUsesSharps("D", Minor))
	assert.True(t, KeyUsesSharps("F#", Major))
	assert.False(t, KeyUsesSharps("Bb", Major))
}

func TestDiatonicChord(t *testing.T) {
	tn, err := NewTonality("C", Major)
	require.NoError(t, err)

	want := []string{"Cmaj7", "Dm7", "Em7", "Fmaj7", "G7", "Am7", "Bm7b5"}
	for i, name := range want {
		c, err := tn.DiatonicChord(i + 1)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
		assert.Equal(t, i+1, c.Degree)
	}

	v, _ := tn.DiatonicChord(5)
	assert.True(t, v.HasFunction(FunctionDominant))
	i, _ := tn.DiatonicChord(1)
	assert.True(t, i.HasFunction(FunctionTonic))

	_, err = tn.DiatonicChord(8)
	assert.Error(t, err)
}

func TestDiatonicChordHarmonicMinor(t *testing.T) {
	tn, err := NewTonality("A", HarmonicMinor)
	require.NoError(t, err)

	v, err := tn.DiatonicChord(5)
	require.NoError(t, err)
	assert.Equal(t, "E7", v.Name())

	vii, err := tn.DiatonicChord(7)
	require.NoError(t, err)
	assert.Equal(t, "G#dim7", vii.Name())

	iii, err := tn.DiatonicChord(3)
	require.NoError(t, err)
	assert.Equal(t, "Caug", iii.Name())
}

func TestAnalyze(t *testing.T) {
	tn, err := NewTonality("C", Major)
	require.NoError(t, err)

	f, err := tn.Analyze("F", "")
	require.NoError(t, err)
	assert.Equal(t, 4, f.Degree)
	assert.True(t, f.HasFunction(FunctionSubdominant))

	d7, err := tn.Analyze("D", "7")
	require.NoError(t, err)
	assert.Equal(t, 2, d7.Degree)
	assert.Equal(t, []Function{FunctionDominant}, d7.Functions)

	eb, err := tn.Analyze("Eb", "maj7")
	require.NoError(t, err)
	assert.Zero(t, eb.Degree)
	assert.Empty(t, eb.Functions)
}

func TestSupersetChords(t *testing.T) {
	tn, err := NewTonality("C", Major)
	require.NoError(t, err)

	target := []string{"C", "E", "G"}
	got := tn.SupersetChords(target, tn.ScaleNotes())
	require.NotEmpty(t, got)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name()
		assert.True(t, Contains(c.Notes, target), "%s does not contain C E G", c.Name())
	}
	assert.Contains(t, names, "Cmaj7")
	assert.Contains(t, names, "Am7")
	assert.Contains(t, names, "C7")
	assert.NotContains(t, names, "Dm7")

	// In-scale supersets sort before chords that add chromatic tones.
	assert.Less(t, indexOf(names, "Cmaj7"), indexOf(names, "C7"))

	assert.Empty(t, tn.SupersetChords(nil, tn.ScaleNotes()))
}

func TestCommonTones(t *testing.T) {
	assert.Equal(t, 2, CommonTones([]string{"G", "B", "D", "F"}, []string{"Db", "F", "Ab", "Cb"}))
	assert.Equal(t, 3, CommonTones([]string{"C", "E", "G"}, []string{"A", "C", "E", "G"}))
	assert.Equal(t, 0, CommonTones(nil, []string{"C"}))
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
