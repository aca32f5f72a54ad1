// Package theory provides the pitch, chord and scale arithmetic the
// substitution engine is built on.
//
// # Pitch Classes
//
// Pitches are handled as [PitchClass] values (0 = C .. 11 = B). Names are
// parsed with [ParsePitch], which accepts ASCII and Unicode accidentals
// ("C#", "Db", "F♯", "Bbb", "Cx"), and spelled back with [Spell]. All
// semitone arithmetic is modulo 12.
//
// # Chords
//
// A [Chord] carries a root name, a canonical quality symbol ("", "m", "7",
// "maj7", "m7b5", "dim7", "9", "13", "7alt", ...), its spelled notes, an
// optional scale degree and a set of harmonic [Function] tags. Quality
// symbols are looked up in a fixed table; see [LookupQuality].
//
//	root, quality, err := theory.ParseSymbol("Bbm7")
//	notes, err := theory.ChordNotes(root, quality) // [Bb Db F Ab]
//
// # Tonal Context
//
// [Tonality] binds a key and a [Scale] and implements [Provider], the
// capability the generator consumes: diatonic chords by degree, chord
// spelling and superset ("container") search.
//
//	t, err := theory.NewTonality("C", theory.Major)
//	v, _ := t.DiatonicChord(5) // G7, functions {dominant}
//
// # Voicing
//
// [VoiceClose] and [NoteToMIDI] produce close-position voicings and MIDI
// numbers for playback collaborators; [Motion] summarizes voice leading
// between two chords.
package theory
