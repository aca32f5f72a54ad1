package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultOctave is the octave assumed for names without one (C4 = MIDI 60).
const DefaultOctave = 4

// NoteToMIDI converts a note name with an optional octave ("C4", "F#3",
// "Eb") to a MIDI note number. Names without an octave use [DefaultOctave].
func NoteToMIDI(name string) (int, error) {
	name = normalizeAccidentals.Replace(strings.TrimSpace(name))
	split := len(name)
	for i := 1; i < len(name); i++ {
		if name[i] == '-' || (name[i] >= '0' && name[i] <= '9') {
			split = i
			break
		}
	}
	pc, ok := ParsePitch(name[:split])
	if !ok {
		return 0, fmt.Errorf("unknown pitch name: %q", name)
	}
	octave := DefaultOctave
	if split < len(name) {
		o, err := strconv.Atoi(name[split:])
		if err != nil {
			return 0, fmt.Errorf("bad octave in %q: %w", name, err)
		}
		octave = o
	}
	return (octave+1)*12 + int(pc), nil
}

// VoiceClose stacks pitches upward from baseOctave so each note sounds above
// the previous one. Existing octave numbers on the input are ignored.
func VoiceClose(pitches []string, baseOctave int) ([]string, error) {
	out := make([]string, 0, len(pitches))
	prev := -1
	for _, p := range pitches {
		head := strings.TrimRight(p, "-0123456789")
		octave := baseOctave
		midi, err := NoteToMIDI(head + strconv.Itoa(octave))
		if err != nil {
			return nil, err
		}
		for prev >= 0 && midi <= prev {
			octave++
			midi += 12
		}
		out = append(out, head+strconv.Itoa(octave))
		prev = midi
	}
	return out, nil
}

// MIDINotes returns the MIDI numbers of the close voicing of pitches.
func MIDINotes(pitches []string, baseOctave int) ([]int, error) {
	voiced, err := VoiceClose(pitches, baseOctave)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(voiced))
	for i, v := range voiced {
		if out[i], err = NoteToMIDI(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Motion summarizes the voice leading from one chord to another by pitch
// class: tones kept, tones reached by step (1-2 semitones) and tones reached
// by leap.
type Motion struct {
	Common    int `json:"common"`
	Stepwise  int `json:"stepwise"`
	Leaps     int `json:"leaps"`
	Semitones int `json:"semitones"` // total movement of the moving voices
}

// VoiceLeading computes the [Motion] from notes a to notes b. Each tone of b
// is reached from the nearest tone of a.
func VoiceLeading(a, b []string) Motion {
	from, to := PitchSet(a), PitchSet(b)
	var m Motion
	for _, p := range to {
		best := 12
		for _, q := range from {
			d := q.Interval(p)
			if d > 6 {
				d = 12 - d
			}
			best = min(best, d)
		}
		switch {
		case best == 0:
			m.Common++
		case best <= 2:
			m.Stepwise++
			m.Semitones += best
		case best < 12:
			m.Leaps++
			m.Semitones += best
		}
	}
	return m
}

// String renders the motion as a short description, e.g.
// "2 common tones, 2 by step".
func (m Motion) String() string {
	parts := []string{plural(m.Common, "common tone", "common tones")}
	if m.Stepwise > 0 {
		parts = append(parts, fmt.Sprintf("%d by step", m.Stepwise))
	}
	if m.Leaps > 0 {
		parts = append(parts, plural(m.Leaps, "leap", "leaps"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
