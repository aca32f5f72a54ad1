package substitution

import (
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// Input is what a [Rule] sees: the chord being substituted, the context, and
// spelling helpers derived from the key. For passing-chord rules Chord is the
// target and From is the chord being left.
type Input struct {
	Chord theory.Chord
	From  *theory.Chord
	Ctx   Context

	scale   []string
	sharps  bool
	tonic   theory.PitchClass
	tonicOK bool
	minor   bool
}

func newInput(chord theory.Chord, ctx Context) Input {
	in := Input{
		Chord:  chord,
		Ctx:    ctx,
		sharps: theory.KeyUsesSharps(ctx.Key, ctx.Scale),
		minor:  ctx.Scale.IsMinor(),
	}
	in.scale, _ = theory.ScaleNotes(ctx.Key, ctx.Scale)
	in.tonic, in.tonicOK = theory.ParsePitch(ctx.Key)
	return in
}

// ScaleNotes returns the context's scale spelled from the key.
func (in Input) ScaleNotes() []string { return in.scale }

// MinorContext reports whether the context scale is minor-ish.
func (in Input) MinorContext() bool { return in.minor }

// Spell names a pitch class, preferring the scale's spelling.
func (in Input) Spell(p theory.PitchClass) string {
	for _, n := range in.scale {
		if q, ok := theory.ParsePitch(n); ok && q == p {
			return n
		}
	}
	return theory.Spell(p, in.sharps)
}

// Transpose moves root by n semitones and spells the result in key.
func (in Input) Transpose(root string, n int) (string, bool) {
	pc, ok := theory.ParsePitch(root)
	if !ok {
		return "", false
	}
	return in.Spell(pc.Add(n)), true
}

// FromTonic spells the pitch n semitones above the key's tonic. It fails
// when the key does not name a pitch.
func (in Input) FromTonic(n int) (string, bool) {
	if !in.tonicOK {
		return "", false
	}
	return in.Spell(in.tonic.Add(n)), true
}
