package pipeline

import (
	"github.com/parkerchace/MusicTheory-sub000/pkg/errors"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// Analysis is the resolved tonal context of a run.
type Analysis struct {
	Tonality *theory.Tonality
	Chord    theory.Chord
	Target   *theory.Chord // passing menus only
	Context  substitution.Context
}

// Analyze parses the chord symbols and places them in the key: degree,
// harmonic functions and whether the chord is diatonic.
func Analyze(opts Options) (Analysis, error) {
	ton, err := theory.NewTonality(opts.Key, theory.Scale(opts.Scale))
	if err != nil {
		return Analysis{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "key %s %s", opts.Key, opts.Scale)
	}
	chord, err := analyzeSymbol(ton, opts.Chord)
	if err != nil {
		return Analysis{}, err
	}
	a := Analysis{
		Tonality: ton,
		Chord:    chord,
		Context:  substitution.NewContext(ton).WithChord(chord),
	}
	if opts.Passing != "" {
		target, err := analyzeSymbol(ton, opts.Passing)
		if err != nil {
			return Analysis{}, err
		}
		a.Target = &target
	}
	return a, nil
}

func analyzeSymbol(ton *theory.Tonality, symbol string) (theory.Chord, error) {
	root, quality, err := theory.ParseSymbol(symbol)
	if err != nil {
		return theory.Chord{}, errors.Wrap(errors.ErrCodeInvalidChord, err, "chord %q", symbol)
	}
	c, err := ton.Analyze(root, quality)
	if err != nil {
		return theory.Chord{}, errors.Wrap(errors.ErrCodeInvalidChord, err, "chord %q", symbol)
	}
	return c, nil
}

// Generate proposes substitutions (or passing chords) and grades them. The
// result is sorted by harmonic distance.
func Generate(a Analysis, opts Options) []substitution.Candidate {
	gen := substitution.NewGenerator()

	var cands []substitution.Candidate
	if a.Target != nil {
		cands = gen.Passing(a.Chord, *a.Target, a.Context)
	} else {
		cands = gen.Generate(a.Chord, a.Context)
	}

	g := rank.New(rank.Mode(opts.Ranking))
	g.Weights = opts.Weights.Merge(rank.DefaultWeights())
	return g.Grade(cands)
}
