package substitution

import (
	"github.com/google/uuid"

	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// midiOctave is the octave candidate voicings start from.
const midiOctave = 3

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("chordmap/substitution"))

// Generator applies a rule table to chords.
type Generator struct {
	rules []Rule
}

// Option configures a Generator.
type Option func(*Generator)

// WithRules replaces the rule table.
func WithRules(rules ...Rule) Option {
	return func(g *Generator) { g.rules = rules }
}

// NewGenerator returns a generator using [DefaultRules] unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{rules: DefaultRules()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rules returns the generator's rule table.
func (g *Generator) Rules() []Rule { return g.rules }

// Generate proposes substitutions for chord in ctx. The result is
// deduplicated on (type, root, quality), so one chord reached by two rules
// appears once per rule; the input chord itself never appears.
// Candidates are ungraded: Tier and HarmonicDistance are zero.
func (g *Generator) Generate(chord theory.Chord, ctx Context) []Candidate {
	chord = fillNotes(chord, ctx)
	in := newInput(chord, ctx)
	return g.run(g.rules, in, chord.Notes, []theory.Chord{chord})
}

// Passing proposes chords to insert between from and to. Voice leading is
// measured from from.
func (g *Generator) Passing(from, to theory.Chord, ctx Context) []Candidate {
	from = fillNotes(from, ctx)
	to = fillNotes(to, ctx)
	in := newInput(to, ctx)
	in.From = &from
	return g.run(PassingRules(), in, from.Notes, []theory.Chord{from, to})
}

func (g *Generator) run(rules []Rule, in Input, leadFrom []string, exclude []theory.Chord) []Candidate {
	type chordKey struct {
		root    theory.PitchClass
		quality string
	}
	type key struct {
		typ Type
		chordKey
	}
	excluded := make(map[chordKey]bool, len(exclude))
	for _, c := range exclude {
		if pc, ok := theory.ParsePitch(c.Root); ok {
			excluded[chordKey{pc, theory.CanonicalQuality(c.Type)}] = true
		}
	}

	seen := make(map[key]bool)
	out := []Candidate{}
	for _, r := range rules {
		for _, p := range r.Propose(in) {
			pc, ok := theory.ParsePitch(p.Root)
			if !ok {
				continue
			}
			q, ok := theory.LookupQuality(p.Quality)
			if !ok {
				continue
			}
			ck := chordKey{pc, q.Symbol}
			k := key{p.Type, ck}
			if excluded[ck] || seen[k] {
				continue
			}
			c, ok := build(p, q.Symbol, in.Ctx, leadFrom)
			if !ok {
				continue
			}
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}

func build(p Proposal, quality string, ctx Context, leadFrom []string) (Candidate, bool) {
	var (
		notes []string
		err   error
	)
	if ctx.Provider != nil {
		notes, err = ctx.Provider.ChordNotes(p.Root, quality)
	} else {
		notes, err = theory.ChordNotes(p.Root, quality)
	}
	if err != nil {
		return Candidate{}, false
	}
	name := p.Root + quality
	c := Candidate{
		ID:          uuid.NewSHA1(idNamespace, []byte(string(p.Type)+"|"+name)).String(),
		Type:        p.Type,
		Root:        p.Root,
		ChordType:   quality,
		FullName:    name,
		Label:       p.Label,
		Family:      FamilyOf(p.Type),
		Grade:       p.Grade,
		Notes:       notes,
		CommonTones: theory.CommonTones(leadFrom, notes),
		ExtraNotes:  p.Extra,
	}
	if c.Label == "" {
		c.Label = name
	}
	if len(leadFrom) > 0 {
		c.VoiceLeading = theory.VoiceLeading(leadFrom, notes).String()
	}
	c.MIDI, _ = theory.MIDINotes(notes, midiOctave)
	return c, true
}

func fillNotes(c theory.Chord, ctx Context) theory.Chord {
	if len(c.Notes) > 0 {
		return c
	}
	var err error
	if ctx.Provider != nil {
		c.Notes, err = ctx.Provider.ChordNotes(c.Root, c.Type)
	} else {
		c.Notes, err = theory.ChordNotes(c.Root, c.Type)
	}
	if err != nil {
		c.Notes = nil
	}
	return c
}
