package pipeline

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cache"
	"github.com/parkerchace/MusicTheory-sub000/pkg/errors"
	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(io.Discard))
}

func find(cands []substitution.Candidate, name string) (substitution.Candidate, bool) {
	for _, c := range cands {
		if c.FullName == name {
			return c, true
		}
	}
	return substitution.Candidate{}, false
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Chord: "G7"}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, "C", opts.Key)
	assert.Equal(t, "major", opts.Scale)
	assert.Equal(t, "functional", opts.Ranking)
	assert.Equal(t, "all", opts.Filter)
	assert.Equal(t, "auto", opts.Layout)
	assert.Equal(t, DefaultComplexity, opts.Complexity)
	assert.Equal(t, 3, opts.Threshold)
	assert.Equal(t, DefaultSeed, opts.Seed)
	assert.Equal(t, []string{"json"}, opts.Formats)
	assert.Equal(t, 10.0, opts.Weights.Family)
	assert.NotNil(t, opts.Logger)

	// Idempotent.
	before := opts
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, before.Formats, opts.Formats)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing chord", Options{}, errors.ErrCodeInvalidInput},
		{"bad chord", Options{Chord: "H7"}, errors.ErrCodeInvalidChord},
		{"bad passing", Options{Chord: "C", Passing: "Cqq"}, errors.ErrCodeInvalidChord},
		{"bad key", Options{Chord: "C", Key: "Z"}, errors.ErrCodeInvalidPitch},
		{"bad scale", Options{Chord: "C", Scale: "bebop"}, errors.ErrCodeInvalidScale},
		{"bad ranking", Options{Chord: "C", Ranking: "loud"}, errors.ErrCodeInvalidMode},
		{"bad filter", Options{Chord: "C", Filter: "weird"}, errors.ErrCodeInvalidMode},
		{"bad layout", Options{Chord: "C", Layout: "spiral"}, errors.ErrCodeInvalidMode},
		{"complexity", Options{Chord: "C", Complexity: 101}, errors.ErrCodeInvalidInput},
		{"format", Options{Chord: "C", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"nan viewport", Options{Chord: "C", Width: math.NaN(), Height: 400}, errors.ErrCodeInvalidInput},
		{"inf viewport", Options{Chord: "C", Width: 400, Height: math.Inf(1)}, errors.ErrCodeInvalidInput},
		{"nan layout param", Options{Chord: "C", Params: radial.Options{NodeSize: math.NaN()}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestAnalyze(t *testing.T) {
	opts := Options{Chord: "G7", Key: "C"}
	require.NoError(t, opts.ValidateAndSetDefaults())

	a, err := Analyze(opts)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Chord.Degree)
	assert.True(t, a.Context.Diatonic)
	assert.Nil(t, a.Target)

	opts = Options{Chord: "Db7", Key: "C"}
	require.NoError(t, opts.ValidateAndSetDefaults())
	a, err = Analyze(opts)
	require.NoError(t, err)
	assert.False(t, a.Context.Diatonic)
}

func TestExecute(t *testing.T) {
	r := quietRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Chord: "G7", Key: "C", Formats: []string{"json", "dot"}})
	require.NoError(t, err)

	db7, ok := find(res.Candidates, "Db7")
	require.True(t, ok)
	assert.Equal(t, substitution.TritoneSub, db7.Type)

	for i := 1; i < len(res.Candidates); i++ {
		assert.LessOrEqual(t, res.Candidates[i-1].HarmonicDistance, res.Candidates[i].HarmonicDistance)
	}

	m := res.Menu
	assert.Equal(t, menu.KindSubstitutions, m.Kind)
	assert.Equal(t, "G7", m.Center.Name)
	assert.Equal(t, 5, m.Center.Degree)
	assert.Len(t, m.Edges, len(m.Nodes))
	assert.Equal(t, len(res.Candidates), m.Stats.Candidates)
	assert.Equal(t, m.Stats.Candidates, m.Stats.Visible+m.Stats.Hidden)
	for _, n := range m.Nodes {
		assert.LessOrEqual(t, n.Radius, m.MaxRadius+1e-9)
	}
	if m.Stats.Hidden > 0 {
		more, ok := m.Node(radial.MoreID)
		require.True(t, ok)
		assert.Len(t, more.Members, m.Stats.Hidden)
	}

	decoded, err := menu.Unmarshal(res.Artifacts["json"])
	require.NoError(t, err)
	assert.Equal(t, m.Center, decoded.Center)
	assert.Len(t, decoded.Nodes, len(m.Nodes))
	assert.Contains(t, string(res.Artifacts["dot"]), `"center" [label="G7"`)
	assert.NotEmpty(t, res.MenuHash)
}

func TestExecuteExhaustive(t *testing.T) {
	r := quietRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Chord: "G7", Exhaustive: true})
	require.NoError(t, err)
	assert.Zero(t, res.Menu.Stats.Hidden)
	_, ok := res.Menu.Node(radial.MoreID)
	assert.False(t, ok)
}

func TestExecutePassing(t *testing.T) {
	r := quietRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Chord: "Cmaj7", Passing: "Dm7", Exhaustive: true})
	require.NoError(t, err)

	assert.Equal(t, menu.KindPassing, res.Menu.Kind)
	require.NotNil(t, res.Menu.Target)
	assert.Equal(t, "Dm7", res.Menu.Target.Name)
	a7, ok := find(res.Candidates, "A7")
	require.True(t, ok)
	assert.Equal(t, substitution.SecondaryDominant, a7.Type)
}

func TestExecuteDeterministic(t *testing.T) {
	r := quietRunner(t, nil)
	opts := Options{Chord: "F", Key: "C", Filter: "surprise", Exhaustive: true}

	a, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	b, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, a.Menu.Nodes, b.Menu.Nodes)
}

func TestExecuteCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(t, fc)
	ctx := context.Background()
	opts := Options{Chord: "Am7", Key: "C", Formats: []string{"json"}}

	first, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.GenerateHit)
	assert.False(t, first.CacheInfo.MenuHit)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.GenerateHit)
	assert.True(t, second.CacheInfo.MenuHit)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts["json"], second.Artifacts["json"])
	assert.Equal(t, len(first.Candidates), len(second.Candidates))

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.MenuHit)
}

func TestInjectedRandSkipsMenuCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(t, fc)
	ctx := context.Background()

	opts := Options{Chord: "G7", Filter: "surprise", Rand: rand.New(rand.NewPCG(7, 7))}
	_, hit, err := r.MenuWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	assert.False(t, hit)
	_, hit, err = r.MenuWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMenuKeyOpts(t *testing.T) {
	a := Options{Chord: "G7"}
	b := Options{Chord: "G7", Width: 400, Height: 300}
	require.NoError(t, a.ValidateAndSetDefaults())
	require.NoError(t, b.ValidateAndSetDefaults())

	k := cache.NewDefaultKeyer()
	assert.Equal(t, k.SubstitutionsKey(a.SubstitutionKeyOpts()), k.SubstitutionsKey(b.SubstitutionKeyOpts()))
	assert.NotEqual(t, k.MenuKey(a.MenuKeyOpts()), k.MenuKey(b.MenuKeyOpts()))
}

func TestLayoutOptions(t *testing.T) {
	opts := Options{Chord: "G7", Layout: "quadrant", Width: 400, Height: 300, Seed: 9}
	opts.Params = radial.DefaultOptions()
	opts.Params.Iterations = 10
	require.NoError(t, opts.ValidateAndSetDefaults())

	lo := opts.LayoutOptions()
	assert.Equal(t, radial.ModeQuadrant, lo.Mode)
	assert.Equal(t, 400.0, lo.Width)
	assert.Equal(t, uint64(9), lo.Seed)
	assert.Equal(t, 10, lo.Iterations)
}
