package radial_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cluster"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

func item(id string, f substitution.Family, tier int, dist float64) radial.Item {
	return radial.Item{ID: id, Label: id, FullName: id, Family: f, Tier: tier, Distance: dist, Kind: radial.KindCandidate}
}

func randomItems(rng *rand.Rand) []radial.Item {
	families := substitution.Families()
	n := 8 + rng.IntN(17)
	items := make([]radial.Item, n)
	for i := range items {
		items[i] = item(
			fmt.Sprintf("n%d", i),
			families[rng.IntN(len(families))],
			rng.IntN(5),
			rng.Float64()*100-50,
		)
	}
	return items
}

func TestLayoutEmpty(t *testing.T) {
	res := radial.Layout(nil, radial.DefaultOptions())
	assert.NotNil(t, res.Nodes)
	assert.Empty(t, res.Nodes)
}

func TestLayoutSeparationAndBounds(t *testing.T) {
	opts := radial.DefaultOptions()
	minSep := 0.9 * opts.Separation()

	for run := range 50 {
		seed := uint64(run + 1)
		rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
		items := randomItems(rng)

		o := opts
		o.Seed = seed
		res := radial.Layout(items, o)
		require.Len(t, res.Nodes, len(items))

		for i, a := range res.Nodes {
			assert.LessOrEqual(t, a.Radius, res.MaxRadius, "run %d node %s", run, a.ID)
			assert.LessOrEqual(t, math.Hypot(a.X, a.Y), res.MaxRadius+1e-6)
			for _, b := range res.Nodes[i+1:] {
				if a.Tier != b.Tier {
					continue
				}
				assert.GreaterOrEqual(t, radial.Distance(a, b), minSep,
					"run %d: %s and %s overlap", run, a.ID, b.ID)
			}
		}
	}
}

func TestLayoutViewportLimitsRadius(t *testing.T) {
	opts := radial.DefaultOptions()
	opts.Width, opts.Height = 400, 300
	want := 300.0/2 - opts.NodeSize/2
	assert.InDelta(t, want, opts.EffectiveMaxRadius(), 1e-9)

	items := []radial.Item{
		item("a", substitution.FamilyDominant, 0, 0),
		item("b", substitution.FamilyTonic, 2, 40),
		item("c", substitution.FamilyMediant, 4, 90),
	}
	res := radial.Layout(items, opts)
	for _, n := range res.Nodes {
		assert.LessOrEqual(t, n.Radius, want)
		assert.LessOrEqual(t, n.TargetRadius, want+1e-9)
	}
}

func TestLayoutEqualDistancesUseFallback(t *testing.T) {
	items := []radial.Item{
		item("a", substitution.FamilyDominant, 1, 7),
		item("b", substitution.FamilyTonic, 1, 7),
		item("c", substitution.FamilyModal, 1, 7),
	}
	res := radial.Layout(items, radial.DefaultOptions())
	for _, n := range res.Nodes {
		assert.InDelta(t, 220, n.TargetRadius, 1e-9)
	}
}

func TestLayoutTargets(t *testing.T) {
	items := []radial.Item{
		item("dom", substitution.FamilyDominant, 1, 0),
		item("ton", substitution.FamilyTonic, 1, 10),
	}
	res := radial.Layout(items, radial.DefaultOptions())
	require.Len(t, res.Nodes, 2)
	assert.InDelta(t, -90, res.Nodes[0].TargetAngle, 1e-9)
	assert.InDelta(t, 80, res.Nodes[0].TargetRadius, 1e-9)
	assert.InDelta(t, 90, res.Nodes[1].TargetAngle, 1e-9)
	assert.InDelta(t, 360, res.Nodes[1].TargetRadius, 1e-9)
	assert.Equal(t, "tier 2/5", res.Nodes[0].TierLabel)

	opts := radial.DefaultOptions()
	opts.Mode = radial.ModeQuadrant
	res = radial.Layout(items, opts)
	assert.InDelta(t, -45, res.Nodes[0].TargetAngle, 1e-9)
	assert.InDelta(t, 45, res.Nodes[1].TargetAngle, 1e-9)
}

func TestLayoutFamilyFan(t *testing.T) {
	items := []radial.Item{
		item("a", substitution.FamilySecondary, 1, 0),
		item("b", substitution.FamilySecondary, 1, 5),
		item("c", substitution.FamilySecondary, 1, 10),
	}
	res := radial.Layout(items, radial.DefaultOptions())
	assert.InDelta(t, -63, res.Nodes[0].TargetAngle, 1e-9)
	assert.InDelta(t, -45, res.Nodes[1].TargetAngle, 1e-9)
	assert.InDelta(t, -27, res.Nodes[2].TargetAngle, 1e-9)
}

func TestLayoutClusterCentroid(t *testing.T) {
	var members []substitution.Candidate
	for _, q := range []string{"7", "9", "13"} {
		members = append(members, substitution.Candidate{
			Root: "Db", ChordType: q, FullName: "Db" + q,
			Family: substitution.FamilyDominant, Tier: 1, HarmonicDistance: 1,
		})
	}
	cl := cluster.Group(members, 3).SurfacedClusters()
	require.Len(t, cl, 1)

	res := radial.Layout([]radial.Item{radial.FromCluster(cl[0])}, radial.DefaultOptions())
	require.Len(t, res.Nodes, 1)
	n := res.Nodes[0]
	assert.Equal(t, radial.KindCluster, n.Kind)
	assert.Equal(t, "Db · 3 options", n.Label)
	assert.Len(t, n.Members, 3)
	assert.InDelta(t, -90, n.TargetAngle, 1e-6)
	want := 220 * (1 + 2*math.Cos(18*math.Pi/180)) / 3
	assert.InDelta(t, want, n.TargetRadius, 1e-6)
}

func TestLayoutMoreNode(t *testing.T) {
	hidden := []substitution.Candidate{
		{FullName: "X", Family: substitution.FamilyMediant, Tier: 3, HarmonicDistance: 40},
		{FullName: "Y", Family: substitution.FamilyMediant, Tier: 4, HarmonicDistance: 50},
	}
	items := radial.Items(nil, hidden)
	require.Len(t, items, 1)
	assert.Equal(t, radial.KindMore, items[0].Kind)
	assert.Equal(t, "+2 more", items[0].Label)
	assert.Equal(t, 3, items[0].Tier)

	_, ok := radial.More(nil)
	assert.False(t, ok)
}

func TestLayoutDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9^0xdeadbeef))
	items := randomItems(rng)
	a := radial.Layout(items, radial.DefaultOptions())
	b := radial.Layout(items, radial.DefaultOptions())
	assert.Equal(t, a, b)
}

func TestLayoutIterationsBounded(t *testing.T) {
	opts := radial.DefaultOptions()
	opts.Iterations = 3
	rng := rand.New(rand.NewPCG(3, 3^0xdeadbeef))
	res := radial.Layout(randomItems(rng), opts)
	assert.LessOrEqual(t, res.Iterations, 3)
}

func TestOptionsValidate(t *testing.T) {
	var o radial.Options
	require.NoError(t, o.ValidateAndSetDefaults())
	assert.Equal(t, radial.DefaultOptions().MaxRadius, o.MaxRadius)
	assert.Equal(t, radial.ModeAuto, o.Mode)

	bad := radial.Options{MinRadius: 300, MaxRadius: 200}
	assert.Error(t, bad.ValidateAndSetDefaults())

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		o := radial.Options{Width: v, Height: 400}
		assert.Error(t, o.ValidateAndSetDefaults(), "width %v", v)
		o = radial.Options{Attraction: v}
		assert.Error(t, o.ValidateAndSetDefaults(), "attraction %v", v)
	}

	_, err := radial.ParseMode("spiral")
	assert.Error(t, err)
}
