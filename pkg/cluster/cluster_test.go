package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cluster"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

func cand(family substitution.Family, root, quality string, dist float64) substitution.Candidate {
	return substitution.Candidate{
		Type:             substitution.Container,
		Root:             root,
		ChordType:        quality,
		FullName:         root + quality,
		Family:           family,
		HarmonicDistance: dist,
	}
}

func TestGroupFiveContainersOnD(t *testing.T) {
	var cands []substitution.Candidate
	for i, q := range []string{"m7", "m9", "m11", "m6", "sus4"} {
		cands = append(cands, cand(substitution.FamilyExtension, "D", q, float64(i)))
	}
	r := cluster.Group(cands, 3)

	clusters := r.SurfacedClusters()
	require.Len(t, clusters, 1)
	assert.Equal(t, "D · 5 options", clusters[0].Label)
	assert.Len(t, clusters[0].Members, 5)

	units := r.Units()
	require.Len(t, units, 1)
	assert.NotNil(t, units[0].Cluster)
}

func TestGroupBelowThreshold(t *testing.T) {
	cands := []substitution.Candidate{
		cand(substitution.FamilyExtension, "D", "m7", 1),
		cand(substitution.FamilyExtension, "D", "m9", 2),
		cand(substitution.FamilyModal, "D", "7", 3),
	}
	r := cluster.Group(cands, 0)
	assert.Equal(t, cluster.DefaultThreshold, r.Threshold)
	assert.Empty(t, r.SurfacedClusters())
	units := r.Units()
	require.Len(t, units, 3)
	for i, u := range units {
		assert.Nil(t, u.Cluster)
		require.NotNil(t, u.Candidate)
		assert.Equal(t, cands[i], *u.Candidate)
	}
}

func TestGroupMembersShareKey(t *testing.T) {
	cands := []substitution.Candidate{
		cand(substitution.FamilyExtension, "D", "m7", 1),
		cand(substitution.FamilyMediant, "D", "m", 2),
		cand(substitution.FamilyExtension, "F", "maj7", 3),
		cand(substitution.FamilyExtension, "D", "m9", 4),
		cand(substitution.FamilyExtension, "D", "m11", 5),
		cand(substitution.FamilyExtension, "F", "6", 6),
	}
	r := cluster.Group(cands, 3)
	for k, members := range r.Clusters {
		for _, m := range members {
			assert.Equal(t, k.Family, m.Family)
			assert.Equal(t, k.Root, m.Root)
		}
	}

	clusters := r.SurfacedClusters()
	require.Len(t, clusters, 1)
	assert.Equal(t, cluster.Key{Family: substitution.FamilyExtension, Root: "D"}, clusters[0].Key)
	assert.Equal(t, "Dm7", clusters[0].Best().FullName)

	units := r.Units()
	require.Len(t, units, 4)
	assert.NotNil(t, units[0].Cluster)
	assert.Equal(t, "Dm", units[1].Candidate.FullName)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Bb · 1 option", cluster.Label("Bb", 1))
	assert.Equal(t, "Bb · 4 options", cluster.Label("Bb", 4))
}
