package menu_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

func sample(t *testing.T) menu.Menu {
	t.Helper()
	ton, err := theory.NewTonality("C", theory.Major)
	require.NoError(t, err)
	g7, err := ton.Analyze("G", "7")
	require.NoError(t, err)

	nodes := []radial.PositionedNode{
		{ID: "a", Label: "subV7", FullName: "Db7", Family: substitution.FamilyDominant, Tier: 1, TierLabel: "tier 2/5", X: 0, Y: -120, Angle: -90, Radius: 120},
		{ID: "b", Label: "ii7", FullName: "Am7", Family: substitution.FamilySecondary, Tier: 0, TierLabel: "tier 1/5", X: 70, Y: -70, Angle: -45, Radius: 99},
	}
	return menu.Menu{
		Kind:      menu.KindSubstitutions,
		Key:       "C",
		Scale:     "major",
		Ranking:   "functional",
		Filter:    "all",
		Layout:    "auto",
		MaxRadius: 360,
		Center:    menu.FromChord(g7, true),
		Nodes:     nodes,
		Edges:     menu.Connect(nodes),
		Stats:     menu.Stats{Candidates: 2, Visible: 2},
	}
}

func TestRoundTrip(t *testing.T) {
	m := sample(t)
	data, err := menu.Marshal(m)
	require.NoError(t, err)

	got, err := menu.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFileRoundTrip(t *testing.T) {
	m := sample(t)
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, menu.WriteFile(m, path))

	got, err := menu.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = menu.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFromChord(t *testing.T) {
	m := sample(t)
	assert.Equal(t, "G7", m.Center.Name)
	assert.Equal(t, 5, m.Center.Degree)
	assert.Equal(t, []theory.Function{theory.FunctionDominant}, m.Center.Functions)
	assert.Len(t, m.Center.MIDI, 4)
}

func TestConnect(t *testing.T) {
	m := sample(t)
	require.Len(t, m.Edges, 2)
	for i, e := range m.Edges {
		assert.Equal(t, menu.CenterID, e.From)
		assert.Equal(t, m.Nodes[i].ID, e.To)
	}
	n, ok := m.Node("b")
	require.True(t, ok)
	assert.Equal(t, "Am7", n.FullName)
	_, ok = m.Node("zz")
	assert.False(t, ok)
}

func TestUnmarshalInvalid(t *testing.T) {
	_, err := menu.Unmarshal([]byte("{"))
	assert.Error(t, err)
}
