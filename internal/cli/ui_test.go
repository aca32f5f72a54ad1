package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

var tableCands = []substitution.Candidate{
	{ID: "1", Label: "Db7", FullName: "Db dominant 7", Type: substitution.TritoneSub, Family: substitution.FamilyDominant, Tier: 0, Grade: substitution.GradePerfect, HarmonicDistance: 0.12, VoiceLeading: "2 common tones"},
	{ID: "2", Label: "Bb7", FullName: "Bb dominant 7", Type: substitution.Backdoor, Family: substitution.FamilyDominant, Tier: 1, Grade: substitution.GradeExcellent, HarmonicDistance: 0.31},
	{ID: "3", Label: "Abmaj7", FullName: "Ab major 7", Type: substitution.ModalInterchange, Family: substitution.FamilyModal, Tier: 3, Grade: substitution.GradeFair, HarmonicDistance: 0.77},
}

func TestCandidateTable(t *testing.T) {
	out := candidateTable(tableCands, -1, 0, 0)

	for _, h := range candidateHeaders {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "Db7")
	assert.Contains(t, out, "tritone sub")
	assert.Contains(t, out, "1/5")
	assert.Contains(t, out, "0.12")
	assert.Contains(t, out, "Abmaj7")
	assert.Contains(t, out, "4/5")
}

func TestCandidateTableWindow(t *testing.T) {
	out := candidateTable(tableCands, 1, 1, 1)

	assert.Contains(t, out, "Bb7")
	assert.NotContains(t, out, "Db7")
	assert.NotContains(t, out, "Abmaj7")
}

func TestCandidateRow(t *testing.T) {
	row := candidateRow(tableCands[1])
	assert.Equal(t, []string{"Bb7", "Bb dominant 7", "backdoor", "dominant", "2/5", "excellent", "0.31", ""}, row)
}

func TestStatsLine(t *testing.T) {
	line := statsLine(menu.Stats{Candidates: 17, Visible: 9, Hidden: 8, Clusters: 1, Iterations: 42}, true)

	assert.Contains(t, line, "17 candidates")
	assert.Contains(t, line, "9 shown")
	assert.Contains(t, line, "8 hidden")
	assert.Contains(t, line, "1 clusters")
	assert.Contains(t, line, "42 iterations")
	assert.True(t, strings.HasSuffix(line, iconCached))

	fresh := statsLine(menu.Stats{Candidates: 3, Visible: 3}, false)
	assert.NotContains(t, fresh, "hidden")
	assert.True(t, strings.HasSuffix(fresh, iconFresh))
}
