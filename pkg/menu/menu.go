package menu

import (
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

// CenterID is the node ID of the centre chord in edges.
const CenterID = "center"

// Kinds of menu.
const (
	KindSubstitutions = "substitutions"
	KindPassing       = "passing"
)

// Menu is a laid-out substitution menu.
type Menu struct {
	Kind string `json:"kind"`

	Key        string `json:"key"`
	Scale      string `json:"scale"`
	Ranking    string `json:"ranking"`
	Filter     string `json:"filter"`
	Layout     string `json:"layout"`
	Exhaustive bool   `json:"exhaustive"`
	Complexity int    `json:"complexity"`

	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	MaxRadius float64 `json:"maxRadius"`

	Center Chord `json:"center"`

	// Target is the chord a passing menu approaches, nil otherwise.
	Target *Chord `json:"target,omitempty"`

	Nodes []radial.PositionedNode `json:"nodes"`
	Edges []Edge                  `json:"edges"`

	Stats Stats `json:"stats"`
}

// Chord describes the centre chord.
type Chord struct {
	Name      string            `json:"name"`
	Root      string            `json:"root"`
	Type      string            `json:"type"`
	Notes     []string          `json:"notes"`
	MIDI      []int             `json:"midi,omitempty"`
	Degree    int               `json:"degree,omitempty"`
	Functions []theory.Function `json:"functions,omitempty"`
	Diatonic  bool              `json:"diatonic"`
}

// FromChord converts an analysed chord.
func FromChord(c theory.Chord, diatonic bool) Chord {
	midi, _ := theory.MIDINotes(c.Notes, theory.DefaultOctave)
	return Chord{
		Name:      c.Name(),
		Root:      c.Root,
		Type:      c.Type,
		Notes:     c.Notes,
		MIDI:      midi,
		Degree:    c.Degree,
		Functions: c.Functions,
		Diatonic:  diatonic,
	}
}

// Edge is a connector line between two node IDs.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Stats summarise how the menu was produced.
type Stats struct {
	Candidates int  `json:"candidates"`
	Visible    int  `json:"visible"`
	Hidden     int  `json:"hidden"`
	Clusters   int  `json:"clusters"`
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// Connect returns one edge from the centre to every node.
func Connect(nodes []radial.PositionedNode) []Edge {
	edges := make([]Edge, len(nodes))
	for i, n := range nodes {
		edges[i] = Edge{From: CenterID, To: n.ID}
	}
	return edges
}

// Node returns the node with the given ID.
func (m *Menu) Node(id string) (radial.PositionedNode, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return radial.PositionedNode{}, false
}
