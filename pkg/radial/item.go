package radial

import (
	"fmt"

	"github.com/parkerchace/MusicTheory-sub000/pkg/cluster"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// Kind distinguishes plain candidates from aggregate nodes.
type Kind string

// Node kinds.
const (
	KindCandidate Kind = "candidate"
	KindCluster   Kind = "cluster"
	KindMore      Kind = "more"
)

// MoreID is the ID of the overflow node.
const MoreID = "more"

// Item is one node to lay out.
type Item struct {
	ID       string
	Label    string
	FullName string
	Family   substitution.Family
	Tier     int
	Grade    substitution.Grade
	Distance float64
	Kind     Kind

	// Members are the virtual members of a cluster or "more" node.
	Members []substitution.Candidate
}

func (it Item) aggregate() bool { return it.Kind == KindCluster || it.Kind == KindMore }

// FromCandidate wraps a single candidate.
func FromCandidate(c substitution.Candidate) Item {
	return Item{
		ID:       c.ID,
		Label:    c.Label,
		FullName: c.FullName,
		Family:   c.Family,
		Tier:     c.Tier,
		Grade:    c.Grade,
		Distance: c.HarmonicDistance,
		Kind:     KindCandidate,
	}
}

// FromCluster wraps a surfaced cluster. The node takes its best member's
// tier, grade and distance.
func FromCluster(c cluster.Cluster) Item {
	best := c.Best()
	return Item{
		ID:       "cluster:" + c.Key.String(),
		Label:    c.Label,
		FullName: c.Label,
		Family:   c.Key.Family,
		Tier:     best.Tier,
		Grade:    best.Grade,
		Distance: best.HarmonicDistance,
		Kind:     KindCluster,
		Members:  c.Members,
	}
}

// More wraps hidden overflow candidates. It returns false when there are
// none.
func More(hidden []substitution.Candidate) (Item, bool) {
	if len(hidden) == 0 {
		return Item{}, false
	}
	it := Item{
		ID:       MoreID,
		Label:    fmt.Sprintf("+%d more", len(hidden)),
		FullName: fmt.Sprintf("%d more options", len(hidden)),
		Family:   hidden[0].Family,
		Tier:     rank.MaxTier,
		Distance: hidden[0].HarmonicDistance,
		Kind:     KindMore,
		Members:  hidden,
	}
	for _, h := range hidden {
		it.Tier = min(it.Tier, h.Tier)
	}
	return it, true
}

// Items converts clustered units plus overflow into layout items.
func Items(units []cluster.Unit, hidden []substitution.Candidate) []Item {
	out := make([]Item, 0, len(units)+1)
	for _, u := range units {
		switch {
		case u.Cluster != nil:
			out = append(out, FromCluster(*u.Cluster))
		case u.Candidate != nil:
			out = append(out, FromCandidate(*u.Candidate))
		}
	}
	if more, ok := More(hidden); ok {
		out = append(out, more)
	}
	return out
}

// PositionedNode is a laid-out item.
type PositionedNode struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	FullName  string              `json:"fullName"`
	Family    substitution.Family `json:"family"`
	Tier      int                 `json:"tier"`
	TierLabel string              `json:"tierLabel"`
	Grade     substitution.Grade  `json:"grade,omitempty"`
	Color     string              `json:"color"`
	Kind      Kind                `json:"kind"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`

	TargetAngle  float64 `json:"targetAngle"`
	TargetRadius float64 `json:"targetRadius"`

	Members []substitution.Candidate `json:"members,omitempty"`
}

var familyColors = map[substitution.Family]string{
	substitution.FamilyDominant:  "#e4572e",
	substitution.FamilySecondary: "#f3a712",
	substitution.FamilyTonic:     "#29335c",
	substitution.FamilyModal:     "#6a994e",
	substitution.FamilyExtension: "#669bbc",
	substitution.FamilyMediant:   "#8e6c8a",
}

const moreColor = "#9e9e9e"

// Color returns the display color of a family.
func Color(f substitution.Family) string {
	if c, ok := familyColors[f]; ok {
		return c
	}
	return moreColor
}
