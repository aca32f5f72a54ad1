// Package cluster groups substitution candidates that share a family and
// root so large groups can be drawn as one collapsible node.
package cluster

import (
	"fmt"

	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// DefaultThreshold is the smallest group that is surfaced as a cluster.
const DefaultThreshold = 3

// Key identifies a group.
type Key struct {
	Family substitution.Family `json:"family"`
	Root   string              `json:"root"`
}

func (k Key) String() string { return string(k.Family) + ":" + k.Root }

// Cluster is a surfaced group.
type Cluster struct {
	Key     Key                      `json:"key"`
	Label   string                   `json:"label"`
	Members []substitution.Candidate `json:"members"`
}

// Best returns the member with the lowest harmonic distance. Members keep
// input order, so for a sorted input this is the first member.
func (c Cluster) Best() substitution.Candidate {
	best := c.Members[0]
	for _, m := range c.Members[1:] {
		if m.HarmonicDistance < best.HarmonicDistance {
			best = m
		}
	}
	return best
}

// Result holds every group, surfaced or not.
type Result struct {
	Clusters  map[Key][]substitution.Candidate
	Threshold int

	order []Key
	input []substitution.Candidate
}

// Group partitions cands by family and root. A threshold below 1 means
// [DefaultThreshold].
func Group(cands []substitution.Candidate, threshold int) Result {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	r := Result{
		Clusters:  make(map[Key][]substitution.Candidate),
		Threshold: threshold,
		input:     cands,
	}
	for _, c := range cands {
		k := KeyOf(c)
		if _, ok := r.Clusters[k]; !ok {
			r.order = append(r.order, k)
		}
		r.Clusters[k] = append(r.Clusters[k], c)
	}
	return r
}

// KeyOf returns the grouping key of a candidate.
func KeyOf(c substitution.Candidate) Key {
	return Key{Family: c.Family, Root: c.Root}
}

// Surfaced reports whether the group at k is drawn as a cluster.
func (r Result) Surfaced(k Key) bool {
	return len(r.Clusters[k]) >= r.Threshold
}

// SurfacedClusters returns the groups at or above the threshold in order of first
// appearance.
func (r Result) SurfacedClusters() []Cluster {
	var out []Cluster
	for _, k := range r.order {
		if !r.Surfaced(k) {
			continue
		}
		m := r.Clusters[k]
		out = append(out, Cluster{Key: k, Label: Label(k.Root, len(m)), Members: m})
	}
	return out
}

// Unit is one drawable entry: a single candidate or a cluster.
type Unit struct {
	Candidate *substitution.Candidate
	Cluster   *Cluster
}

// Units returns the drawable entries in input order. A cluster takes the
// place of its first member.
func (r Result) Units() []Unit {
	clusters := make(map[Key]*Cluster)
	for _, c := range r.SurfacedClusters() {
		clusters[c.Key] = &c
	}
	var out []Unit
	placed := make(map[Key]bool)
	for i := range r.input {
		k := KeyOf(r.input[i])
		if cl, ok := clusters[k]; ok {
			if !placed[k] {
				out = append(out, Unit{Cluster: cl})
				placed[k] = true
			}
			continue
		}
		out = append(out, Unit{Candidate: &r.input[i]})
	}
	return out
}

// Label renders a cluster label, e.g. "D · 5 options".
func Label(root string, n int) string {
	if n == 1 {
		return root + " · 1 option"
	}
	return fmt.Sprintf("%s · %d options", root, n)
}
