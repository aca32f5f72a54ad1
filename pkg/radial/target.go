package radial

import (
	"math"
	"slices"

	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// baseAngles is the auto-mode sector table, in degrees.
var baseAngles = map[substitution.Family]float64{
	substitution.FamilyDominant:  -90,
	substitution.FamilySecondary: -45,
	substitution.FamilyTonic:     90,
	substitution.FamilyModal:     -135,
	substitution.FamilyExtension: 45,
	substitution.FamilyMediant:   135,
}

// quadrants maps families to quadrant centres in quadrant mode.
var quadrants = map[substitution.Family]float64{
	substitution.FamilyDominant:  -45,
	substitution.FamilySecondary: -45,
	substitution.FamilyTonic:     45,
	substitution.FamilyModal:     -135,
	substitution.FamilyExtension: 135,
	substitution.FamilyMediant:   135,
}

const quadrantSpan = 90

// BaseAngle returns the sector centre of a family in mode m.
func BaseAngle(f substitution.Family, m Mode) float64 {
	table := baseAngles
	if m == ModeQuadrant {
		table = quadrants
	}
	if a, ok := table[f]; ok {
		return a
	}
	return 180
}

// polar is a target position. Angle is in degrees.
type polar struct {
	angle, radius float64
}

func (p polar) xy() (float64, float64) {
	rad := p.angle * math.Pi / 180
	return p.radius * math.Cos(rad), p.radius * math.Sin(rad)
}

func toPolar(x, y float64) polar {
	return polar{angle: math.Atan2(y, x) * 180 / math.Pi, radius: math.Hypot(x, y)}
}

// virtual is one slot in the angular fan: a plain item or one member of an
// aggregate.
type virtual struct {
	item     int
	family   substitution.Family
	tier     int
	distance float64
}

// targets computes the target of every item.
func targets(items []Item, o Options) []polar {
	var slots []virtual
	for i, it := range items {
		if !it.aggregate() || len(it.Members) == 0 {
			slots = append(slots, virtual{item: i, family: it.Family, tier: it.Tier, distance: it.Distance})
			continue
		}
		for _, m := range it.Members {
			slots = append(slots, virtual{item: i, family: m.Family, tier: m.Tier, distance: m.HarmonicDistance})
		}
	}

	angles := fan(slots, o)
	radii := radii(slots, o)

	sumX := make([]float64, len(items))
	sumY := make([]float64, len(items))
	count := make([]int, len(items))
	for s, v := range slots {
		x, y := polar{angles[s], radii[s]}.xy()
		sumX[v.item] += x
		sumY[v.item] += y
		count[v.item]++
	}

	maxR := o.EffectiveMaxRadius()
	out := make([]polar, len(items))
	for i := range items {
		n := float64(count[i])
		p := toPolar(sumX[i]/n, sumY[i]/n)
		if count[i] > 1 {
			// A centroid can fall toward the centre; keep it on the band.
			p.radius = clamp(p.radius, min(o.MinRadius, maxR), maxR)
		}
		out[i] = p
	}
	return out
}

// fan spreads slots of each family (or quadrant) around its base angle.
func fan(slots []virtual, o Options) []float64 {
	groups := make(map[float64][]int)
	var order []float64
	for s, v := range slots {
		base := BaseAngle(v.family, o.Mode)
		if _, ok := groups[base]; !ok {
			order = append(order, base)
		}
		groups[base] = append(groups[base], s)
	}

	out := make([]float64, len(slots))
	for _, base := range order {
		members := groups[base]
		slices.SortStableFunc(members, func(a, b int) int {
			switch {
			case slots[a].distance < slots[b].distance:
				return -1
			case slots[a].distance > slots[b].distance:
				return 1
			}
			return 0
		})
		n := len(members)
		for k, s := range members {
			if o.Mode == ModeQuadrant {
				out[s] = base - quadrantSpan/2 + quadrantSpan*(float64(k)+0.5)/float64(n)
				continue
			}
			out[s] = base + (float64(k)-float64(n-1)/2)*o.AngleStep
		}
	}
	return out
}

// radii maps harmonic distance onto the radius band, nudged by tier.
func radii(slots []virtual, o Options) []float64 {
	maxR := o.EffectiveMaxRadius()
	minR := min(o.MinRadius, maxR)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range slots {
		lo = min(lo, v.distance)
		hi = max(hi, v.distance)
	}

	out := make([]float64, len(slots))
	for s, v := range slots {
		r := min(o.FallbackRadius, maxR)
		if hi-lo > 1e-9 {
			r = minR + (v.distance-lo)/(hi-lo)*(maxR-minR)
		}
		r += float64(v.tier-1) * o.TierNudge
		out[s] = clamp(r, o.innerRadius(), maxR)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
