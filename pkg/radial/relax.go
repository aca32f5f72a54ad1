package radial

import (
	"math"
	"math/rand/v2"
)

// body is one node in the relaxation arena.
type body struct {
	x, y   float64
	tx, ty float64 // target position
	tr     float64 // target radius
	tier   int
}

// solver holds the parameters of a relaxation run. It owns no node state;
// bodies are passed in and returned.
type solver struct {
	o      Options
	sep    float64
	maxR   float64
	innerR float64
}

func newSolver(o Options) solver {
	return solver{o: o, sep: o.Separation(), maxR: o.EffectiveMaxRadius(), innerR: o.innerRadius()}
}

// required is the separation two bodies need given their tiers.
func (s solver) required(a, b body) float64 {
	switch d := a.tier - b.tier; {
	case d == 0:
		return s.sep
	case d == 1 || d == -1:
		return s.sep * s.o.AdjacentFactor
	}
	return s.sep * s.o.DistantFactor
}

// direction returns a unit vector from b to a, or a fixed per-pair
// direction when they coincide.
func direction(a, b body, i, j int) (float64, float64, float64) {
	dx, dy := a.x-b.x, a.y-b.y
	d := math.Hypot(dx, dy)
	if d > 1e-9 {
		return dx / d, dy / d, d
	}
	theta := float64(i*7919+j*104729) * 2.399963229728653 // golden angle
	if i > j {
		theta += math.Pi
	}
	return math.Cos(theta), math.Sin(theta), 0
}

// jitter separates bodies that start on the same spot.
func (s solver) jitter(bodies []body, rng *rand.Rand) {
	for i := range bodies {
		for j := range i {
			if math.Hypot(bodies[i].x-bodies[j].x, bodies[i].y-bodies[j].y) > 1e-6 {
				continue
			}
			theta := rng.Float64() * 2 * math.Pi
			r := s.o.Jitter * (0.5 + rng.Float64())
			bodies[i].x += r * math.Cos(theta)
			bodies[i].y += r * math.Sin(theta)
			break
		}
	}
}

// step computes next from prev and returns the largest displacement.
func (s solver) step(prev, next []body) float64 {
	o := s.o
	var maxDisp float64
	for i, b := range prev {
		var fx, fy float64

		neighbours := 0
		for j, other := range prev {
			if i == j {
				continue
			}
			ux, uy, d := direction(b, other, i, j)
			if d < o.DensityRadius {
				neighbours++
			}
			req := s.required(b, other)
			if d >= req {
				continue
			}
			ratio := req / max(d, req*0.05)
			push := o.Repulsion * min(o.RepulsionCap, math.Pow(ratio, o.RepulsionPower)) * (req - d) / 2
			push = min(push, (req-d)/2)
			fx += ux * push
			fy += uy * push
		}

		fx += o.Attraction * (b.tx - b.x)
		fy += o.Attraction * (b.ty - b.y)

		if r := math.Hypot(b.x, b.y); r > 1e-9 {
			rx, ry := b.x/r, b.y/r
			limit := o.TierPullThreshold * o.TierSpacing
			if dev := r - b.tr; math.Abs(dev) > limit {
				excess := dev - math.Copysign(limit, dev)
				fx -= rx * excess * o.TierPull
				fy -= ry * excess * o.TierPull
			}
			if neighbours > o.DensityThreshold {
				fx += rx * o.DensityPush
				fy += ry * o.DensityPush
			}
		}

		n := b
		n.x, n.y = s.clamp(b.x+fx, b.y+fy)
		next[i] = n
		maxDisp = max(maxDisp, math.Hypot(n.x-b.x, n.y-b.y))
	}
	return maxDisp
}

// settle resolves remaining overlaps with in-place pairwise projection.
// It returns the number of sweeps used and whether every pair is clear.
func (s solver) settle(bodies []body) (int, bool) {
	for sweep := range s.o.SettleIterations {
		clear := true
		for i := range bodies {
			for j := i + 1; j < len(bodies); j++ {
				req := s.required(bodies[i], bodies[j])
				ux, uy, d := direction(bodies[i], bodies[j], i, j)
				if d >= req {
					continue
				}
				clear = false
				push := (req-d)/2 + 1e-3
				bodies[i].x, bodies[i].y = s.clamp(bodies[i].x+ux*push, bodies[i].y+uy*push)
				bodies[j].x, bodies[j].y = s.clamp(bodies[j].x-ux*push, bodies[j].y-uy*push)
			}
		}
		if clear {
			return sweep, true
		}
	}
	return s.o.SettleIterations, s.overlaps(bodies) == 0
}

// overlaps counts pairs closer than their required separation.
func (s solver) overlaps(bodies []body) int {
	n := 0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if math.Hypot(bodies[i].x-bodies[j].x, bodies[i].y-bodies[j].y) < s.required(bodies[i], bodies[j]) {
				n++
			}
		}
	}
	return n
}

// clamp keeps a point inside the annulus [innerR, maxR].
func (s solver) clamp(x, y float64) (float64, float64) {
	r := math.Hypot(x, y)
	switch {
	case r > s.maxR:
		return x * s.maxR / r, y * s.maxR / r
	case r < 1e-9:
		return s.innerR, 0
	case r < s.innerR:
		return x * s.innerR / r, y * s.innerR / r
	}
	return x, y
}
