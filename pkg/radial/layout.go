package radial

import (
	"math"
	"time"

	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
)

// Result is a finished layout with run statistics.
type Result struct {
	Nodes []PositionedNode `json:"nodes"`

	MaxRadius    float64 `json:"maxRadius"`
	Iterations   int     `json:"iterations"`
	Converged    bool    `json:"converged"`
	SettleSweeps int     `json:"settleSweeps"`
	Clear        bool    `json:"clear"`
}

// Layout positions items. Options are defaulted; invalid options fall back
// to [DefaultOptions]. An empty input gives an empty result.
func Layout(items []Item, opts Options) Result {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("invalid layout options, using defaults", "error", err)
		}
		logger := opts.Logger
		opts = DefaultOptions()
		opts.Logger = logger
		_ = opts.ValidateAndSetDefaults()
	}

	res := Result{Nodes: []PositionedNode{}, MaxRadius: opts.EffectiveMaxRadius(), Clear: true}
	if len(items) == 0 {
		return res
	}
	start := time.Now()

	tgt := targets(items, opts)
	s := newSolver(opts)

	cur := make([]body, len(items))
	for i, it := range items {
		tx, ty := tgt[i].xy()
		cur[i] = body{x: tx, y: ty, tx: tx, ty: ty, tr: tgt[i].radius, tier: it.Tier}
	}
	s.jitter(cur, opts.rng())

	next := make([]body, len(cur))
	for res.Iterations < opts.Iterations {
		disp := s.step(cur, next)
		cur, next = next, cur
		res.Iterations++
		if disp < opts.Epsilon {
			res.Converged = true
			break
		}
	}
	res.SettleSweeps, res.Clear = s.settle(cur)

	for i, it := range items {
		res.Nodes = append(res.Nodes, finalize(it, cur[i], tgt[i], res.MaxRadius))
	}

	if opts.Logger != nil {
		opts.Logger.Debug("radial layout",
			"nodes", len(items),
			"iterations", res.Iterations,
			"converged", res.Converged,
			"settle", res.SettleSweeps,
			"clear", res.Clear,
			"duration", time.Since(start))
	}
	return res
}

// finalize converts a relaxed body back to polar form.
func finalize(it Item, b body, tgt polar, maxR float64) PositionedNode {
	p := toPolar(b.x, b.y)
	if p.radius > maxR {
		p.radius = maxR
	}
	x, y := p.xy()
	color := Color(it.Family)
	if it.Kind == KindMore {
		color = moreColor
	}
	return PositionedNode{
		ID:           it.ID,
		Label:        it.Label,
		FullName:     it.FullName,
		Family:       it.Family,
		Tier:         it.Tier,
		TierLabel:    rank.TierLabel(it.Tier),
		Grade:        it.Grade,
		Color:        color,
		Kind:         it.Kind,
		X:            x,
		Y:            y,
		Angle:        p.angle,
		Radius:       p.radius,
		TargetAngle:  tgt.angle,
		TargetRadius: tgt.radius,
		Members:      it.Members,
	}
}

// Distance returns the distance between two positioned nodes.
func Distance(a, b PositionedNode) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
