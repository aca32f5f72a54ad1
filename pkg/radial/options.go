package radial

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// Mode selects how families are mapped to angles.
type Mode string

// Layout modes.
const (
	ModeAuto     Mode = "auto"
	ModeQuadrant Mode = "quadrant"
)

// ParseMode resolves a layout mode name. The empty string means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeQuadrant:
		return m, nil
	}
	return "", fmt.Errorf("unknown layout mode %q", s)
}

// Options configure a layout. Zero fields take their [DefaultOptions] value.
type Options struct {
	Mode Mode `toml:"mode"`

	// Radius band for normalised harmonic distance.
	MinRadius      float64 `toml:"min_radius"`
	MaxRadius      float64 `toml:"max_radius"`
	FallbackRadius float64 `toml:"fallback_radius"`

	// TierNudge moves a node outward by (tier-1)*TierNudge.
	TierNudge float64 `toml:"tier_nudge"`

	// AngleStep separates members of one family, in degrees.
	AngleStep float64 `toml:"angle_step"`

	NodeSize float64 `toml:"node_size"`
	Padding  float64 `toml:"padding"`

	// Viewport limits the usable radius when set.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	Iterations       int     `toml:"iterations"`
	SettleIterations int     `toml:"settle_iterations"`
	Epsilon          float64 `toml:"epsilon"`

	Attraction     float64 `toml:"attraction"`
	Repulsion      float64 `toml:"repulsion"`
	RepulsionPower float64 `toml:"repulsion_power"`
	RepulsionCap   float64 `toml:"repulsion_cap"`
	AdjacentFactor float64 `toml:"adjacent_factor"`
	DistantFactor  float64 `toml:"distant_factor"`

	TierSpacing       float64 `toml:"tier_spacing"`
	TierPullThreshold float64 `toml:"tier_pull_threshold"`
	TierPull          float64 `toml:"tier_pull"`

	DensityRadius    float64 `toml:"density_radius"`
	DensityThreshold int     `toml:"density_threshold"`
	DensityPush      float64 `toml:"density_push"`

	Jitter float64 `toml:"jitter"`
	Seed   uint64  `toml:"seed"`

	// Rand overrides the generator derived from Seed.
	Rand *rand.Rand `toml:"-"`

	Logger *log.Logger `toml:"-"`
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		Mode:              ModeAuto,
		MinRadius:         80,
		MaxRadius:         360,
		FallbackRadius:    220,
		TierNudge:         12,
		AngleStep:         18,
		NodeSize:          56,
		Padding:           8,
		Iterations:        250,
		SettleIterations:  200,
		Epsilon:           0.01,
		Attraction:        0.08,
		Repulsion:         0.5,
		RepulsionPower:    2,
		RepulsionCap:      4,
		AdjacentFactor:    0.7,
		DistantFactor:     0.5,
		TierSpacing:       56,
		TierPullThreshold: 0.3,
		TierPull:          0.1,
		DensityThreshold:  5,
		DensityPush:       1.5,
		Jitter:            1,
		Seed:              1,
	}
}

// ValidateAndSetDefaults fills zero fields and rejects inconsistent values.
func (o *Options) ValidateAndSetDefaults() error {
	d := DefaultOptions()
	setF := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	setF(&o.MinRadius, d.MinRadius)
	setF(&o.MaxRadius, d.MaxRadius)
	setF(&o.FallbackRadius, d.FallbackRadius)
	setF(&o.TierNudge, d.TierNudge)
	setF(&o.AngleStep, d.AngleStep)
	setF(&o.NodeSize, d.NodeSize)
	setF(&o.Padding, d.Padding)
	setF(&o.Epsilon, d.Epsilon)
	setF(&o.Attraction, d.Attraction)
	setF(&o.Repulsion, d.Repulsion)
	setF(&o.RepulsionPower, d.RepulsionPower)
	setF(&o.RepulsionCap, d.RepulsionCap)
	setF(&o.AdjacentFactor, d.AdjacentFactor)
	setF(&o.DistantFactor, d.DistantFactor)
	setF(&o.TierSpacing, d.TierSpacing)
	setF(&o.TierPullThreshold, d.TierPullThreshold)
	setF(&o.TierPull, d.TierPull)
	setF(&o.DensityPush, d.DensityPush)
	setF(&o.Jitter, d.Jitter)
	if o.DensityRadius == 0 {
		o.DensityRadius = 1.5 * (o.NodeSize + o.Padding)
	}
	if o.Iterations == 0 {
		o.Iterations = d.Iterations
	}
	if o.SettleIterations == 0 {
		o.SettleIterations = d.SettleIterations
	}
	if o.DensityThreshold == 0 {
		o.DensityThreshold = d.DensityThreshold
	}
	if o.Seed == 0 {
		o.Seed = d.Seed
	}

	switch {
	case !finite(o.floats()...):
		return fmt.Errorf("layout parameters must be finite numbers")
	case o.MinRadius < 0 || o.MaxRadius <= o.MinRadius:
		return fmt.Errorf("radius band [%g, %g] is empty", o.MinRadius, o.MaxRadius)
	case o.Iterations < 0 || o.SettleIterations < 0:
		return fmt.Errorf("iterations must not be negative")
	case o.Width < 0 || o.Height < 0:
		return fmt.Errorf("viewport %gx%g is negative", o.Width, o.Height)
	}
	return nil
}

func (o *Options) floats() []float64 {
	return []float64{
		o.Width, o.Height, o.MinRadius, o.MaxRadius, o.FallbackRadius,
		o.TierNudge, o.AngleStep, o.NodeSize, o.Padding, o.Epsilon,
		o.Attraction, o.Repulsion, o.RepulsionPower, o.RepulsionCap,
		o.AdjacentFactor, o.DistantFactor, o.TierSpacing, o.TierPullThreshold,
		o.TierPull, o.DensityRadius, o.DensityPush, o.Jitter,
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Separation is the centre-to-centre distance two same-tier nodes need.
func (o Options) Separation() float64 { return o.NodeSize + o.Padding }

// EffectiveMaxRadius is MaxRadius limited by the viewport, if one is set.
func (o Options) EffectiveMaxRadius() float64 {
	r := o.MaxRadius
	if o.Width > 0 && o.Height > 0 {
		r = min(r, min(o.Width, o.Height)/2-o.NodeSize/2)
	}
	return max(r, o.innerRadius())
}

// innerRadius keeps nodes off the centre chord.
func (o Options) innerRadius() float64 { return o.NodeSize }

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewPCG(o.Seed, o.Seed^0xdeadbeef))
}
