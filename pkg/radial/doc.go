// Package radial places graded substitutions around a centre chord.
//
// Layout runs in three phases:
//
//  1. Targets. Each family has a base angle; members fan out from it in
//     fixed steps. Harmonic distance is normalised into the [MinRadius,
//     MaxRadius] band and nudged outward by tier. Clusters and the "more"
//     node sit at the centroid of their members' targets.
//  2. Relaxation. A bounded force loop pushes overlapping nodes apart,
//     pulls each node toward its target, keeps nodes near their tier ring,
//     nudges crowded nodes outward and clamps every node inside the
//     viewport. It stops after [Options.Iterations] steps or once the
//     largest displacement drops below [Options.Epsilon]. A bounded settle
//     phase then resolves any remaining collisions directly.
//  3. Finalize. Cartesian positions are converted back to polar form.
//
// Coordinates are screen-space with the centre chord at the origin and y
// pointing down, so -90° is straight up.
//
// Relaxation state lives in an arena of bodies copied between two buffers
// each step; nothing is mutated across calls and all randomness comes from
// the seeded generator in [Options].
package radial
