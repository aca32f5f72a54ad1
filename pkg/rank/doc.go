// Package rank grades substitution candidates.
//
// A [Grader] assigns each candidate a tier (0 closest to the centre, 4 most
// exotic) and a harmonic distance, then sorts ascending by distance. Lower
// distance means the candidate is drawn closer to the centre and more
// prominently.
//
//	distance = familyPriority*F - tier*T - gradeBonus - commonTones*C - modeBonus
//
// The factors are [Weights]; their defaults are empirically tuned and can be
// overridden from configuration. The ranking [Mode] decides which candidate
// types receive the mode bonus.
//
// Tiers are stored 0-indexed. [TierLabel] renders the 1-indexed "tier N/5"
// form shown to users.
package rank
