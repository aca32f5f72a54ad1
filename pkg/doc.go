// Package pkg provides the core libraries for chordmap.
//
// # Overview
//
// Chordmap proposes harmonic substitutions for a chord in a tonal context,
// grades them by harmonic distance and arranges them around the chord as a
// radial menu. The pkg directory is organized into three areas:
//
//  1. Engine: [theory], [substitution], [rank], [filter], [cluster], [radial]
//  2. Orchestration: [pipeline] runs generate → menu → render for every entry point
//  3. Support: [menu], [render], [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow for one menu:
//
//	chord symbol + key + scale
//	         ↓
//	    [theory] (parse, spell, infer degree and function)
//	         ↓
//	    [substitution] (propose candidates, voice-leading)
//	         ↓
//	    [rank] (harmonic distance, tier, grade)
//	         ↓
//	    [filter] (intent filter, complexity cap)
//	         ↓
//	    [cluster] (collapse crowded families)
//	         ↓
//	    [radial] (angles, radii, collision relaxation)
//	         ↓
//	    [menu] → [render] (JSON, DOT, SVG, PDF, PNG)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Chord:   "G7",
//	    Key:     "C",
//	    Filter:  "chromatic",
//	    Formats: []string{"svg"},
//	})
//
// The engine packages never return errors for musical input: candidates whose
// roots cannot be resolved are dropped. Only caller input (symbols, modes,
// formats) is validated, with coded errors from [errors].
//
// [theory]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/theory
// [substitution]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/substitution
// [rank]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/rank
// [filter]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/filter
// [cluster]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/cluster
// [radial]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/radial
// [pipeline]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/pipeline
// [menu]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/menu
// [render]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/render
// [cache]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/cache
// [config]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/config
// [errors]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/errors
// [observability]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/parkerchace/MusicTheory-sub000/pkg/buildinfo
package pkg
