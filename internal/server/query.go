package server

import (
	"net/url"
	"strconv"

	"github.com/parkerchace/MusicTheory-sub000/pkg/errors"
	"github.com/parkerchace/MusicTheory-sub000/pkg/pipeline"
)

// parseQuery overlays query parameters on base. Only syntax is checked here;
// ValidateAndSetDefaults checks values.
func parseQuery(q url.Values, base pipeline.Options) (pipeline.Options, error) {
	opts := base
	opts.Formats = nil

	str := func(name string, dst *string) {
		if v := q.Get(name); v != "" {
			*dst = v
		}
	}
	str("chord", &opts.Chord)
	str("key", &opts.Key)
	str("scale", &opts.Scale)
	str("ranking", &opts.Ranking)
	str("passing", &opts.Passing)
	str("filter", &opts.Filter)
	str("layout", &opts.Layout)

	if v := q.Get("exhaustive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "exhaustive: %q is not a boolean", v)
		}
		opts.Exhaustive = b
	}
	for name, dst := range map[string]*int{"complexity": &opts.Complexity, "threshold": &opts.Threshold} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not an integer", name, v)
			}
			*dst = n
		}
	}
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
			}
			*dst = f
		}
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed: %q is not an unsigned integer", v)
		}
		opts.Seed = n
	}
	return opts, nil
}
