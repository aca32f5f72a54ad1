package pipeline

import (
	"context"
	"fmt"

	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, m menu.Menu, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	ro := render.Options{Detailed: opts.Detailed}
	for _, format := range opts.Formats {
		data, err := render.Artifact(ctx, m, format, ro)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
