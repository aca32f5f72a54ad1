package render

import (
	"context"
	"fmt"
	"slices"

	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// Formats lists every supported output format.
func Formats() []string {
	return []string{FormatJSON, FormatDOT, FormatSVG, FormatPDF, FormatPNG}
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool { return slices.Contains(Formats(), f) }

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Artifact renders m in the given format.
func Artifact(ctx context.Context, m menu.Menu, format string, opts Options) ([]byte, error) {
	if !ValidFormat(format) {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	switch format {
	case FormatJSON:
		return menu.Marshal(m)
	case FormatDOT:
		return []byte(ToDOT(m, opts)), nil
	}

	svg, err := RenderSVG(ctx, ToDOT(m, opts))
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return ToPDF(ctx, svg)
	case FormatPNG:
		return ToPNG(ctx, svg, 2)
	default:
		return svg, nil
	}
}
