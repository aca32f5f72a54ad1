// Package render exports a [menu.Menu] to image formats.
//
// # DOT and SVG
//
// [ToDOT] writes a Graphviz graph with every node pinned at its laid-out
// position, so Graphviz only draws and never moves anything. [RenderSVG]
// renders that graph through the embedded Graphviz build:
//
//	dot := render.ToDOT(m, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG using the external rsvg-convert tool (from
// librsvg).
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Artifact] dispatches on a format name and is what the pipeline calls.
package render
