package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parkerchace/MusicTheory-sub000/pkg/pipeline"
	"github.com/parkerchace/MusicTheory-sub000/pkg/render"
)

// outputFlags control where and how a menu is written.
type outputFlags struct {
	output   string
	formats  string
	detailed bool
	refresh  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVar(&f.formats, "format", "", "output format(s): svg (default), json, dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label nodes with tier and grade")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// layoutCommand creates the layout command for exporting a radial menu.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		ctxf  contextFlags
		menuf menuFlags
		outf  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "layout <chord>",
		Short: "Lay out the substitution menu for a chord",
		Long: `Lay out the substitution menu for a chord and write it as JSON, DOT, SVG,
PDF or PNG. PDF and PNG need rsvg-convert on PATH.`,
		Example: `  chordmap layout G7
  chordmap layout G7 --filter chromatic --layout quadrant -o g7.svg
  chordmap layout Dm7 --key F --format json,svg --exhaustive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Chord = args[0]
			ctxf.apply(cmd.Flags(), &opts)
			menuf.apply(cmd.Flags(), &opts)
			return c.runMenu(cmd.Context(), opts, outf, ctxf.noCache)
		},
	}

	ctxf.register(cmd.Flags())
	menuf.register(cmd.Flags())
	outf.register(cmd)

	return cmd
}

// runMenu executes the pipeline and writes one file per requested format.
func (c *CLI) runMenu(ctx context.Context, opts pipeline.Options, outf outputFlags, noCache bool) error {
	opts.Formats = parseFormats(outf.formats)
	opts.Detailed = outf.detailed
	opts.Refresh = outf.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if outf.output == "-" && len(opts.Formats) != 1 {
		return fmt.Errorf("output to stdout needs exactly one format, got %d", len(opts.Formats))
	}
	if needsConverter(opts.Formats) && !render.HasConverter() {
		printWarning("rsvg-convert not found; PDF and PNG output will fail")
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Laying out "+opts.String()+"...")
	if outf.output != "-" {
		spinner.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if outf.output != "-" {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if outf.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(outf.output, defaultBase(opts), opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", len(result.Menu.Nodes)))

	printSuccess("%s", menuTitle(opts))
	printStats(result.Menu.Stats, result.CacheInfo.MenuHit)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	if result.Menu.Stats.Hidden > 0 && !opts.Exhaustive {
		printNextStep("Show all candidates", appName+" layout "+opts.Chord+" --exhaustive")
	}
	return nil
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, render.FormatPDF) || slices.Contains(formats, render.FormatPNG)
}

// defaultBase names output files after the chords, e.g. "G7" or "Cmaj7-to-Dm7".
func defaultBase(opts pipeline.Options) string {
	base := slugChord(opts.Chord)
	if opts.IsPassing() {
		base += "-to-" + slugChord(opts.Passing)
	}
	return base
}

// slugChord makes a chord symbol safe for file names.
func slugChord(s string) string {
	return strings.NewReplacer("#", "sharp", "♯", "sharp", "♭", "b", "/", "_", " ", "").Replace(s)
}

// outputPaths maps each format to a file path. A single format writes to
// output as given; several formats share output as a base path with the
// format as extension.
func outputPaths(output, fallback string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = fallback
	} else if ext := filepath.Ext(base); render.ValidFormat(strings.TrimPrefix(ext, ".")) {
		base = strings.TrimSuffix(base, ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
