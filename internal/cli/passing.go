package cli

import (
	"github.com/spf13/cobra"
)

// passingCommand creates the passing command, which lays out approach chords
// between two chords instead of substitutions for one.
func (c *CLI) passingCommand() *cobra.Command {
	var (
		ctxf  contextFlags
		menuf menuFlags
		outf  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "passing <from> <to>",
		Short: "Lay out passing chords leading from one chord into another",
		Long: `Lay out the chords that can be inserted between <from> and <to>: the
secondary dominant of the target, its tritone substitute, diminished and
chromatic approaches, and the ii of the target's dominant.`,
		Example: `  chordmap passing Cmaj7 Dm7
  chordmap passing C F --format json -o -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Chord = args[0]
			opts.Passing = args[1]
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
