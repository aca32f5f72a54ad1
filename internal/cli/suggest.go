package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// suggestCommand creates the suggest command for listing graded substitutions.
func (c *CLI) suggestCommand() *cobra.Command {
	var (
		ctxf    contextFlags
		limit   int
		asJSON  bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <chord>",
		Short: "List ranked substitutions for a chord",
		Long: `List every substitution the engine proposes for a chord, closest first.

The chord is a symbol such as G7, Dm7, Cmaj7 or F#m7b5. Key and scale set the
tonal context used to decide which chords are diatonic.`,
		Example: `  chordmap suggest G7
  chordmap suggest Dm7 --key F --ranking emotional
  chordmap suggest Am --key C --scale dorian --limit 8 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Chord = args[0]
			opts.Refresh = refresh
			ctxf.apply(cmd.Flags(), &opts)
			if err := opts.ValidateForGenerate(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), ctxf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cands, cached, err := runner.SubstitutionsWithCacheInfo(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if limit > 0 && len(cands) > limit {
				cands = cands[:limit]
			}

			if asJSON {
				return writeCandidatesJSON(cands)
			}
			printCandidates(opts.String(), opts.Ranking, cands, cached)
			return nil
		},
	}

	ctxf.register(cmd.Flags())
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n candidates (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func printCandidates(title, ranking string, cands []substitution.Candidate, cached bool) {
	fmt.Println(StyleTitle.Render(title))
	printKeyValue("Ranking", ranking)
	status := iconFresh
	if cached {
		status = iconCached
	}
	printKeyValue("Candidates", fmt.Sprintf("%d (%s)", len(cands), status))
	if len(cands) == 0 {
		printWarning("No substitutions apply")
		return
	}
	fmt.Println(candidateTable(cands, -1, 0, 0))
}

func writeCandidatesJSON(cands []substitution.Candidate) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cands)
}
