package cli

import (
	"github.com/spf13/cobra"

	"github.com/parkerchace/MusicTheory-sub000/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		cors    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve substitutions and menus over HTTP",
		Long: `Serve the JSON API:

  GET /healthz
  GET /v1/substitutions?chord=G7&key=C
  GET /v1/menu?chord=G7&filter=chromatic
  GET /v1/menu.svg?chord=G7

Defaults for ranking, layout and display come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("cors-origin") {
				cors = c.Config.Server.CORSOrigin
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.baseOptions(), cors, c.Logger)
			printInfo("Serving on %s", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cors, "cors-origin", "", "value for Access-Control-Allow-Origin")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
