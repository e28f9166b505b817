package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/baseline/internal/server"
)

// serveCommand creates the serve command running the HTTP render server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		cache cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve baseline rendering over HTTP",
		Long: `Serve baseline rendering over HTTP.

Routes:
  GET  /healthz
  GET  /v1/baseline/{svg|png|pdf}?min=&max=&value=&label=&cell=&position=&stroke=
  POST /v1/chart/{svg|png|pdf}     (TOML chart body, optional line= expressions)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, cache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cache.register(cmd)
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, opts cacheOpts) error {
	runner, err := c.newRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	err = server.New(runner, c.Logger).ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		c.Logger.Info("server stopped")
		return nil
	}
	return err
}
