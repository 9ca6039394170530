package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/planekit/regiontree/internal/server"
	"github.com/planekit/regiontree/pkg/store"
)

// serveCommand creates the serve command, exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the partition pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var runStore store.RunStore
			if cfg.Store.MongoURI != "" {
				mongoStore, err := store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
				if err != nil {
					return err
				}
				runStore = mongoStore
			} else {
				c.Logger.Warn("no mongo_uri configured, runs are kept in memory")
				runStore = store.NewMemoryStore()
			}
			defer runStore.Close(context.Background())

			if addr == "" {
				addr = cfg.Server.Addr
			}
			srv := server.New(runner, runStore, c.Logger, cfg.RequestTimeout())
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
