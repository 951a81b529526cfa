package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flagring/flagring/internal/server"
	"github.com/flagring/flagring/pkg/cache"
	"github.com/flagring/flagring/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		manifestPath string
		redisAddr    string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Serve exposes the render pipeline over HTTP:

  POST /v1/render     multipart photo + options, returns image/png
  GET  /v1/flags      the flag manifest
  GET  /healthz       health check

By default results are cached on disk. Pass --redis for a shared cache
in multi-instance deployments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := c.loadManifest(manifestPath)
			if err != nil {
				return err
			}

			store, err := c.serveCache(cmd.Context(), redisAddr, noCache)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(manifest, store, nil, c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:     addr,
				Manifest: manifest,
				Runner:   runner,
				Logger:   c.Logger,
			})

			printInfo("Serving %d flags on %s", len(manifest.Flags), addr)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest file (default: manifest.json)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (e.g., localhost:6379)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// serveCache picks the cache backend for the server: redis when given,
// otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr, "", 0)
	}
	return newCache(false)
}
