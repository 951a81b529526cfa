package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flagring/flagring/pkg/assets"
	"github.com/flagring/flagring/pkg/cache"
	"github.com/flagring/flagring/pkg/httputil"
)

// fetchCommand creates the fetch command, which builds the JSON manifest
// from a TOML source list and optionally prefetches flag artwork.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output   string
		prefetch bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [source.toml]",
		Short: "Build the flag manifest from a TOML source list",
		Long: `Fetch validates every flag in a TOML source list, writes the JSON
manifest used by render and serve, and optionally downloads the SVG
artwork of image-backed flags into the local cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, args[0], output, prefetch)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultManifest, "manifest output path")
	cmd.Flags().BoolVar(&prefetch, "prefetch", true, "download artwork for image-backed flags")

	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, sourcePath, output string, prefetch bool) error {
	ctx := cmd.Context()

	src, err := assets.LoadSource(sourcePath)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded %d flag definitions from %s", len(src.Flags), sourcePath)

	manifest, skipped := assets.BuildManifest(src, c.Logger)
	for _, err := range skipped {
		printWarning("Skipped: %v", err)
	}
	if len(manifest.Flags) == 0 {
		printError("No valid flags in %s", sourcePath)
		return fmt.Errorf("empty manifest")
	}

	if err := manifest.Save(output); err != nil {
		return err
	}

	printSuccess("Built manifest with %d flags (%d skipped)", len(manifest.Flags), len(skipped))
	printFile(output)

	if !prefetch {
		return nil
	}
	return c.prefetchAssets(ctx, manifest)
}

// prefetchAssets warms the asset cache for every image-backed flag.
func (c *CLI) prefetchAssets(ctx context.Context, manifest *assets.Manifest) error {
	var urls []string
	for _, f := range manifest.Flags {
		if f.AssetURL != "" {
			urls = append(urls, f.AssetURL)
		}
	}
	if len(urls) == 0 {
		printInfo("No image-backed flags to prefetch")
		return nil
	}

	fetcher := assets.NewFetcher(assets.WithLogger(c.Logger))
	if dir, err := cacheDir(); err == nil {
		if hc, err := httputil.NewCache(dir, cache.TTLAsset); err == nil {
			fetcher = assets.NewFetcher(
				assets.WithLogger(c.Logger),
				assets.WithCache(hc),
			)
		}
	}

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %d assets", len(urls)))
	sp.Start()

	var failed int
	for _, url := range urls {
		if _, err := fetcher.Fetch(ctx, url); err != nil {
			failed++
			c.Logger.Warnf("Fetch %s: %v", url, err)
		}
		if sp.Cancelled() {
			sp.Stop()
			return ctx.Err()
		}
	}

	if failed > 0 {
		sp.StopWithError(fmt.Sprintf("Fetched %d assets, %d failed", len(urls)-failed, failed))
		return nil
	}
	sp.StopWithSuccess(fmt.Sprintf("Fetched %d assets", len(urls)))
	return nil
}
