// Package cli implements the flagring command-line interface.
//
// This package provides commands for rendering flag-bordered avatars,
// browsing the flag manifest, building the manifest from a TOML source
// list, serving the HTTP API, and managing the local cache. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Compose a photo with a flag border and write a PNG
//   - flags: List and inspect the flag manifest
//   - fetch: Build the manifest from a TOML source list and prefetch assets
//   - serve: Run the HTTP render API
//   - cache: Manage the local render and asset cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flagring/flagring/pkg/assets"
	"github.com/flagring/flagring/pkg/buildinfo"
	"github.com/flagring/flagring/pkg/cache"
	"github.com/flagring/flagring/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flagring"

	// defaultManifest is the manifest file looked up when --manifest is
	// not given.
	defaultManifest = "manifest.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flagring",
		Short:        "Flagring draws flag borders around avatars",
		Long:         `Flagring composes profile photos with pride and national flag borders, rendering rings, angular segments, and cutout presentations to PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.flagsCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the given manifest file
// and the local file cache.
func (c *CLI) newRunner(manifestPath string, noCache bool) (*pipeline.Runner, error) {
	manifest, err := c.loadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(manifest, store, nil, c.Logger), nil
}

// loadManifest reads the manifest from path. A .toml path is treated as
// a source list and built into a manifest on the fly; anything else is
// parsed as manifest JSON. The default path is optional: a missing
// default yields an empty manifest so inline patterns still work.
func (c *CLI) loadManifest(path string) (*assets.Manifest, error) {
	optional := false
	if path == "" {
		path = defaultManifest
		optional = true
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if optional {
			c.Logger.Debugf("No manifest at %s, starting empty", path)
			return &assets.Manifest{}, nil
		}
		return nil, fmt.Errorf("manifest not found: %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		src, err := assets.LoadSource(path)
		if err != nil {
			return nil, err
		}
		manifest, skipped := assets.BuildManifest(src, c.Logger)
		for _, err := range skipped {
			printWarning("Skipped: %v", err)
		}
		return manifest, nil
	}

	return assets.LoadManifest(path)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flagring/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
