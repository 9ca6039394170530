// Package cli implements the regiontree command-line interface.
//
// Commands:
//   - partition: run the load → partition → render pipeline on a scene
//   - render: re-render a previously exported partition tree
//   - tree: browse a partition tree interactively
//   - serve: expose the pipeline over HTTP
//   - cache: manage the pipeline cache
//
// All commands support --verbose (-v) for debug-level logging and
// --config for a non-default configuration file.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/planekit/regiontree/pkg/buildinfo"
	"github.com/planekit/regiontree/pkg/cache"
	"github.com/planekit/regiontree/pkg/config"
	"github.com/planekit/regiontree/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "regiontree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
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
		Use:          appName,
		Short:        "Regiontree partitions planar meshes into region trees",
		Long:         `Regiontree recursively splits a polygonal floor-plan mesh into a binary tree of labeled regions, normalizes region areas relative to their parents, and renders the result as tree diagrams or plan drawings.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/regiontree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.partitionCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := newCacheBackend(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCacheBackend selects the cache backend from the configuration. The
// file cache is the default; Redis is used when a URL is configured.
func newCacheBackend(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	return cache.NewFileCache(cfg.CacheDir())
}

// =============================================================================
// Format Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}
