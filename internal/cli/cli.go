// Package cli implements the baseline command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/baseline/pkg/buildinfo"
	"github.com/matzehuels/baseline/pkg/cache"
	"github.com/matzehuels/baseline/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "baseline"

	// envRedisAddr names the Redis instance used when --redis is not given.
	envRedisAddr = "BASELINE_REDIS_ADDR"
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	verbose bool
}

// New creates a CLI logging to w at info level; --verbose lowers it to debug.
func New(w io.Writer) *CLI {
	return &CLI{Logger: newLogger(w, log.InfoLevel)}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Baseline draws reference lines on chart rows",
		Long:         `Baseline renders horizontal reference lines (averages, targets, thresholds) against the axes of a chart row, with optional value and cell labels, to SVG, PNG or PDF.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.Logger.SetLevel(levelFor(c.verbose))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheOpts selects the output cache backend.
type cacheOpts struct {
	noCache bool
	redis   string
}

func (o *cacheOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the output cache")
	cmd.Flags().StringVar(&o.redis, "redis", "", "cache rendered output in Redis at this address (env "+envRedisAddr+")")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts) (*pipeline.Runner, error) {
	store, err := newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

// newCache picks Redis when an address is configured, the file cache
// otherwise, and no cache at all with --no-cache.
func newCache(ctx context.Context, opts cacheOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	addr := opts.redis
	if addr == "" {
		addr = os.Getenv(envRedisAddr)
	}
	if addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/baseline/).
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
