// Craftbox is a terminal crafting box: fill nine ingredient slots, start a
// timed craft and collect the result when it is ready.
//
// Usage:
//
//	craftbox [play] [--config file] [--catalog file] [--verbose] [--quiet]
//	craftbox recipes
//	craftbox check <catalog.yaml>
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/craftbox/internal/catalog"
	"github.com/hammamikhairi/craftbox/internal/config"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

var (
	configPath  string
	catalogPath string
	verbose     bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "craftbox",
	Short: "A crafting box with timed crafts",
	Long: `Craftbox lets you fill nine ingredient slots from a recipe catalog,
start a timed craft and collect the item once it is ready.

Running craftbox with no subcommand starts the interactive box.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./craftbox.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "recipe catalog YAML (overrides catalog.path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable all logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	return cfg, nil
}

// newLogger builds the logger from config and flags. Logs go to a file by
// default so the REPL stays clean. The returned closer is never nil.
func newLogger(cfg *config.Config) (*logger.Logger, io.Closer) {
	level := logger.ParseLevel(cfg.Log.Level)
	if verbose {
		level = logger.LevelVerbose
	}
	if quiet {
		level = logger.LevelOff
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.Log.File != "" && cfg.Log.File != "stderr" {
		if dir := filepath.Dir(cfg.Log.File); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Log.File, err)
		} else {
			out = f
			closer = f
		}
	}
	return logger.New(level, out), closer
}

// newCatalog builds the recipe source: the YAML file when one is
// configured, the built-in recipes otherwise.
func newCatalog(cfg *config.Config, log *logger.Logger) (*catalog.MemorySource, error) {
	if cfg.Catalog.Path == "" {
		return catalog.NewMemorySource(log), nil
	}
	recipes, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if len(recipes) == 0 {
		log.Warn("catalog %s has no recipes", cfg.Catalog.Path)
	}
	src := catalog.NewMemorySource(log)
	src.Replace(recipes)
	return src, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
