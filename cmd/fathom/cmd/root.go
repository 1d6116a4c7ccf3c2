// Package cmd implements the fathom CLI.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fathom-search/fathom/internal/config"
	"github.com/fathom-search/fathom/internal/logging"
	"github.com/fathom-search/fathom/internal/output"
	"github.com/fathom-search/fathom/pkg/version"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fathom",
	Short: "Hybrid document and web search",
	Long: `Fathom searches a local document corpus with dense vector and fuzzy
keyword retrieval, optionally blended with live web search results,
and returns one ranked, citation-numbered answer set.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		output.New(os.Stderr).Error("%v", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default ~/.fathom/fathom.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
}

// loadConfig reads the configured (or default) config file.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// setupLogging initializes the process logger from config and flags.
func setupLogging(cfg *config.Config) (*slog.Logger, func(), error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	// Keep stdout/stderr clean for results unless debugging.
	logCfg.WriteToStderr = false
	if flagVerbose {
		logCfg = logging.DebugConfig()
	}
	return logging.Setup(logCfg)
}

// dbPath returns the SQLite file inside the data directory, creating the
// directory if needed.
func dbPath(cfg *config.Config) (string, error) {
	if err := os.MkdirAll(cfg.Storage.Path, 0o755); err != nil {
		return "", fmt.Errorf("cannot create data directory %s: %w", cfg.Storage.Path, err)
	}
	return filepath.Join(cfg.Storage.Path, "fathom.db"), nil
}
