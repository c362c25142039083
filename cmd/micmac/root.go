package main

import (
	"path/filepath"

	"micmac/internal/config"
	"micmac/internal/logging"
	"micmac/internal/storage"
	"micmac/internal/version"

	"github.com/spf13/cobra"
)

var (
	// rootFlag is the directory holding .micmac (config and database)
	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "micmac",
	Short: "micmac - cross-impact sector analysis",
	Long: `micmac is a cross-impact (MICMAC-style) sector analysis service. Users
supply named variables and an NxN matrix of pairwise influence scores; micmac
derives dependency and driving-power indices, classifies each variable into a
strategic quadrant, and exposes heatmap and influence-graph views. Datasets
can be imported from CSV files or xlsx workbooks and served over HTTP.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("micmac version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Directory containing the .micmac config and database")
}

// loadConfig reads the configuration for the chosen root directory.
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(rootFlag)
}

// newLogger builds a logger from the configuration.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}

// openDB opens the configured database. A relative database path is
// anchored at the chosen root directory.
func openDB(cfg *config.Config, logger *logging.Logger) (*storage.DB, error) {
	path := cfg.Database.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootFlag, path)
	}
	return storage.Open(path, logger)
}
