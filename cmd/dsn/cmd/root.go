package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDSN/internal/config"
	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
)

var (
	// Global flags
	verbose    bool
	configFlag string

	// Loaded in PersistentPreRunE
	cfg     *config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "dsn",
	Short: "OpenTraceDSN - Specctra DSN board file tools",
	Long: `dsn reads Specctra DSN design files (as exported by KiCad, Eagle and
other EDA tools for autorouting) and reports on or displays their contents.

Examples:
  dsn info board.dsn                 # Summary of the design
  dsn nets board.dsn GND             # Pins and class of one net
  dsn dump --format json board.dsn   # Full parsed document
  dsn view board.dsn                 # Interactive viewer`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $"+config.EnvVar+" or ~/.config/opentracedsn/config.toml)")
}

// setup loads the config and installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	path, err := config.Path(configFlag)
	if err != nil {
		return fmt.Errorf("failed to locate config: %w", err)
	}
	cfgPath = path

	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Debug("Configuration loaded", "path", path, "theme", cfg.Viewer.Theme, "format", cfg.Output.Format)
	return nil
}

// loadDocument parses filename, logging how long it took
func loadDocument(filename string) (*dsn.Document, error) {
	start := time.Now()

	doc, err := dsn.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}

	stats := doc.Stats()
	slog.Info("Loaded design",
		"file", filename,
		"id", doc.ID,
		"nets", stats.Nets,
		"components", stats.Components,
		"duration", time.Since(start))
	return doc, nil
}
