package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
	"github.com/KaramelBytes/statloom-cli/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration and the diagnostics logger built from it
	cfg    *cfgpkg.Global
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "statloom",
	Short: "StatLoom CLI: descriptive statistics, ANOVA and charts for two dataset columns",
	Long: `StatLoom loads a delimited text or XLSX dataset, extracts two numeric columns by position,
prints their mean, median and mode together with a one-way ANOVA p-value, and renders
histogram, scatter and comparison charts as PNG files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.statloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so commands can still run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		if c, err = cfgpkg.Load(""); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load default config: %v\n", err)
			c = &cfgpkg.Global{}
		}
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	l, err := logging.New(level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; using info level\n", err)
		l, _ = logging.New("info", os.Stderr)
	}
	logger = l
}

// diag returns the diagnostics logger, or a no-op logger before config loading.
func diag() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
