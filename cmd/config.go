package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set StatLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "dataset_path: %s\n", cfg.DatasetPath)
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		fmt.Fprintf(out, "x_column: %d\n", cfg.XColumn)
		fmt.Fprintf(out, "x_label: %s\n", cfg.XLabel)
		fmt.Fprintf(out, "x_title: %s\n", cfg.XTitle)
		fmt.Fprintf(out, "y_column: %d\n", cfg.YColumn)
		fmt.Fprintf(out, "y_label: %s\n", cfg.YLabel)
		fmt.Fprintf(out, "y_title: %s\n", cfg.YTitle)
		fmt.Fprintf(out, "alpha: %.3f\n", cfg.Alpha)
		fmt.Fprintf(out, "mode_ties: %s\n", cfg.ModeTies)
		fmt.Fprintf(out, "charts_enabled: %t\n", cfg.ChartsEnabled)
		fmt.Fprintf(out, "charts_dir: %s\n", cfg.ChartsDir)
		fmt.Fprintf(out, "chart_width_in: %.1f\n", cfg.ChartWidthIn)
		fmt.Fprintf(out, "chart_height_in: %.1f\n", cfg.ChartHeightIn)
		fmt.Fprintf(out, "histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "dataset_path":
			next.DatasetPath = val
		case "sheet":
			next.Sheet = val
		case "delimiter":
			next.Delimiter = val
		case "x_column", "y_column", "histogram_bins":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			switch key {
			case "x_column":
				next.XColumn = i
			case "y_column":
				next.YColumn = i
			default:
				next.HistogramBins = i
			}
		case "x_label":
			next.XLabel = val
		case "y_label":
			next.YLabel = val
		case "x_title":
			next.XTitle = val
		case "y_title":
			next.YTitle = val
		case "alpha", "chart_width_in", "chart_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %w", key, err)
			}
			if key != "alpha" && f <= 0 {
				return fmt.Errorf("invalid float for %s: must be > 0", key)
			}
			switch key {
			case "alpha":
				next.Alpha = f
			case "chart_width_in":
				next.ChartWidthIn = f
			default:
				next.ChartHeightIn = f
			}
		case "mode_ties":
			next.ModeTies = strings.ToLower(val)
		case "charts_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for charts_enabled: %w", err)
			}
			next.ChartsEnabled = b
		case "charts_dir":
			next.ChartsDir = val
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		*cfg = next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
