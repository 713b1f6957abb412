package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
	"github.com/KaramelBytes/statloom-cli/internal/chart"
	"github.com/KaramelBytes/statloom-cli/internal/utils"
)

var (
	abFlags     runFlags
	abQuiet     bool
	abKeepGoing bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files, one chart directory per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		c, err := abFlags.effective(cmd.Flags())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		// YAML output is a document stream, so progress goes to stderr.
		yamlOut := strings.EqualFold(abFlags.format, "yaml")
		progress := out
		if yamlOut {
			progress = cmd.ErrOrStderr()
		}
		total := len(files)
		var failed []string
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(progress, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			opt, err := analysisOptions(c, path)
			if err != nil {
				return err
			}
			var r chart.Renderer
			dir := ""
			if c.ChartsEnabled {
				slug := utils.Slug(utils.BaseName(path), "dataset")
				dir = utils.UniqueDir(c.ChartsDir, slug)
				if dir != filepath.Join(c.ChartsDir, slug) && !abQuiet {
					fmt.Fprintf(progress, "⚠ Detected existing chart directory, writing to %s to avoid overwrite.\n", filepath.Base(dir))
				}
				png, err := chart.NewPNG(chartOptions(c, dir))
				if err != nil {
					return err
				}
				r = png
			}
			rep, err := analysis.Run(opt, r, diag().With(zap.String("file", path)))
			if err != nil {
				if dir != "" {
					// Drop the chart dir if nothing was written into it.
					_ = os.Remove(dir)
				}
				if !abKeepGoing {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
				failed = append(failed, path)
				continue
			}
			text, err := renderReport(rep, abFlags.format)
			if err != nil {
				return err
			}
			if yamlOut {
				fmt.Fprint(out, "---\n", text)
			} else {
				fmt.Fprintln(out, text)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed", len(failed), total)
		}
		if !abQuiet {
			fmt.Fprintf(progress, "✓ Analyzed %d file(s)\n", total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abFlags.bind(analyzeBatchCmd.Flags())
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
	analyzeBatchCmd.Flags().BoolVar(&abKeepGoing, "keep-going", false, "continue with the next file after a fatal error")
}
