package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
	"github.com/KaramelBytes/statloom-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

// runFlags are the per-run overrides shared by analyze and analyze-batch.
type runFlags struct {
	xCol, yCol       int
	xLabel, yLabel   string
	xTitle, yTitle   string
	alpha            float64
	modeTies         string
	sheet, delimiter string
	chartsDir        string
	noCharts         bool
	bins             int
	format           string
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.xCol, "x-col", 11, "zero-based index of the first numeric column")
	fs.IntVar(&f.yCol, "y-col", 2, "zero-based index of the second numeric column")
	fs.StringVar(&f.xLabel, "x-label", "Salaries", "label for the first column")
	fs.StringVar(&f.yLabel, "y-label", "Batting Averages", "label for the second column")
	fs.StringVar(&f.xTitle, "x-title", "", "chart title name for the first column (default: label)")
	fs.StringVar(&f.yTitle, "y-title", "", "chart title name for the second column (default: label)")
	fs.Float64Var(&f.alpha, "alpha", 0.05, "significance threshold for the ANOVA verdict")
	fs.StringVar(&f.modeTies, "mode-ties", "smallest", "mode tie-break: smallest | first | any")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	fs.StringVar(&f.delimiter, "delimiter", "", "text delimiter: ',' | ';' | 'tab'")
	fs.StringVar(&f.chartsDir, "charts-dir", "", "directory for PNG charts (overrides config)")
	fs.BoolVar(&f.noCharts, "no-charts", false, "skip chart rendering")
	fs.IntVar(&f.bins, "bins", 50, "histogram bin count")
	fs.StringVar(&f.format, "format", "text", "report format: text | yaml")
}

// effective applies explicitly set flags on top of the loaded configuration.
func (f *runFlags) effective(fs *pflag.FlagSet) (cfgpkg.Global, error) {
	var c cfgpkg.Global
	if cfg != nil {
		c = *cfg
	}
	if fs.Changed("x-col") {
		c.XColumn = f.xCol
	}
	if fs.Changed("y-col") {
		c.YColumn = f.yCol
	}
	// A relabelled column drops the configured title unless one is given too.
	if fs.Changed("x-label") {
		c.XLabel = f.xLabel
		c.XTitle = ""
	}
	if fs.Changed("y-label") {
		c.YLabel = f.yLabel
		c.YTitle = ""
	}
	if fs.Changed("x-title") {
		c.XTitle = f.xTitle
	}
	if fs.Changed("y-title") {
		c.YTitle = f.yTitle
	}
	if fs.Changed("alpha") {
		c.Alpha = f.alpha
	}
	if fs.Changed("mode-ties") {
		c.ModeTies = f.modeTies
	}
	if fs.Changed("sheet") {
		c.Sheet = f.sheet
	}
	if fs.Changed("delimiter") {
		c.Delimiter = f.delimiter
	}
	if fs.Changed("charts-dir") {
		c.ChartsDir = f.chartsDir
	}
	if f.noCharts {
		c.ChartsEnabled = false
	}
	if fs.Changed("bins") {
		c.HistogramBins = f.bins
	}
	switch strings.ToLower(f.format) {
	case "text", "yaml":
	default:
		return c, fmt.Errorf("unsupported --format: %s (use text|yaml)", f.format)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid settings: %w", err)
	}
	return c, nil
}

func analysisOptions(c cfgpkg.Global, path string) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	opt.Path = path
	opt.Sheet = c.Sheet
	opt.X = analysis.ColumnSpec{Index: c.XColumn, Label: c.XLabel, Title: c.XTitle}
	opt.Y = analysis.ColumnSpec{Index: c.YColumn, Label: c.YLabel, Title: c.YTitle}
	opt.Alpha = c.Alpha
	ties, err := stats.ParseTiePolicy(c.ModeTies)
	if err != nil {
		return opt, err
	}
	opt.Ties = ties
	d, err := cfgpkg.ParseDelimiter(c.Delimiter)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	return opt, nil
}

func chartOptions(c cfgpkg.Global, dir string) chart.Options {
	return chart.Options{
		Dir:    dir,
		Width:  vg.Length(c.ChartWidthIn) * vg.Inch,
		Height: vg.Length(c.ChartHeightIn) * vg.Inch,
		Bins:   c.HistogramBins,
	}
}

func renderReport(rep *analysis.Report, format string) (string, error) {
	if strings.EqualFold(format, "yaml") {
		return rep.YAML()
	}
	return rep.Text(), nil
}

var anaFlags runFlags

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Compute mean/median/mode and ANOVA for two columns and render charts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := anaFlags.effective(cmd.Flags())
		if err != nil {
			return err
		}
		path := c.DatasetPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no dataset given: pass a file or set dataset_path")
		}
		opt, err := analysisOptions(c, path)
		if err != nil {
			return err
		}

		var r chart.Renderer
		if c.ChartsEnabled {
			png, err := chart.NewPNG(chartOptions(c, c.ChartsDir))
			if err != nil {
				return err
			}
			r = png
		}
		rep, err := analysis.Run(opt, r, diag())
		if err != nil {
			return err
		}
		out, err := renderReport(rep, anaFlags.format)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFlags.bind(analyzeCmd.Flags())
}
