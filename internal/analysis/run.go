package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statloom-cli/internal/chart"
	"github.com/KaramelBytes/statloom-cli/internal/dataset"
	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

// ColumnSpec names a zero-based field position. Title is the singular name
// used in chart titles; empty means Label.
type ColumnSpec struct {
	Index int
	Label string
	Title string
}

func (c ColumnSpec) title() string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return c.Label
}

// Options controls one analysis run.
type Options struct {
	Path      string
	Sheet     string
	Delimiter rune
	X         ColumnSpec
	Y         ColumnSpec
	// Alpha is the significance threshold for the ANOVA verdict.
	Alpha float64
	Ties  stats.TiePolicy
	// ComparisonTitle titles the mean/median/mode line chart.
	ComparisonTitle string
}

// DefaultOptions returns the salary (column 11) vs batting average (column 2) layout.
func DefaultOptions() Options {
	return Options{
		Delimiter:       ',',
		X:               ColumnSpec{Index: 11, Label: "Salaries", Title: "Salary"},
		Y:               ColumnSpec{Index: 2, Label: "Batting Averages", Title: "Batting Average"},
		Alpha:           0.05,
		Ties:            stats.TieSmallest,
		ComparisonTitle: "Statistics Comparison",
	}
}

// Run loads the dataset, extracts both columns, computes their summaries and
// the ANOVA across them, then hands everything to r. A nil renderer skips charts.
//
// Only a column that is out of range for some data row aborts the run. A file
// that cannot be read is treated as an empty dataset, and ANOVA or chart
// failures are recorded on the report.
func Run(opt Options, r chart.Renderer, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rep := &Report{
		RunID: uuid.NewString(),
		Name:  filepath.Base(opt.Path),
		Alpha: opt.Alpha,
	}
	log = log.With(zap.String("run", rep.RunID))

	rows, err := dataset.Load(opt.Path, dataset.LoadOptions{Delimiter: opt.Delimiter, Sheet: opt.Sheet})
	if err != nil {
		log.Warn("failed to load dataset, continuing with no data", zap.String("path", opt.Path), zap.Error(err))
		rep.addNote("could not load %s: %v (treated as empty)", opt.Path, err)
		rows = nil
	}
	rep.Rows = len(rows)
	log.Debug("dataset loaded", zap.Int("rows", rep.Rows))

	xs, err := dataset.Extract(rows, opt.X.Index)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", opt.X.Label, err)
	}
	ys, err := dataset.Extract(rows, opt.Y.Index)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", opt.Y.Label, err)
	}
	xs.LogSkips(log)
	ys.LogSkips(log)

	rep.X = newColumnReport(opt.X, xs, opt.Ties)
	rep.Y = newColumnReport(opt.Y, ys, opt.Ties)
	for _, c := range []ColumnReport{rep.X, rep.Y} {
		if c.Summary.IsEmpty() {
			rep.addNote("%s has no numeric values; its statistics are NaN", c.Label)
		}
	}

	res, err := stats.OneWayANOVA(xs.Values, ys.Values)
	if err != nil {
		log.Warn("ANOVA failed", zap.Error(err))
		rep.ANOVAErr = err.Error()
	} else {
		rep.ANOVA = res
	}
	if !strings.EqualFold(opt.X.Label, opt.Y.Label) {
		rep.addNote("ANOVA compares %s and %s as if they were two groups of one measurement", opt.X.Label, opt.Y.Label)
	}

	if r != nil {
		renderCharts(opt, rep, xs.Values, ys.Values, r, log)
	}
	return rep, nil
}

func renderCharts(opt Options, rep *Report, x, y []float64, r chart.Renderer, log *zap.Logger) {
	try := func(what string, err error) {
		if err == nil {
			return
		}
		log.Warn("chart failed", zap.String("chart", what), zap.Error(err))
		rep.addNote("chart %q not rendered: %v", what, err)
	}
	xTitle := distributionTitle(opt.X.title())
	yTitle := distributionTitle(opt.Y.title())
	scatterTitle := fmt.Sprintf("%s vs %s", opt.X.Label, opt.Y.Label)
	title := opt.ComparisonTitle
	if title == "" {
		title = "Statistics Comparison"
	}

	try(xTitle, r.Histogram(x, xTitle, opt.X.Label))
	try(yTitle, r.Histogram(y, yTitle, opt.Y.Label))
	try(scatterTitle, r.Scatter(x, y, scatterTitle, opt.X.Label, opt.Y.Label))
	try(title, r.LineComparison(title,
		chart.TripletOf(opt.X.Label, rep.X.Summary),
		chart.TripletOf(opt.Y.Label, rep.Y.Summary),
		chart.StatLabels))

	if f, ok := r.(interface{ Files() []string }); ok {
		rep.Charts = f.Files()
	}
}

// distributionTitle turns "Salary" into "Salary Distribution".
func distributionTitle(label string) string {
	return strings.TrimSpace(label + " Distribution")
}

func newColumnReport(spec ColumnSpec, c *dataset.Column, ties stats.TiePolicy) ColumnReport {
	return ColumnReport{
		Label:   spec.Label,
		Index:   spec.Index,
		Header:  c.Header,
		Skipped: len(c.Skipped),
		Summary: stats.Summarize(c.Values, ties),
	}
}
