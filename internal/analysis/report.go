// Package analysis runs the load -> extract -> compute -> render pipeline
// and formats its result.
package analysis

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

// Report is the outcome of one analysis run.
type Report struct {
	RunID    string             `yaml:"run_id"`
	Name     string             `yaml:"file"`
	Rows     int                `yaml:"rows"`
	X        ColumnReport       `yaml:"x"`
	Y        ColumnReport       `yaml:"y"`
	Alpha    float64            `yaml:"alpha"`
	ANOVA    *stats.ANOVAResult `yaml:"anova,omitempty"`
	ANOVAErr string             `yaml:"anova_error,omitempty"`
	Charts   []string           `yaml:"charts,omitempty"`
	Warnings []string           `yaml:"notes,omitempty"`
}

// ColumnReport summarises one extracted column.
type ColumnReport struct {
	Label   string        `yaml:"label"`
	Index   int           `yaml:"column"`
	Header  string        `yaml:"header,omitempty"`
	Skipped int           `yaml:"skipped"`
	Summary stats.Summary `yaml:"summary"`
}

func (r *Report) addNote(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// DataRows is the number of rows after the header.
func (r *Report) DataRows() int {
	if r.Rows == 0 {
		return 0
	}
	return r.Rows - 1
}

// Verdict describes the ANOVA outcome at the report's alpha.
func (r *Report) Verdict() string {
	switch {
	case r.ANOVA == nil:
		return "ANOVA not computed."
	case math.IsNaN(r.ANOVA.PValue):
		return "ANOVA is undefined for these groups."
	case r.ANOVA.Significant(r.Alpha):
		return "There is a significant difference between the groups."
	default:
		return "There is no significant difference between the groups."
	}
}

// Text renders the report for a terminal.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	b.WriteString(fmt.Sprintf("Rows: %d (data rows %d)\n", r.Rows, r.DataRows()))

	b.WriteString("\n[ANOVA]\n")
	b.WriteString(fmt.Sprintf("Groups: %s (n=%d), %s (n=%d)\n", r.X.Label, r.X.Summary.Count, r.Y.Label, r.Y.Summary.Count))
	if r.ANOVA != nil {
		b.WriteString(fmt.Sprintf("F(%d, %d) = %.6g\n", r.ANOVA.DFBetween, r.ANOVA.DFWithin, r.ANOVA.F))
		b.WriteString(fmt.Sprintf("ANOVA p-value: %v\n", r.ANOVA.PValue))
	} else {
		b.WriteString(fmt.Sprintf("ANOVA failed: %s\n", r.ANOVAErr))
	}
	b.WriteString(fmt.Sprintf("%s (alpha %.3g)\n", r.Verdict(), r.Alpha))

	for _, c := range []ColumnReport{r.X, r.Y} {
		b.WriteString(fmt.Sprintf("\n[%s STATISTICS]\n", strings.ToUpper(c.Label)))
		name := fmt.Sprintf("column %d", c.Index)
		if c.Header != "" {
			name = fmt.Sprintf("%s (%s)", name, c.Header)
		}
		b.WriteString(fmt.Sprintf("Source: %s, %d values, %d skipped\n", name, c.Summary.Count, c.Skipped))
		b.WriteString(fmt.Sprintf("Mean: %v\n", c.Summary.Mean))
		b.WriteString(fmt.Sprintf("Median: %v\n", c.Summary.Median))
		b.WriteString(fmt.Sprintf("Mode: %v\n", c.Summary.Mode))
		if c.Summary.Count > 0 {
			b.WriteString(fmt.Sprintf("Range: %.4g .. %.4g, std %.4g\n", c.Summary.Min, c.Summary.Max, c.Summary.StdDev))
		}
	}

	if len(r.Charts) > 0 {
		b.WriteString("\n[CHARTS]\n")
		for _, c := range r.Charts {
			b.WriteString("- ")
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// YAML renders the report as a YAML document. NaN and Inf are written as .nan and .inf.
func (r *Report) YAML() (string, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(b), nil
}
