package chart_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/statloom-cli/internal/chart"
	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

func newRenderer(t *testing.T) (*chart.PNG, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "charts")
	opt := chart.DefaultOptions()
	opt.Dir = dir
	opt.Bins = 10
	r, err := chart.NewPNG(opt)
	require.NoError(t, err)
	return r, dir
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	assert.Equal(t, "\x89PNG", string(b[:4]))
}

func TestPNG_WritesAllFourCharts(t *testing.T) {
	r, dir := newRenderer(t)
	salaries := []float64{500000, 750000, 1200000, 500000, 3000000}
	avgs := []float64{0.250, 0.301, 0.275, 0.310}

	require.NoError(t, r.Histogram(salaries, "Salary Distribution", "Salaries"))
	require.NoError(t, r.Histogram(avgs, "Batting Average Distribution", "Batting Averages"))
	require.NoError(t, r.Scatter(salaries, avgs, "Salaries vs Batting Averages", "Salaries", "Batting Averages"))

	a := chart.TripletOf("Salaries", stats.Summarize(salaries, stats.TieSmallest))
	b := chart.TripletOf("Batting Averages", stats.Summarize(avgs, stats.TieSmallest))
	require.NoError(t, r.LineComparison("Statistics Comparison", a, b, chart.StatLabels))

	files := r.Files()
	require.Len(t, files, 4)
	assert.Equal(t, filepath.Join(dir, "salary-distribution.png"), files[0])
	assert.Equal(t, filepath.Join(dir, "statistics-comparison.png"), files[3])
	for _, f := range files {
		assertPNG(t, f)
	}
}

func TestPNG_EmptyInput(t *testing.T) {
	r, _ := newRenderer(t)
	err := r.Histogram(nil, "Empty", "x")
	assert.True(t, errors.Is(err, chart.ErrNoData))
	err = r.Scatter([]float64{1, 2}, nil, "Empty Scatter", "x", "y")
	assert.True(t, errors.Is(err, chart.ErrNoData))
	assert.Empty(t, r.Files())
}

func TestPNG_NaNTripletFails(t *testing.T) {
	r, _ := newRenderer(t)
	a := chart.Triplet{Name: "ok", Values: [3]float64{1, 2, 3}}
	b := chart.TripletOf("empty", stats.Summarize(nil, stats.TieSmallest))
	assert.True(t, math.IsNaN(b.Values[0]))
	assert.Error(t, r.LineComparison("Statistics Comparison", a, b, chart.StatLabels))
	assert.Empty(t, r.Files())
}
