// Package chart draws the histogram, scatter and comparison charts for an
// analysis run.
package chart

import (
	"errors"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to plot")

// StatLabels are the categories of a line comparison built from summaries.
var StatLabels = [3]string{"Mean", "Median", "Mode"}

// Triplet is a named series of three scalars, one per comparison category.
type Triplet struct {
	Name   string
	Values [3]float64
}

// TripletOf builds the mean/median/mode triplet of a summary.
func TripletOf(name string, s stats.Summary) Triplet {
	return Triplet{Name: name, Values: s.Triple()}
}

// Renderer turns numeric sequences into charts.
type Renderer interface {
	Histogram(values []float64, title, xLabel string) error
	Scatter(x, y []float64, title, xLabel, yLabel string) error
	LineComparison(title string, a, b Triplet, labels [3]string) error
}
