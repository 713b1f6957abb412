// Package stats computes descriptive statistics and one-way ANOVA over
// numeric columns.
//
// Empty input never panics: the descriptive functions return NaN for it.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TiePolicy decides which value Mode returns when several share the highest count.
type TiePolicy int

const (
	// TieSmallest picks the smallest tied value.
	TieSmallest TiePolicy = iota
	// TieFirstSeen picks the tied value that occurs first in the input.
	TieFirstSeen
	// TieAny picks whichever value map iteration reaches first. Not reproducible.
	TieAny
)

func (p TiePolicy) String() string {
	switch p {
	case TieSmallest:
		return "smallest"
	case TieFirstSeen:
		return "first"
	case TieAny:
		return "any"
	default:
		return fmt.Sprintf("TiePolicy(%d)", int(p))
	}
}

// ParseTiePolicy maps "smallest", "first" or "any" to a TiePolicy.
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "smallest", "min":
		return TieSmallest, nil
	case "first", "first-seen":
		return TieFirstSeen, nil
	case "any", "arbitrary":
		return TieAny, nil
	default:
		return TieSmallest, fmt.Errorf("unknown mode tie policy %q (use smallest, first or any)", s)
	}
}

// Mean is the arithmetic mean of x, or NaN when x is empty.
func Mean(x []float64) float64 {
	m, err := mstats.Mean(x)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Median is the middle order statistic of x, averaging the two central values
// for even lengths. x is not modified. Empty input yields NaN.
func Median(x []float64) float64 {
	m, err := mstats.Median(x)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Mode returns the most frequent value of x under exact float64 equality.
// Empty input yields NaN.
func Mode(x []float64, policy TiePolicy) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	if policy == TieAny {
		v, _ := stat.Mode(x, nil)
		return v
	}
	counts := make(map[uint64]int, len(x))
	order := make([]float64, 0, len(x))
	best := 0
	for _, v := range x {
		k := modeKey(v)
		if counts[k] == 0 {
			order = append(order, v)
		}
		counts[k]++
		if counts[k] > best {
			best = counts[k]
		}
	}
	var tied []float64
	for _, v := range order {
		if counts[modeKey(v)] == best {
			tied = append(tied, v)
		}
	}
	if policy == TieSmallest {
		sort.Float64s(tied)
	}
	return tied[0]
}

// modeKey counts values by their bits. Every NaN shares one key, while 0 and -0 stay distinct.
func modeKey(v float64) uint64 {
	if math.IsNaN(v) {
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(v)
}

// Summary describes one numeric column.
type Summary struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Median float64 `yaml:"median"`
	Mode   float64 `yaml:"mode"`
	StdDev float64 `yaml:"std_dev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// Summarize computes a Summary of x.
func Summarize(x []float64, policy TiePolicy) Summary {
	s := Summary{
		Count:  len(x),
		Mean:   Mean(x),
		Median: Median(x),
		Mode:   Mode(x, policy),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(x) > 0 {
		s.Min = floats.Min(x)
		s.Max = floats.Max(x)
	}
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	return s
}

// Triple returns mean, median and mode in that order.
func (s Summary) Triple() [3]float64 {
	return [3]float64{s.Mean, s.Median, s.Mode}
}

// IsEmpty reports whether the summary was computed from no values.
func (s Summary) IsEmpty() bool { return s.Count == 0 }
