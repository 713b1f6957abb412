package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewGroups is returned when ANOVA gets fewer than two groups.
	ErrTooFewGroups = errors.New("anova needs at least two groups")
	// ErrGroupTooSmall matches any *GroupSizeError.
	ErrGroupTooSmall = errors.New("anova group has fewer than two observations")
)

// GroupSizeError identifies the group that is too small for ANOVA.
type GroupSizeError struct {
	Group int
	Size  int
}

func (e *GroupSizeError) Error() string {
	return fmt.Sprintf("group %d has %d observation(s), need at least 2", e.Group, e.Size)
}

func (e *GroupSizeError) Is(target error) bool { return target == ErrGroupTooSmall }

// ANOVAResult holds a one-way analysis of variance.
type ANOVAResult struct {
	F         float64 `yaml:"f"`
	DFBetween int     `yaml:"df_between"`
	DFWithin  int     `yaml:"df_within"`
	SSBetween float64 `yaml:"ss_between"`
	SSWithin  float64 `yaml:"ss_within"`
	PValue    float64 `yaml:"p_value"`
}

// Significant reports whether the p-value is below alpha.
func (r *ANOVAResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// OneWayANOVA tests whether the groups share a common mean. The p-value is the
// upper tail of F(k-1, N-k) at the observed statistic.
//
// When every group has zero variance the statistic degenerates: F is +Inf with
// p = 0 if the group means differ, and NaN with p = NaN if they do not.
func OneWayANOVA(groups ...[]float64) (*ANOVAResult, error) {
	if len(groups) < 2 {
		return nil, ErrTooFewGroups
	}
	var n int
	var sum float64
	for i, g := range groups {
		if len(g) < 2 {
			return nil, &GroupSizeError{Group: i, Size: len(g)}
		}
		n += len(g)
		sum += floats.Sum(g)
	}
	grand := sum / float64(n)

	var ssb, ssw float64
	for _, g := range groups {
		m := stat.Mean(g, nil)
		d := m - grand
		ssb += float64(len(g)) * d * d
		ssw += float64(len(g)-1) * stat.Variance(g, nil)
	}

	k := len(groups)
	res := &ANOVAResult{
		DFBetween: k - 1,
		DFWithin:  n - k,
		SSBetween: ssb,
		SSWithin:  ssw,
	}
	msb := ssb / float64(res.DFBetween)
	msw := ssw / float64(res.DFWithin)
	switch {
	case msw == 0 && msb == 0:
		res.F, res.PValue = math.NaN(), math.NaN()
	case msw == 0:
		res.F, res.PValue = math.Inf(1), 0
	default:
		res.F = msb / msw
		res.PValue = fUpperTail(res.F, float64(res.DFBetween), float64(res.DFWithin))
	}
	return res, nil
}

// fUpperTail is P(X > x) for X ~ F(d1, d2), evaluated as I_{d2/(d2+d1*x)}(d2/2, d1/2)
// so that tiny tails do not round to zero.
func fUpperTail(x, d1, d2 float64) float64 {
	if x <= 0 {
		return 1
	}
	return mathext.RegIncBeta(d2/2, d1/2, d2/(d2+d1*x))
}
