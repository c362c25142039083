// Package analysis implements the cross-impact (MICMAC) analytic core: the
// transformation from a raw influence matrix into dependency and driving
// indices, cut thresholds, quadrant labels, heatmap normalization, and
// threshold-filtered influence graphs.
//
// Every computation here is pure and synchronous. Inputs are never retained
// and outputs are independent copies, so callers may invoke these functions
// repeatedly and concurrently on live editing state.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	apperrors "micmac/internal/errors"
)

// Quadrant classifies a variable by its dependency/driving combination
// relative to the cut thresholds.
type Quadrant string

const (
	// QuadrantDeterminant marks high influence, low dependence variables
	QuadrantDeterminant Quadrant = "Determinant"
	// QuadrantRegulatory marks high influence, high dependence variables
	QuadrantRegulatory Quadrant = "Regulatory"
	// QuadrantResult marks low influence, high dependence variables
	QuadrantResult Quadrant = "Result"
	// QuadrantAutonomous marks low influence, low dependence variables
	QuadrantAutonomous Quadrant = "Autonomous"
)

// CutMode selects how the cut thresholds are derived from the index vectors.
type CutMode string

const (
	// CutMean uses the arithmetic mean (the reference mode)
	CutMean CutMode = "mean"
	// CutMedian uses the median
	CutMedian CutMode = "median"
	// CutPercentile uses a caller-chosen percentile per axis
	CutPercentile CutMode = "percentile"
)

// CutConfig configures threshold derivation. The zero value means mean cuts.
type CutConfig struct {
	Mode CutMode `json:"cuts"`
	// XPercentile and YPercentile apply only in CutPercentile mode and are
	// expressed in [0,100]. Zero falls back to the 50th percentile.
	XPercentile float64 `json:"xPercentile,omitempty"`
	YPercentile float64 `json:"yPercentile,omitempty"`
}

// Validate checks a caller-supplied cut configuration. The engine itself
// clamps percentiles and never panics; surfaces that accept the
// configuration from a user report this error instead of computing with a
// silently adjusted value.
func (c CutConfig) Validate() error {
	switch c.Mode {
	case "", CutMean, CutMedian, CutPercentile:
	default:
		return apperrors.New(apperrors.ValidationFailed, "cuts must be one of mean, median, percentile")
	}
	if c.XPercentile < 0 || c.XPercentile > 100 || c.YPercentile < 0 || c.YPercentile > 100 {
		return apperrors.New(apperrors.ValidationFailed, "percentiles must be between 0 and 100")
	}
	return nil
}

// Result holds the derived indices for one engine invocation. Quadrants is
// index-aligned with Variables; the name-keyed view is built only at the
// presentation edge so duplicate display names cannot silently collapse.
type Result struct {
	Variables  []string   `json:"variables"`
	Dependency []float64  `json:"dependency"`
	Driving    []float64  `json:"driving"`
	XCut       float64    `json:"xCut"`
	YCut       float64    `json:"yCut"`
	Quadrants  []Quadrant `json:"quadrants"`
}

// QuadrantsByName returns the variable-name → quadrant mapping. When two
// variables share a display name the later index wins; callers that must
// distinguish them should use the index-aligned Quadrants slice.
func (r *Result) QuadrantsByName() map[string]string {
	m := make(map[string]string, len(r.Variables))
	for i, name := range r.Variables {
		m[name] = string(r.Quadrants[i])
	}
	return m
}

// Compute derives the analysis result using mean cut thresholds.
//
// It returns ok=false, with no result, when the input carries no analytic
// signal: an empty variable list, a matrix whose shape does not match the
// variable count, or an off-diagonal that is entirely zero or non-finite.
// These states are routinely reached during interactive editing and are not
// errors; callers use ok=false to suppress premature rendering.
func Compute(variables []string, matrix [][]float64) (*Result, bool) {
	return ComputeWithCuts(variables, matrix, CutConfig{Mode: CutMean})
}

// ComputeWithCuts is Compute with an explicit cut configuration.
func ComputeWithCuts(variables []string, matrix [][]float64, cfg CutConfig) (*Result, bool) {
	n := len(variables)
	if n == 0 || len(matrix) != n {
		return nil, false
	}
	for _, row := range matrix {
		if len(row) != n {
			return nil, false
		}
	}

	dependency := make([]float64, n)
	driving := make([]float64, n)
	signal := false
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := matrix[i][j]
			// Non-finite cells contribute nothing so a half-edited
			// matrix still previews cleanly.
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v != 0 {
				signal = true
			}
			driving[i] += v
			dependency[j] += v
		}
	}
	if !signal {
		return nil, false
	}

	xCut := cut(dependency, cfg.Mode, cfg.XPercentile)
	yCut := cut(driving, cfg.Mode, cfg.YPercentile)

	quadrants := make([]Quadrant, n)
	for i := 0; i < n; i++ {
		quadrants[i] = classify(dependency[i], driving[i], xCut, yCut)
	}

	out := &Result{
		Variables:  append([]string(nil), variables...),
		Dependency: dependency,
		Driving:    driving,
		XCut:       xCut,
		YCut:       yCut,
		Quadrants:  quadrants,
	}
	return out, true
}

// cut derives a threshold from an index vector. Empty vectors cut at 0.
func cut(values []float64, mode CutMode, percentile float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch mode {
	case CutMedian:
		return quantile(values, 50)
	case CutPercentile:
		if percentile <= 0 {
			percentile = 50
		}
		return quantile(values, percentile)
	default:
		return stat.Mean(values, nil)
	}
}

// quantile derives the p-th percentile by closest rank with linear
// interpolation: rank k = (n-1)*p/100, interpolating between the two
// surrounding order statistics. The median of an odd-length vector is the
// middle element, of an even-length vector the midpoint of the two middle
// elements. p is clamped into [0,100] so the engine never panics.
func quantile(values []float64, percentile float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	p := math.Min(math.Max(percentile, 0), 100)
	k := float64(len(sorted)-1) * p / 100
	lo := int(math.Floor(k))
	hi := int(math.Ceil(k))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(k-float64(lo))
}

// classify assigns a quadrant. Ties at either cut resolve toward the "high"
// side, so a variable sitting exactly on both cuts is Regulatory.
func classify(dependency, driving, xCut, yCut float64) Quadrant {
	switch {
	case driving >= yCut && dependency < xCut:
		return QuadrantDeterminant
	case driving >= yCut && dependency >= xCut:
		return QuadrantRegulatory
	case driving < yCut && dependency >= xCut:
		return QuadrantResult
	default:
		return QuadrantAutonomous
	}
}
