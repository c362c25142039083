package analysis

import (
	"math"
	"testing"

	apperrors "micmac/internal/errors"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestComputeReferenceScenario(t *testing.T) {
	variables := []string{"A", "B", "C"}
	matrix := [][]float64{
		{0, 2, 0},
		{0, 0, 5},
		{1, 0, 0},
	}

	result, ok := Compute(variables, matrix)
	if !ok {
		t.Fatal("Expected a result for a matrix with signal")
	}

	wantDriving := []float64{2, 5, 1}
	wantDependency := []float64{1, 2, 5}
	for i := range variables {
		if result.Driving[i] != wantDriving[i] {
			t.Errorf("Driving[%d] = %v, want %v", i, result.Driving[i], wantDriving[i])
		}
		if result.Dependency[i] != wantDependency[i] {
			t.Errorf("Dependency[%d] = %v, want %v", i, result.Dependency[i], wantDependency[i])
		}
	}

	wantCut := 8.0 / 3.0
	if !almostEqual(result.XCut, wantCut) {
		t.Errorf("XCut = %v, want %v", result.XCut, wantCut)
	}
	if !almostEqual(result.YCut, wantCut) {
		t.Errorf("YCut = %v, want %v", result.YCut, wantCut)
	}

	wantQuadrants := []Quadrant{QuadrantAutonomous, QuadrantDeterminant, QuadrantResult}
	for i, want := range wantQuadrants {
		if result.Quadrants[i] != want {
			t.Errorf("Quadrants[%d] = %v, want %v", i, result.Quadrants[i], want)
		}
	}
}

func TestComputeTiesResolveHigh(t *testing.T) {
	// Symmetric 2x2: both variables sit exactly on both cuts.
	variables := []string{"A", "B"}
	matrix := [][]float64{
		{0, 2},
		{2, 0},
	}

	result, ok := Compute(variables, matrix)
	if !ok {
		t.Fatal("Expected a result")
	}
	for i, q := range result.Quadrants {
		if q != QuadrantRegulatory {
			t.Errorf("Quadrants[%d] = %v, want %v (ties resolve high)", i, q, QuadrantRegulatory)
		}
	}
}

func TestComputeNoResult(t *testing.T) {
	tests := []struct {
		name      string
		variables []string
		matrix    [][]float64
	}{
		{"empty variables", nil, nil},
		{"row count mismatch", []string{"A", "B"}, [][]float64{{0, 1}}},
		{"ragged row", []string{"A", "B"}, [][]float64{{0, 1}, {1}}},
		{"all zero", []string{"A", "B"}, [][]float64{{0, 0}, {0, 0}}},
		{"only diagonal values", []string{"A", "B"}, [][]float64{{7, 0}, {0, 7}}},
		{"all non-finite", []string{"A", "B"}, [][]float64{{0, math.NaN()}, {math.Inf(1), 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result, ok := Compute(tt.variables, tt.matrix); ok {
				t.Errorf("Expected no result, got %+v", result)
			}
		})
	}
}

func TestComputeIgnoresDiagonalAndNonFinite(t *testing.T) {
	variables := []string{"A", "B"}
	matrix := [][]float64{
		{9, math.NaN()},
		{3, 9},
	}

	result, ok := Compute(variables, matrix)
	if !ok {
		t.Fatal("Expected a result")
	}
	if result.Driving[0] != 0 || result.Driving[1] != 3 {
		t.Errorf("Driving = %v, want [0 3]", result.Driving)
	}
	if result.Dependency[0] != 3 || result.Dependency[1] != 0 {
		t.Errorf("Dependency = %v, want [3 0]", result.Dependency)
	}
}

func TestComputeMedianCuts(t *testing.T) {
	variables := []string{"A", "B", "C"}
	matrix := [][]float64{
		{0, 2, 0},
		{0, 0, 5},
		{1, 0, 0},
	}

	result, ok := ComputeWithCuts(variables, matrix, CutConfig{Mode: CutMedian})
	if !ok {
		t.Fatal("Expected a result")
	}
	if !almostEqual(result.XCut, 2) || !almostEqual(result.YCut, 2) {
		t.Fatalf("Cuts = (%v, %v), want (2, 2)", result.XCut, result.YCut)
	}

	wantQuadrants := []Quadrant{QuadrantDeterminant, QuadrantRegulatory, QuadrantResult}
	for i, want := range wantQuadrants {
		if result.Quadrants[i] != want {
			t.Errorf("Quadrants[%d] = %v, want %v", i, result.Quadrants[i], want)
		}
	}
}

func TestComputePercentileCuts(t *testing.T) {
	variables := []string{"A", "B", "C"}
	matrix := [][]float64{
		{0, 2, 0},
		{0, 0, 5},
		{1, 0, 0},
	}

	// Percentile 0 falls back to the 50th, the median.
	result, ok := ComputeWithCuts(variables, matrix, CutConfig{Mode: CutPercentile})
	if !ok {
		t.Fatal("Expected a result")
	}
	if !almostEqual(result.XCut, 2) || !almostEqual(result.YCut, 2) {
		t.Errorf("Default percentile cuts = (%v, %v), want (2, 2)", result.XCut, result.YCut)
	}

	result, ok = ComputeWithCuts(variables, matrix, CutConfig{
		Mode: CutPercentile, XPercentile: 100, YPercentile: 100,
	})
	if !ok {
		t.Fatal("Expected a result")
	}
	if !almostEqual(result.XCut, 5) || !almostEqual(result.YCut, 5) {
		t.Errorf("100th percentile cuts = (%v, %v), want (5, 5)", result.XCut, result.YCut)
	}
}

func TestComputeDefensiveCopies(t *testing.T) {
	variables := []string{"A", "B"}
	matrix := [][]float64{
		{0, 1},
		{2, 0},
	}

	result, ok := Compute(variables, matrix)
	if !ok {
		t.Fatal("Expected a result")
	}

	variables[0] = "mutated"
	matrix[0][1] = 99

	if result.Variables[0] != "A" {
		t.Errorf("Result aliases caller's variable slice: %v", result.Variables)
	}
	if result.Driving[0] != 1 {
		t.Errorf("Result recomputed after caller mutation: %v", result.Driving)
	}
}

func TestQuadrantsByName(t *testing.T) {
	variables := []string{"A", "B", "C"}
	matrix := [][]float64{
		{0, 2, 0},
		{0, 0, 5},
		{1, 0, 0},
	}

	result, ok := Compute(variables, matrix)
	if !ok {
		t.Fatal("Expected a result")
	}

	byName := result.QuadrantsByName()
	if len(byName) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(byName))
	}
	if byName["B"] != string(QuadrantDeterminant) {
		t.Errorf(`byName["B"] = %q, want %q`, byName["B"], QuadrantDeterminant)
	}
}

func TestCutEmptyVector(t *testing.T) {
	if got := cut(nil, CutMean, 0); got != 0 {
		t.Errorf("cut(nil) = %v, want 0", got)
	}
}

func TestQuantileClosestRank(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		percentile float64
		want       float64
	}{
		{"odd median is the middle element", []float64{1, 2, 5}, 50, 2},
		{"even median is the midpoint", []float64{1, 2, 3, 4}, 50, 2.5},
		{"interpolated rank", []float64{1, 2, 3, 4}, 25, 1.75},
		{"single element", []float64{3}, 50, 3},
		{"0th is the minimum", []float64{1, 2, 5}, 0, 1},
		{"100th is the maximum", []float64{1, 2, 5}, 100, 5},
		{"unsorted input", []float64{5, 1, 2}, 50, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantile(tt.values, tt.percentile); !almostEqual(got, tt.want) {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.values, tt.percentile, got, tt.want)
			}
		})
	}
}

func TestQuantileClampsOutOfRange(t *testing.T) {
	if got := quantile([]float64{1, 2, 5}, 150); got != 5 {
		t.Errorf("quantile(150) = %v, want the maximum", got)
	}
	if got := quantile([]float64{1, 2, 5}, -10); got != 1 {
		t.Errorf("quantile(-10) = %v, want the minimum", got)
	}
}

func TestComputeOutOfRangePercentileDoesNotPanic(t *testing.T) {
	variables := []string{"A", "B", "C"}
	matrix := [][]float64{
		{0, 2, 0},
		{0, 0, 5},
		{1, 0, 0},
	}

	result, ok := ComputeWithCuts(variables, matrix, CutConfig{
		Mode: CutPercentile, XPercentile: 150, YPercentile: -5,
	})
	if !ok {
		t.Fatal("Expected a result")
	}
	// Dependency [1 2 5] clamps 150 to the 100th; a non-positive percentile
	// falls back to the 50th, so driving [2 5 1] cuts at its median.
	if result.XCut != 5 || result.YCut != 2 {
		t.Errorf("Cuts = (%v, %v), want (5, 2)", result.XCut, result.YCut)
	}
}

func TestCutConfigValidate(t *testing.T) {
	valid := []CutConfig{
		{},
		{Mode: CutMean},
		{Mode: CutMedian},
		{Mode: CutPercentile, XPercentile: 100, YPercentile: 100},
	}
	for _, cfg := range valid {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", cfg, err)
		}
	}

	invalid := []CutConfig{
		{Mode: "bogus"},
		{Mode: CutPercentile, XPercentile: 150},
		{Mode: CutPercentile, YPercentile: -1},
	}
	for _, cfg := range invalid {
		err := cfg.Validate()
		if err == nil {
			t.Errorf("Validate(%+v) = nil, want error", cfg)
			continue
		}
		if !apperrors.IsCode(err, apperrors.ValidationFailed) {
			t.Errorf("Validate(%+v) code = %v, want VALIDATION_FAILED", cfg, apperrors.CodeOf(err))
		}
	}
}
