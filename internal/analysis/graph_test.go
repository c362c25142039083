package analysis

import (
	"math"
	"testing"

	apperrors "micmac/internal/errors"
)

var graphMatrix = [][]float64{
	{0, 2, 0},
	{0, 0, 5},
	{1, 0, 0},
}

var graphVars = []string{"A", "B", "C"}

func TestProjectGraphDirected(t *testing.T) {
	g, err := ProjectGraph(graphMatrix, graphVars, 0, true)
	if err != nil {
		t.Fatalf("ProjectGraph failed: %v", err)
	}

	if len(g.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(g.Nodes))
	}
	if g.Nodes[1].ID != 1 || g.Nodes[1].Name != "B" {
		t.Errorf("Nodes[1] = %+v, want {1 B}", g.Nodes[1])
	}

	// min_weight 0 includes every nonzero cell.
	if len(g.Links) != 3 {
		t.Fatalf("Expected 3 links, got %d: %+v", len(g.Links), g.Links)
	}

	g, err = ProjectGraph(graphMatrix, graphVars, 2, true)
	if err != nil {
		t.Fatalf("ProjectGraph failed: %v", err)
	}
	if len(g.Links) != 2 {
		t.Errorf("Expected 2 links at min_weight 2, got %d", len(g.Links))
	}
}

func TestProjectGraphMonotonicity(t *testing.T) {
	prev := -1
	for _, mw := range []float64{0, 1, 2, 3, 5, 6} {
		g, err := ProjectGraph(graphMatrix, graphVars, mw, true)
		if err != nil {
			t.Fatalf("ProjectGraph(min_weight=%v) failed: %v", mw, err)
		}
		if prev >= 0 && len(g.Links) > prev {
			t.Errorf("Raising min_weight to %v increased edge count: %d > %d", mw, len(g.Links), prev)
		}
		prev = len(g.Links)
	}
}

func TestProjectGraphUndirectedSumsPairs(t *testing.T) {
	g, err := ProjectGraph(graphMatrix, graphVars, 0, false)
	if err != nil {
		t.Fatalf("ProjectGraph failed: %v", err)
	}

	// (0,1)=2+0, (0,2)=0+1, (1,2)=5+0
	if len(g.Links) != 3 {
		t.Fatalf("Expected 3 undirected links, got %d", len(g.Links))
	}
	weights := map[[2]int]float64{}
	for _, l := range g.Links {
		weights[[2]int{l.Source, l.Target}] = l.Weight
	}
	if weights[[2]int{0, 1}] != 2 || weights[[2]int{0, 2}] != 1 || weights[[2]int{1, 2}] != 5 {
		t.Errorf("Unexpected undirected weights: %v", weights)
	}

	g, err = ProjectGraph(graphMatrix, graphVars, 3, false)
	if err != nil {
		t.Fatalf("ProjectGraph failed: %v", err)
	}
	if len(g.Links) != 1 || g.Links[0].Weight != 5 {
		t.Errorf("Expected single link of weight 5, got %+v", g.Links)
	}
}

func TestProjectGraphEmptyResultIsValid(t *testing.T) {
	g, err := ProjectGraph(graphMatrix, graphVars, 100, true)
	if err != nil {
		t.Fatalf("ProjectGraph failed: %v", err)
	}
	if len(g.Links) != 0 {
		t.Errorf("Expected no links above threshold 100, got %+v", g.Links)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("Nodes should survive an empty link set, got %d", len(g.Nodes))
	}
}

func TestProjectGraphInvalidThreshold(t *testing.T) {
	for _, mw := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := ProjectGraph(graphMatrix, graphVars, mw, true); err == nil {
			t.Errorf("Expected error for min_weight %v", mw)
		} else if !apperrors.IsCode(err, apperrors.ValidationFailed) {
			t.Errorf("Expected VALIDATION_FAILED for min_weight %v, got %v", mw, err)
		}
	}
}

func TestProjectGraphShapeMismatch(t *testing.T) {
	if _, err := ProjectGraph([][]float64{{0, 1}}, graphVars, 0, true); err == nil {
		t.Error("Expected error for matrix/variables shape mismatch")
	}
}
