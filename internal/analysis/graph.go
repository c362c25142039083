package analysis

import (
	"math"

	apperrors "micmac/internal/errors"
)

// Node is one graph node per variable, identified by its stable index.
type Node struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Link is one weighted influence edge. Source and Target are node IDs.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is the node/edge projection of an influence matrix.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// ProjectGraph filters the matrix into a graph keeping edges whose weight is
// at least minWeight. Zero-weight cells never produce edges, so minWeight=0
// yields every nonzero influence.
//
// When directed is false, the (i,j)/(j,i) pair condenses into a single edge
// whose weight is the sum of both directions; the filter applies to the
// condensed weight.
//
// An invalid minWeight is a reported error rather than a silent no-result:
// the caller supplied an explicit, correctable parameter. An empty link set
// is valid and signals "lower the filter".
func ProjectGraph(matrix [][]float64, variables []string, minWeight float64, directed bool) (*Graph, error) {
	if minWeight < 0 || math.IsNaN(minWeight) || math.IsInf(minWeight, 0) {
		return nil, apperrors.New(apperrors.ValidationFailed, "min_weight must be a finite, non-negative number")
	}
	n := len(variables)
	if len(matrix) != n {
		return nil, apperrors.Newf(apperrors.ValidationFailed, "matrix must be %dx%d to match variables", n, n)
	}
	for _, row := range matrix {
		if len(row) != n {
			return nil, apperrors.Newf(apperrors.ValidationFailed, "matrix must be %dx%d to match variables", n, n)
		}
	}

	g := &Graph{
		Nodes: make([]Node, n),
		Links: []Link{},
	}
	for i, name := range variables {
		g.Nodes[i] = Node{ID: i, Name: name}
	}

	if directed {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				w := matrix[i][j]
				if w > 0 && w >= minWeight {
					g.Links = append(g.Links, Link{Source: i, Target: j, Weight: w})
				}
			}
		}
		return g, nil
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := matrix[i][j] + matrix[j][i]
			if w > 0 && w >= minWeight {
				g.Links = append(g.Links, Link{Source: i, Target: j, Weight: w})
			}
		}
	}
	return g, nil
}
