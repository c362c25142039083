package analysis

// HeatmapView pairs a matrix with the scale needed to derive per-cell color
// intensity. The matrix values are carried unchanged; intensity is computed
// on demand so renderers can restyle without recomputing.
type HeatmapView struct {
	Variables []string    `json:"variables"`
	Scale     Scale       `json:"scale"`
	Matrix    [][]float64 `json:"matrix"`
}

// BuildHeatmap copies the inputs into a heatmap view. Later mutation of the
// caller's slices does not affect the view.
func BuildHeatmap(variables []string, matrix [][]float64, scale Scale) *HeatmapView {
	return &HeatmapView{
		Variables: append([]string(nil), variables...),
		Scale:     scale,
		Matrix:    cloneMatrix(matrix),
	}
}

// Intensity maps cell (i,j) to a normalized [0,1] color intensity.
// ok is false for diagonal cells — always 0 and analytically meaningless,
// so they are rendered "not applicable" regardless of stored value — and
// for out-of-range indices.
func (h *HeatmapView) Intensity(i, j int) (intensity float64, ok bool) {
	if i == j || i < 0 || j < 0 || i >= len(h.Matrix) || j >= len(h.Matrix) {
		return 0, false
	}
	span := h.Scale.Max - h.Scale.Min
	if span == 0 {
		// Degrade to value-min instead of NaN.
		span = 1
	}
	return (h.Matrix[i][j] - h.Scale.Min) / span, true
}

func cloneMatrix(matrix [][]float64) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
