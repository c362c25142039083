// Package dataset turns untrusted tabular input — a variable table and a
// square influence-matrix table, as produced by CSV or spreadsheet readers —
// into the validated shape the analytic engine consumes, and serializes that
// shape back out. A parsed dataset is the atomic unit of replacement: an
// import either fully supersedes a project's variables and matrix or changes
// nothing.
package dataset

// Dataset is an ordered variable list and its square influence matrix.
// Variable order is significant: it defines row/column correspondence and is
// preserved end-to-end through import, storage, and display.
type Dataset struct {
	Variables []string    `json:"variables"`
	Matrix    [][]float64 `json:"matrix"`
}

// Size returns the number of variables.
func (d *Dataset) Size() int {
	return len(d.Variables)
}

// ZeroDiagonal forces the no-self-influence invariant. Supplied diagonal
// values are discarded, never rejected.
func (d *Dataset) ZeroDiagonal() {
	for i := range d.Matrix {
		if i < len(d.Matrix[i]) {
			d.Matrix[i][i] = 0
		}
	}
}

// Clone returns an independent copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Variables: append([]string(nil), d.Variables...),
		Matrix:    make([][]float64, len(d.Matrix)),
	}
	for i, row := range d.Matrix {
		out.Matrix[i] = append([]float64(nil), row...)
	}
	return out
}
