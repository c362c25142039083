package dataset

import (
	"fmt"
	"strconv"
)

// VariablesTable serializes the variable list into the two-table exchange
// format: a header row and one row per variable. Codes are positional.
func VariablesTable(ds *Dataset) Table {
	t := Table{{"code", "name", "description"}}
	for i, name := range ds.Variables {
		t = append(t, []string{fmt.Sprintf("VAR%d", i+1), name, ""})
	}
	return t
}

// MatrixTable serializes the matrix: a header row of variable names with an
// empty corner cell, then one labeled row per variable. ParseDataset applied
// to the result yields the original dataset exactly (diagonal forced to 0
// both ways).
func MatrixTable(ds *Dataset) Table {
	n := len(ds.Variables)
	t := make(Table, 0, n+1)

	header := make([]string, n+1)
	copy(header[1:], ds.Variables)
	t = append(t, header)

	for i := 0; i < n; i++ {
		row := make([]string, n+1)
		row[0] = ds.Variables[i]
		for j := 0; j < n; j++ {
			v := 0.0
			if i < len(ds.Matrix) && j < len(ds.Matrix[i]) {
				v = ds.Matrix[i][j]
			}
			if i == j {
				v = 0
			}
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		t = append(t, row)
	}
	return t
}
