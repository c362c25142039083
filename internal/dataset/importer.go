package dataset

import (
	"math"
	"strconv"
	"strings"

	apperrors "micmac/internal/errors"
)

// variableHeaderNames are the recognized header spellings for the name column
// of a variables table. Anything else means the table has no header and the
// first column carries the names.
var variableHeaderNames = map[string]bool{
	"name":     true,
	"variable": true,
	"nombre":   true,
}

// ParseDataset validates the two tables and assembles a Dataset.
//
// The matrix table is authoritative for variable order. A separately supplied
// variable table of the same length must match the matrix header exactly, in
// order and spelling; a variable table of a different length is ignored (a
// sheet may legitimately carry extra annotation rows). All structural
// violations are reported with the offending position; nothing is applied
// partially.
func ParseDataset(varTable, matTable Table) (*Dataset, error) {
	names, matrix, err := parseMatrixTable(matTable)
	if err != nil {
		return nil, err
	}

	varNames := ParseVariableNames(varTable)
	if len(varNames) == len(names) {
		for i := range names {
			if varNames[i] != names[i] {
				return nil, apperrors.New(apperrors.ImportInvalid, "variable lists do not match").
					WithDetails(map[string]interface{}{
						"position": i + 1,
						"variable": varNames[i],
						"matrix":   names[i],
					})
			}
		}
	}

	seen := make(map[string]int, len(names))
	for i, name := range names {
		if prev, dup := seen[name]; dup {
			return nil, apperrors.Newf(apperrors.ImportInvalid,
				"duplicate variable name %q at positions %d and %d", name, prev+1, i+1)
		}
		seen[name] = i
	}

	ds := &Dataset{Variables: names, Matrix: matrix}
	ds.ZeroDiagonal()
	return ds, nil
}

// ParseVariableNames extracts the ordered variable names from a variables
// table. Blank names are dropped silently: not every sheet row need be a
// variable. A nil or empty table yields nil.
func ParseVariableNames(t Table) []string {
	if len(t) == 0 {
		return nil
	}

	nameCol := 0
	rows := t
	for col, cell := range t[0] {
		if variableHeaderNames[strings.ToLower(strings.TrimSpace(cell))] {
			nameCol = col
			rows = t[1:]
			break
		}
	}

	var names []string
	for _, row := range rows {
		if nameCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parseMatrixTable validates the matrix table: header row of variable names
// (first cell ignored), then one labeled data row per variable.
func parseMatrixTable(t Table) ([]string, [][]float64, error) {
	if len(t) == 0 || len(t[0]) < 2 {
		return nil, nil, apperrors.New(apperrors.ImportInvalid, "matrix table has no header row")
	}

	header := t[0][1:]
	names := make([]string, len(header))
	for k, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			return nil, nil, apperrors.Newf(apperrors.ImportInvalid,
				"missing variable name at position %d", k+1)
		}
		names[k] = name
	}
	n := len(names)

	var dataRows []struct {
		cells []string
		row   int // 1-based table row, header is row 1
	}
	for i, row := range t[1:] {
		if rowBlank(row) {
			continue
		}
		dataRows = append(dataRows, struct {
			cells []string
			row   int
		}{row, i + 2})
	}
	if len(dataRows) != n {
		return nil, nil, apperrors.Newf(apperrors.ImportInvalid,
			"expected %d×%d, found %d rows", n, n, len(dataRows))
	}

	matrix := make([][]float64, n)
	for i, dr := range dataRows {
		label := ""
		if len(dr.cells) > 0 {
			label = strings.TrimSpace(dr.cells[0])
		}
		if label != "" && label != names[i] {
			return nil, nil, apperrors.Newf(apperrors.ImportInvalid,
				"row label mismatch at row %d: got %q, want %q", dr.row, label, names[i])
		}

		matrix[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			cell := ""
			if j+1 < len(dr.cells) {
				cell = dr.cells[j+1]
			}
			v, ok := parseCell(cell)
			if !ok {
				return nil, nil, apperrors.Newf(apperrors.ImportInvalid,
					"non-numeric value %q at (%d, %d)", cell, dr.row, j+2)
			}
			matrix[i][j] = v
		}
	}
	return names, matrix, nil
}

// parseCell normalizes one matrix cell. Blank or absent cells default to 0;
// a decimal comma is accepted as a decimal point.
func parseCell(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, true
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
