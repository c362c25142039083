package dataset

import (
	"strings"
	"testing"

	apperrors "micmac/internal/errors"
)

func validMatrixTable() Table {
	return Table{
		{"", "A", "B", "C"},
		{"A", "0", "2", "0"},
		{"B", "0", "0", "5"},
		{"C", "1", "0", "0"},
	}
}

func TestParseDataset(t *testing.T) {
	varTable := Table{
		{"code", "name", "description"},
		{"VAR1", "A", ""},
		{"VAR2", "B", ""},
		{"VAR3", "C", ""},
	}

	ds, err := ParseDataset(varTable, validMatrixTable())
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(ds.Variables) != len(want) {
		t.Fatalf("Variables = %v, want %v", ds.Variables, want)
	}
	for i, name := range want {
		if ds.Variables[i] != name {
			t.Errorf("Variables[%d] = %q, want %q", i, ds.Variables[i], name)
		}
	}
	if ds.Matrix[0][1] != 2 || ds.Matrix[1][2] != 5 || ds.Matrix[2][0] != 1 {
		t.Errorf("Unexpected matrix: %v", ds.Matrix)
	}
}

func TestParseDatasetWithoutVariableTable(t *testing.T) {
	ds, err := ParseDataset(nil, validMatrixTable())
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if len(ds.Variables) != 3 {
		t.Errorf("Variables = %v, want the matrix header", ds.Variables)
	}
}

func TestParseVariableNamesHeaderVariants(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		want  []string
	}{
		{"name header", Table{{"name"}, {"A"}, {"B"}}, []string{"A", "B"}},
		{"variable header", Table{{"Variable"}, {"A"}}, []string{"A"}},
		{"nombre header", Table{{"nombre"}, {"A"}}, []string{"A"}},
		{"name in second column", Table{{"code", "name"}, {"V1", "A"}, {"V2", "B"}}, []string{"A", "B"}},
		{"no header", Table{{"A"}, {"B"}}, []string{"A", "B"}},
		{"blank rows dropped", Table{{"name"}, {""}, {"A"}, {"  "}}, []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVariableNames(tt.table)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseVariableNames = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseVariableNames[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseDatasetNumericNormalization(t *testing.T) {
	table := Table{
		{"", "A", "B"},
		{"A", "0", "2,5"},
		{"B", "", "0"},
	}

	ds, err := ParseDataset(nil, table)
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if ds.Matrix[0][1] != 2.5 {
		t.Errorf("Decimal comma not normalized: %v", ds.Matrix[0][1])
	}
	if ds.Matrix[1][0] != 0 {
		t.Errorf("Blank cell should default to 0: %v", ds.Matrix[1][0])
	}
}

func TestParseDatasetZeroesDiagonal(t *testing.T) {
	table := Table{
		{"", "A", "B"},
		{"A", "3", "1"},
		{"B", "1", "2"},
	}

	ds, err := ParseDataset(nil, table)
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if ds.Matrix[0][0] != 0 || ds.Matrix[1][1] != 0 {
		t.Errorf("Diagonal should be zeroed, got %v", ds.Matrix)
	}
}

func TestParseDatasetSkipsBlankRows(t *testing.T) {
	table := Table{
		{"", "A", "B"},
		{"A", "0", "1"},
		{"", "", ""},
		{"B", "2", "0"},
	}

	ds, err := ParseDataset(nil, table)
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if ds.Matrix[1][0] != 2 {
		t.Errorf("Blank rows should be skipped, got %v", ds.Matrix)
	}
}

func TestParseDatasetStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		message string
	}{
		{
			"empty table",
			Table{},
			"no header row",
		},
		{
			"blank header name",
			Table{{"", "A", " ", "C"}, {"A", "0", "1", "1"}, {"", "1", "0", "1"}, {"C", "1", "1", "0"}},
			"missing variable name at position 2",
		},
		{
			"row count mismatch",
			Table{{"", "A", "B"}, {"A", "0", "1"}},
			"expected 2×2, found 1 rows",
		},
		{
			"row label mismatch",
			Table{{"", "A", "B"}, {"A", "0", "1"}, {"X", "1", "0"}},
			"row label mismatch at row 3",
		},
		{
			"non-numeric cell",
			Table{{"", "A", "B"}, {"A", "0", "high"}, {"B", "1", "0"}},
			"non-numeric value \"high\" at (2, 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataset(nil, tt.table)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !apperrors.IsCode(err, apperrors.ImportInvalid) {
				t.Errorf("Expected IMPORT_INVALID, got %v", apperrors.CodeOf(err))
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParseDatasetVariableListMismatch(t *testing.T) {
	varTable := Table{{"name"}, {"A"}, {"X"}, {"C"}}

	_, err := ParseDataset(varTable, validMatrixTable())
	if err == nil {
		t.Fatal("Expected an error for mismatched variable lists")
	}
	if !strings.Contains(err.Error(), "variable lists do not match") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseDatasetIgnoresDifferentLengthVariableList(t *testing.T) {
	// A variable sheet with a different row count is ignored; the matrix
	// header is authoritative.
	varTable := Table{{"name"}, {"A"}, {"B"}}

	ds, err := ParseDataset(varTable, validMatrixTable())
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if len(ds.Variables) != 3 || ds.Variables[2] != "C" {
		t.Errorf("Variables = %v, want matrix header", ds.Variables)
	}
}

func TestParseDatasetRejectsDuplicateNames(t *testing.T) {
	table := Table{
		{"", "A", "A"},
		{"A", "0", "1"},
		{"A", "1", "0"},
	}

	_, err := ParseDataset(nil, table)
	if err == nil {
		t.Fatal("Expected an error for duplicate variable names")
	}
	if !strings.Contains(err.Error(), `duplicate variable name "A"`) {
		t.Errorf("Unexpected error: %v", err)
	}
}
