package dataset

import (
	"io"

	"github.com/xuri/excelize/v2"

	apperrors "micmac/internal/errors"
)

const (
	variablesSheet = "variables"
	matrixSheet    = "matrix"
)

// ReadWorkbook extracts the variables and matrix tables from an xlsx
// workbook. Sheets are located by substring: the first sheet whose name
// contains "var" and the first whose name contains "mat".
func ReadWorkbook(r io.Reader) (varTable, matTable Table, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ImportInvalid, "failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	varSheet, ok := sheetFor(sheets, "var")
	if !ok {
		return nil, nil, apperrors.New(apperrors.ImportInvalid, `workbook has no sheet named like "...var..."`)
	}
	matSheet, ok := sheetFor(sheets, "mat")
	if !ok {
		return nil, nil, apperrors.New(apperrors.ImportInvalid, `workbook has no sheet named like "...mat..."`)
	}

	varRows, err := f.GetRows(varSheet)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ImportInvalid, "failed to read variables sheet", err)
	}
	matRows, err := f.GetRows(matSheet)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ImportInvalid, "failed to read matrix sheet", err)
	}
	return Table(varRows), Table(matRows), nil
}

// WriteWorkbook writes the two tables as an xlsx workbook with "variables"
// and "matrix" sheets, the inverse of ReadWorkbook.
func WriteWorkbook(w io.Writer, varTable, matTable Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), variablesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(matrixSheet); err != nil {
		return err
	}

	if err := writeSheet(f, variablesSheet, varTable); err != nil {
		return err
	}
	if err := writeSheet(f, matrixSheet, matTable); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	for i, row := range t {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}
