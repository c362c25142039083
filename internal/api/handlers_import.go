package api

import (
	"mime/multipart"
	"net/http"

	"micmac/internal/dataset"
	apperrors "micmac/internal/errors"
)

// maxImportSize bounds uploaded spreadsheet size (16 MiB).
const maxImportSize = 16 << 20

// handleImport handles POST /projects/{id}/import. The multipart body
// carries either a single "workbook" xlsx file with variables/matrix sheets,
// or two delimited-text files "variables" and "matrix". A successful import
// fully replaces the project's variables and matrix; any validation failure
// leaves stored state untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	project, ok := s.requireProject(w, id)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		BadRequest(w, "expected a multipart upload")
		return
	}

	varTable, matTable, twoFiles, err := readUploadTables(r)
	if err != nil {
		WriteCodedError(w, err)
		return
	}

	ds, err := dataset.ParseDataset(varTable, matTable)
	if err != nil {
		WriteCodedError(w, err)
		return
	}

	// Two independently authored files must agree exactly on the variable
	// list; inside one workbook the matrix sheet is authoritative.
	if twoFiles {
		names := dataset.ParseVariableNames(varTable)
		if !sameNames(names, ds.Variables) {
			WriteCodedError(w, apperrors.New(apperrors.ImportInvalid, "variable lists do not match"))
			return
		}
	}

	scale, ok := s.requireScale(w, project)
	if !ok {
		return
	}
	for i, row := range ds.Matrix {
		for j, v := range row {
			if i == j {
				continue
			}
			if err := scale.CheckValue(v); err != nil {
				WriteCodedError(w, cellError(err, i, j))
				return
			}
		}
	}

	if err := s.datasets.ReplaceDataset(id, ds); err != nil {
		InternalError(w, "failed to store imported dataset", err)
		return
	}

	s.logger.Info("Dataset imported", map[string]interface{}{
		"projectID": id,
		"variables": len(ds.Variables),
	})
	WriteJSON(w, map[string]interface{}{
		"ok":        true,
		"variables": len(ds.Variables),
		"size":      len(ds.Variables),
	}, http.StatusOK)
}

// readUploadTables extracts the two tables from the upload, whichever form
// it takes. twoFiles reports the two-independent-files case.
func readUploadTables(r *http.Request) (varTable, matTable dataset.Table, twoFiles bool, err error) {
	if wb, _, ferr := r.FormFile("workbook"); ferr == nil {
		defer wb.Close()
		varTable, matTable, err = dataset.ReadWorkbook(wb)
		return varTable, matTable, false, err
	}

	varFile, _, ferr := r.FormFile("variables")
	if ferr != nil {
		return nil, nil, false, apperrors.New(apperrors.ImportInvalid,
			`upload must contain a "workbook" file or "variables" and "matrix" files`)
	}
	defer varFile.Close()

	matFile, _, ferr := r.FormFile("matrix")
	if ferr != nil {
		return nil, nil, false, apperrors.New(apperrors.ImportInvalid,
			`upload is missing the "matrix" file`)
	}
	defer matFile.Close()

	if varTable, err = readCSVUpload(varFile); err != nil {
		return nil, nil, false, err
	}
	if matTable, err = readCSVUpload(matFile); err != nil {
		return nil, nil, false, err
	}
	return varTable, matTable, true, nil
}

func readCSVUpload(f multipart.File) (dataset.Table, error) {
	return dataset.ReadCSV(f)
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
