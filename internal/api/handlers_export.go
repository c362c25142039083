package api

import (
	"fmt"
	"net/http"

	"micmac/internal/dataset"
)

// ExportResponse is the full JSON export of a project's analysis inputs.
type ExportResponse struct {
	Project    map[string]interface{} `json:"project"`
	ScaleSetID int64                  `json:"scaleSetId"`
	Variables  []string               `json:"variables"`
	Matrix     [][]float64            `json:"matrix"`
}

// handleExportJSON handles GET /projects/{id}/export
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	project, ok := s.requireProject(w, id)
	if !ok {
		return
	}
	ds, ok := s.requireCompleteDataset(w, id)
	if !ok {
		return
	}

	WriteJSON(w, ExportResponse{
		Project: map[string]interface{}{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
		},
		ScaleSetID: project.ScaleSetID,
		Variables:  ds.Variables,
		Matrix:     ds.Matrix,
	}, http.StatusOK)
}

// handleExportVariablesCSV handles GET /projects/{id}/export/variables.csv
func (s *Server) handleExportVariablesCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}
	ds, ok := s.requireCompleteDataset(w, id)
	if !ok {
		return
	}

	serveCSV(w, fmt.Sprintf("variables_project_%d.csv", id), dataset.VariablesTable(ds))
}

// handleExportMatrixCSV handles GET /projects/{id}/export/matrix.csv
func (s *Server) handleExportMatrixCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}
	ds, ok := s.requireCompleteDataset(w, id)
	if !ok {
		return
	}

	serveCSV(w, fmt.Sprintf("matrix_project_%d.csv", id), dataset.MatrixTable(ds))
}

// handleExportWorkbook handles GET /projects/{id}/export/workbook.xlsx
func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}
	ds, ok := s.requireCompleteDataset(w, id)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=project_%d.xlsx", id))
	if err := dataset.WriteWorkbook(w, dataset.VariablesTable(ds), dataset.MatrixTable(ds)); err != nil {
		s.logger.Error("Workbook export failed", map[string]interface{}{
			"projectID": id,
			"error":     err.Error(),
		})
	}
}

func serveCSV(w http.ResponseWriter, filename string, t dataset.Table) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	_ = dataset.WriteCSV(w, t)
}
