package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"micmac/internal/analysis"
	apperrors "micmac/internal/errors"
	"micmac/internal/storage"
)

// MatrixResponse carries the stored variables and matrix. Matrix is null
// when no complete n×n cell set is stored yet.
type MatrixResponse struct {
	Variables []string    `json:"variables"`
	Matrix    [][]float64 `json:"matrix"`
}

// handleSetMatrix handles POST /projects/{id}/matrix. Cells are validated
// against the project's scale; supplied diagonal values are zeroed, never
// rejected.
func (s *Server) handleSetMatrix(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	project, ok := s.requireProject(w, id)
	if !ok {
		return
	}

	var req struct {
		Matrix [][]float64 `json:"matrix"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	names, err := s.datasets.Variables(id)
	if err != nil {
		InternalError(w, "failed to load variables", err)
		return
	}
	n := len(names)
	if n == 0 {
		BadRequest(w, "add variables before the matrix")
		return
	}
	if len(req.Matrix) != n {
		BadRequest(w, fmt.Sprintf("matrix must be %dx%d", n, n))
		return
	}
	for _, row := range req.Matrix {
		if len(row) != n {
			BadRequest(w, fmt.Sprintf("matrix must be %dx%d", n, n))
			return
		}
	}

	scale, ok := s.requireScale(w, project)
	if !ok {
		return
	}
	for i := range req.Matrix {
		for j := range req.Matrix[i] {
			if i == j {
				req.Matrix[i][j] = 0
				continue
			}
			if err := scale.CheckValue(req.Matrix[i][j]); err != nil {
				WriteCodedError(w, cellError(err, i, j))
				return
			}
		}
	}

	if err := s.datasets.ReplaceMatrix(id, req.Matrix); err != nil {
		InternalError(w, "failed to replace matrix", err)
		return
	}
	WriteJSON(w, map[string]interface{}{"ok": true, "size": n}, http.StatusOK)
}

// handleGetMatrix handles GET /projects/{id}/matrix
func (s *Server) handleGetMatrix(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}

	ds, err := s.datasets.Dataset(id)
	if err != nil {
		InternalError(w, "failed to load dataset", err)
		return
	}
	WriteJSON(w, MatrixResponse{Variables: ds.Variables, Matrix: ds.Matrix}, http.StatusOK)
}

// requireScale loads the project's scale set or writes an error.
func (s *Server) requireScale(w http.ResponseWriter, project *storage.Project) (analysis.Scale, bool) {
	ss, err := s.scales.Get(project.ScaleSetID)
	if err != nil {
		InternalError(w, "failed to load scale set", err)
		return analysis.Scale{}, false
	}
	if ss == nil {
		InternalError(w, "project references a missing scale set", nil)
		return analysis.Scale{}, false
	}
	return ss.Scale, true
}

// cellError attaches 0-based cell coordinates to a scale violation.
func cellError(err error, i, j int) error {
	coded, ok := err.(*apperrors.Error)
	if !ok {
		return err
	}
	return apperrors.Newf(coded.Code, "%s at (%d,%d)", coded.Message, i, j)
}
