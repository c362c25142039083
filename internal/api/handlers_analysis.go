package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"micmac/internal/analysis"
	"micmac/internal/dataset"
	apperrors "micmac/internal/errors"
)

// ComputeResponse is the authoritative analysis result for a stored matrix.
type ComputeResponse struct {
	Variables  []string          `json:"variables"`
	Dependency []float64         `json:"dependency"`
	Driving    []float64         `json:"driving"`
	XCut       float64           `json:"xCut"`
	YCut       float64           `json:"yCut"`
	Quadrants  map[string]string `json:"quadrants"`
}

// handleCompute handles POST /projects/{id}/compute. The body optionally
// carries a cut configuration; an empty body means mean cuts. This endpoint
// and the local preview run the same engine, so their results agree by
// construction.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}

	cfg := analysis.CutConfig{Mode: analysis.CutMean}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		BadRequest(w, "failed to read request body")
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &cfg); err != nil {
			BadRequest(w, "invalid JSON body")
			return
		}
	}
	if err := cfg.Validate(); err != nil {
		WriteCodedError(w, err)
		return
	}

	ds, ok := s.requireCompleteDataset(w, id)
	if !ok {
		return
	}

	result, ok2 := analysis.ComputeWithCuts(ds.Variables, ds.Matrix, cfg)
	if !ok2 {
		WriteCodedError(w, apperrors.New(apperrors.NoResult,
			"matrix carries no analytic signal"))
		return
	}

	WriteJSON(w, ComputeResponse{
		Variables:  result.Variables,
		Dependency: result.Dependency,
		Driving:    result.Driving,
		XCut:       result.XCut,
		YCut:       result.YCut,
		Quadrants:  result.QuadrantsByName(),
	}, http.StatusOK)
}

// handleHeatmap handles GET /projects/{id}/heatmap: variables, scale, and
// matrix for client-side color derivation.
func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
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
	scale, ok := s.requireScale(w, project)
	if !ok {
		return
	}

	WriteJSON(w, analysis.BuildHeatmap(ds.Variables, ds.Matrix, scale), http.StatusOK)
}

// handleGraph handles GET /projects/{id}/graph?min_weight=&directed=
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}

	minWeight := 0.0
	if raw := r.URL.Query().Get("min_weight"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			BadRequest(w, "min_weight must be a number")
			return
		}
		minWeight = v
	}
	directed := true
	if raw := r.URL.Query().Get("directed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			BadRequest(w, "directed must be a boolean")
			return
		}
		directed = v
	}

	ds, ok := s.requireCompleteDataset(w, id)
	if !ok {
		return
	}

	graph, err := analysis.ProjectGraph(ds.Matrix, ds.Variables, minWeight, directed)
	if err != nil {
		WriteCodedError(w, err)
		return
	}
	WriteJSON(w, graph, http.StatusOK)
}

// requireCompleteDataset loads a project's dataset and insists on a
// completely stored matrix.
func (s *Server) requireCompleteDataset(w http.ResponseWriter, id int64) (*dataset.Dataset, bool) {
	stored, err := s.datasets.Dataset(id)
	if err != nil {
		InternalError(w, "failed to load dataset", err)
		return nil, false
	}
	if len(stored.Variables) == 0 {
		WriteCodedError(w, apperrors.New(apperrors.ValidationFailed, "project has no variables"))
		return nil, false
	}
	if stored.Matrix == nil {
		WriteCodedError(w, apperrors.New(apperrors.MatrixIncomplete, "matrix is not completely loaded"))
		return nil, false
	}
	return stored, true
}
