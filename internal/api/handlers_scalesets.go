package api

import (
	"encoding/json"
	"net/http"

	"micmac/internal/analysis"
)

// ScaleSetRequest is the create/update payload for a scale set.
type ScaleSetRequest struct {
	Name   string            `json:"name"`
	Min    float64           `json:"min"`
	Max    float64           `json:"max"`
	Step   float64           `json:"step"`
	Labels map[string]string `json:"labels,omitempty"`
}

func (req *ScaleSetRequest) scale() analysis.Scale {
	step := req.Step
	if step == 0 {
		step = 1
	}
	return analysis.Scale{Min: req.Min, Max: req.Max, Step: step, Labels: req.Labels}
}

// handleCreateScaleSet handles POST /scalesets
func (s *Server) handleCreateScaleSet(w http.ResponseWriter, r *http.Request) {
	var req ScaleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		BadRequest(w, "scale set name is required")
		return
	}

	ss, err := s.scales.Create(req.Name, req.scale())
	if err != nil {
		WriteCodedError(w, err)
		return
	}
	WriteJSON(w, ss, http.StatusCreated)
}

// handleListScaleSets handles GET /scalesets
func (s *Server) handleListScaleSets(w http.ResponseWriter, r *http.Request) {
	list, err := s.scales.List()
	if err != nil {
		InternalError(w, "failed to list scale sets", err)
		return
	}
	WriteJSON(w, list, http.StatusOK)
}

// handleGetScaleSet handles GET /scalesets/{id}
func (s *Server) handleGetScaleSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ss, err := s.scales.Get(id)
	if err != nil {
		InternalError(w, "failed to load scale set", err)
		return
	}
	if ss == nil {
		NotFound(w, "scale set does not exist")
		return
	}
	WriteJSON(w, ss, http.StatusOK)
}

// handleUpdateScaleSet handles PUT /scalesets/{id}
func (s *Server) handleUpdateScaleSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ScaleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		BadRequest(w, "scale set name is required")
		return
	}

	ss, err := s.scales.Update(id, req.Name, req.scale())
	if err != nil {
		WriteCodedError(w, err)
		return
	}
	if ss == nil {
		NotFound(w, "scale set does not exist")
		return
	}
	WriteJSON(w, ss, http.StatusOK)
}

// handleDeleteScaleSet handles DELETE /scalesets/{id}
func (s *Server) handleDeleteScaleSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.scales.Delete(id); err != nil {
		WriteCodedError(w, err)
		return
	}
	WriteJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}
