package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ProjectRequest is the create/update payload for a project.
type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ScaleSetID  int64  `json:"scaleSetId"`
}

// handleCreateProject handles POST /projects
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		BadRequest(w, "project name is required")
		return
	}
	ss, err := s.scales.Get(req.ScaleSetID)
	if err != nil {
		InternalError(w, "failed to load scale set", err)
		return
	}
	if ss == nil {
		NotFound(w, "scale set does not exist")
		return
	}

	project, err := s.projects.Create(req.Name, req.Description, req.ScaleSetID)
	if err != nil {
		InternalError(w, "failed to create project", err)
		return
	}
	WriteJSON(w, project, http.StatusCreated)
}

// handleListProjects handles GET /projects
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.projects.List()
	if err != nil {
		InternalError(w, "failed to list projects", err)
		return
	}
	WriteJSON(w, list, http.StatusOK)
}

// handleGetProject handles GET /projects/{id}
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	project, ok := s.requireProject(w, id)
	if !ok {
		return
	}
	WriteJSON(w, project, http.StatusOK)
}

// handleUpdateProject handles PUT /projects/{id}
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	current, ok := s.requireProject(w, id)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Description == "" {
		req.Description = current.Description
	}
	if req.ScaleSetID == 0 {
		req.ScaleSetID = current.ScaleSetID
	} else if req.ScaleSetID != current.ScaleSetID {
		ss, err := s.scales.Get(req.ScaleSetID)
		if err != nil {
			InternalError(w, "failed to load scale set", err)
			return
		}
		if ss == nil {
			BadRequest(w, "scale set does not exist")
			return
		}
	}

	project, err := s.projects.Update(id, req.Name, req.Description, req.ScaleSetID)
	if err != nil {
		InternalError(w, "failed to update project", err)
		return
	}
	WriteJSON(w, project, http.StatusOK)
}

// handleDeleteProject handles DELETE /projects/{id}
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := s.projects.Delete(id)
	if err != nil {
		InternalError(w, "failed to delete project", err)
		return
	}
	if !deleted {
		NotFound(w, "project does not exist")
		return
	}
	WriteJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// handleSetVariables handles POST /projects/{id}/variables. The variable
// list is replaced wholesale; existing matrix cells are cleared since they
// would no longer be consistent with the new dimensions.
func (s *Server) handleSetVariables(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}

	var req struct {
		Variables []string `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	names := make([]string, 0, len(req.Variables))
	for _, v := range req.Variables {
		if name := strings.TrimSpace(v); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		BadRequest(w, "variables list is empty")
		return
	}

	if err := s.datasets.ReplaceVariables(id, names); err != nil {
		InternalError(w, "failed to replace variables", err)
		return
	}
	WriteJSON(w, map[string]interface{}{"ok": true, "count": len(names)}, http.StatusOK)
}

// handleProjectStatus handles GET /projects/{id}/status
func (s *Server) handleProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := s.requireProject(w, id); !ok {
		return
	}

	status, err := s.datasets.Status(id)
	if err != nil {
		InternalError(w, "failed to load project status", err)
		return
	}
	WriteJSON(w, status, http.StatusOK)
}
