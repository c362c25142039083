package api

import (
	"net/http"
	"strconv"

	"micmac/internal/storage"
	"micmac/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Scale sets
	s.router.HandleFunc("POST /scalesets", s.handleCreateScaleSet)
	s.router.HandleFunc("GET /scalesets", s.handleListScaleSets)
	s.router.HandleFunc("GET /scalesets/{id}", s.handleGetScaleSet)
	s.router.HandleFunc("PUT /scalesets/{id}", s.handleUpdateScaleSet)
	s.router.HandleFunc("DELETE /scalesets/{id}", s.handleDeleteScaleSet)

	// Projects
	s.router.HandleFunc("POST /projects", s.handleCreateProject)
	s.router.HandleFunc("GET /projects", s.handleListProjects)
	s.router.HandleFunc("GET /projects/{id}", s.handleGetProject)
	s.router.HandleFunc("PUT /projects/{id}", s.handleUpdateProject)
	s.router.HandleFunc("DELETE /projects/{id}", s.handleDeleteProject)

	// Variables and matrix
	s.router.HandleFunc("POST /projects/{id}/variables", s.handleSetVariables)
	s.router.HandleFunc("POST /projects/{id}/matrix", s.handleSetMatrix)
	s.router.HandleFunc("GET /projects/{id}/matrix", s.handleGetMatrix)
	s.router.HandleFunc("GET /projects/{id}/status", s.handleProjectStatus)

	// Analysis views
	s.router.HandleFunc("POST /projects/{id}/compute", s.handleCompute)
	s.router.HandleFunc("GET /projects/{id}/heatmap", s.handleHeatmap)
	s.router.HandleFunc("GET /projects/{id}/graph", s.handleGraph)

	// Import / export
	s.router.HandleFunc("POST /projects/{id}/import", s.handleImport)
	s.router.HandleFunc("GET /projects/{id}/export", s.handleExportJSON)
	s.router.HandleFunc("GET /projects/{id}/export/variables.csv", s.handleExportVariablesCSV)
	s.router.HandleFunc("GET /projects/{id}/export/matrix.csv", s.handleExportMatrixCSV)
	s.router.HandleFunc("GET /projects/{id}/export/workbook.xlsx", s.handleExportWorkbook)
}

// handleHealth responds to health checks
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	}, http.StatusOK)
}

// pathID parses the {id} path segment. Writes a 400 and returns ok=false on
// a malformed ID.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		BadRequest(w, "invalid id in path")
		return 0, false
	}
	return id, true
}

// requireProject loads a project or writes a 404.
func (s *Server) requireProject(w http.ResponseWriter, id int64) (*storage.Project, bool) {
	project, err := s.projects.Get(id)
	if err != nil {
		InternalError(w, "failed to load project", err)
		return nil, false
	}
	if project == nil {
		NotFound(w, "project does not exist")
		return nil, false
	}
	return project, true
}
