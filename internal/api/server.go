// Package api exposes the sector-analysis service over HTTP: scale set and
// project management, variable/matrix editing, the authoritative compute,
// heatmap and graph views, and dataset import/export.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"micmac/internal/logging"
	"micmac/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	logger   *logging.Logger
	scales   *storage.ScaleSetRepository
	projects *storage.ProjectRepository
	datasets *storage.DatasetRepository
}

// NewServer creates a new HTTP server instance over an open database.
func NewServer(addr string, db *storage.DB, corsOrigins []string, logger *logging.Logger) *Server {
	s := &Server{
		addr:     addr,
		logger:   logger,
		router:   http.NewServeMux(),
		scales:   storage.NewScaleSetRepository(db),
		projects: storage.NewProjectRepository(db),
		datasets: storage.NewDatasetRepository(db),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router, corsOrigins)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{"addr": s.addr})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler, corsOrigins []string) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware(corsOrigins)(handler)
	return handler
}
