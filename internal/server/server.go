// Package server exposes the analysis pipeline over HTTP: job submission,
// result retrieval, a websocket progress stream, and runtime stats.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

// AnalysisService is the pipeline surface the server depends on.
// *service.Analyzer satisfies it.
type AnalysisService interface {
	Start(ctx context.Context, req models.AnalyzeRequest) (*models.Job, error)
	Run(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
}

// Server handles the Waypoint HTTP API.
type Server struct {
	svc          AnalysisService
	metrics      *metrics.Collector
	logger       *slog.Logger
	corsOrigins  []string
	pollInterval time.Duration
	mux          *http.ServeMux
}

// New creates the HTTP server. corsOrigins of ["*"] allows any origin.
func New(svc AnalysisService, mc *metrics.Collector, logger *slog.Logger, corsOrigins []string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		svc:          svc,
		metrics:      mc,
		logger:       logger,
		corsOrigins:  corsOrigins,
		pollInterval: time.Second,
		mux:          http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /results/{job_id}", s.handleResults)
	s.mux.HandleFunc("GET /jobs/{job_id}/events", s.handleJobEvents)
	s.mux.HandleFunc("GET /stats", s.handleStats)

	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.withCORS(s.mux))
}
