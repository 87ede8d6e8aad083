package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/waypointhq/waypoint/internal/models"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "Waypoint API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts an analysis request, creates the job, and runs the
// pipeline in the background. The caller polls /results or subscribes to
// /jobs/{job_id}/events for completion.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	job, err := s.svc.Start(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to start analysis", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start analysis")
		return
	}

	// The pipeline outlives the request; detach it from the request context.
	go func() {
		if err := s.svc.Run(context.Background(), job); err != nil {
			s.logger.Error("background analysis failed", "job_id", job.JobID, "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.JobID,
		"status":   job.Status,
		"progress": job.Progress,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	job, err := s.svc.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		s.logger.Error("failed to load job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
