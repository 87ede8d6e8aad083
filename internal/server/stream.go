package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/waypointhq/waypoint/internal/models"
)

var upgrader = websocket.Upgrader{
	// Origin policy is enforced by the CORS middleware configuration.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressEvent is one frame of the job progress stream.
type ProgressEvent struct {
	JobID    string           `json:"job_id"`
	Status   models.JobStatus `json:"status"`
	Progress int              `json:"progress"`
	Error    *string          `json:"error,omitempty"`
}

// handleJobEvents streams job progress over a websocket until the job
// reaches a terminal state or the client disconnects.
func (s *Server) handleJobEvents(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	// Reject unknown jobs before upgrading.
	if _, err := s.svc.GetJob(r.Context(), jobID); err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "job_id", jobID, "error", err)
		return
	}
	defer conn.Close()

	s.logger.Debug("progress stream opened", "job_id", jobID)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var lastProgress = -1
	for {
		job, err := s.svc.GetJob(r.Context(), jobID)
		if err != nil {
			s.logger.Error("progress stream load failed", "job_id", jobID, "error", err)
			return
		}

		if job.Progress != lastProgress || job.Terminal() {
			lastProgress = job.Progress
			event := ProgressEvent{
				JobID:    job.JobID,
				Status:   job.Status,
				Progress: job.Progress,
				Error:    job.Error,
			}
			if err := conn.WriteJSON(event); err != nil {
				// Client went away.
				return
			}
		}

		if job.Terminal() {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
