package service

import "log/slog"

// Stage identifies a point in the analysis pipeline.
type Stage string

const (
	StageCreated     Stage = "created"
	StageCollecting  Stage = "collecting"
	StageSummarizing Stage = "summarizing"
	StageBase        Stage = "base_analysis"
	StageDashboard   Stage = "dashboard"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// Observer receives pipeline stage notifications. Implementations must be
// fast; the orchestrator calls them inline.
type Observer interface {
	JobStage(jobID string, stage Stage, progress int)
}

// logObserver logs stage transitions through slog.
type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an observer that logs every stage transition.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) JobStage(jobID string, stage Stage, progress int) {
	o.logger.Info("analysis stage", "job_id", jobID, "stage", string(stage), "progress", progress)
}

// multiObserver fans stage notifications out to several observers.
type multiObserver []Observer

// NewMultiObserver combines observers into one. Nil entries are skipped.
func NewMultiObserver(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multiObserver) JobStage(jobID string, stage Stage, progress int) {
	for _, o := range m {
		o.JobStage(jobID, stage, progress)
	}
}
