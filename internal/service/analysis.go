// Package service orchestrates the analysis pipeline: evidence collection,
// summarization, two-stage synthesis, and job persistence.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/waypointhq/waypoint/internal/evidence"
	"github.com/waypointhq/waypoint/internal/models"
)

// Progress markers written at each stage boundary.
const (
	ProgressCreated     = 10
	ProgressCollecting  = 30
	ProgressSummarizing = 50
	ProgressBase        = 70
	ProgressDashboard   = 90
	ProgressComplete    = 100
)

// JobStore persists analysis jobs. *db.Client satisfies it.
type JobStore interface {
	CreateAnalysisJob(ctx context.Context, job *models.Job) error
	UpdateAnalysisProgress(ctx context.Context, jobID string, progress int) error
	CompleteAnalysisJob(ctx context.Context, job *models.Job) error
	FailAnalysisJob(ctx context.Context, jobID string, jobErr string) error
	GetAnalysisJob(ctx context.Context, jobID string) (*models.Job, error)
}

// EvidenceCollector assembles the market-evidence bundle for an idea.
type EvidenceCollector interface {
	Collect(ctx context.Context, productIdea string) *models.MarketData
}

// Synthesizer runs the two LLM synthesis stages. *llm.Engine satisfies it.
type Synthesizer interface {
	AnalyzeBase(ctx context.Context, idea string, tier models.Tier, evidence models.EvidenceSummary) (*models.BaseAnalysis, error)
	ExpandDashboard(ctx context.Context, data *models.MarketData, base *models.BaseAnalysis) (*models.DashboardAnalysis, error)
}

// Analyzer drives analysis jobs from request to terminal state.
type Analyzer struct {
	store     JobStore
	collector EvidenceCollector
	synth     Synthesizer
	observer  Observer
	logger    *slog.Logger
}

// NewAnalyzer creates the pipeline orchestrator. A nil observer disables
// stage notifications.
func NewAnalyzer(store JobStore, collector EvidenceCollector, synth Synthesizer, observer Observer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NewMultiObserver()
	}
	return &Analyzer{
		store:     store,
		collector: collector,
		synth:     synth,
		observer:  observer,
		logger:    logger,
	}
}

// Start validates the request and persists a new processing job. The
// returned job is ready to be passed to Run, typically on a goroutine.
func (a *Analyzer) Start(ctx context.Context, req models.AnalyzeRequest) (*models.Job, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job := &models.Job{
		JobID:       uuid.New().String(),
		Email:       req.Email,
		ProductIdea: req.ProductIdea,
		Tier:        req.Tier,
		Status:      models.StatusProcessing,
		Progress:    ProgressCreated,
		CreatedAt:   time.Now().UTC(),
	}

	if err := a.store.CreateAnalysisJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	a.logger.Info("analysis started", "job_id", job.JobID, "tier", string(job.Tier))
	a.observer.JobStage(job.JobID, StageCreated, job.Progress)
	return job, nil
}

// Run executes the pipeline for a started job. On any failure the job is
// marked failed with the error message; the error is also returned.
func (a *Analyzer) Run(ctx context.Context, job *models.Job) error {
	if err := a.run(ctx, job); err != nil {
		a.logger.Error("analysis failed", "job_id", job.JobID, "error", err)
		if failErr := a.store.FailAnalysisJob(ctx, job.JobID, err.Error()); failErr != nil {
			a.logger.Error("failed to record job failure", "job_id", job.JobID, "error", failErr)
		}
		a.observer.JobStage(job.JobID, StageFailed, job.Progress)
		return err
	}
	return nil
}

func (a *Analyzer) run(ctx context.Context, job *models.Job) error {
	if err := a.advance(ctx, job, StageCollecting, ProgressCollecting); err != nil {
		return err
	}
	data := a.collector.Collect(ctx, job.ProductIdea)
	job.RawMarketData = data

	if err := a.advance(ctx, job, StageSummarizing, ProgressSummarizing); err != nil {
		return err
	}
	summary := evidence.Summarize(data)

	if err := a.advance(ctx, job, StageBase, ProgressBase); err != nil {
		return err
	}
	base, err := a.synth.AnalyzeBase(ctx, job.ProductIdea, job.Tier, summary)
	if err != nil {
		return err
	}
	if base == nil {
		return fmt.Errorf("base synthesis returned no result")
	}
	job.BaseAnalysis = base

	if err := a.advance(ctx, job, StageDashboard, ProgressDashboard); err != nil {
		return err
	}
	dashboard, err := a.synth.ExpandDashboard(ctx, data, base)
	if err != nil {
		return err
	}
	if dashboard == nil {
		return fmt.Errorf("dashboard expansion returned no result")
	}
	job.Analysis = dashboard

	if err := a.store.CompleteAnalysisJob(ctx, job); err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	job.Status = models.StatusComplete
	job.Progress = ProgressComplete

	a.logger.Info("analysis completed", "job_id", job.JobID)
	a.observer.JobStage(job.JobID, StageCompleted, ProgressComplete)
	return nil
}

// advance persists a progress marker and notifies observers.
func (a *Analyzer) advance(ctx context.Context, job *models.Job, stage Stage, progress int) error {
	if err := a.store.UpdateAnalysisProgress(ctx, job.JobID, progress); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	job.Progress = progress
	a.observer.JobStage(job.JobID, stage, progress)
	return nil
}

// GetJob loads a job by id.
func (a *Analyzer) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return a.store.GetAnalysisJob(ctx, jobID)
}
