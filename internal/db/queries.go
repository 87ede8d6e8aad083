package db

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

// CreateAnalysisJob inserts a new job record in the processing state.
func (c *Client) CreateAnalysisJob(ctx context.Context, job *models.Job) error {
	start := time.Now()

	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE analysis CONTENT {
			job_id: $job_id,
			email: $email,
			product_idea: $product_idea,
			tier: $tier,
			status: $status,
			progress: $progress,
			created_at: $created_at
		}
	`, map[string]any{
		"job_id":       job.JobID,
		"email":        job.Email,
		"product_idea": job.ProductIdea,
		"tier":         string(job.Tier),
		"status":       string(job.Status),
		"progress":     job.Progress,
		"created_at":   job.CreatedAt,
	})
	if err != nil {
		c.metrics.RecordFailure(metrics.OpJobStore)
		return fmt.Errorf("create analysis job: %w", wrapQueryError(err))
	}

	c.metrics.RecordTiming(metrics.OpJobStore, time.Since(start))
	return nil
}

// UpdateAnalysisProgress advances the progress marker of a running job.
func (c *Client) UpdateAnalysisProgress(ctx context.Context, jobID string, progress int) error {
	start := time.Now()

	_, err := surrealdb.Query[any](ctx, c.db, `
		UPDATE analysis SET progress = $progress WHERE job_id = $job_id
	`, map[string]any{
		"job_id":   jobID,
		"progress": progress,
	})
	if err != nil {
		c.metrics.RecordFailure(metrics.OpJobStore)
		return fmt.Errorf("update progress: %w", wrapQueryError(err))
	}

	c.metrics.RecordTiming(metrics.OpJobStore, time.Since(start))
	return nil
}

// CompleteAnalysisJob persists the full result set and marks the job
// complete in a single write.
func (c *Client) CompleteAnalysisJob(ctx context.Context, job *models.Job) error {
	start := time.Now()

	_, err := surrealdb.Query[any](ctx, c.db, `
		UPDATE analysis SET
			status = $status,
			progress = 100,
			raw_market_data = $raw_market_data,
			base_analysis = $base_analysis,
			analysis = $analysis,
			completed_at = time::now()
		WHERE job_id = $job_id
	`, map[string]any{
		"job_id":          job.JobID,
		"status":          string(models.StatusComplete),
		"raw_market_data": job.RawMarketData,
		"base_analysis":   job.BaseAnalysis,
		"analysis":        job.Analysis,
	})
	if err != nil {
		c.metrics.RecordFailure(metrics.OpJobStore)
		return fmt.Errorf("complete analysis job: %w", wrapQueryError(err))
	}

	c.metrics.RecordTiming(metrics.OpJobStore, time.Since(start))
	return nil
}

// FailAnalysisJob marks a job failed with its error message. Progress is
// left wherever the pipeline stopped.
func (c *Client) FailAnalysisJob(ctx context.Context, jobID string, jobErr string) error {
	start := time.Now()

	_, err := surrealdb.Query[any](ctx, c.db, `
		UPDATE analysis SET
			status = $status,
			error = $error,
			completed_at = time::now()
		WHERE job_id = $job_id
	`, map[string]any{
		"job_id": jobID,
		"status": string(models.StatusFailed),
		"error":  jobErr,
	})
	if err != nil {
		c.metrics.RecordFailure(metrics.OpJobStore)
		return fmt.Errorf("fail analysis job: %w", wrapQueryError(err))
	}

	c.metrics.RecordTiming(metrics.OpJobStore, time.Since(start))
	return nil
}

// GetAnalysisJob retrieves a job by its job_id. Returns
// models.ErrJobNotFound if no record exists.
func (c *Client) GetAnalysisJob(ctx context.Context, jobID string) (*models.Job, error) {
	start := time.Now()

	results, err := surrealdb.Query[[]models.Job](ctx, c.db, `
		SELECT * OMIT id FROM analysis WHERE job_id = $job_id
	`, map[string]any{"job_id": jobID})
	if err != nil {
		c.metrics.RecordFailure(metrics.OpJobStore)
		return nil, fmt.Errorf("get analysis job: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, models.ErrJobNotFound
	}

	c.metrics.RecordTiming(metrics.OpJobStore, time.Since(start))
	return &(*results)[0].Result[0], nil
}
