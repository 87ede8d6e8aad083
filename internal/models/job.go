// Package models defines the typed records exchanged between the Waypoint
// evidence pipeline, the job store, and the API surface.
package models

import (
	"errors"
	"time"
)

// ErrJobNotFound is returned by job stores when no record exists for a job id.
var ErrJobNotFound = errors.New("analysis job not found")

// JobStatus is the lifecycle state of an analysis job.
type JobStatus string

const (
	StatusProcessing JobStatus = "processing"
	StatusComplete   JobStatus = "complete"
	StatusFailed     JobStatus = "failed"
)

// Job is a persisted analysis job. It is created when an analysis request is
// accepted, mutated in place by the orchestrator at stage boundaries, and
// becomes terminal (complete or failed) exactly once.
type Job struct {
	JobID         string              `json:"job_id"`
	Email         string              `json:"email"`
	ProductIdea   string              `json:"product_idea"`
	Tier          Tier                `json:"tier"`
	Status        JobStatus           `json:"status"`
	Progress      int                 `json:"progress"`
	CreatedAt     time.Time           `json:"created_at"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	RawMarketData *MarketData         `json:"raw_market_data,omitempty"`
	BaseAnalysis  *BaseAnalysis       `json:"base_analysis,omitempty"`
	Analysis      *DashboardAnalysis  `json:"analysis,omitempty"`
	Error         *string             `json:"error,omitempty"`
}

// Terminal reports whether the job has reached a final state.
func (j *Job) Terminal() bool {
	return j.Status == StatusComplete || j.Status == StatusFailed
}
