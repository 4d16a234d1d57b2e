// Package jobs manages screening jobs: their lifecycle, the requirements
// derived from the hiring prompt, and the queue that serializes runs.
package jobs

import (
	"time"

	"screening-backend/internal/candidate"
	"screening-backend/internal/pipeline"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is one screening job: a hiring prompt, the requirements derived from
// it, and the state of its latest run.
type Job struct {
	ID           string                    `json:"id"`
	Prompt       string                    `json:"prompt"`
	Requirements candidate.JobRequirements `json:"requirements"`
	Status       string                    `json:"status"`
	Error        string                    `json:"error,omitempty"`
	Summary      *pipeline.Summary         `json:"summary,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
	StartedAt    *time.Time                `json:"started_at,omitempty"`
	CompletedAt  *time.Time                `json:"completed_at,omitempty"`
}
