package jobs

import (
	"context"

	"screening-backend/internal/pipeline"
)

// Repo defines persistence operations for jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	MarkProcessing(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string, summary pipeline.Summary) error
	MarkFailed(ctx context.Context, jobID, errMsg string) error
}
