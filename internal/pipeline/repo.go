package pipeline

import "context"

// Repo defines persistence operations for the screening pipeline.
type Repo interface {
	// EnsureScoreColumns adds the score columns to the resumes table if a
	// prior deployment created it without them. Idempotent.
	EnsureScoreColumns(ctx context.Context) error
	ListByJob(ctx context.Context, jobID string) ([]Candidate, error)
	UpdateATSScore(ctx context.Context, id int64, score float64, passed bool) error
	UpdateSmartScore(ctx context.Context, id int64, score float64, passed bool) error
	// MaterializeCohorts replaces the job's rows in the cohort tables
	// with the given partition. Other jobs' cohorts are untouched.
	MaterializeCohorts(ctx context.Context, jobID string, cohorts Cohorts) error
}
