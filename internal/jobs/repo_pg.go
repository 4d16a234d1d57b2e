package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"screening-backend/internal/candidate"
	"screening-backend/internal/pipeline"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, prompt, requirements, status, created_at)
VALUES ($1, $2, $3, $4, $5)`
	reqJSON, err := json.Marshal(job.Requirements)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, job.ID, job.Prompt, reqJSON, job.Status, job.CreatedAt)
	return err
}

// GetByID returns a job by its ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, prompt, requirements, status, error, summary, created_at, started_at, completed_at
FROM jobs
WHERE id = $1`
	return scanJob(r.DB.QueryRowContext(ctx, query, jobID))
}

// List returns jobs newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
	const query = `
SELECT id, prompt, requirements, status, error, summary, created_at, started_at, completed_at
FROM jobs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// MarkProcessing transitions a job into the processing state.
func (r *PGRepo) MarkProcessing(ctx context.Context, jobID string) error {
	const query = `
UPDATE jobs SET status = $1, error = NULL, summary = NULL, started_at = $2, completed_at = NULL
WHERE id = $3`
	return r.exec(ctx, query, StatusProcessing, time.Now().UTC(), jobID)
}

// MarkCompleted records a successful run with its summary.
func (r *PGRepo) MarkCompleted(ctx context.Context, jobID string, summary pipeline.Summary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	const query = `
UPDATE jobs SET status = $1, summary = $2, completed_at = $3
WHERE id = $4`
	return r.exec(ctx, query, StatusCompleted, summaryJSON, time.Now().UTC(), jobID)
}

// MarkFailed records a failed run with its error message.
func (r *PGRepo) MarkFailed(ctx context.Context, jobID, errMsg string) error {
	const query = `
UPDATE jobs SET status = $1, error = $2, completed_at = $3
WHERE id = $4`
	return r.exec(ctx, query, StatusFailed, errMsg, time.Now().UTC(), jobID)
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var reqJSON, summaryJSON []byte
	var errMsg sql.NullString
	var startedAt, completedAt sql.NullTime
	err := row.Scan(&job.ID, &job.Prompt, &reqJSON, &job.Status, &errMsg, &summaryJSON,
		&job.CreatedAt, &startedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, err
	}
	if len(reqJSON) > 0 {
		var req candidate.JobRequirements
		if err := json.Unmarshal(reqJSON, &req); err != nil {
			return Job{}, err
		}
		job.Requirements = req
	}
	if len(summaryJSON) > 0 {
		var summary pipeline.Summary
		if err := json.Unmarshal(summaryJSON, &summary); err != nil {
			return Job{}, err
		}
		job.Summary = &summary
	}
	if errMsg.Valid {
		job.Error = errMsg.String
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return job, nil
}
