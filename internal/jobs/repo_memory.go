package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	"screening-backend/internal/pipeline"
)

// MemoryRepo stores jobs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Job)}
}

// Create stores the job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[job.ID] = job
	return nil
}

// GetByID returns a job by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// List returns jobs newest first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Job, 0, len(r.byID))
	for _, job := range r.byID {
		all = append(all, job)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// MarkProcessing transitions a job into the processing state.
func (r *MemoryRepo) MarkProcessing(ctx context.Context, jobID string) error {
	return r.update(ctx, jobID, func(job *Job) {
		now := time.Now().UTC()
		job.Status = StatusProcessing
		job.Error = ""
		job.Summary = nil
		job.StartedAt = &now
		job.CompletedAt = nil
	})
}

// MarkCompleted records a successful run with its summary.
func (r *MemoryRepo) MarkCompleted(ctx context.Context, jobID string, summary pipeline.Summary) error {
	return r.update(ctx, jobID, func(job *Job) {
		now := time.Now().UTC()
		job.Status = StatusCompleted
		job.Summary = &summary
		job.CompletedAt = &now
	})
}

// MarkFailed records a failed run with its error message.
func (r *MemoryRepo) MarkFailed(ctx context.Context, jobID, errMsg string) error {
	return r.update(ctx, jobID, func(job *Job) {
		now := time.Now().UTC()
		job.Status = StatusFailed
		job.Error = errMsg
		job.CompletedAt = &now
	})
}

func (r *MemoryRepo) update(ctx context.Context, jobID string, apply func(*Job)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.byID[jobID]
	if !ok {
		return ErrNotFound
	}
	apply(&job)
	r.byID[jobID] = job
	return nil
}
