package pipeline

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores candidates in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]Candidate
	cohorts map[string]Cohorts
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, byID: make(map[int64]Candidate), cohorts: make(map[string]Cohorts)}
}

// Add stores a candidate and returns its assigned id.
func (r *MemoryRepo) Add(c Candidate) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c
	return c.ID
}

// EnsureScoreColumns is a no-op for the in-memory store.
func (r *MemoryRepo) EnsureScoreColumns(ctx context.Context) error {
	return ctx.Err()
}

// ListByJob returns all candidates for a job ordered by id.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Candidate
	for _, c := range r.byID {
		if c.JobID == jobID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateATSScore writes the structural pass verdict for one candidate.
func (r *MemoryRepo) UpdateATSScore(ctx context.Context, id int64, score float64, passed bool) error {
	return r.update(ctx, id, func(c *Candidate) {
		c.ATSScore = &score
		c.ATSPassed = &passed
	})
}

// UpdateSmartScore writes the criteria pass verdict for one candidate.
func (r *MemoryRepo) UpdateSmartScore(ctx context.Context, id int64, score float64, passed bool) error {
	return r.update(ctx, id, func(c *Candidate) {
		c.SmartScore = &score
		c.SmartPassed = &passed
	})
}

func (r *MemoryRepo) update(ctx context.Context, id int64, apply func(*Candidate)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	apply(&c)
	r.byID[id] = c
	return nil
}

// MaterializeCohorts replaces the stored cohorts for one job.
func (r *MemoryRepo) MaterializeCohorts(ctx context.Context, jobID string, cohorts Cohorts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cohorts[jobID] = Cohorts{
		Passed: append([]Ranked(nil), cohorts.Passed...),
		Failed: append([]Ranked(nil), cohorts.Failed...),
	}
	return nil
}

// Cohorts returns the job's last materialized partition.
func (r *MemoryRepo) Cohorts(jobID string) Cohorts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cohorts[jobID]
}
