package ingest

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"screening-backend/internal/pipeline"
)

// Store persists ingested candidates. InsertIfAbsent reports false when the
// candidate identity (job, name, email) is already present.
type Store interface {
	InsertIfAbsent(ctx context.Context, c pipeline.Candidate) (bool, error)
}

// PGStore implements Store using Postgres. Dedup is enforced by the unique
// identity index on resumes.
type PGStore struct {
	DB *sql.DB
}

// InsertIfAbsent inserts the candidate unless one with the same identity
// exists.
func (s *PGStore) InsertIfAbsent(ctx context.Context, c pipeline.Candidate) (bool, error) {
	const query = `
INSERT INTO resumes (name, email, phone, job_id, raw, file_path)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (job_id, lower(name), lower(email)) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query, c.Name, c.Email, nullable(c.Phone), c.JobID, []byte(c.Raw), nullable(c.FilePath))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// MemoryStore implements Store on top of the in-memory candidate repo.
type MemoryStore struct {
	Repo *pipeline.MemoryRepo

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryStore constructs a MemoryStore backed by the given repo.
func NewMemoryStore(repo *pipeline.MemoryRepo) *MemoryStore {
	return &MemoryStore{Repo: repo, seen: make(map[string]struct{})}
}

// InsertIfAbsent inserts the candidate unless one with the same identity
// exists.
func (s *MemoryStore) InsertIfAbsent(ctx context.Context, c pipeline.Candidate) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key := c.JobID + "|" + strings.ToLower(c.Name) + "|" + strings.ToLower(c.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[key]; dup {
		return false, nil
	}
	s.seen[key] = struct{}{}
	s.Repo.Add(c)
	return true, nil
}
