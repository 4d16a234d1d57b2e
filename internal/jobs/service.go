package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/llm"
	"screening-backend/internal/pipeline"
	"screening-backend/internal/scoring/ats"
	"screening-backend/internal/scoring/smart"
)

// Service contains business logic for screening jobs.
type Service struct {
	Repo        Repo
	Queue       *Queue
	Pipeline    pipeline.Repo
	Oracle      llm.Client
	ATSConfig   ats.Config
	SmartConfig smart.Config
	Concurrency int
}

// Create derives requirements from the hiring prompt and persists a new job.
func (s *Service) Create(ctx context.Context, prompt string) (Job, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Job{}, ErrEmptyPrompt
	}

	job := Job{
		ID:           uuid.NewString(),
		Prompt:       prompt,
		Requirements: DeriveRequirements(ctx, s.oracle(), prompt),
		Status:       StatusQueued,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	log.Printf("job created id=%s required_skills=%d", job.ID, len(job.Requirements.RequiredSkills))
	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	return s.Repo.GetByID(ctx, jobID)
}

// List returns jobs newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.Repo.List(ctx, limit, offset)
}

// EnqueueScreening submits a screening run for the job and returns its
// Future. The job must exist; a full queue surfaces ErrQueueFull.
func (s *Service) EnqueueScreening(ctx context.Context, jobID string) (*Future, error) {
	if _, err := s.Repo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.Queue.Submit(jobID)
}

// Consume drains the queue until the context is cancelled. Intended to run
// in its own goroutine for the life of the process.
func (s *Service) Consume(ctx context.Context) {
	s.Queue.Run(ctx, s.RunScreening)
}

// RunScreening executes one screening run and records the outcome on the
// job row.
func (s *Service) RunScreening(ctx context.Context, jobID string) (pipeline.Summary, error) {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return pipeline.Summary{}, err
	}
	if err := s.Repo.MarkProcessing(ctx, jobID); err != nil {
		return pipeline.Summary{}, err
	}

	orch := pipeline.New(
		s.Pipeline,
		ats.New(job.Requirements, s.ATSConfig),
		smart.New(s.oracle(), job.Requirements, s.SmartConfig),
		s.Concurrency,
	)
	summary, err := orch.Run(ctx, jobID)
	if err != nil {
		if markErr := s.Repo.MarkFailed(ctx, jobID, err.Error()); markErr != nil {
			log.Printf("mark job failed id=%s: %v", jobID, markErr)
		}
		return summary, fmt.Errorf("run screening: %w", err)
	}
	if err := s.Repo.MarkCompleted(ctx, jobID, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *Service) oracle() llm.Client {
	if s.Oracle == nil {
		return llm.PlaceholderClient{}
	}
	return s.Oracle
}
