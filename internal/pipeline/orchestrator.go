package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"screening-backend/internal/candidate"
	"screening-backend/internal/scoring/ats"
	"screening-backend/internal/scoring/smart"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/telemetry"
)

// ATSScorer scores one candidate structurally. ats.Scorer satisfies this.
type ATSScorer interface {
	Score(rec candidate.Record) ats.Result
}

// SmartEvaluator scores one candidate against the oracle. smart.Evaluator
// satisfies this.
type SmartEvaluator interface {
	Evaluate(ctx context.Context, rec candidate.Record) (smart.Evaluation, error)
}

const defaultConcurrency = 4

// Orchestrator runs both scoring passes over a job's pool and materializes
// the cohort tables. Safe to re-run; each run overwrites prior verdicts.
type Orchestrator struct {
	repo        Repo
	ats         ATSScorer
	smart       SmartEvaluator
	concurrency int
}

// New constructs an Orchestrator. Concurrency below 1 falls back to the
// default.
func New(repo Repo, atsScorer ATSScorer, smartEval SmartEvaluator, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Orchestrator{repo: repo, ats: atsScorer, smart: smartEval, concurrency: concurrency}
}

// Run executes the full screening: make the schema current, score every
// candidate in both passes, then partition and materialize the cohorts.
// Per-candidate failures are logged and counted but do not stop the run;
// a candidate a pass never scored carries no verdict there and stays out
// of both cohorts. Cancellation stops scheduling new work and returns the
// context error.
func (o *Orchestrator) Run(ctx context.Context, jobID string) (Summary, error) {
	started := time.Now()
	metrics.IncScreeningStarted()

	summary, err := o.run(ctx, jobID)
	summary.JobID = jobID
	summary.Elapsed = time.Since(started)
	summary.ElapsedMs = summary.Elapsed.Milliseconds()
	metrics.ObserveScreeningDurationMs(float64(summary.ElapsedMs))
	if err != nil {
		metrics.IncScreeningFailed()
		return summary, err
	}
	metrics.IncScreeningCompleted()
	telemetry.Info("screening.complete", map[string]any{
		"job_id":      jobID,
		"total":       summary.Total,
		"passed":      summary.Passed,
		"failed":      summary.Failed,
		"skipped":     summary.Skipped,
		"duration_ms": summary.ElapsedMs,
	})
	return summary, nil
}

func (o *Orchestrator) run(ctx context.Context, jobID string) (Summary, error) {
	var summary Summary

	// Schema repair happens before any concurrent writes so the score
	// columns are guaranteed present when the first verdict lands.
	if err := o.repo.EnsureScoreColumns(ctx); err != nil {
		return summary, fmt.Errorf("ensure score columns: %w", err)
	}

	pool, err := o.repo.ListByJob(ctx, jobID)
	if err != nil {
		return summary, fmt.Errorf("list candidates: %w", err)
	}
	summary.Total = len(pool)
	if len(pool) == 0 {
		return summary, ErrEmptyPool
	}

	summary.ATSScored = o.forEach(ctx, pool, o.scoreATS)
	summary.SmartScored = o.forEach(ctx, pool, o.scoreSmart)
	summary.Skipped = 2*summary.Total - summary.ATSScored - summary.SmartScored
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// Reload so the partition sees exactly what was persisted.
	scored, err := o.repo.ListByJob(ctx, jobID)
	if err != nil {
		return summary, fmt.Errorf("reload candidates: %w", err)
	}
	cohorts := Partition(scored)
	summary.Passed = len(cohorts.Passed)
	summary.Failed = len(cohorts.Failed)

	if err := o.repo.MaterializeCohorts(ctx, jobID, cohorts); err != nil {
		return summary, fmt.Errorf("materialize cohorts: %w", err)
	}
	return summary, nil
}

// forEach fans candidates out to the given scoring step under the
// concurrency cap and reports how many completed without error.
func (o *Orchestrator) forEach(ctx context.Context, pool []Candidate, step func(context.Context, Candidate) error) int {
	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for _, c := range pool {
		select {
		case <-ctx.Done():
			wg.Wait()
			return completed
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(c Candidate) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := step(ctx, c); err != nil {
				metrics.IncScoreFailures()
				log.Printf("score candidate id=%d job=%s: %v", c.ID, c.JobID, err)
				return
			}
			metrics.IncCandidatesScored()
			mu.Lock()
			completed++
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	return completed
}

func (o *Orchestrator) scoreATS(ctx context.Context, c Candidate) error {
	rec, err := c.Record()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	res := o.ats.Score(rec)
	return o.repo.UpdateATSScore(ctx, c.ID, res.OverallScore, res.Passed)
}

func (o *Orchestrator) scoreSmart(ctx context.Context, c Candidate) error {
	rec, err := c.Record()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	eval, err := o.smart.Evaluate(ctx, rec)
	if err != nil {
		metrics.IncOracleFailures()
		return fmt.Errorf("evaluate: %w", err)
	}
	return o.repo.UpdateSmartScore(ctx, c.ID, eval.FinalScore, eval.IsAdequate)
}
