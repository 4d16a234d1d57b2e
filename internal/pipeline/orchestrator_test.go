package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"screening-backend/internal/candidate"
	"screening-backend/internal/scoring/ats"
	"screening-backend/internal/scoring/smart"
)

// stubATS passes everything at or above 60.
type stubATS struct {
	scoreFor func(rec candidate.Record) float64
	calls    atomic.Int64
}

func (s *stubATS) Score(rec candidate.Record) ats.Result {
	s.calls.Add(1)
	score := s.scoreFor(rec)
	return ats.Result{OverallScore: score, Passed: score >= 60}
}

type stubSmart struct {
	scoreFor func(rec candidate.Record) float64
	failFor  func(rec candidate.Record) error
	calls    atomic.Int64
}

func (s *stubSmart) Evaluate(ctx context.Context, rec candidate.Record) (smart.Evaluation, error) {
	s.calls.Add(1)
	if s.failFor != nil {
		if err := s.failFor(rec); err != nil {
			return smart.Evaluation{}, err
		}
	}
	score := s.scoreFor(rec)
	return smart.Evaluation{FinalScore: score, IsAdequate: score >= 65}, nil
}

func rawRecord(t *testing.T, firstName string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(candidate.Record{
		PersonalInformation: candidate.PersonalInformation{FirstName: firstName},
	})
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	return raw
}

func seedPool(t *testing.T, repo *MemoryRepo, jobID string, names ...string) {
	t.Helper()
	for _, name := range names {
		repo.Add(Candidate{
			Name:  name,
			Email: name + "@example.com",
			JobID: jobID,
			Raw:   rawRecord(t, name),
		})
	}
}

func scoreByName(scores map[string]float64) func(rec candidate.Record) float64 {
	return func(rec candidate.Record) float64 {
		return scores[rec.PersonalInformation.FirstName]
	}
}

func TestRunScoresPartitionsAndMaterializes(t *testing.T) {
	repo := NewMemoryRepo()
	seedPool(t, repo, "job-1", "alice", "bob", "carol")

	atsScores := map[string]float64{"alice": 80, "bob": 70, "carol": 40}
	smartScores := map[string]float64{"alice": 90, "bob": 50, "carol": 95}
	orch := New(repo, &stubATS{scoreFor: scoreByName(atsScores)}, &stubSmart{scoreFor: scoreByName(smartScores)}, 2)

	summary, err := orch.Run(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 3 || summary.ATSScored != 3 || summary.SmartScored != 3 {
		t.Fatalf("summary = %+v", summary)
	}
	// Only alice clears both thresholds.
	if summary.Passed != 1 || summary.Failed != 2 {
		t.Fatalf("passed=%d failed=%d, want 1/2", summary.Passed, summary.Failed)
	}

	cohorts := repo.Cohorts("job-1")
	if len(cohorts.Passed) != 1 || cohorts.Passed[0].Name != "alice" {
		t.Fatalf("materialized passed = %+v", cohorts.Passed)
	}
	if cohorts.Passed[0].TotalScore != 170 {
		t.Fatalf("alice total = %v, want 170", cohorts.Passed[0].TotalScore)
	}
}

func TestRunSkipsFailingCandidates(t *testing.T) {
	repo := NewMemoryRepo()
	seedPool(t, repo, "job-1", "alice", "bob")

	smartStub := &stubSmart{
		scoreFor: scoreByName(map[string]float64{"alice": 90, "bob": 90}),
		failFor: func(rec candidate.Record) error {
			if rec.PersonalInformation.FirstName == "bob" {
				return errors.New("oracle unavailable")
			}
			return nil
		},
	}
	orch := New(repo, &stubATS{scoreFor: func(candidate.Record) float64 { return 80 }}, smartStub, 2)

	summary, err := orch.Run(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.SmartScored != 1 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v, want one smart-scored and one skipped", summary)
	}

	cohorts := repo.Cohorts("job-1")
	if len(cohorts.Passed) != 1 || cohorts.Passed[0].Name != "alice" {
		t.Fatalf("passed = %+v, want only alice", cohorts.Passed)
	}
	// Bob never got a criteria verdict, so he belongs to neither cohort.
	if len(cohorts.Failed) != 0 {
		t.Fatalf("failed = %+v, want empty", cohorts.Failed)
	}
}

func TestRunEmptyPool(t *testing.T) {
	orch := New(NewMemoryRepo(), &stubATS{scoreFor: func(candidate.Record) float64 { return 0 }}, &stubSmart{scoreFor: func(candidate.Record) float64 { return 0 }}, 1)
	if _, err := orch.Run(context.Background(), "job-missing"); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("err = %v, want ErrEmptyPool", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	seedPool(t, repo, "job-1", "alice", "bob")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	atsStub := &stubATS{scoreFor: func(candidate.Record) float64 { return 80 }}
	orch := New(repo, atsStub, &stubSmart{scoreFor: func(candidate.Record) float64 { return 80 }}, 1)
	if _, err := orch.Run(ctx, "job-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunOverwritesPriorVerdicts(t *testing.T) {
	repo := NewMemoryRepo()
	seedPool(t, repo, "job-1", "alice")

	run := func(atsScore, smartScore float64) Summary {
		orch := New(repo,
			&stubATS{scoreFor: func(candidate.Record) float64 { return atsScore }},
			&stubSmart{scoreFor: func(candidate.Record) float64 { return smartScore }}, 1)
		summary, err := orch.Run(context.Background(), "job-1")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return summary
	}

	if s := run(80, 90); s.Passed != 1 {
		t.Fatalf("first run passed=%d, want 1", s.Passed)
	}
	if s := run(30, 90); s.Passed != 0 {
		t.Fatalf("second run passed=%d, want 0 after score drop", s.Passed)
	}
	cohorts := repo.Cohorts("job-1")
	if len(cohorts.Failed) != 1 || *cohorts.Failed[0].ATSScore != 30 {
		t.Fatalf("failed cohort = %+v, want alice with overwritten score 30", cohorts.Failed)
	}
}
