package pipeline

import (
	"reflect"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func scoredCandidate(id int64, atsScore float64, atsPassed bool, smartScore float64, smartPassed bool) Candidate {
	return Candidate{
		ID:          id,
		Name:        "c",
		Email:       "c@example.com",
		JobID:       "job-1",
		ATSScore:    fptr(atsScore),
		ATSPassed:   bptr(atsPassed),
		SmartScore:  fptr(smartScore),
		SmartPassed: bptr(smartPassed),
	}
}

func TestPartitionRequiresBothVerdicts(t *testing.T) {
	pool := []Candidate{
		scoredCandidate(1, 80, true, 90, true),
		scoredCandidate(2, 80, true, 90, false),
		scoredCandidate(3, 80, false, 90, true),
		scoredCandidate(4, 80, false, 90, false),
	}
	got := Partition(pool)
	if len(got.Passed) != 1 || got.Passed[0].ID != 1 {
		t.Fatalf("Passed = %+v, want only id 1", got.Passed)
	}
	if len(got.Failed) != 3 {
		t.Fatalf("Failed = %d entries, want 3", len(got.Failed))
	}
}

func TestPartitionExcludesUnverdictedCandidates(t *testing.T) {
	halfPassing := Candidate{ID: 3, JobID: "job-1", ATSScore: fptr(80), ATSPassed: bptr(true)}
	halfFailing := Candidate{ID: 4, JobID: "job-1", SmartScore: fptr(20), SmartPassed: bptr(false)}
	pool := []Candidate{
		scoredCandidate(1, 80, true, 90, true),
		{ID: 2, JobID: "job-1"}, // never scored
		halfPassing,             // second pass never reached
		halfFailing,
		scoredCandidate(5, 10, false, 20, false),
	}
	got := Partition(pool)

	var passedIDs, failedIDs []int64
	for _, r := range got.Passed {
		passedIDs = append(passedIDs, r.ID)
	}
	for _, r := range got.Failed {
		failedIDs = append(failedIDs, r.ID)
	}
	if !reflect.DeepEqual(passedIDs, []int64{1}) {
		t.Fatalf("passed = %v, want [1]", passedIDs)
	}
	// An explicit negative fails; a missing verdict keeps the candidate
	// out of both cohorts.
	if !reflect.DeepEqual(failedIDs, []int64{4, 5}) {
		t.Fatalf("failed = %v, want [4 5]", failedIDs)
	}
}

func TestPartitionRankingAndTieBreak(t *testing.T) {
	pool := []Candidate{
		scoredCandidate(5, 70, true, 80, true), // total 150
		scoredCandidate(2, 90, true, 80, true), // total 170
		scoredCandidate(3, 80, true, 90, true), // total 170, higher id
		scoredCandidate(9, 60, true, 60, true), // total 120
	}
	got := Partition(pool)
	var ids []int64
	for _, r := range got.Passed {
		ids = append(ids, r.ID)
	}
	want := []int64{2, 3, 5, 9}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("passed order = %v, want %v", ids, want)
	}
	if got.Passed[0].TotalScore != 170 {
		t.Fatalf("top total = %v, want 170", got.Passed[0].TotalScore)
	}
}

func TestPartitionIsDeterministic(t *testing.T) {
	pool := []Candidate{
		scoredCandidate(1, 50, true, 50, true),
		scoredCandidate(2, 40, false, 60, true),
		scoredCandidate(3, 70, true, 30, true),
	}
	first := Partition(pool)
	for i := 0; i < 5; i++ {
		if got := Partition(pool); !reflect.DeepEqual(got, first) {
			t.Fatalf("partition not deterministic: %+v vs %+v", got, first)
		}
	}
}
