// Package pipeline runs the two-pass screening over a job's candidate pool
// and materializes the ranked cohort tables.
package pipeline

import (
	"encoding/json"
	"time"

	"screening-backend/internal/candidate"
)

// Candidate is one stored resume row, plus whatever scores have been
// written back so far. Score pointers are nil until the relevant pass runs.
type Candidate struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	JobID       string          `json:"job_id"`
	Raw         json.RawMessage `json:"raw"`
	FilePath    string          `json:"file_path"`
	ATSScore    *float64        `json:"ats_score,omitempty"`
	ATSPassed   *bool           `json:"ats_passed,omitempty"`
	SmartScore  *float64        `json:"smart_score,omitempty"`
	SmartPassed *bool           `json:"smart_passed,omitempty"`
}

// Record decodes the stored extraction payload.
func (c Candidate) Record() (candidate.Record, error) {
	return candidate.Decode(c.Raw)
}

// Scored reports whether both passes have written a verdict.
func (c Candidate) Scored() bool {
	return c.ATSPassed != nil && c.SmartPassed != nil
}

// Ranked is a candidate placed in a cohort with its combined score.
type Ranked struct {
	Candidate
	TotalScore float64 `json:"total_score"`
}

// Cohorts is the partition of a fully scored pool.
type Cohorts struct {
	Passed []Ranked
	Failed []Ranked
}

// Summary reports the outcome of one screening run.
type Summary struct {
	JobID       string        `json:"job_id"`
	Total       int           `json:"total"`
	ATSScored   int           `json:"ats_scored"`
	SmartScored int           `json:"smart_scored"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Elapsed     time.Duration `json:"-"`
	ElapsedMs   int64         `json:"elapsed_ms"`
}
