// Package ingest turns uploaded resume documents into stored candidates.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"screening-backend/internal/candidate"
	"screening-backend/internal/llm"
)

// Parser turns extracted resume text into a structured candidate record.
type Parser interface {
	Parse(ctx context.Context, text string) (candidate.Record, error)
}

const parsePrompt = `Extract the candidate information from the resume text below.
Respond with a single JSON object and nothing else, with exactly these keys:
"personal_information" (object with "first_name", "last_name", "phone_number",
"email_address", "linkedin_url", "website_url", "github_url", "headline"),
"skill" (object with "category" and "skill_values" array),
"work_experience" (array of objects with "company_name", "job_title", "city",
"country", "from_date", "to_date", "description"),
"education" (array of objects with "institution_name", "field_of_study",
"degree", "grade", "city", "country", "from_date", "to_date", "description"),
"certifications" (array of objects with "certification_name", "issuer",
"certification_date", "certification_expiry_date", "certification_url", "description"),
"summary" (object with "profile"),
"achievements" (object with "achievements"),
"projects" (array of objects with "title", "project_role", "city", "country",
"from_date", "to_date", "description").
Dates use "Jan 2006" format. Use empty strings and empty arrays for anything missing.

Resume text:
`

// OracleParser extracts structured records via the evaluation oracle.
type OracleParser struct {
	LLM llm.Completer
}

// Parse sends the resume text to the oracle and decodes the response. Any
// prose around the JSON object is tolerated.
func (p OracleParser) Parse(ctx context.Context, text string) (candidate.Record, error) {
	if p.LLM == nil {
		return candidate.Record{}, llm.ErrNotConfigured
	}
	raw, err := p.LLM.Complete(ctx, parsePrompt+text)
	if err != nil {
		return candidate.Record{}, fmt.Errorf("parse resume: %w", err)
	}
	obj, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return candidate.Record{}, errors.New("parse resume: no JSON object in oracle response")
	}
	rec, err := candidate.Decode([]byte(obj))
	if err != nil {
		return candidate.Record{}, fmt.Errorf("parse resume: %w", err)
	}
	return rec, nil
}
