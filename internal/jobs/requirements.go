package jobs

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"screening-backend/internal/candidate"
	"screening-backend/internal/llm"
)

const requirementsPrompt = `Extract the hiring requirements from the job description below.
Respond with a single JSON object and nothing else, with exactly these keys:
"required_skills" (array of strings), "preferred_skills" (array of strings),
"min_experience_years" (number), "required_education" (string),
"industry_keywords" (array of strings), "job_title_keywords" (array of strings),
"extra_information" (string), "location_preference" (string).
Use empty arrays, empty strings or 0 for anything the description does not state.

Job description:
`

// DeriveRequirements turns a free-form hiring prompt into structured
// requirements. The oracle does the extraction; if it is unavailable or
// returns something unusable, the deterministic line parser takes over so
// job creation never fails on an oracle outage.
func DeriveRequirements(ctx context.Context, completer llm.Completer, prompt string) candidate.JobRequirements {
	if completer != nil {
		raw, err := completer.Complete(ctx, requirementsPrompt+prompt)
		if err == nil {
			if obj, ok := llm.ExtractJSONObject(raw); ok {
				var req candidate.JobRequirements
				if jsonErr := json.Unmarshal([]byte(obj), &req); jsonErr == nil && !emptyRequirements(req) {
					return req
				}
			}
		} else {
			log.Printf("derive requirements: %v", err)
		}
	}
	return ParseRequirements(prompt)
}

func emptyRequirements(req candidate.JobRequirements) bool {
	return len(req.RequiredSkills) == 0 && len(req.PreferredSkills) == 0 &&
		req.MinExperienceYears == 0 && req.RequiredEducation == "" &&
		len(req.IndustryKeywords) == 0 && len(req.JobTitleKeywords) == 0
}

// ParseRequirements extracts requirements from labeled lines of the prompt.
// Unlabeled prose contributes nothing; the scorers treat missing lists as
// unconstrained.
func ParseRequirements(prompt string) candidate.JobRequirements {
	var req candidate.JobRequirements
	for _, line := range strings.Split(prompt, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch normalizeLabel(label) {
		case "required skills", "skills", "must have":
			req.RequiredSkills = append(req.RequiredSkills, splitList(value)...)
		case "preferred skills", "nice to have":
			req.PreferredSkills = append(req.PreferredSkills, splitList(value)...)
		case "education", "required education", "degree":
			req.RequiredEducation = value
		case "industry", "industry keywords", "domain":
			req.IndustryKeywords = append(req.IndustryKeywords, splitList(value)...)
		case "title", "role", "job title", "position":
			req.JobTitleKeywords = append(req.JobTitleKeywords, splitList(value)...)
		case "experience", "minimum experience", "min experience", "years of experience":
			req.MinExperienceYears = parseYears(value)
		case "location", "location preference":
			req.LocationPreference = value
		case "notes", "extra", "other":
			req.ExtraInformation = append(req.ExtraInformation, value)
		}
	}
	return req
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.Trim(label, "-* \t")
}

func splitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseYears pulls the first integer out of values like "5+ years" or "3-5".
func parseYears(value string) int {
	start := -1
	for i, r := range value {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if years, err := strconv.Atoi(value[start:i]); err == nil {
				return years
			}
			start = -1
		}
	}
	if start >= 0 {
		if years, err := strconv.Atoi(value[start:]); err == nil {
			return years
		}
	}
	return 0
}
