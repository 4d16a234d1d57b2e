package jobs

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"screening-backend/internal/candidate"
)

type stubCompleter struct {
	response string
	err      error
}

func (s stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func TestParseRequirementsLabeledLines(t *testing.T) {
	prompt := `Title: Backend Engineer
Required skills: Go, PostgreSQL; Docker
Preferred skills: Kubernetes
Education: Bachelor in Computer Science
Experience: 5+ years
Industry: fintech, payments
Location: Berlin
Notes: remote friendly

We are building payment infrastructure.`

	got := ParseRequirements(prompt)
	want := candidate.JobRequirements{
		RequiredSkills:     []string{"Go", "PostgreSQL", "Docker"},
		PreferredSkills:    []string{"Kubernetes"},
		MinExperienceYears: 5,
		RequiredEducation:  "Bachelor in Computer Science",
		IndustryKeywords:   []string{"fintech", "payments"},
		JobTitleKeywords:   []string{"Backend Engineer"},
		ExtraInformation:   []string{"remote friendly"},
		LocationPreference: "Berlin",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRequirements = %+v, want %+v", got, want)
	}
}

func TestParseRequirementsIgnoresProse(t *testing.T) {
	got := ParseRequirements("We need someone great.\nNo labels here at all.")
	if !reflect.DeepEqual(got, candidate.JobRequirements{}) {
		t.Fatalf("ParseRequirements = %+v, want zero value", got)
	}
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5+ years", 5},
		{"3-5 years", 3},
		{"at least 7", 7},
		{"none stated", 0},
	}
	for _, tc := range tests {
		if got := parseYears(tc.in); got != tc.want {
			t.Errorf("parseYears(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDeriveRequirementsUsesOracle(t *testing.T) {
	oracle := stubCompleter{response: `Here you go:
{"required_skills":["Go","SQL"],"preferred_skills":[],"min_experience_years":3,"required_education":"Bachelor","industry_keywords":["logistics"],"job_title_keywords":["engineer"],"extra_information":[],"location_preference":""}`}

	got := DeriveRequirements(context.Background(), oracle, "some prompt")
	if !reflect.DeepEqual(got.RequiredSkills, []string{"Go", "SQL"}) || got.MinExperienceYears != 3 {
		t.Fatalf("DeriveRequirements = %+v", got)
	}
}

func TestDeriveRequirementsFallsBackOnOracleFailure(t *testing.T) {
	oracle := stubCompleter{err: errors.New("oracle down")}

	got := DeriveRequirements(context.Background(), oracle, "Required skills: Go\nExperience: 2 years")
	if !reflect.DeepEqual(got.RequiredSkills, []string{"Go"}) || got.MinExperienceYears != 2 {
		t.Fatalf("fallback = %+v", got)
	}
}

func TestDeriveRequirementsFallsBackOnGarbageOutput(t *testing.T) {
	oracle := stubCompleter{response: "sorry, I cannot help with that"}

	got := DeriveRequirements(context.Background(), oracle, "Required skills: Python")
	if !reflect.DeepEqual(got.RequiredSkills, []string{"Python"}) {
		t.Fatalf("fallback = %+v", got)
	}
}
