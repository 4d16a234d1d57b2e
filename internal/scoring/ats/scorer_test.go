package ats

import (
	"testing"
	"time"

	"screening-backend/internal/candidate"
)

func fixedScorer(req candidate.JobRequirements, cfg Config) *Scorer {
	s := New(req, cfg)
	s.now = func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	return s
}

func fullCandidate() candidate.Record {
	return candidate.Record{
		PersonalInformation: candidate.PersonalInformation{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
			PhoneNumber:  "+44 555 0100",
			LinkedInURL:  "https://linkedin.com/in/ada",
		},
		Skill: candidate.Skill{
			Category:    "Technical",
			SkillValues: []string{"Python, SQL, Machine Learning", "Docker; Kubernetes"},
		},
		WorkExperience: []candidate.WorkExperience{
			{
				CompanyName: "Analytical Engines Ltd",
				JobTitle:    "Senior Data Scientist",
				FromDate:    "Jan 2020",
				ToDate:      "Present",
				Description: "Built machine learning pipelines in Python over SQL warehouses.",
			},
		},
		Education: []candidate.Education{
			{
				InstitutionName: "University of London",
				FieldOfStudy:    "Computer Science",
				Degree:          "Bachelor of Science",
				Grade:           "88/100",
				FromDate:        "2014",
				ToDate:          "2018",
			},
		},
		Projects: []candidate.Project{
			{
				Title:       "Churn prediction",
				Description: "Machine learning model for churn using Python.",
				FromDate:    "Jan 2022",
				ToDate:      "Jan 2023",
			},
		},
	}
}

func dataScienceRequirements() candidate.JobRequirements {
	return candidate.JobRequirements{
		RequiredSkills:    []string{"Python", "SQL"},
		PreferredSkills:   []string{"Docker"},
		RequiredEducation: "Bachelor Degree",
		IndustryKeywords:  []string{"machine learning", "python"},
		JobTitleKeywords:  []string{"data scientist"},
	}
}

func TestScoreStaysInRange(t *testing.T) {
	s := fixedScorer(dataScienceRequirements(), DefaultConfig())
	for _, rec := range []candidate.Record{fullCandidate(), {}} {
		res := s.Score(rec)
		if res.OverallScore < 0 || res.OverallScore > 100 {
			t.Fatalf("overall score %f out of range", res.OverallScore)
		}
		for name, score := range res.AspectScores {
			if score < 0 || score > 100 {
				t.Fatalf("aspect %s score %f out of range", name, score)
			}
		}
	}
}

func TestScoreEmptyCandidateBaselines(t *testing.T) {
	rec := candidate.Record{
		PersonalInformation: candidate.PersonalInformation{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
		},
		Skill: candidate.Skill{SkillValues: []string{"Python"}},
	}
	req := candidate.JobRequirements{RequiredSkills: []string{"Python"}}

	res := fixedScorer(req, DefaultConfig()).Score(rec)

	if got := res.AspectScores["education_score"]; got != 30.0 {
		t.Fatalf("education_score = %f, want 30 for missing education", got)
	}
	if got := res.AspectScores["experience_score"]; got != 0.0 {
		t.Fatalf("experience_score = %f, want 0", got)
	}
	if got := res.AspectScores["project_score"]; got != 0.0 {
		t.Fatalf("project_score = %f, want 0", got)
	}
	if got := res.AspectScores["progression_score"]; got != 50.0 {
		t.Fatalf("progression_score = %f, want 50", got)
	}
	// name +5, email +5, skills +20; no phone, links, experience, education, projects.
	if got := res.AspectScores["completeness_score"]; got != 30.0 {
		t.Fatalf("completeness_score = %f, want 30", got)
	}
}

func TestSkillsScorePartialRequiredMatch(t *testing.T) {
	rec := candidate.Record{
		Skill: candidate.Skill{SkillValues: []string{"Languages: Python, R"}},
	}
	req := candidate.JobRequirements{RequiredSkills: []string{"Python", "SQL"}}

	s := fixedScorer(req, DefaultConfig())
	got := s.skillsScore(rec)

	// One of two required skills matched (50.0 * 0.7), preferred list empty (100 * 0.3).
	want := 50.0*0.7 + 100.0*0.3
	if got != want {
		t.Fatalf("skillsScore = %f, want %f", got, want)
	}
}

func TestSkillsScoreMonotonicInRequiredMatches(t *testing.T) {
	req := candidate.JobRequirements{RequiredSkills: []string{"Python", "SQL", "Spark"}}
	s := fixedScorer(req, DefaultConfig())

	prev := -1.0
	skills := []string{}
	for _, add := range []string{"Python", "SQL", "Spark"} {
		skills = append(skills, add)
		rec := candidate.Record{Skill: candidate.Skill{SkillValues: skills}}
		got := s.skillsScore(rec)
		if got < prev {
			t.Fatalf("skillsScore decreased from %f to %f after adding %q", prev, got, add)
		}
		prev = got
	}
}

func TestSkillsFuzzyMatching(t *testing.T) {
	cases := []struct {
		name    string
		resume  []string
		want    string
		matched bool
	}{
		{name: "exact", resume: []string{"python"}, want: "python", matched: true},
		{name: "substring_resume_wider", resume: []string{"python 3"}, want: "python", matched: true},
		{name: "substring_want_wider", resume: []string{"sql"}, want: "postgresql", matched: true},
		{name: "near_spelling", resume: []string{"kubernets"}, want: "kubernetes", matched: true},
		{name: "unrelated", resume: []string{"haskell"}, want: "python", matched: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := countFuzzyMatches(tc.resume, []string{tc.want})
			if (got == 1) != tc.matched {
				t.Fatalf("countFuzzyMatches(%v, %q) = %d, want matched=%v", tc.resume, tc.want, got, tc.matched)
			}
		})
	}
}

func TestRecencyOngoingRoleWins(t *testing.T) {
	rec := candidate.Record{
		WorkExperience: []candidate.WorkExperience{
			{FromDate: "Jan 2001", ToDate: "Jan 2002"},
			{FromDate: "Jun 2010", ToDate: "Present"},
		},
	}
	s := fixedScorer(candidate.JobRequirements{}, DefaultConfig())
	if got := s.recencyScore(rec); got != 100.0 {
		t.Fatalf("recencyScore = %f, want 100 for ongoing role", got)
	}
}

func TestRecencyBands(t *testing.T) {
	cases := []struct {
		name string
		to   string
		want float64
	}{
		{name: "within_6_months", to: "Mar 2025", want: 100},
		{name: "within_12_months", to: "Sep 2024", want: 80},
		{name: "within_24_months", to: "Mar 2024", want: 60},
		{name: "within_36_months", to: "Mar 2023", want: 40},
		{name: "older", to: "Jan 2020", want: 20},
	}
	s := fixedScorer(candidate.JobRequirements{}, DefaultConfig())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := candidate.Record{
				WorkExperience: []candidate.WorkExperience{{FromDate: "Jan 2015", ToDate: tc.to}},
			}
			if got := s.recencyScore(rec); got != tc.want {
				t.Fatalf("recencyScore(to=%s) = %f, want %f", tc.to, got, tc.want)
			}
		})
	}
}

func TestRecencyNoParseableDates(t *testing.T) {
	rec := candidate.Record{
		WorkExperience: []candidate.WorkExperience{{FromDate: "then", ToDate: "later"}},
	}
	s := fixedScorer(candidate.JobRequirements{}, DefaultConfig())
	if got := s.recencyScore(rec); got != 50.0 {
		t.Fatalf("recencyScore = %f, want 50", got)
	}
}

func TestProgressionLadder(t *testing.T) {
	rec := candidate.Record{
		WorkExperience: []candidate.WorkExperience{
			{CompanyName: "B Corp", JobTitle: "Senior Engineer", FromDate: "Jan 2020", ToDate: "Jan 2023"},
			{CompanyName: "A Corp", JobTitle: "Junior Engineer", FromDate: "Jan 2017", ToDate: "Jan 2020"},
		},
	}
	s := fixedScorer(candidate.JobRequirements{}, DefaultConfig())
	// Base 50, +15 junior->senior, +10 distinct employers.
	if got := s.progressionScore(rec); got != 75.0 {
		t.Fatalf("progressionScore = %f, want 75", got)
	}
}

func TestEducationDegreeTiers(t *testing.T) {
	cases := []struct {
		name     string
		required string
		degree   string
		want     float64
	}{
		{name: "bachelor_match", required: "Bachelor Degree", degree: "Bachelor of Arts", want: 60},
		{name: "master_match", required: "Master Degree", degree: "Master of Science", want: 70},
		{name: "phd_match", required: "PhD", degree: "PhD", want: 80},
		{name: "other_degree", required: "Bachelor Degree", degree: "Diploma", want: 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := candidate.JobRequirements{RequiredEducation: tc.required}
			rec := candidate.Record{Education: []candidate.Education{{Degree: tc.degree}}}
			s := fixedScorer(req, DefaultConfig())
			if got := s.educationScore(rec); got != tc.want {
				t.Fatalf("educationScore = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestEducationBestEntryWins(t *testing.T) {
	req := candidate.JobRequirements{RequiredEducation: "Bachelor Degree"}
	rec := candidate.Record{
		Education: []candidate.Education{
			{Degree: "High School"},
			{Degree: "Bachelor of Technology", FieldOfStudy: "Computer Science", Grade: "88/100"},
		},
	}
	s := fixedScorer(req, DefaultConfig())
	// 60 degree + 5 field keyword + 25 computer science + 15 grade >= 85.
	if got := s.educationScore(rec); got != 100.0 {
		t.Fatalf("educationScore = %f, want 100", got)
	}
}

func TestGradeBonusUnparseable(t *testing.T) {
	if got := gradeBonus("CGPA Bootcamp"); got != 5 {
		t.Fatalf("gradeBonus unparseable = %f, want 5", got)
	}
	if got := gradeBonus(""); got != 0 {
		t.Fatalf("gradeBonus empty = %f, want 0", got)
	}
	if got := gradeBonus("8.8/10"); got != 15 {
		t.Fatalf("gradeBonus 8.8/10 = %f, want 15", got)
	}
	if got := gradeBonus("70"); got != 5 {
		t.Fatalf("gradeBonus 70 = %f, want 5", got)
	}
}

func TestPassThresholdConfigurable(t *testing.T) {
	rec := fullCandidate()
	req := dataScienceRequirements()

	strict := fixedScorer(req, Config{Weights: DefaultWeights(), PassThreshold: 99.5})
	if res := strict.Score(rec); res.Passed {
		t.Fatalf("expected fail at threshold 99.5, got pass with %f", res.OverallScore)
	}
	lenient := fixedScorer(req, Config{Weights: DefaultWeights(), PassThreshold: 40.0})
	if res := lenient.Score(rec); !res.Passed {
		t.Fatalf("expected pass at threshold 40, got fail with %f", res.OverallScore)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := fixedScorer(dataScienceRequirements(), DefaultConfig())
	rec := fullCandidate()
	first := s.Score(rec)
	second := s.Score(rec)
	if first.OverallScore != second.OverallScore || first.Passed != second.Passed {
		t.Fatalf("scoring is not deterministic: %v vs %v", first, second)
	}
}

func TestTokenizeSkills(t *testing.T) {
	got := tokenizeSkills("Languages: Python, R; Go | C")
	want := []string{"Languages", "Python", "Go"}
	if len(got) != len(want) {
		t.Fatalf("tokenizeSkills = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenizeSkills = %v, want %v", got, want)
		}
	}
}
