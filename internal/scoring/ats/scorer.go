// Package ats implements the deterministic, rule-based compatibility scorer.
// It makes no external calls: given the same candidate and requirements it
// always produces the same score.
package ats

import (
	"math"
	"sort"
	"strings"
	"time"

	"screening-backend/internal/candidate"
)

// Weights control the contribution of each aspect to the overall score.
// They must sum to 1.0.
type Weights struct {
	Skills       float64
	Experience   float64
	Education    float64
	Progression  float64
	Projects     float64
	Recency      float64
	Completeness float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:       0.30,
		Experience:   0.25,
		Education:    0.15,
		Progression:  0.10,
		Projects:     0.20,
		Recency:      0.05,
		Completeness: 0.05,
	}
}

// Config carries the tunable knobs of a scoring run. PassThreshold is a
// pipeline-level setting, not a property of the scorer itself.
type Config struct {
	Weights       Weights
	PassThreshold float64
}

// DefaultConfig returns the default weighting and a 60.0 pass threshold.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), PassThreshold: 60.0}
}

// Result is the outcome of scoring one candidate.
type Result struct {
	OverallScore  float64            `json:"overall_score"`
	AspectScores  map[string]float64 `json:"detailed_scores"`
	Passed        bool               `json:"passed"`
	CandidateName string             `json:"candidate_name"`
}

// Scorer scores candidates against one job's requirements.
type Scorer struct {
	req candidate.JobRequirements
	cfg Config
	now func() time.Time
}

// New constructs a Scorer for the given requirements.
func New(req candidate.JobRequirements, cfg Config) *Scorer {
	return &Scorer{req: req, cfg: cfg, now: time.Now}
}

// Score computes the weighted overall score for a candidate. It never fails:
// an aspect whose computation panics contributes 0.0 and the remaining
// aspects are unaffected.
func (s *Scorer) Score(rec candidate.Record) Result {
	aspects := map[string]float64{
		"skills_score":       safeAspect(func() float64 { return s.skillsScore(rec) }),
		"experience_score":   safeAspect(func() float64 { return s.experienceScore(rec) }),
		"education_score":    safeAspect(func() float64 { return s.educationScore(rec) }),
		"progression_score":  safeAspect(func() float64 { return s.progressionScore(rec) }),
		"project_score":      safeAspect(func() float64 { return s.projectScore(rec) }),
		"recency_score":      safeAspect(func() float64 { return s.recencyScore(rec) }),
		"completeness_score": safeAspect(func() float64 { return s.completenessScore(rec) }),
	}

	w := s.cfg.Weights
	overall := aspects["skills_score"]*w.Skills +
		aspects["experience_score"]*w.Experience +
		aspects["education_score"]*w.Education +
		aspects["progression_score"]*w.Progression +
		aspects["project_score"]*w.Projects +
		aspects["recency_score"]*w.Recency +
		aspects["completeness_score"]*w.Completeness
	overall = math.Round(overall*100) / 100

	return Result{
		OverallScore:  overall,
		AspectScores:  aspects,
		Passed:        overall >= s.cfg.PassThreshold,
		CandidateName: rec.FullName(),
	}
}

// safeAspect isolates a single aspect computation: a panic scores 0.0.
func safeAspect(fn func() float64) (score float64) {
	defer func() {
		if recover() != nil {
			score = 0.0
		}
	}()
	return fn()
}

func (s *Scorer) skillsScore(rec candidate.Record) float64 {
	if len(rec.Skill.SkillValues) == 0 {
		return 0.0
	}

	var resumeSkills []string
	for _, line := range rec.Skill.SkillValues {
		resumeSkills = append(resumeSkills, tokenizeSkills(line)...)
	}
	for i, sk := range resumeSkills {
		resumeSkills[i] = strings.ToLower(strings.TrimSpace(sk))
	}

	required := lowerAll(s.req.RequiredSkills)
	preferred := lowerAll(s.req.PreferredSkills)

	requiredScore := 100.0
	if len(required) > 0 {
		requiredScore = float64(countFuzzyMatches(resumeSkills, required)) / float64(len(required)) * 100
	}
	preferredScore := 100.0
	if len(preferred) > 0 {
		preferredScore = float64(countFuzzyMatches(resumeSkills, preferred)) / float64(len(preferred)) * 100
	}

	return math.Min(100, requiredScore*0.7+preferredScore*0.3)
}

func (s *Scorer) experienceScore(rec candidate.Record) float64 {
	if len(rec.WorkExperience) == 0 {
		return 0.0
	}

	now := s.now()
	total := 0.0
	for _, exp := range rec.WorkExperience {
		entry := 0.0
		entry += keywordRelevance(exp.JobTitle, s.req.JobTitleKeywords) * 30
		entry += keywordRelevance(exp.Description, s.req.IndustryKeywords) * 40
		entry += math.Min(20, candidate.SpanYears(exp.FromDate, exp.ToDate, now)*4)
		if exp.CompanyName != "" {
			entry += 10
		} else {
			entry += 5
		}
		total += entry
	}

	maxTotal := float64(len(rec.WorkExperience)) * 100
	return math.Min(100, total/maxTotal*100)
}

var fieldKeywords = []string{"computer", "data", "engineering", "science", "technology"}

func (s *Scorer) educationScore(rec candidate.Record) float64 {
	if len(rec.Education) == 0 {
		return 30.0
	}

	requiredEdu := strings.ToLower(s.req.RequiredEducation)
	best := 0.0
	for _, edu := range rec.Education {
		score := 0.0
		degree := strings.ToLower(edu.Degree)
		field := strings.ToLower(edu.FieldOfStudy)

		switch {
		case strings.Contains(requiredEdu, "bachelor") && strings.Contains(degree, "bachelor"):
			score += 60
		case strings.Contains(requiredEdu, "master") && strings.Contains(degree, "master"):
			score += 70
		case strings.Contains(requiredEdu, "phd") || strings.Contains(requiredEdu, "doctorate"):
			if strings.Contains(degree, "phd") || strings.Contains(degree, "doctorate") {
				score += 80
			}
		case degree != "":
			score += 40
		}

		for _, kw := range fieldKeywords {
			if strings.Contains(field, kw) {
				score += 5
				break
			}
		}
		if strings.Contains(field, "data science") || strings.Contains(field, "computer science") {
			score += 25
		}

		score += gradeBonus(edu.Grade)
		best = math.Max(best, score)
	}
	return math.Min(100, best)
}

// gradeBonus parses "X/Y" or a raw number as a percentage and maps it to a
// bonus. Grades that exist but do not parse still earn a small credit.
func gradeBonus(grade string) float64 {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return 0
	}
	pct, ok := parseGradePercent(grade)
	if !ok {
		return 5
	}
	switch {
	case pct >= 85:
		return 15
	case pct >= 75:
		return 10
	case pct >= 65:
		return 5
	}
	return 0
}

var progressionLadder = []string{"intern", "junior", "senior", "lead", "manager", "director"}

func (s *Scorer) progressionScore(rec candidate.Record) float64 {
	if len(rec.WorkExperience) < 2 {
		return 50.0
	}

	sorted := make([]candidate.WorkExperience, len(rec.WorkExperience))
	copy(sorted, rec.WorkExperience)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := candidate.ParseDate(sorted[i].FromDate)
		tj, _ := candidate.ParseDate(sorted[j].FromDate)
		return ti.Before(tj)
	})

	levels := make([]int, len(sorted))
	for i, exp := range sorted {
		levels[i] = titleLevel(exp.JobTitle)
	}

	score := 50.0
	for i := 1; i < len(levels); i++ {
		switch {
		case levels[i] > levels[i-1]:
			score += 15
		case levels[i] == levels[i-1]:
			score += 5
		}
	}

	companies := make(map[string]struct{}, len(sorted))
	for _, exp := range sorted {
		companies[exp.CompanyName] = struct{}{}
	}
	if len(companies) > 1 {
		score += 10
	}

	return math.Min(100, score)
}

// titleLevel maps a job title to its ladder position; the first matching
// keyword wins, unknown titles sit at level 0.
func titleLevel(title string) int {
	title = strings.ToLower(title)
	for i, kw := range progressionLadder {
		if strings.Contains(title, kw) {
			return i
		}
	}
	return 0
}

func (s *Scorer) projectScore(rec candidate.Record) float64 {
	if len(rec.Projects) == 0 {
		return 0.0
	}

	keywords := append(append([]string{}, s.req.IndustryKeywords...), s.req.RequiredSkills...)
	now := s.now()
	total := 0.0
	for _, proj := range rec.Projects {
		score := 0.0
		score += keywordRelevance(proj.Title, keywords) * 30
		score += keywordRelevance(proj.Description, keywords) * 40
		score += math.Min(30, candidate.SpanYears(proj.FromDate, proj.ToDate, now)*10)
		total += score
	}
	return math.Min(100, total/float64(len(rec.Projects)))
}

func (s *Scorer) recencyScore(rec candidate.Record) float64 {
	if len(rec.WorkExperience) == 0 {
		return 50.0
	}

	var latest time.Time
	var haveLatest bool
	for _, exp := range rec.WorkExperience {
		if candidate.IsOngoing(exp.ToDate) {
			return 100.0
		}
		if end, ok := candidate.ParseDate(exp.ToDate); ok {
			if !haveLatest || end.After(latest) {
				latest = end
				haveLatest = true
			}
		}
	}
	if !haveLatest {
		return 50.0
	}

	now := s.now()
	monthsSince := (now.Year()-latest.Year())*12 + int(now.Month()-latest.Month())
	switch {
	case monthsSince <= 6:
		return 100.0
	case monthsSince <= 12:
		return 80.0
	case monthsSince <= 24:
		return 60.0
	case monthsSince <= 36:
		return 40.0
	}
	return 20.0
}

func (s *Scorer) completenessScore(rec candidate.Record) float64 {
	score := 0.0
	pi := rec.PersonalInformation
	if pi.FirstName != "" && pi.LastName != "" {
		score += 5
	}
	if pi.EmailAddress != "" {
		score += 5
	}
	if pi.PhoneNumber != "" {
		score += 5
	}
	if pi.LinkedInURL != "" || pi.WebsiteURL != "" || pi.GithubURL != "" {
		score += 5
	}
	if len(rec.WorkExperience) > 0 {
		score += 30
	}
	if len(rec.Education) > 0 {
		score += 20
	}
	if len(rec.Skill.SkillValues) > 0 {
		score += 20
	}
	if len(rec.Projects) > 0 {
		score += 10
	}
	return score
}

// keywordRelevance returns the fraction of keywords present in text as
// case-insensitive substrings. An empty keyword list is fully relevant.
func keywordRelevance(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 1.0
	}
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
