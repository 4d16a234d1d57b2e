// Package smart implements the criteria-driven scorer: six independent
// aspect judgments delegated to the evaluation oracle, aggregated
// deterministically into a final score and a seniority level.
package smart

import (
	"context"
	"fmt"
	"math"
	"sync"

	"screening-backend/internal/candidate"
	"screening-backend/internal/llm"
)

// Aspect names double as breakdown keys in persisted results.
const (
	AspectEducation  = "education"
	AspectSkills     = "skills"
	AspectLanguage   = "language"
	AspectExperience = "experience"
	AspectProjects   = "projects"
	AspectRelevance  = "relevance"
)

var aspects = []string{
	AspectEducation,
	AspectSkills,
	AspectLanguage,
	AspectExperience,
	AspectProjects,
	AspectRelevance,
}

// Level is the recommended seniority classification.
type Level string

const (
	LevelEntry  Level = "entry"
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// Weights control the aggregation of aspect scores. They must sum to 1.0.
type Weights struct {
	Skills     float64
	Experience float64
	Education  float64
	Projects   float64
	Language   float64
	Relevance  float64
}

// DefaultWeights returns the canonical aggregation weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:     0.30,
		Experience: 0.25,
		Education:  0.15,
		Projects:   0.15,
		Language:   0.10,
		Relevance:  0.05,
	}
}

// Config carries the tunable knobs of the criteria-driven pass.
type Config struct {
	Weights           Weights
	AdequacyThreshold float64
}

// DefaultConfig returns the default weighting and a 65.0 adequacy threshold.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), AdequacyThreshold: 65.0}
}

// AspectBreakdown is the persisted detail for one aspect.
type AspectBreakdown struct {
	Score     float64        `json:"score"`
	Breakdown map[string]any `json:"breakdown"`
	Reasoning map[string]any `json:"reasoning"`
}

// Evaluation is the outcome of evaluating one candidate.
type Evaluation struct {
	FinalScore       float64                    `json:"final_score"`
	IsAdequate       bool                       `json:"is_adequate"`
	RecommendedLevel Level                      `json:"recommended_level"`
	Breakdowns       map[string]AspectBreakdown `json:"breakdowns"`
}

// Evaluator evaluates candidates against one job's requirements via the
// injected oracle.
type Evaluator struct {
	oracle llm.Evaluator
	req    candidate.JobRequirements
	cfg    Config
}

// New constructs an Evaluator. The oracle is a required capability.
func New(oracle llm.Evaluator, req candidate.JobRequirements, cfg Config) *Evaluator {
	return &Evaluator{oracle: oracle, req: req, cfg: cfg}
}

// Evaluate issues the six aspect calls concurrently and aggregates the
// results. A failed or malformed aspect contributes a zero score and an
// error reasoning entry; the siblings are unaffected. The only hard error
// is a context already cancelled before any call is issued.
func (e *Evaluator) Evaluate(ctx context.Context, rec candidate.Record) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}

	results := make(map[string]AspectBreakdown, len(aspects))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, aspect := range aspects {
		wg.Add(1)
		go func(aspect string) {
			defer wg.Done()
			breakdown := e.scoreAspect(ctx, aspect, rec)
			mu.Lock()
			results[aspect] = breakdown
			mu.Unlock()
		}(aspect)
	}
	wg.Wait()

	return e.aggregate(results), nil
}

// scoreAspect runs one oracle call with full fault isolation: errors and
// panics degrade to a zero-scored breakdown.
func (e *Evaluator) scoreAspect(ctx context.Context, aspect string, rec candidate.Record) (out AspectBreakdown) {
	defer func() {
		if rec := recover(); rec != nil {
			out = failedAspect(fmt.Sprintf("aspect panic: %v", rec))
		}
	}()

	res, err := e.oracle.Evaluate(ctx, aspectPayload(aspect, rec, e.req), aspectRubric(aspect))
	if err != nil {
		return failedAspect(err.Error())
	}
	return AspectBreakdown{
		Score:     res.Score,
		Breakdown: res.Breakdown,
		Reasoning: res.Reasoning,
	}
}

func failedAspect(msg string) AspectBreakdown {
	return AspectBreakdown{
		Score:     0,
		Breakdown: map[string]any{},
		Reasoning: map[string]any{"error": msg},
	}
}

func (e *Evaluator) aggregate(results map[string]AspectBreakdown) Evaluation {
	w := e.cfg.Weights
	final := results[AspectSkills].Score*w.Skills +
		results[AspectExperience].Score*w.Experience +
		results[AspectEducation].Score*w.Education +
		results[AspectProjects].Score*w.Projects +
		results[AspectLanguage].Score*w.Language +
		results[AspectRelevance].Score*w.Relevance
	final = math.Round(final*100) / 100

	return Evaluation{
		FinalScore: final,
		IsAdequate: final >= e.cfg.AdequacyThreshold,
		RecommendedLevel: classifyLevel(
			results[AspectExperience].Score,
			results[AspectSkills].Score,
			results[AspectLanguage].Score,
			results[AspectRelevance].Score,
		),
		Breakdowns: results,
	}
}

// classifyLevel walks the ladder top-down; the first rung whose floor the
// candidate clears wins.
func classifyLevel(experience, skills, language, relevance float64) Level {
	switch {
	case experience >= 90 && skills >= 85 && language >= 85 && relevance >= 80:
		return LevelSenior
	case experience >= 80 && skills >= 75 && language >= 75 && relevance >= 70:
		return LevelMid
	case experience >= 65 && skills >= 70:
		return LevelJunior
	}
	return LevelEntry
}

// aspectPayload builds a focused JSON-serializable context per aspect so the
// oracle only sees the fields relevant to its judgment.
func aspectPayload(aspect string, rec candidate.Record, req candidate.JobRequirements) map[string]any {
	switch aspect {
	case AspectEducation:
		return map[string]any{
			"education":      rec.Education,
			"certifications": rec.Certifications,
			"requirements": map[string]any{
				"required_education": req.RequiredEducation,
			},
		}
	case AspectSkills:
		return map[string]any{
			"skill": rec.Skill,
			"requirements": map[string]any{
				"required_skills":  req.RequiredSkills,
				"preferred_skills": req.PreferredSkills,
			},
		}
	case AspectLanguage:
		return map[string]any{
			"skill":    rec.Skill,
			"projects": rec.Projects,
		}
	case AspectExperience:
		return map[string]any{
			"work_experience": rec.WorkExperience,
			"requirements": map[string]any{
				"min_years": req.MinExperienceYears,
				"role":      req.JobTitleKeywords,
			},
		}
	case AspectProjects:
		return map[string]any{
			"projects": rec.Projects,
			"requirements": map[string]any{
				"industry":        req.IndustryKeywords,
				"required_skills": req.RequiredSkills,
			},
		}
	case AspectRelevance:
		return map[string]any{
			"summary":         rec.Summary,
			"achievements":    rec.Achievements,
			"work_experience": rec.WorkExperience,
			"skill":           rec.Skill,
			"requirements": map[string]any{
				"industry":          req.IndustryKeywords,
				"role":              req.JobTitleKeywords,
				"extra_information": req.ExtraInformation,
			},
		}
	}
	return map[string]any{}
}
