// Package generate produces outreach material for screened candidates:
// interview questions for the passed cohort and rejection notices for the
// failed one.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"screening-backend/internal/candidate"
	"screening-backend/internal/llm"
)

// Question is one interview question with the answer the interviewer
// should listen for.
type Question struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
}

const defaultQuestionCount = 5

// Service generates outreach material via the oracle.
type Service struct {
	LLM llm.Completer
}

const questionsPrompt = `You are preparing a technical interview. Based on the
candidate profile and the job requirements below, write %d interview questions
tailored to this candidate's background. Respond with a single JSON object
and nothing else: {"questions": [{"question": "...", "expected_answer": "..."}]}.

Job requirements:
%s

Candidate profile:
%s
`

// InterviewQuestions generates tailored interview questions for one passed
// candidate.
func (s *Service) InterviewQuestions(ctx context.Context, rec candidate.Record, req candidate.JobRequirements, n int) ([]Question, error) {
	if s.LLM == nil {
		return nil, llm.ErrNotConfigured
	}
	if n < 1 {
		n = defaultQuestionCount
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	recJSON, err := candidate.Encode(rec)
	if err != nil {
		return nil, err
	}

	raw, err := s.LLM.Complete(ctx, fmt.Sprintf(questionsPrompt, n, reqJSON, recJSON))
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return parseQuestions(raw)
}

func parseQuestions(raw string) ([]Question, error) {
	obj, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("generate questions: no JSON object in oracle response")
	}
	var parsed struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	out := parsed.Questions[:0]
	for _, q := range parsed.Questions {
		if strings.TrimSpace(q.Question) != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("generate questions: oracle returned no questions")
	}
	return out, nil
}

const noticePrompt = `Write a short, respectful rejection notice for the
candidate below. Thank them for applying for the role, do not mention scores
or internal process, and keep it under 120 words. Respond with the notice
text only.

Role: %s
Candidate name: %s
`

// RejectionNotice generates the notification text for one failed candidate.
// If the oracle is unavailable the deterministic template is used so the
// failed cohort can always be notified.
func (s *Service) RejectionNotice(ctx context.Context, rec candidate.Record, req candidate.JobRequirements) (string, error) {
	name := rec.FullName()
	if name == "" {
		name = "Candidate"
	}
	role := strings.Join(req.JobTitleKeywords, ", ")
	if role == "" {
		role = "the role"
	}

	if s.LLM != nil {
		raw, err := s.LLM.Complete(ctx, fmt.Sprintf(noticePrompt, role, name))
		if err == nil && strings.TrimSpace(raw) != "" {
			return strings.TrimSpace(raw), nil
		}
	}
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for applying for %s. After careful review we have decided not to move forward with your application at this time. We appreciate the time you invested and encourage you to apply for future openings that match your experience.\n\nBest regards", name, role), nil
}
