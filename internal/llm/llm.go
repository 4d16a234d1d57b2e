// Package llm defines the external evaluation oracle as an injected
// capability so scorers stay testable against deterministic stubs.
package llm

import (
	"context"
	"errors"
)

// AspectResult is the oracle's verdict on one scoring aspect. Score is
// always within [0,100] after defensive parsing.
type AspectResult struct {
	Score     float64        `json:"score"`
	Breakdown map[string]any `json:"breakdown"`
	Reasoning map[string]any `json:"reasoning"`
}

// Evaluator scores a JSON-serializable context against a natural-language
// rubric. Implementations are network-bound and rate-limited; output is
// untrusted and must be parsed defensively by the caller or the adapter.
type Evaluator interface {
	Evaluate(ctx context.Context, payload any, rubric string) (AspectResult, error)
}

// Completer produces free-form model output for a prompt. Used by the
// generation collaborators (interview questions, notifications) and for
// deriving job requirements from a hiring prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client bundles both oracle capabilities behind one injected dependency.
type Client interface {
	Evaluator
	Completer
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("oracle not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Evaluate returns ErrNotConfigured.
func (PlaceholderClient) Evaluate(ctx context.Context, payload any, rubric string) (AspectResult, error) {
	_ = ctx
	_ = payload
	_ = rubric
	return AspectResult{}, ErrNotConfigured
}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
