package llm

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base  Client
	label string
}

// WithRetry wraps a client with a single retry on transient failures
// (timeouts, connection resets, 5xx provider errors). The label shows up in
// retry logs to tie attempts back to a job or candidate.
func WithRetry(base Client, label string) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, label: label}
}

func (r retryingClient) Evaluate(ctx context.Context, payload any, rubric string) (AspectResult, error) {
	res, err := r.base.Evaluate(ctx, payload, rubric)
	if err == nil || !shouldRetry(err) {
		return res, err
	}
	if err := r.backoff(ctx, err); err != nil {
		return AspectResult{}, err
	}
	return r.base.Evaluate(ctx, payload, rubric)
}

func (r retryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := r.base.Complete(ctx, prompt)
	if err == nil || !shouldRetry(err) {
		return out, err
	}
	if err := r.backoff(ctx, err); err != nil {
		return "", err
	}
	return r.base.Complete(ctx, prompt)
}

func (r retryingClient) backoff(ctx context.Context, cause error) error {
	log.Printf("oracle retry attempt=1 label=%s error=%v", r.label, cause)
	select {
	case <-time.After(retryBaseDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "oracle") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
