package jobs

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrQueueFull   = errors.New("job queue full")
	ErrQueueClosed = errors.New("job queue closed")
	ErrEmptyPrompt = errors.New("hiring prompt is empty")
)
