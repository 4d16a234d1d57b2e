package pipeline

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyPool    = errors.New("no candidates for job")
	ErrNotAllScored = errors.New("pool not fully scored")
)
