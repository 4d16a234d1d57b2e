package jobs

import (
	"context"
	"log"
	"sync"

	"screening-backend/internal/pipeline"
)

// Future resolves when a queued screening run finishes.
type Future struct {
	done    chan struct{}
	summary pipeline.Summary
	err     error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Wait blocks until the run finishes or the context is cancelled.
func (f *Future) Wait(ctx context.Context) (pipeline.Summary, error) {
	select {
	case <-ctx.Done():
		return pipeline.Summary{}, ctx.Err()
	case <-f.done:
		return f.summary, f.err
	}
}

// Done returns a channel closed when the run finishes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

func (f *Future) resolve(summary pipeline.Summary, err error) {
	f.summary = summary
	f.err = err
	close(f.done)
}

type task struct {
	jobID  string
	future *Future
}

// Runner executes one screening run.
type Runner func(ctx context.Context, jobID string) (pipeline.Summary, error)

// Queue is a bounded queue of screening runs drained by a single consumer,
// so runs never overlap and a burst of submissions is rejected rather than
// buffered without limit.
type Queue struct {
	tasks chan task

	mu     sync.Mutex
	closed bool
}

// NewQueue constructs a Queue holding at most capacity pending runs.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{tasks: make(chan task, capacity)}
}

// Submit enqueues a run and returns its Future without blocking. A full
// queue returns ErrQueueFull immediately.
func (q *Queue) Submit(jobID string) (*Future, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	f := newFuture()
	select {
	case q.tasks <- task{jobID: jobID, future: f}:
		return f, nil
	default:
		return nil, ErrQueueFull
	}
}

// Run drains the queue until the context is cancelled, executing one run at
// a time. Pending futures are resolved with the context error on shutdown.
func (q *Queue) Run(ctx context.Context, runner Runner) {
	for {
		if ctx.Err() != nil {
			q.drain(ctx.Err())
			return
		}
		select {
		case <-ctx.Done():
			q.drain(ctx.Err())
			return
		case t := <-q.tasks:
			summary, err := runner(ctx, t.jobID)
			if err != nil {
				log.Printf("screening run job=%s: %v", t.jobID, err)
			}
			t.future.resolve(summary, err)
		}
	}
}

// drain closes the queue and fails every pending future.
func (q *Queue) drain(cause error) {
	q.mu.Lock()
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	for t := range q.tasks {
		t.future.resolve(pipeline.Summary{}, cause)
	}
}
