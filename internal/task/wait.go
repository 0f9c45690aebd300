package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fmg-mcp/internal/logger"
)

// Fetcher is the single capability the poller consumes from its
// collaborator: fetch the current status of a task by identifier.
// *fmg.Client satisfies it.
type Fetcher interface {
	GetTask(ctx context.Context, taskID int) (json.RawMessage, error)
}

const (
	DefaultTimeout      = 300 * time.Second
	DefaultPollInterval = 5 * time.Second
)

// WaitOptions bounds the polling loop. Zero values fall back to the
// defaults; negative values are rejected.
type WaitOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// Result is the outcome of waiting for a task.
//
// Completed is true only when a terminal state was observed; a timeout
// leaves it false. Success is true only for the done terminal state;
// error and cancelled are completed-but-failed outcomes, not Go errors.
type Result struct {
	Success   bool
	Completed bool
	State     State
	Task      json.RawMessage
	Message   string
}

// WaitForTask polls the task until it reaches a terminal state (done,
// error, cancelled) or the timeout budget elapses.
//
// The budget is measured against the monotonic clock and checked before
// each fetch, so at most ceil(timeout/interval)+1 fetches occur; a
// single slow fetch may overrun the nominal budget by its own latency.
// A failed status fetch is returned as an error, since a transport
// failure is not the same as the monitored task failing or the wait
// timing out.
func WaitForTask(ctx context.Context, f Fetcher, taskID int, opts WaitOptions) (*Result, error) {
	if taskID <= 0 {
		return nil, fmt.Errorf("task ID must be positive, got %d", taskID)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", opts.Timeout)
	}
	if opts.PollInterval < 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %v", opts.PollInterval)
	}

	start := time.Now()
	var last json.RawMessage

	for {
		if elapsed := time.Since(start); elapsed > opts.Timeout {
			logger.Warn("Task %d did not complete within %v", taskID, opts.Timeout)
			return &Result{
				Completed: false,
				Task:      last,
				Message:   fmt.Sprintf("task %d timed out after %v", taskID, opts.Timeout),
			}, nil
		}

		payload, err := f.GetTask(ctx, taskID)
		if err != nil {
			return nil, fmt.Errorf("fetching status of task %d: %w", taskID, err)
		}
		last = payload

		state := TaskState(payload)
		logger.Debug("Task %d state: %s (%d%%)", taskID, state, TaskPercent(payload))

		if state.Terminal() {
			return &Result{
				Success:   state == StateDone,
				Completed: true,
				State:     state,
				Task:      payload,
				Message:   fmt.Sprintf("task completed with state: %s", state),
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for task %d: %w", taskID, ctx.Err())
		case <-time.After(opts.PollInterval):
		}
	}
}
