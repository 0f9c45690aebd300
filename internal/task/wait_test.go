package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFetcher returns its payloads in order, repeating the last one
// once the script is exhausted.
type scriptedFetcher struct {
	payloads []json.RawMessage
	errs     []error
	calls    int
}

func (f *scriptedFetcher) GetTask(ctx context.Context, taskID int) (json.RawMessage, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.payloads) {
		idx = len(f.payloads) - 1
	}
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return f.payloads[idx], nil
}

func taskPayload(state any, percent int) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{"id": 123, "state": state, "percent": percent})
	return raw
}

func TestWaitForTaskRejectsInvalidTaskID(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{taskPayload("done", 100)}}

	for _, id := range []int{0, -1, -42} {
		result, err := WaitForTask(context.Background(), f, id, WaitOptions{})
		require.Error(t, err, "task ID %d", id)
		assert.Nil(t, result)
	}
	assert.Zero(t, f.calls, "no fetch should happen for invalid IDs")
}

func TestWaitForTaskRejectsNegativeOptions(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{taskPayload("done", 100)}}

	_, err := WaitForTask(context.Background(), f, 1, WaitOptions{Timeout: -time.Second})
	require.Error(t, err)

	_, err = WaitForTask(context.Background(), f, 1, WaitOptions{PollInterval: -time.Second})
	require.Error(t, err)
}

func TestWaitForTaskImmediateTerminalStates(t *testing.T) {
	tests := []struct {
		state       any
		wantState   State
		wantSuccess bool
	}{
		{"done", StateDone, true},
		{"Done", StateDone, true},
		{4, StateDone, true},
		{"error", StateError, false},
		{5, StateError, false},
		{"cancelled", StateCancelled, false},
		{"canceled", StateCancelled, false},
		{3, StateCancelled, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.state), func(t *testing.T) {
			f := &scriptedFetcher{payloads: []json.RawMessage{taskPayload(tt.state, 100)}}

			result, err := WaitForTask(context.Background(), f, 123, WaitOptions{})
			require.NoError(t, err)
			assert.True(t, result.Completed)
			assert.Equal(t, tt.wantState, result.State)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, 1, f.calls)
			assert.NotEmpty(t, result.Task)
		})
	}
}

func TestWaitForTaskPollsUntilDone(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{
		taskPayload("pending", 0),
		taskPayload("running", 40),
		taskPayload("running", 80),
		taskPayload("done", 100),
	}}

	result, err := WaitForTask(context.Background(), f, 456, WaitOptions{
		Timeout:      time.Second,
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.True(t, result.Success)
	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, 4, f.calls)
}

func TestWaitForTaskTimeoutIsNotAnError(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{taskPayload("running", 50)}}

	result, err := WaitForTask(context.Background(), f, 789, WaitOptions{
		Timeout:      30 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "timed out")
	assert.NotEmpty(t, result.Task, "last observed payload should be returned")
}

func TestWaitForTaskFetchCountIsBounded(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{taskPayload("running", 10)}}

	timeout := 50 * time.Millisecond
	interval := 10 * time.Millisecond
	_, err := WaitForTask(context.Background(), f, 1, WaitOptions{
		Timeout:      timeout,
		PollInterval: interval,
	})
	require.NoError(t, err)

	maxFetches := int(timeout/interval) + 1
	assert.LessOrEqual(t, f.calls, maxFetches)
	assert.Positive(t, f.calls)
}

func TestWaitForTaskFetchErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	f := &scriptedFetcher{
		payloads: []json.RawMessage{nil},
		errs:     []error{boom},
	}

	result, err := WaitForTask(context.Background(), f, 5, WaitOptions{
		Timeout:      time.Second,
		PollInterval: time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result)
	assert.Equal(t, 1, f.calls, "error on first fetch must not be retried")
}

func TestWaitForTaskContextCancellation(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{taskPayload("running", 20)}}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	result, err := WaitForTask(ctx, f, 7, WaitOptions{
		Timeout:      10 * time.Second,
		PollInterval: time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestWaitForTaskCancellingCountsAsRunning(t *testing.T) {
	f := &scriptedFetcher{payloads: []json.RawMessage{
		taskPayload("cancelling", 90),
		taskPayload("cancelled", 90),
	}}

	result, err := WaitForTask(context.Background(), f, 9, WaitOptions{
		Timeout:      time.Second,
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.False(t, result.Success)
	assert.Equal(t, StateCancelled, result.State)
	assert.Equal(t, 2, f.calls)
}
