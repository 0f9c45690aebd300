package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"

	"fmg-mcp/internal/logger"
	"fmg-mcp/internal/task"
)

// TaskAPI is the client surface the monitor polls.
type TaskAPI interface {
	GetTask(ctx context.Context, taskID int) (json.RawMessage, error)
	GetTaskLines(ctx context.Context, taskID int) ([]map[string]any, error)
}

// TaskMonitor renders a live view of one task while polling it to
// completion in the background.
type TaskMonitor struct {
	api      TaskAPI
	taskID   int
	interval time.Duration
	program  *tea.Program
}

func NewTaskMonitor(api TaskAPI, taskID int, interval time.Duration) *TaskMonitor {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &TaskMonitor{
		api:      api,
		taskID:   taskID,
		interval: interval,
	}
}

func (tm *TaskMonitor) Stop() {
	if tm.program != nil {
		tm.program.Quit()
	}
}

func (tm *TaskMonitor) AddLog(message string) {
	if tm.program != nil {
		tm.program.Send(LogMessage{
			Message: message,
		})
	}
}

// Run polls the task until it reaches a terminal state or ctx is
// cancelled, and blocks on the TUI until the user quits.
func (tm *TaskMonitor) Run(ctx context.Context) error {
	model := NewModel(tm.taskID)
	tm.program = tea.NewProgram(model, tea.WithAltScreen())

	go tm.watch(ctx)

	if _, err := tm.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func (tm *TaskMonitor) watch(ctx context.Context) {
	lastState := task.StateUnknown

	for {
		payload, err := tm.api.GetTask(ctx, tm.taskID)
		if err != nil {
			logger.Error("Failed to fetch task %d: %v", tm.taskID, err)
			tm.program.Send(WatchDone{State: task.StateUnknown, Err: err})
			return
		}

		state := task.TaskState(payload)
		percent := task.TaskPercent(payload)
		title := gjson.GetBytes(payload, "title").String()

		update := TaskUpdate{
			TaskID:  tm.taskID,
			State:   state,
			Percent: percent,
			Title:   title,
		}
		if lines, err := tm.api.GetTaskLines(ctx, tm.taskID); err == nil {
			update.Lines = taskLines(lines)
		}
		tm.program.Send(update)

		if state != lastState {
			tm.AddLog(fmt.Sprintf("Task %d is %s (%d%%)", tm.taskID, state, percent))
			lastState = state
		}

		if state.Terminal() {
			tm.AddLog(fmt.Sprintf("Task %d finished: %s", tm.taskID, state))
			tm.program.Send(WatchDone{State: state})
			return
		}

		select {
		case <-ctx.Done():
			tm.program.Send(WatchDone{State: state, Err: ctx.Err()})
			return
		case <-time.After(tm.interval):
		}
	}
}

// taskLines converts raw task line entries into display rows.
func taskLines(entries []map[string]any) []TaskLine {
	lines := make([]TaskLine, 0, len(entries))
	for _, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		line := TaskLine{
			Name:    gjson.GetBytes(raw, "name").String(),
			State:   task.DecodeState(gjson.GetBytes(raw, "state")),
			Percent: int(gjson.GetBytes(raw, "percent").Int()),
			Detail:  gjson.GetBytes(raw, "detail").String(),
		}
		lines = append(lines, line)
	}
	return lines
}
