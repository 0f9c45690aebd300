package tools

import (
	"context"
	"time"

	"fmg-mcp/internal/fmg"
	"fmg-mcp/internal/task"
)

func registerSystemTools(r *Registry) {
	r.register(Tool{
		Name:        "get_system_status",
		Description: "Get FortiManager system status including version, hostname and serial number.",
		InputSchema: objectSchema(nil, nil),
		handler: func(ctx context.Context, args Args) map[string]any {
			status, err := r.api.GetSystemStatus(ctx)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"system_status": rawField(status)})
		},
	})

	r.register(Tool{
		Name:        "get_ha_status",
		Description: "Get FortiManager high availability cluster status.",
		InputSchema: objectSchema(nil, nil),
		handler: func(ctx context.Context, args Args) map[string]any {
			status, err := r.api.GetHAStatus(ctx)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"ha_status": rawField(status)})
		},
	})

	r.register(Tool{
		Name:        "list_adoms",
		Description: "List administrative domains (ADOMs) on the FortiManager.",
		InputSchema: objectSchema(nil, map[string]prop{
			"fields": {Type: "array", Items: "string", Desc: "Fields to return for each ADOM"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			opts := queryOptions(args)
			adoms, err := r.api.ListADOMs(ctx, opts)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"adoms": adoms, "count": len(adoms)})
		},
	})

	r.register(Tool{
		Name:        "get_adom",
		Description: "Get details for one administrative domain.",
		InputSchema: objectSchema([]string{"adom"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"load_sub": {Type: "integer", Desc: "Set to 1 to include sub-tables"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetADOM(ctx, adom, args.Int("load_sub"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"adom": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "list_tasks",
		Description: "List tasks on the FortiManager, optionally filtered by state.",
		InputSchema: objectSchema(nil, map[string]prop{
			"state": {Type: "string", Desc: "Filter tasks by state label, e.g. running or done"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			var filter []any
			if state := args.String("state"); state != "" {
				filter = []any{"state", "==", state}
			}
			tasks, err := r.api.ListTasks(ctx, filter)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"tasks": tasks, "count": len(tasks)})
		},
	})

	r.register(Tool{
		Name:        "get_task_status",
		Description: "Get the current status of a task by ID, including state, progress and per-line detail.",
		InputSchema: objectSchema([]string{"task_id"}, map[string]prop{
			"task_id": {Type: "integer", Desc: "Task ID to inspect"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			payload, err := r.api.GetTask(ctx, args.Int("task_id"))
			if err != nil {
				return errResult(err)
			}
			state := task.TaskState(payload)
			return okResult(map[string]any{
				"task":     rawField(payload),
				"state":    string(state),
				"terminal": state.Terminal(),
				"percent":  task.TaskPercent(payload),
			})
		},
	})

	r.register(Tool{
		Name:        "get_task_lines",
		Description: "Get the per-device line entries of a task.",
		InputSchema: objectSchema([]string{"task_id"}, map[string]prop{
			"task_id": {Type: "integer", Desc: "Task ID to inspect"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			lines, err := r.api.GetTaskLines(ctx, args.Int("task_id"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"lines": lines, "count": len(lines)})
		},
	})

	r.register(Tool{
		Name:        "wait_for_task",
		Description: "Poll a task until it reaches a terminal state (done, error or cancelled) or the timeout elapses.",
		InputSchema: objectSchema([]string{"task_id"}, map[string]prop{
			"task_id":       {Type: "integer", Desc: "Task ID to wait for"},
			"timeout":       {Type: "integer", Desc: "Maximum seconds to wait (default 300)"},
			"poll_interval": {Type: "integer", Desc: "Seconds between polls (default 5)"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			opts := task.WaitOptions{
				Timeout:      r.opts.TaskTimeout,
				PollInterval: r.opts.TaskPollInterval,
			}
			if args.Has("timeout") {
				opts.Timeout = time.Duration(args.Int("timeout")) * time.Second
			}
			if args.Has("poll_interval") {
				opts.PollInterval = time.Duration(args.Int("poll_interval")) * time.Second
			}

			result, err := task.WaitForTask(ctx, r.api, args.Int("task_id"), opts)
			if err != nil {
				return errResult(err)
			}

			status := "error"
			if result.Success {
				status = "success"
			}
			return map[string]any{
				"status":    status,
				"completed": result.Completed,
				"state":     string(result.State),
				"message":   result.Message,
				"task":      rawField(result.Task),
			}
		},
	})

	r.register(Tool{
		Name:        "lock_adom",
		Description: "Acquire the workspace lock on an ADOM.",
		InputSchema: objectSchema([]string{"adom"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			if err := r.api.LockADOM(ctx, adom); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "ADOM " + adom + " locked"})
		},
	})

	r.register(Tool{
		Name:        "unlock_adom",
		Description: "Release the workspace lock on an ADOM.",
		InputSchema: objectSchema([]string{"adom"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			if err := r.api.UnlockADOM(ctx, adom); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "ADOM " + adom + " unlocked"})
		},
	})

	r.register(Tool{
		Name:        "commit_adom",
		Description: "Commit pending workspace changes in an ADOM.",
		InputSchema: objectSchema([]string{"adom"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			if err := r.api.CommitADOM(ctx, adom); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "ADOM " + adom + " committed"})
		},
	})
}

// queryOptions translates the common optional list arguments.
func queryOptions(args Args) *fmg.QueryOptions {
	fields := args.StringSlice("fields")
	filter := args.AnySlice("filter")
	if len(fields) == 0 && len(filter) == 0 {
		return nil
	}
	return &fmg.QueryOptions{Fields: fields, Filter: filter}
}
