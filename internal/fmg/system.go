package fmg

import (
	"context"
	"encoding/json"
	"fmt"
)

// QueryOptions carries the optional query parameters shared by most
// dvmdb and pm GET endpoints.
type QueryOptions struct {
	Fields  []string
	Filter  []any
	LoadSub int
	Range   []int
	Option  []string
}

func (o *QueryOptions) params(withLoadSub bool) map[string]any {
	params := map[string]any{}
	if withLoadSub {
		params["loadsub"] = 0
	}
	if o == nil {
		return params
	}
	if withLoadSub {
		params["loadsub"] = o.LoadSub
	}
	if len(o.Fields) > 0 {
		params["fields"] = o.Fields
	}
	if len(o.Filter) > 0 {
		params["filter"] = o.Filter
	}
	if len(o.Range) > 0 {
		params["range"] = o.Range
	}
	if len(o.Option) > 0 {
		params["option"] = o.Option
	}
	return params
}

// GetSystemStatus returns FortiManager system status and version info.
//
// FNDN: GET /sys/status
func (c *Client) GetSystemStatus(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/sys/status", nil)
}

// GetHAStatus returns high-availability cluster status.
//
// FNDN: GET /sys/ha/status
func (c *Client) GetHAStatus(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/sys/ha/status", nil)
}

// ListADOMs lists all administrative domains.
//
// FNDN: GET /dvmdb/adom
func (c *Client) ListADOMs(ctx context.Context, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, "/dvmdb/adom", opts.params(true))
}

// GetADOM fetches one ADOM. loadSub of 1 includes sub-objects.
//
// FNDN: GET /dvmdb/adom/{adom}
func (c *Client) GetADOM(ctx context.Context, name string, loadSub int) (json.RawMessage, error) {
	return c.Get(ctx, "/dvmdb/adom/"+name, map[string]any{"loadsub": loadSub})
}

// ListTasks lists tasks, optionally filtered.
//
// FNDN: GET /task/task
func (c *Client) ListTasks(ctx context.Context, filter []any) ([]map[string]any, error) {
	params := map[string]any{}
	if len(filter) > 0 {
		params["filter"] = filter
	}
	return c.getList(ctx, "/task/task", params)
}

// GetTask fetches the current status of one task. This is the single
// capability the task poller consumes.
//
// FNDN: GET /task/task/{task_id}
func (c *Client) GetTask(ctx context.Context, taskID int) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/task/task/%d", taskID), nil)
}

// GetTaskLines fetches per-target line details for a task.
//
// FNDN: GET /task/task/{task_id}/line
func (c *Client) GetTaskLines(ctx context.Context, taskID int) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/task/task/%d/line", taskID), nil)
}

// LockADOM locks an ADOM for editing (workspace mode).
//
// FNDN: EXEC /dvmdb/adom/{adom}/workspace/lock
func (c *Client) LockADOM(ctx context.Context, adom string) error {
	_, err := c.Exec(ctx, fmt.Sprintf("/dvmdb/adom/%s/workspace/lock", adom), nil)
	return err
}

// UnlockADOM releases the workspace lock on an ADOM.
//
// FNDN: EXEC /dvmdb/adom/{adom}/workspace/unlock
func (c *Client) UnlockADOM(ctx context.Context, adom string) error {
	_, err := c.Exec(ctx, fmt.Sprintf("/dvmdb/adom/%s/workspace/unlock", adom), nil)
	return err
}

// CommitADOM commits pending workspace changes on an ADOM.
//
// FNDN: EXEC /dvmdb/adom/{adom}/workspace/commit
func (c *Client) CommitADOM(ctx context.Context, adom string) error {
	_, err := c.Exec(ctx, fmt.Sprintf("/dvmdb/adom/%s/workspace/commit", adom), nil)
	return err
}

// ProxyCall executes a REST API call on a managed device through the
// FortiManager proxy.
//
// FNDN: EXEC /sys/proxy/json
func (c *Client) ProxyCall(ctx context.Context, action, resource string, target []string, payload map[string]any) (json.RawMessage, error) {
	req := map[string]any{
		"action":   action,
		"resource": resource,
		"target":   target,
	}
	if len(payload) > 0 {
		req["payload"] = payload
	}
	return c.Exec(ctx, "/sys/proxy/json", map[string]any{"data": req})
}
