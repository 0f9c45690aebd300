package fmg

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListScripts lists CLI scripts in an ADOM.
//
// FNDN: GET /dvmdb/adom/{adom}/script
func (c *Client) ListScripts(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/dvmdb/adom/%s/script", adom), opts.params(false))
}

// GetScript fetches one CLI script.
func (c *Client) GetScript(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/dvmdb/adom/%s/script/%s", adom, name), nil)
}

// CreateScript creates a CLI script. The map uses vendor field names
// (name, content, type, target, desc).
//
// FNDN: ADD /dvmdb/adom/{adom}/script
func (c *Client) CreateScript(ctx context.Context, adom string, script map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/dvmdb/adom/%s/script", adom), map[string]any{"data": script})
}

// UpdateScript updates fields on a CLI script.
func (c *Client) UpdateScript(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error) {
	return c.Update(ctx, fmt.Sprintf("/dvmdb/adom/%s/script/%s", adom, name), map[string]any{"data": data})
}

// DeleteScript removes a CLI script.
func (c *Client) DeleteScript(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/dvmdb/adom/%s/script/%s", adom, name), nil)
	return err
}

// ExecuteScript runs a CLI script. scope targets devices or device
// groups for remote execution; pkg selects the package for
// adom_database scripts. The returned payload carries the task ID.
//
// FNDN: EXEC /dvmdb/adom/{adom}/script/execute
func (c *Client) ExecuteScript(ctx context.Context, adom, script string, scope []Scope, pkg any) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "script": script}
	if len(scope) > 0 {
		data["scope"] = scope
	}
	if pkg != nil {
		data["package"] = pkg
	}
	return c.Exec(ctx, fmt.Sprintf("/dvmdb/adom/%s/script/execute", adom), map[string]any{"data": data})
}

// GetScriptLogLatest fetches the latest script execution log, optionally
// restricted to one device.
//
// FNDN: GET /dvmdb/adom/{adom}/script/log/latest[/device/{device}]
func (c *Client) GetScriptLogLatest(ctx context.Context, adom, device string) (json.RawMessage, error) {
	url := fmt.Sprintf("/dvmdb/adom/%s/script/log/latest", adom)
	if device != "" {
		url += "/device/" + device
	}
	return c.Get(ctx, url, nil)
}

// GetScriptLogSummary fetches the script execution log summary.
//
// FNDN: GET /dvmdb/adom/{adom}/script/log/summary[/device/{device}]
func (c *Client) GetScriptLogSummary(ctx context.Context, adom, device string) ([]map[string]any, error) {
	url := fmt.Sprintf("/dvmdb/adom/%s/script/log/summary", adom)
	if device != "" {
		url += "/device/" + device
	}
	return c.getList(ctx, url, nil)
}

// GetScriptLogOutput fetches the output of one script execution.
//
// FNDN: GET /dvmdb/adom/{adom}/script/log/output/[device/{device}/]logid/{log_id}
func (c *Client) GetScriptLogOutput(ctx context.Context, adom string, logID int, device string) (json.RawMessage, error) {
	var url string
	if device != "" {
		url = fmt.Sprintf("/dvmdb/adom/%s/script/log/output/device/%s/logid/%d", adom, device, logID)
	} else {
		url = fmt.Sprintf("/dvmdb/adom/%s/script/log/output/logid/%d", adom, logID)
	}
	return c.Get(ctx, url, nil)
}
