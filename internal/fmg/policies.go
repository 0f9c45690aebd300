package fmg

import (
	"context"
	"encoding/json"
	"fmt"
)

// Scope identifies an installation or assignment target.
type Scope struct {
	Name string `json:"name"`
	VDOM string `json:"vdom,omitempty"`
}

// ListPackages lists policy packages in an ADOM.
//
// FNDN: GET /pm/pkg/adom/{adom}
func (c *Client) ListPackages(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/pkg/adom/%s", adom), opts.params(false))
}

// GetPackage fetches one policy package.
//
// FNDN: GET /pm/pkg/adom/{adom}/{pkg}
func (c *Client) GetPackage(ctx context.Context, adom, pkg string, loadSub int) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/pkg/adom/%s/%s", adom, pkg), map[string]any{"loadsub": loadSub})
}

// CreatePackage creates a policy package.
//
// FNDN: ADD /pm/pkg/adom/{adom}
func (c *Client) CreatePackage(ctx context.Context, adom, name string, settings map[string]any) (json.RawMessage, error) {
	data := map[string]any{"name": name, "type": "pkg"}
	if len(settings) > 0 {
		data["package settings"] = settings
	}
	return c.Add(ctx, fmt.Sprintf("/pm/pkg/adom/%s", adom), map[string]any{"data": data})
}

// DeletePackage removes a policy package.
//
// FNDN: DELETE /pm/pkg/adom/{adom}/{pkg}
func (c *Client) DeletePackage(ctx context.Context, adom, pkg string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/pkg/adom/%s/%s", adom, pkg), nil)
	return err
}

// ClonePackage clones a policy package under a new name.
//
// FNDN: EXEC /securityconsole/package/clone
func (c *Client) ClonePackage(ctx context.Context, adom, pkg, newName string) (json.RawMessage, error) {
	return c.Exec(ctx, "/securityconsole/package/clone", map[string]any{"data": map[string]any{
		"adom":     adom,
		"pkg":      pkg,
		"new_name": newName,
	}})
}

// AssignPackage sets the package's installation scope members.
//
// FNDN: UPDATE /pm/pkg/adom/{adom}/{pkg}
func (c *Client) AssignPackage(ctx context.Context, adom, pkg string, scope []Scope) (json.RawMessage, error) {
	return c.Update(ctx, fmt.Sprintf("/pm/pkg/adom/%s/%s", adom, pkg), map[string]any{"data": map[string]any{"scope member": scope}})
}

// InstallPackage installs a policy package to target devices. The
// returned payload carries the task ID for monitoring.
//
// FNDN: EXEC /securityconsole/install/package
func (c *Client) InstallPackage(ctx context.Context, adom, pkg string, scope []Scope, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "pkg": pkg, "scope": scope}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/securityconsole/install/package", map[string]any{"data": data})
}

// InstallDevice installs device-level settings without a policy package.
//
// FNDN: EXEC /securityconsole/install/device
func (c *Client) InstallDevice(ctx context.Context, adom string, scope []Scope, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "scope": scope}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/securityconsole/install/device", map[string]any{"data": data})
}

// InstallPreview generates an installation preview without applying.
//
// FNDN: EXEC /securityconsole/install/preview
func (c *Client) InstallPreview(ctx context.Context, adom string, scope []Scope, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "scope": scope}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/securityconsole/install/preview", map[string]any{"data": data})
}

// GetPreviewResult fetches the result of a completed preview task.
//
// FNDN: EXEC /securityconsole/preview/result
func (c *Client) GetPreviewResult(ctx context.Context, adom string, scope []Scope) (json.RawMessage, error) {
	return c.Exec(ctx, "/securityconsole/preview/result", map[string]any{"data": map[string]any{"adom": adom, "scope": scope}})
}

// ListFirewallPolicies lists firewall policies in a package.
//
// FNDN: GET /pm/config/adom/{adom}/pkg/{pkg}/firewall/policy
func (c *Client) ListFirewallPolicies(ctx context.Context, adom, pkg string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy", adom, pkg), opts.params(true))
}

// GetFirewallPolicy fetches one firewall policy by ID.
//
// FNDN: GET /pm/config/adom/{adom}/pkg/{pkg}/firewall/policy/{policyid}
func (c *Client) GetFirewallPolicy(ctx context.Context, adom, pkg string, policyID, loadSub int) (json.RawMessage, error) {
	url := fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy/%d", adom, pkg, policyID)
	return c.Get(ctx, url, map[string]any{"loadsub": loadSub})
}

// GetFirewallPolicyCount returns the number of policies in a package.
//
// FNDN: GET .../firewall/policy with option=count
func (c *Client) GetFirewallPolicyCount(ctx context.Context, adom, pkg string) (int, error) {
	raw, err := c.Get(ctx, fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy", adom, pkg), map[string]any{"option": []string{"count"}})
	if err != nil {
		return 0, err
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, nil
	}
	return count, nil
}

// CreateFirewallPolicy creates a firewall policy in a package.
//
// FNDN: ADD /pm/config/adom/{adom}/pkg/{pkg}/firewall/policy
func (c *Client) CreateFirewallPolicy(ctx context.Context, adom, pkg string, policy map[string]any) (json.RawMessage, error) {
	url := fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy", adom, pkg)
	return c.Add(ctx, url, map[string]any{"data": policy})
}

// UpdateFirewallPolicy updates fields on an existing policy.
//
// FNDN: UPDATE /pm/config/adom/{adom}/pkg/{pkg}/firewall/policy/{policyid}
func (c *Client) UpdateFirewallPolicy(ctx context.Context, adom, pkg string, policyID int, data map[string]any) (json.RawMessage, error) {
	url := fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy/%d", adom, pkg, policyID)
	return c.Update(ctx, url, map[string]any{"data": data})
}

// DeleteFirewallPolicy removes one policy.
//
// FNDN: DELETE /pm/config/adom/{adom}/pkg/{pkg}/firewall/policy/{policyid}
func (c *Client) DeleteFirewallPolicy(ctx context.Context, adom, pkg string, policyID int) error {
	url := fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy/%d", adom, pkg, policyID)
	_, err := c.Delete(ctx, url, nil)
	return err
}

// DeleteFirewallPolicies removes multiple policies by ID using a filter
// delete.
//
// FNDN: DELETE .../firewall/policy with filter
func (c *Client) DeleteFirewallPolicies(ctx context.Context, adom, pkg string, policyIDs []int) error {
	filter := []any{"policyid", "in"}
	for _, id := range policyIDs {
		filter = append(filter, id)
	}
	url := fmt.Sprintf("/pm/config/adom/%s/pkg/%s/firewall/policy", adom, pkg)
	_, err := c.Delete(ctx, url, map[string]any{"data": map[string]any{"confirm": 1, "filter": filter}})
	return err
}

// MoveFirewallPolicy moves a policy before or after a target policy.
//
// FNDN: EXEC /securityconsole/move
func (c *Client) MoveFirewallPolicy(ctx context.Context, adom, pkg string, policyID, target int, option string) (json.RawMessage, error) {
	return c.Exec(ctx, "/securityconsole/move", map[string]any{"data": map[string]any{
		"adom":     adom,
		"pkg":      pkg,
		"policyid": policyID,
		"target":   target,
		"option":   option,
	}})
}
