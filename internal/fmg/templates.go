package fmg

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListTemplates lists provisioning templates in an ADOM.
//
// FNDN: GET /pm/template/adom/{adom}
func (c *Client) ListTemplates(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/template/adom/%s", adom), opts.params(false))
}

// GetTemplate fetches one provisioning template.
func (c *Client) GetTemplate(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/template/adom/%s/%s", adom, name), nil)
}

// ListSystemTemplates lists system templates (devprof).
//
// FNDN: GET /pm/devprof/adom/{adom}
func (c *Client) ListSystemTemplates(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/devprof/adom/%s", adom), opts.params(false))
}

// GetSystemTemplate fetches one system template.
func (c *Client) GetSystemTemplate(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/devprof/adom/%s/%s", adom, name), nil)
}

// AssignSystemTemplate adds devices to a system template's scope.
//
// FNDN: ADD /pm/devprof/adom/{adom}/{template}/scope member
func (c *Client) AssignSystemTemplate(ctx context.Context, adom, template string, scope []Scope) (json.RawMessage, error) {
	url := fmt.Sprintf("/pm/devprof/adom/%s/%s/scope member", adom, template)
	return c.Add(ctx, url, map[string]any{"data": scope})
}

// UnassignSystemTemplate removes devices from a system template's scope.
//
// FNDN: DELETE /pm/devprof/adom/{adom}/{template}/scope member
func (c *Client) UnassignSystemTemplate(ctx context.Context, adom, template string, scope []Scope) error {
	url := fmt.Sprintf("/pm/devprof/adom/%s/%s/scope member", adom, template)
	_, err := c.Delete(ctx, url, map[string]any{"data": scope})
	return err
}

// ListCLITemplateGroups lists CLI template groups.
//
// FNDN: GET /pm/config/adom/{adom}/obj/cli/template-group
func (c *Client) ListCLITemplateGroups(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/cli/template-group", adom), opts.params(false))
}

// GetCLITemplateGroup fetches one CLI template group.
func (c *Client) GetCLITemplateGroup(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/cli/template-group/%s", adom, name), nil)
}

// CreateCLITemplateGroup creates a CLI template group.
func (c *Client) CreateCLITemplateGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/cli/template-group", adom), map[string]any{"data": group})
}

// DeleteCLITemplateGroup removes a CLI template group.
func (c *Client) DeleteCLITemplateGroup(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/cli/template-group/%s", adom, name), nil)
	return err
}

// ListTemplateGroups lists template groups (tmplgrp).
//
// FNDN: GET /pm/tmplgrp/adom/{adom}
func (c *Client) ListTemplateGroups(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/tmplgrp/adom/%s", adom), opts.params(false))
}

// GetTemplateGroup fetches one template group.
func (c *Client) GetTemplateGroup(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/tmplgrp/adom/%s/%s", adom, name), nil)
}

// CreateTemplateGroup creates a template group.
func (c *Client) CreateTemplateGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/tmplgrp/adom/%s", adom), map[string]any{"data": group})
}

// AssignTemplateGroup adds devices to a template group's scope.
//
// FNDN: ADD /pm/tmplgrp/adom/{adom}/{group}/scope member
func (c *Client) AssignTemplateGroup(ctx context.Context, adom, group string, scope []Scope) (json.RawMessage, error) {
	url := fmt.Sprintf("/pm/tmplgrp/adom/%s/%s/scope member", adom, group)
	return c.Add(ctx, url, map[string]any{"data": scope})
}

// ValidateTemplate validates a template path against target devices.
// The returned payload carries the task ID.
//
// FNDN: EXEC /securityconsole/template/validate
func (c *Client) ValidateTemplate(ctx context.Context, adom, pkg string, scope []Scope) (json.RawMessage, error) {
	return c.Exec(ctx, "/securityconsole/template/validate", map[string]any{"data": map[string]any{
		"adom":  adom,
		"flag":  "json",
		"pkg":   pkg,
		"scope": scope,
	}})
}

// ListSDWANTemplates lists SD-WAN templates (wanprof).
//
// FNDN: GET /pm/wanprof/adom/{adom}
func (c *Client) ListSDWANTemplates(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/wanprof/adom/%s", adom), opts.params(false))
}

// GetSDWANTemplate fetches one SD-WAN template.
func (c *Client) GetSDWANTemplate(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/wanprof/adom/%s/%s", adom, name), nil)
}

// CreateSDWANTemplate creates an SD-WAN template.
func (c *Client) CreateSDWANTemplate(ctx context.Context, adom string, template map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/wanprof/adom/%s", adom), map[string]any{"data": template})
}

// DeleteSDWANTemplate removes an SD-WAN template.
func (c *Client) DeleteSDWANTemplate(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/wanprof/adom/%s/%s", adom, name), nil)
	return err
}

// AssignSDWANTemplate adds devices to an SD-WAN template's scope.
//
// FNDN: ADD /pm/wanprof/adom/{adom}/{template}/scope member
func (c *Client) AssignSDWANTemplate(ctx context.Context, adom, template string, scope []Scope) (json.RawMessage, error) {
	url := fmt.Sprintf("/pm/wanprof/adom/%s/%s/scope member", adom, template)
	return c.Add(ctx, url, map[string]any{"data": scope})
}

// UnassignSDWANTemplate removes devices from an SD-WAN template's scope.
//
// FNDN: DELETE /pm/wanprof/adom/{adom}/{template}/scope member
func (c *Client) UnassignSDWANTemplate(ctx context.Context, adom, template string, scope []Scope) error {
	url := fmt.Sprintf("/pm/wanprof/adom/%s/%s/scope member", adom, template)
	_, err := c.Delete(ctx, url, map[string]any{"data": scope})
	return err
}
