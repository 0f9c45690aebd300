package fmg

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListDevices lists managed devices in an ADOM.
//
// FNDN: GET /dvmdb/adom/{adom}/device
func (c *Client) ListDevices(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/dvmdb/adom/%s/device", adom), opts.params(true))
}

// GetDevice fetches one managed device.
//
// FNDN: GET /dvmdb/adom/{adom}/device/{device}
func (c *Client) GetDevice(ctx context.Context, adom, device string, loadSub int) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/dvmdb/adom/%s/device/%s", adom, device), map[string]any{"loadsub": loadSub})
}

// ListDeviceVDOMs lists virtual domains of a device.
//
// FNDN: GET /dvmdb/adom/{adom}/device/{device}/vdom
func (c *Client) ListDeviceVDOMs(ctx context.Context, adom, device string) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/dvmdb/adom/%s/device/%s/vdom", adom, device), nil)
}

// ListDeviceGroups lists device groups in an ADOM.
//
// FNDN: GET /dvmdb/adom/{adom}/group
func (c *Client) ListDeviceGroups(ctx context.Context, adom string) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/dvmdb/adom/%s/group", adom), nil)
}

// deviceStatusFields are the fields requested for status queries.
var deviceStatusFields = []string{
	"name", "ip", "sn", "conn_status", "conf_status",
	"db_status", "dev_status", "os_ver", "platform_str",
}

// GetDeviceStatus returns connection and sync status fields for all
// devices, or for a single named device.
//
// FNDN: GET /dvmdb/adom/{adom}/device with status fields
func (c *Client) GetDeviceStatus(ctx context.Context, adom, device string) ([]map[string]any, error) {
	opts := &QueryOptions{Fields: deviceStatusFields}
	if device != "" {
		opts.Filter = []any{"name", "==", device}
	}
	return c.ListDevices(ctx, adom, opts)
}

// AddDevice registers a device with FortiManager. The device map uses
// vendor field names (name, ip, adm_usr, adm_pass, sn, mgmt_mode,
// "device action").
//
// FNDN: EXEC /dvm/cmd/add/device
func (c *Client) AddDevice(ctx context.Context, adom string, device map[string]any, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "device": device}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/dvm/cmd/add/device", map[string]any{"data": data})
}

// DeleteDevice removes a device registration.
//
// FNDN: EXEC /dvm/cmd/del/device
func (c *Client) DeleteDevice(ctx context.Context, adom, device string, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "device": device}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/dvm/cmd/del/device", map[string]any{"data": data})
}

// AddDeviceList registers multiple devices in one call.
//
// FNDN: EXEC /dvm/cmd/add/dev-list
func (c *Client) AddDeviceList(ctx context.Context, adom string, devices []map[string]any, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "add-dev-list": devices}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/dvm/cmd/add/dev-list", map[string]any{"data": data})
}

// DeleteDeviceList removes multiple device registrations in one call.
//
// FNDN: EXEC /dvm/cmd/del/dev-list
func (c *Client) DeleteDeviceList(ctx context.Context, adom string, devices []map[string]any, flags []string) (json.RawMessage, error) {
	data := map[string]any{"adom": adom, "del-dev-member-list": devices}
	if len(flags) > 0 {
		data["flags"] = flags
	}
	return c.Exec(ctx, "/dvm/cmd/del/dev-list", map[string]any{"data": data})
}

// UpdateDevice updates device properties (description, location, ...).
//
// FNDN: UPDATE /dvmdb/adom/{adom}/device/{device}
func (c *Client) UpdateDevice(ctx context.Context, adom, device string, data map[string]any) (json.RawMessage, error) {
	return c.Update(ctx, fmt.Sprintf("/dvmdb/adom/%s/device/%s", adom, device), map[string]any{"data": data})
}

// ReloadDeviceList forces FortiManager to refresh its device cache.
//
// FNDN: EXEC /dvm/cmd/reload/dev-list
func (c *Client) ReloadDeviceList(ctx context.Context, adom string) error {
	_, err := c.Exec(ctx, "/dvm/cmd/reload/dev-list", map[string]any{"data": map[string]any{"adom": adom}})
	return err
}
