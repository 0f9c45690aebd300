package tools

import (
	"context"
	"fmt"
	"strings"

	"fmg-mcp/internal/validation"
)

// Numeric status fields on /dvmdb/device entries and their meanings.
var (
	connStatusLabels = map[int]string{0: "unknown", 1: "up", 2: "down"}
	confStatusLabels = map[int]string{0: "unknown", 1: "in_sync", 2: "out_of_sync"}
	dbStatusLabels   = map[int]string{0: "unknown", 1: "no_changes", 2: "modified"}
	devStatusLabels  = map[int]string{
		0: "none", 1: "unknown", 2: "checked_in",
		3: "in_progress", 4: "installed", 5: "aborted",
	}
)

// decodeStatusLabel turns a numeric status field into its label,
// passing through values that are already strings.
func decodeStatusLabel(value any, labels map[int]string) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if label, ok := labels[int(v)]; ok {
			return label
		}
		return fmt.Sprintf("unrecognized (%d)", int(v))
	case int:
		if label, ok := labels[v]; ok {
			return label
		}
		return fmt.Sprintf("unrecognized (%d)", v)
	}
	return "unknown"
}

// decodeDeviceStatuses annotates a device entry with decoded labels.
func decodeDeviceStatuses(device map[string]any) map[string]any {
	decoded := make(map[string]any, len(device)+4)
	for k, v := range device {
		decoded[k] = v
	}
	if v, ok := device["conn_status"]; ok {
		decoded["conn_status_label"] = decodeStatusLabel(v, connStatusLabels)
	}
	if v, ok := device["conf_status"]; ok {
		decoded["conf_status_label"] = decodeStatusLabel(v, confStatusLabels)
	}
	if v, ok := device["db_status"]; ok {
		decoded["db_status_label"] = decodeStatusLabel(v, dbStatusLabels)
	}
	if v, ok := device["dev_status"]; ok {
		decoded["dev_status_label"] = decodeStatusLabel(v, devStatusLabels)
	}
	return decoded
}

func registerDeviceTools(r *Registry) {
	r.register(Tool{
		Name:        "list_devices",
		Description: "List managed devices in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name (defaults to the configured ADOM)"},
			"fields": {Type: "array", Items: "string", Desc: "Fields to return for each device"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			devices, err := r.api.ListDevices(ctx, adom, queryOptions(args))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"devices": devices, "count": len(devices)})
		},
	})

	r.register(Tool{
		Name:        "get_device",
		Description: "Get details for one managed device.",
		InputSchema: objectSchema([]string{"device"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"device":   {Type: "string", Desc: "Device name"},
			"load_sub": {Type: "integer", Desc: "Set to 1 to include VDOM sub-tables"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device, err := validation.DeviceName(args.String("device"))
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetDevice(ctx, adom, device, args.Int("load_sub"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"device": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "list_device_vdoms",
		Description: "List the VDOMs of a managed device.",
		InputSchema: objectSchema([]string{"device"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"device": {Type: "string", Desc: "Device name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device, err := validation.DeviceName(args.String("device"))
			if err != nil {
				return errResult(err)
			}
			vdoms, err := r.api.ListDeviceVDOMs(ctx, adom, device)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"vdoms": vdoms, "count": len(vdoms)})
		},
	})

	r.register(Tool{
		Name:        "list_device_groups",
		Description: "List device groups in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			groups, err := r.api.ListDeviceGroups(ctx, adom)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"groups": groups, "count": len(groups)})
		},
	})

	r.register(Tool{
		Name:        "get_device_status",
		Description: "Get connection, configuration and database sync status for devices, with numeric codes decoded to labels.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"device": {Type: "string", Desc: "Restrict to one device by name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device := args.String("device")
			if device != "" {
				if device, err = validation.DeviceName(device); err != nil {
					return errResult(err)
				}
			}
			devices, err := r.api.GetDeviceStatus(ctx, adom, device)
			if err != nil {
				return errResult(err)
			}
			decoded := make([]map[string]any, 0, len(devices))
			for _, d := range devices {
				decoded = append(decoded, decodeDeviceStatuses(d))
			}
			return okResult(map[string]any{"devices": decoded, "count": len(decoded)})
		},
	})

	r.register(Tool{
		Name:        "search_devices",
		Description: "Search devices by name, IP or serial number substring.",
		InputSchema: objectSchema([]string{"query"}, map[string]prop{
			"adom":  {Type: "string", Desc: "ADOM name"},
			"query": {Type: "string", Desc: "Case-insensitive substring to match"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			devices, err := r.api.ListDevices(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			query := strings.ToLower(args.String("query"))
			matches := make([]map[string]any, 0)
			for _, d := range devices {
				for _, field := range []string{"name", "ip", "sn", "hostname"} {
					if s, ok := d[field].(string); ok && strings.Contains(strings.ToLower(s), query) {
						matches = append(matches, d)
						break
					}
				}
			}
			return okResult(map[string]any{"devices": matches, "count": len(matches)})
		},
	})

	r.register(Tool{
		Name:        "add_device",
		Description: "Add a real device to an ADOM by discovering it at its management IP.",
		InputSchema: objectSchema([]string{"name", "ip", "admin_user", "admin_password"}, map[string]prop{
			"adom":           {Type: "string", Desc: "ADOM name"},
			"name":           {Type: "string", Desc: "Device name to register"},
			"ip":             {Type: "string", Desc: "Management IP address"},
			"admin_user":     {Type: "string", Desc: "Device admin user"},
			"admin_password": {Type: "string", Desc: "Device admin password"},
			"description":    {Type: "string", Desc: "Optional description"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.DeviceName(args.String("name"))
			if err != nil {
				return errResult(err)
			}
			ip, err := validation.IPv4Address(args.String("ip"))
			if err != nil {
				return errResult(err)
			}
			device := map[string]any{
				"name":      name,
				"ip":        ip,
				"adm_usr":   args.String("admin_user"),
				"adm_pass":  args.String("admin_password"),
				"mgmt_mode": "fmg",
			}
			if desc := args.String("description"); desc != "" {
				device["desc"] = desc
			}
			result, err := r.api.AddDevice(ctx, adom, device, []string{"create_task", "nonblocking"})
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "add_model_device",
		Description: "Add a model device to an ADOM by serial number, for zero-touch provisioning.",
		InputSchema: objectSchema([]string{"name", "serial", "platform"}, map[string]prop{
			"adom":        {Type: "string", Desc: "ADOM name"},
			"name":        {Type: "string", Desc: "Device name to register"},
			"serial":      {Type: "string", Desc: "Device serial number"},
			"platform":    {Type: "string", Desc: "Platform name, e.g. FortiGate-100F"},
			"os_version":  {Type: "string", Desc: "OS major version, e.g. 7.0"},
			"description": {Type: "string", Desc: "Optional description"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.DeviceName(args.String("name"))
			if err != nil {
				return errResult(err)
			}
			serial, err := validation.DeviceSerial(args.String("serial"))
			if err != nil {
				return errResult(err)
			}
			device := map[string]any{
				"name":          name,
				"sn":            serial,
				"platform_str":  args.String("platform"),
				"device action": "add_model",
				"mgmt_mode":     "fmg",
				"os_type":       "fos",
			}
			if v := args.String("os_version"); v != "" {
				device["os_ver"] = v
			}
			if desc := args.String("description"); desc != "" {
				device["desc"] = desc
			}
			result, err := r.api.AddDevice(ctx, adom, device, []string{"create_task", "nonblocking"})
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_device",
		Description: "Remove a device from an ADOM.",
		InputSchema: objectSchema([]string{"device"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"device": {Type: "string", Desc: "Device name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device, err := validation.DeviceName(args.String("device"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.DeleteDevice(ctx, adom, device, []string{"create_task", "nonblocking"})
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "add_devices_bulk",
		Description: "Add several model devices in one call.",
		InputSchema: objectSchema([]string{"devices"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"devices": {Type: "array", Items: "object", Desc: "Device entries with name, sn and platform_str"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			devices := args.MapSlice("devices")
			for _, d := range devices {
				d["device action"] = "add_model"
				d["mgmt_mode"] = "fmg"
			}
			result, err := r.api.AddDeviceList(ctx, adom, devices, []string{"create_task", "nonblocking"})
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_devices_bulk",
		Description: "Remove several devices in one call.",
		InputSchema: objectSchema([]string{"devices"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"devices": {Type: "array", Items: "string", Desc: "Device names to remove"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			names := args.StringSlice("devices")
			devices := make([]map[string]any, 0, len(names))
			for _, name := range names {
				validated, err := validation.DeviceName(name)
				if err != nil {
					return errResult(err)
				}
				devices = append(devices, map[string]any{"name": validated})
			}
			result, err := r.api.DeleteDeviceList(ctx, adom, devices, []string{"create_task", "nonblocking"})
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "update_device",
		Description: "Update attributes of a managed device, such as its description or timezone.",
		InputSchema: objectSchema([]string{"device", "data"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"device": {Type: "string", Desc: "Device name"},
			"data":   {Type: "object", Desc: "Attributes to change"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device, err := validation.DeviceName(args.String("device"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.UpdateDevice(ctx, adom, device, args.Map("data"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "reload_device_list",
		Description: "Refresh the device list of an ADOM from the managed devices.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			if err := r.api.ReloadDeviceList(ctx, adom); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "device list reload triggered for ADOM " + adom})
		},
	})

	r.register(Tool{
		Name:        "get_device_realtime_status",
		Description: "Query a device's live system status through the FortiManager API proxy.",
		InputSchema: objectSchema([]string{"device"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"device": {Type: "string", Desc: "Device name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device, err := validation.DeviceName(args.String("device"))
			if err != nil {
				return errResult(err)
			}
			target := []string{"adom/" + adom + "/device/" + device}
			result, err := r.api.ProxyCall(ctx, "get", "/api/v2/monitor/system/status", target, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "get_device_interfaces",
		Description: "Query a device's live interface table through the FortiManager API proxy.",
		InputSchema: objectSchema([]string{"device"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"device": {Type: "string", Desc: "Device name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			device, err := validation.DeviceName(args.String("device"))
			if err != nil {
				return errResult(err)
			}
			target := []string{"adom/" + adom + "/device/" + device}
			result, err := r.api.ProxyCall(ctx, "get", "/api/v2/monitor/system/interface", target, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})
}
