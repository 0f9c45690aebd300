package tools

import (
	"context"

	"fmg-mcp/internal/fmg"
	"fmg-mcp/internal/validation"
)

func registerScriptTools(r *Registry) {
	r.register(Tool{
		Name:        "list_scripts",
		Description: "List CLI scripts in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			scripts, err := r.api.ListScripts(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"scripts": scripts, "count": len(scripts)})
		},
	})

	r.register(Tool{
		Name:        "get_script",
		Description: "Get one CLI script by name, including its content.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Script name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "script")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetScript(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"script": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_script",
		Description: "Create a CLI script in an ADOM. Target remote_device runs it on the device, device_database or remote_fortigate stage it.",
		InputSchema: objectSchema([]string{"name", "content"}, map[string]prop{
			"adom":        {Type: "string", Desc: "ADOM name"},
			"name":        {Type: "string", Desc: "Script name"},
			"content":     {Type: "string", Desc: "CLI script body"},
			"target":      {Type: "string", Desc: "Execution target", Enum: []string{"device_database", "remote_device", "adom_database"}},
			"description": {Type: "string", Desc: "Optional description"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "script")
			if err != nil {
				return errResult(err)
			}
			script := map[string]any{
				"name":    name,
				"content": args.String("content"),
				"type":    "cli",
				"target":  args.StringOr("target", "device_database"),
			}
			if desc := args.String("description"); desc != "" {
				script["desc"] = desc
			}
			result, err := r.api.CreateScript(ctx, adom, script)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "update_script",
		Description: "Update fields of an existing CLI script.",
		InputSchema: objectSchema([]string{"name", "data"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Script name"},
			"data": {Type: "object", Desc: "Fields to change"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "script")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.UpdateScript(ctx, adom, name, args.Map("data"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_script",
		Description: "Delete a CLI script.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Script name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "script")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteScript(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "script " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "execute_script",
		Description: "Run a CLI script on one or more devices or VDOMs. Returns a task ID to poll with wait_for_task.",
		InputSchema: objectSchema([]string{"script", "scope"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"script":  {Type: "string", Desc: "Script name"},
			"scope":   {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
			"package": {Type: "string", Desc: "Run against a policy package instead of devices"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			script, err := validation.ObjectName(args.String("script"), "script")
			if err != nil {
				return errResult(err)
			}
			var pkg any
			if p := args.String("package"); p != "" {
				if p, err = validation.PackageName(p); err != nil {
					return errResult(err)
				}
				pkg = p
			}
			result, err := r.api.ExecuteScript(ctx, adom, script, args.Scopes("scope"), pkg)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "execute_script_on_device_group",
		Description: "Run a CLI script against every member of a device group. Returns a task ID to poll with wait_for_task.",
		InputSchema: objectSchema([]string{"script", "group"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"script": {Type: "string", Desc: "Script name"},
			"group":  {Type: "string", Desc: "Device group name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			script, err := validation.ObjectName(args.String("script"), "script")
			if err != nil {
				return errResult(err)
			}
			scope := []fmg.Scope{{Name: args.String("group")}}
			result, err := r.api.ExecuteScript(ctx, adom, script, scope, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "get_script_log_latest",
		Description: "Get the most recent script execution log for a device.",
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
			data, err := r.api.GetScriptLogLatest(ctx, adom, device)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"log": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "get_script_log_summary",
		Description: "List past script executions for a device.",
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
			entries, err := r.api.GetScriptLogSummary(ctx, adom, device)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"logs": entries, "count": len(entries)})
		},
	})

	r.register(Tool{
		Name:        "get_script_log_output",
		Description: "Get the full output of one past script execution by log ID.",
		InputSchema: objectSchema([]string{"log_id"}, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"log_id": {Type: "integer", Desc: "Script log ID from get_script_log_summary"},
			"device": {Type: "string", Desc: "Device name"},
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
			data, err := r.api.GetScriptLogOutput(ctx, adom, args.Int("log_id"), device)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"output": rawField(data)})
		},
	})
}
