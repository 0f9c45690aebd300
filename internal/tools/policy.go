package tools

import (
	"context"

	"fmg-mcp/internal/validation"
)

func registerPolicyTools(r *Registry) {
	r.register(Tool{
		Name:        "list_policy_packages",
		Description: "List policy packages in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			packages, err := r.api.ListPackages(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"packages": packages, "count": len(packages)})
		},
	})

	r.register(Tool{
		Name:        "get_policy_package",
		Description: "Get details for one policy package.",
		InputSchema: objectSchema([]string{"package"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"package":  {Type: "string", Desc: "Policy package name"},
			"load_sub": {Type: "integer", Desc: "Set to 1 to include sub-tables"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetPackage(ctx, adom, pkg, args.Int("load_sub"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"package": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_policy_package",
		Description: "Create a policy package in an ADOM.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom":            {Type: "string", Desc: "ADOM name"},
			"name":            {Type: "string", Desc: "Package name"},
			"central_nat":     {Type: "boolean", Desc: "Enable central NAT"},
			"inspection_mode": {Type: "string", Desc: "flow or proxy", Enum: []string{"flow", "proxy"}},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.PackageName(args.String("name"))
			if err != nil {
				return errResult(err)
			}
			settings := map[string]any{}
			if args.Bool("central_nat") {
				settings["central-nat"] = "enable"
			}
			if mode := args.String("inspection_mode"); mode != "" {
				settings["inspection-mode"] = mode
			}
			result, err := r.api.CreatePackage(ctx, adom, name, settings)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_policy_package",
		Description: "Delete a policy package from an ADOM.",
		InputSchema: objectSchema([]string{"package"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"package": {Type: "string", Desc: "Policy package name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeletePackage(ctx, adom, pkg); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "package " + pkg + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "clone_policy_package",
		Description: "Clone a policy package under a new name.",
		InputSchema: objectSchema([]string{"package", "new_name"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"package":  {Type: "string", Desc: "Source package name"},
			"new_name": {Type: "string", Desc: "Name for the clone"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			newName, err := validation.PackageName(args.String("new_name"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.ClonePackage(ctx, adom, pkg, newName)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "assign_policy_package",
		Description: "Assign a policy package to devices or VDOMs.",
		InputSchema: objectSchema([]string{"package", "scope"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"package": {Type: "string", Desc: "Policy package name"},
			"scope":   {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.AssignPackage(ctx, adom, pkg, args.Scopes("scope"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "install_policy_package",
		Description: "Install a policy package to its assigned devices. Returns a task ID to poll with wait_for_task.",
		InputSchema: objectSchema([]string{"package"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"package": {Type: "string", Desc: "Policy package name"},
			"scope":   {Type: "array", Items: "scope", Desc: "Restrict the install to these targets"},
			"flags":   {Type: "array", Items: "string", Desc: "Install flags, e.g. preview or auto_lock_ws"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.InstallPackage(ctx, adom, pkg, args.Scopes("scope"), args.StringSlice("flags"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "install_device_settings",
		Description: "Install pending device-level settings to devices. Returns a task ID to poll with wait_for_task.",
		InputSchema: objectSchema([]string{"scope"}, map[string]prop{
			"adom":  {Type: "string", Desc: "ADOM name"},
			"scope": {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.InstallDevice(ctx, adom, args.Scopes("scope"), nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "preview_install",
		Description: "Generate an install preview for devices. Run the returned task to completion, then fetch the result with get_install_preview.",
		InputSchema: objectSchema([]string{"scope"}, map[string]prop{
			"adom":  {Type: "string", Desc: "ADOM name"},
			"scope": {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.InstallPreview(ctx, adom, args.Scopes("scope"), nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "get_install_preview",
		Description: "Fetch the diff produced by a completed preview_install task.",
		InputSchema: objectSchema([]string{"scope"}, map[string]prop{
			"adom":  {Type: "string", Desc: "ADOM name"},
			"scope": {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.GetPreviewResult(ctx, adom, args.Scopes("scope"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "list_firewall_policies",
		Description: "List firewall policies in a policy package.",
		InputSchema: objectSchema([]string{"package"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"package": {Type: "string", Desc: "Policy package name"},
			"fields":  {Type: "array", Items: "string", Desc: "Fields to return for each policy"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			policies, err := r.api.ListFirewallPolicies(ctx, adom, pkg, queryOptions(args))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"policies": policies, "count": len(policies)})
		},
	})

	r.register(Tool{
		Name:        "get_firewall_policy",
		Description: "Get one firewall policy by ID.",
		InputSchema: objectSchema([]string{"package", "policy_id"}, map[string]prop{
			"adom":      {Type: "string", Desc: "ADOM name"},
			"package":   {Type: "string", Desc: "Policy package name"},
			"policy_id": {Type: "integer", Desc: "Policy ID"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			policyID, err := validation.PolicyID(args.Int("policy_id"))
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetFirewallPolicy(ctx, adom, pkg, policyID, 0)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"policy": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "count_firewall_policies",
		Description: "Count the firewall policies in a policy package.",
		InputSchema: objectSchema([]string{"package"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"package": {Type: "string", Desc: "Policy package name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			count, err := r.api.GetFirewallPolicyCount(ctx, adom, pkg)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"count": count})
		},
	})

	r.register(Tool{
		Name:        "create_firewall_policy",
		Description: "Create a firewall policy in a policy package.",
		InputSchema: objectSchema([]string{"package", "name", "srcintf", "dstintf", "srcaddr", "dstaddr", "service", "action"}, map[string]prop{
			"adom":       {Type: "string", Desc: "ADOM name"},
			"package":    {Type: "string", Desc: "Policy package name"},
			"name":       {Type: "string", Desc: "Policy name"},
			"srcintf":    {Type: "array", Items: "string", Desc: "Source interfaces"},
			"dstintf":    {Type: "array", Items: "string", Desc: "Destination interfaces"},
			"srcaddr":    {Type: "array", Items: "string", Desc: "Source address objects"},
			"dstaddr":    {Type: "array", Items: "string", Desc: "Destination address objects"},
			"service":    {Type: "array", Items: "string", Desc: "Service objects"},
			"action":     {Type: "string", Desc: "accept or deny", Enum: []string{"accept", "deny"}},
			"schedule":   {Type: "string", Desc: "Schedule object (default always)"},
			"logtraffic": {Type: "string", Desc: "Logging mode", Enum: []string{"disable", "all", "utm"}},
			"nat":        {Type: "boolean", Desc: "Enable source NAT"},
			"comments":   {Type: "string", Desc: "Policy comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			name, err := validation.PolicyName(args.String("name"))
			if err != nil {
				return errResult(err)
			}
			action, err := validation.PolicyAction(args.String("action"))
			if err != nil {
				return errResult(err)
			}
			policy := map[string]any{
				"name":     name,
				"srcintf":  args.StringSlice("srcintf"),
				"dstintf":  args.StringSlice("dstintf"),
				"srcaddr":  args.StringSlice("srcaddr"),
				"dstaddr":  args.StringSlice("dstaddr"),
				"service":  args.StringSlice("service"),
				"action":   action,
				"schedule": args.StringOr("schedule", "always"),
				"status":   "enable",
			}
			if mode := args.String("logtraffic"); mode != "" {
				if mode, err = validation.LogTrafficMode(mode); err != nil {
					return errResult(err)
				}
				policy["logtraffic"] = mode
			}
			if args.Bool("nat") {
				policy["nat"] = "enable"
			}
			if comments := args.String("comments"); comments != "" {
				policy["comments"] = comments
			}
			result, err := r.api.CreateFirewallPolicy(ctx, adom, pkg, policy)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "update_firewall_policy",
		Description: "Update fields of an existing firewall policy.",
		InputSchema: objectSchema([]string{"package", "policy_id", "data"}, map[string]prop{
			"adom":      {Type: "string", Desc: "ADOM name"},
			"package":   {Type: "string", Desc: "Policy package name"},
			"policy_id": {Type: "integer", Desc: "Policy ID"},
			"data":      {Type: "object", Desc: "Fields to change"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			policyID, err := validation.PolicyID(args.Int("policy_id"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.UpdateFirewallPolicy(ctx, adom, pkg, policyID, args.Map("data"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_firewall_policy",
		Description: "Delete one firewall policy by ID.",
		InputSchema: objectSchema([]string{"package", "policy_id"}, map[string]prop{
			"adom":      {Type: "string", Desc: "ADOM name"},
			"package":   {Type: "string", Desc: "Policy package name"},
			"policy_id": {Type: "integer", Desc: "Policy ID"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			policyID, err := validation.PolicyID(args.Int("policy_id"))
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteFirewallPolicy(ctx, adom, pkg, policyID); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "policy deleted"})
		},
	})

	r.register(Tool{
		Name:        "delete_firewall_policies_bulk",
		Description: "Delete several firewall policies by ID in one call.",
		InputSchema: objectSchema([]string{"package", "policy_ids"}, map[string]prop{
			"adom":       {Type: "string", Desc: "ADOM name"},
			"package":    {Type: "string", Desc: "Policy package name"},
			"policy_ids": {Type: "array", Items: "integer", Desc: "Policy IDs to delete"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			ids := args.IntSlice("policy_ids")
			for _, id := range ids {
				if _, err := validation.PolicyID(id); err != nil {
					return errResult(err)
				}
			}
			if err := r.api.DeleteFirewallPolicies(ctx, adom, pkg, ids); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"deleted": len(ids)})
		},
	})

	r.register(Tool{
		Name:        "move_firewall_policy",
		Description: "Move a firewall policy before or after another policy in its package.",
		InputSchema: objectSchema([]string{"package", "policy_id", "target_id", "position"}, map[string]prop{
			"adom":      {Type: "string", Desc: "ADOM name"},
			"package":   {Type: "string", Desc: "Policy package name"},
			"policy_id": {Type: "integer", Desc: "Policy to move"},
			"target_id": {Type: "integer", Desc: "Reference policy"},
			"position":  {Type: "string", Desc: "before or after the reference", Enum: []string{"before", "after"}},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg, err := validation.PackageName(args.String("package"))
			if err != nil {
				return errResult(err)
			}
			policyID, err := validation.PolicyID(args.Int("policy_id"))
			if err != nil {
				return errResult(err)
			}
			targetID, err := validation.PolicyID(args.Int("target_id"))
			if err != nil {
				return errResult(err)
			}
			position, err := validation.MovePosition(args.String("position"))
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.MoveFirewallPolicy(ctx, adom, pkg, policyID, targetID, position)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})
}
