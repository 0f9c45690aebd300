package tools

import (
	"context"

	"fmg-mcp/internal/validation"
)

func registerTemplateTools(r *Registry) {
	r.register(Tool{
		Name:        "list_cli_templates",
		Description: "List CLI templates in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			templates, err := r.api.ListTemplates(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"templates": templates, "count": len(templates)})
		},
	})

	r.register(Tool{
		Name:        "get_cli_template",
		Description: "Get one CLI template by name, including its script body.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Template name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetTemplate(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"template": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "list_system_templates",
		Description: "List system templates (device profiles) in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			templates, err := r.api.ListSystemTemplates(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"templates": templates, "count": len(templates)})
		},
	})

	r.register(Tool{
		Name:        "get_system_template",
		Description: "Get one system template by name.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Template name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetSystemTemplate(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"template": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "assign_system_template",
		Description: "Assign a system template to devices.",
		InputSchema: objectSchema([]string{"template", "scope"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"template": {Type: "string", Desc: "Template name"},
			"scope":    {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			template, err := validation.ObjectName(args.String("template"), "template")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.AssignSystemTemplate(ctx, adom, template, args.Scopes("scope"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "unassign_system_template",
		Description: "Remove devices from a system template assignment.",
		InputSchema: objectSchema([]string{"template", "scope"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"template": {Type: "string", Desc: "Template name"},
			"scope":    {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			template, err := validation.ObjectName(args.String("template"), "template")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.UnassignSystemTemplate(ctx, adom, template, args.Scopes("scope")); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "devices unassigned from template " + template})
		},
	})

	r.register(Tool{
		Name:        "list_cli_template_groups",
		Description: "List CLI template groups in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			groups, err := r.api.ListCLITemplateGroups(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"groups": groups, "count": len(groups)})
		},
	})

	r.register(Tool{
		Name:        "get_cli_template_group",
		Description: "Get one CLI template group by name.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Group name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template group")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetCLITemplateGroup(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"group": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_cli_template_group",
		Description: "Create a CLI template group from existing CLI templates.",
		InputSchema: objectSchema([]string{"name", "members"}, map[string]prop{
			"adom":        {Type: "string", Desc: "ADOM name"},
			"name":        {Type: "string", Desc: "Group name"},
			"members":     {Type: "array", Items: "string", Desc: "Member CLI template names"},
			"description": {Type: "string", Desc: "Optional description"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template group")
			if err != nil {
				return errResult(err)
			}
			group := map[string]any{"name": name, "member": args.StringSlice("members")}
			if desc := args.String("description"); desc != "" {
				group["description"] = desc
			}
			result, err := r.api.CreateCLITemplateGroup(ctx, adom, group)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_cli_template_group",
		Description: "Delete a CLI template group.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Group name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template group")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteCLITemplateGroup(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "CLI template group " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "list_template_groups",
		Description: "List provisioning template groups in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			groups, err := r.api.ListTemplateGroups(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"groups": groups, "count": len(groups)})
		},
	})

	r.register(Tool{
		Name:        "get_template_group",
		Description: "Get one provisioning template group by name.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Group name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template group")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetTemplateGroup(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"group": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_template_group",
		Description: "Create a provisioning template group.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom":        {Type: "string", Desc: "ADOM name"},
			"name":        {Type: "string", Desc: "Group name"},
			"members":     {Type: "array", Items: "string", Desc: "Member template references"},
			"description": {Type: "string", Desc: "Optional description"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "template group")
			if err != nil {
				return errResult(err)
			}
			group := map[string]any{"name": name}
			if members := args.StringSlice("members"); len(members) > 0 {
				group["member"] = members
			}
			if desc := args.String("description"); desc != "" {
				group["description"] = desc
			}
			result, err := r.api.CreateTemplateGroup(ctx, adom, group)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "assign_template_group",
		Description: "Assign a provisioning template group to devices.",
		InputSchema: objectSchema([]string{"group", "scope"}, map[string]prop{
			"adom":  {Type: "string", Desc: "ADOM name"},
			"group": {Type: "string", Desc: "Group name"},
			"scope": {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			group, err := validation.ObjectName(args.String("group"), "template group")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.AssignTemplateGroup(ctx, adom, group, args.Scopes("scope"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "validate_cli_template",
		Description: "Validate the CLI templates bound to devices before an install. Returns a task ID to poll with wait_for_task.",
		InputSchema: objectSchema([]string{"scope"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"package": {Type: "string", Desc: "Policy package the devices are assigned to"},
			"scope":   {Type: "array", Items: "scope", Desc: "Target devices, each with name and optional vdom"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			pkg := args.String("package")
			if pkg != "" {
				if pkg, err = validation.PackageName(pkg); err != nil {
					return errResult(err)
				}
			}
			result, err := r.api.ValidateTemplate(ctx, adom, pkg, args.Scopes("scope"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})
}
