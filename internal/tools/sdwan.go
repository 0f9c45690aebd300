package tools

import (
	"context"

	"fmg-mcp/internal/validation"
)

func registerSDWANTools(r *Registry) {
	r.register(Tool{
		Name:        "list_sdwan_templates",
		Description: "List SD-WAN templates in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			templates, err := r.api.ListSDWANTemplates(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"templates": templates, "count": len(templates)})
		},
	})

	r.register(Tool{
		Name:        "get_sdwan_template",
		Description: "Get one SD-WAN template by name.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Template name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "SD-WAN template")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetSDWANTemplate(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"template": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_sdwan_template",
		Description: "Create an SD-WAN template in an ADOM.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom":        {Type: "string", Desc: "ADOM name"},
			"name":        {Type: "string", Desc: "Template name"},
			"description": {Type: "string", Desc: "Optional description"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "SD-WAN template")
			if err != nil {
				return errResult(err)
			}
			template := map[string]any{"name": name}
			if desc := args.String("description"); desc != "" {
				template["description"] = desc
			}
			result, err := r.api.CreateSDWANTemplate(ctx, adom, template)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_sdwan_template",
		Description: "Delete an SD-WAN template.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Template name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "SD-WAN template")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteSDWANTemplate(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "SD-WAN template " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "assign_sdwan_template",
		Description: "Assign an SD-WAN template to devices.",
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
			template, err := validation.ObjectName(args.String("template"), "SD-WAN template")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.AssignSDWANTemplate(ctx, adom, template, args.Scopes("scope"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "unassign_sdwan_template",
		Description: "Remove devices from an SD-WAN template assignment.",
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
			template, err := validation.ObjectName(args.String("template"), "SD-WAN template")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.UnassignSDWANTemplate(ctx, adom, template, args.Scopes("scope")); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "devices unassigned from SD-WAN template " + template})
		},
	})
}
