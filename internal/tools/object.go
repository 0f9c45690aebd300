package tools

import (
	"context"
	"errors"
	"strings"

	"fmg-mcp/internal/validation"
)

var errMissingPorts = errors.New("at least one of tcp_ports or udp_ports is required")

func registerObjectTools(r *Registry) {
	r.register(Tool{
		Name:        "list_addresses",
		Description: "List firewall address objects in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"fields": {Type: "array", Items: "string", Desc: "Fields to return for each address"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			addresses, err := r.api.ListAddresses(ctx, adom, queryOptions(args))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"addresses": addresses, "count": len(addresses)})
		},
	})

	r.register(Tool{
		Name:        "get_address",
		Description: "Get one firewall address object by name.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Address object name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetAddress(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"address": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_address_subnet",
		Description: "Create a subnet address object from an IP/CIDR or IP netmask pair.",
		InputSchema: objectSchema([]string{"name", "subnet"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"name":    {Type: "string", Desc: "Address object name"},
			"subnet":  {Type: "string", Desc: "Subnet, e.g. 10.0.0.0/24 or 10.0.0.0 255.255.255.0"},
			"comment": {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			subnet, err := validation.IPv4Subnet(args.String("subnet"))
			if err != nil {
				return errResult(err)
			}
			address := map[string]any{"name": name, "type": "ipmask", "subnet": subnet}
			if comment := args.String("comment"); comment != "" {
				address["comment"] = comment
			}
			result, err := r.api.CreateAddress(ctx, adom, address)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "create_address_host",
		Description: "Create a single-host address object.",
		InputSchema: objectSchema([]string{"name", "ip"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"name":    {Type: "string", Desc: "Address object name"},
			"ip":      {Type: "string", Desc: "Host IPv4 address"},
			"comment": {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			ip, err := validation.IPv4Address(args.String("ip"))
			if err != nil {
				return errResult(err)
			}
			address := map[string]any{"name": name, "type": "ipmask", "subnet": ip + "/32"}
			if comment := args.String("comment"); comment != "" {
				address["comment"] = comment
			}
			result, err := r.api.CreateAddress(ctx, adom, address)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "create_address_fqdn",
		Description: "Create an FQDN address object.",
		InputSchema: objectSchema([]string{"name", "fqdn"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"name":    {Type: "string", Desc: "Address object name"},
			"fqdn":    {Type: "string", Desc: "Fully qualified domain name"},
			"comment": {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			fqdn, err := validation.FQDN(args.String("fqdn"))
			if err != nil {
				return errResult(err)
			}
			address := map[string]any{"name": name, "type": "fqdn", "fqdn": fqdn}
			if comment := args.String("comment"); comment != "" {
				address["comment"] = comment
			}
			result, err := r.api.CreateAddress(ctx, adom, address)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "create_address_range",
		Description: "Create an IP range address object.",
		InputSchema: objectSchema([]string{"name", "start_ip", "end_ip"}, map[string]prop{
			"adom":     {Type: "string", Desc: "ADOM name"},
			"name":     {Type: "string", Desc: "Address object name"},
			"start_ip": {Type: "string", Desc: "First IPv4 address of the range"},
			"end_ip":   {Type: "string", Desc: "Last IPv4 address of the range"},
			"comment":  {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			startIP, err := validation.IPv4Address(args.String("start_ip"))
			if err != nil {
				return errResult(err)
			}
			endIP, err := validation.IPv4Address(args.String("end_ip"))
			if err != nil {
				return errResult(err)
			}
			address := map[string]any{
				"name":     name,
				"type":     "iprange",
				"start-ip": startIP,
				"end-ip":   endIP,
			}
			if comment := args.String("comment"); comment != "" {
				address["comment"] = comment
			}
			result, err := r.api.CreateAddress(ctx, adom, address)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "update_address",
		Description: "Update fields of an existing address object.",
		InputSchema: objectSchema([]string{"name", "data"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Address object name"},
			"data": {Type: "object", Desc: "Fields to change"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.UpdateAddress(ctx, adom, name, args.Map("data"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_address",
		Description: "Delete an address object.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Address object name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteAddress(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "address " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "list_address_groups",
		Description: "List address groups in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			groups, err := r.api.ListAddressGroups(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"groups": groups, "count": len(groups)})
		},
	})

	r.register(Tool{
		Name:        "create_address_group",
		Description: "Create an address group from existing address objects.",
		InputSchema: objectSchema([]string{"name", "members"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"name":    {Type: "string", Desc: "Group name"},
			"members": {Type: "array", Items: "string", Desc: "Member address object names"},
			"comment": {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address group")
			if err != nil {
				return errResult(err)
			}
			group := map[string]any{"name": name, "member": args.StringSlice("members")}
			if comment := args.String("comment"); comment != "" {
				group["comment"] = comment
			}
			result, err := r.api.CreateAddressGroup(ctx, adom, group)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "update_address_group",
		Description: "Update fields of an existing address group.",
		InputSchema: objectSchema([]string{"name", "data"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Group name"},
			"data": {Type: "object", Desc: "Fields to change"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address group")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.UpdateAddressGroup(ctx, adom, name, args.Map("data"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_address_group",
		Description: "Delete an address group.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Group name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "address group")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteAddressGroup(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "address group " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "list_services",
		Description: "List custom service objects in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom":   {Type: "string", Desc: "ADOM name"},
			"fields": {Type: "array", Items: "string", Desc: "Fields to return for each service"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			services, err := r.api.ListServices(ctx, adom, queryOptions(args))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"services": services, "count": len(services)})
		},
	})

	r.register(Tool{
		Name:        "get_service",
		Description: "Get one custom service object by name.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Service object name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service")
			if err != nil {
				return errResult(err)
			}
			data, err := r.api.GetService(ctx, adom, name)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"service": rawField(data)})
		},
	})

	r.register(Tool{
		Name:        "create_service_tcp_udp",
		Description: "Create a TCP/UDP service object with port ranges.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom":      {Type: "string", Desc: "ADOM name"},
			"name":      {Type: "string", Desc: "Service object name"},
			"tcp_ports": {Type: "string", Desc: "TCP port or range, e.g. 443 or 8000-8080"},
			"udp_ports": {Type: "string", Desc: "UDP port or range"},
			"comment":   {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service")
			if err != nil {
				return errResult(err)
			}
			service := map[string]any{"name": name, "protocol": "TCP/UDP/SCTP"}
			tcpPorts := args.String("tcp_ports")
			udpPorts := args.String("udp_ports")
			if tcpPorts == "" && udpPorts == "" {
				return errResult(errMissingPorts)
			}
			if tcpPorts != "" {
				if tcpPorts, err = validation.PortRange(tcpPorts); err != nil {
					return errResult(err)
				}
				service["tcp-portrange"] = tcpPorts
			}
			if udpPorts != "" {
				if udpPorts, err = validation.PortRange(udpPorts); err != nil {
					return errResult(err)
				}
				service["udp-portrange"] = udpPorts
			}
			if comment := args.String("comment"); comment != "" {
				service["comment"] = comment
			}
			result, err := r.api.CreateService(ctx, adom, service)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "create_service_icmp",
		Description: "Create an ICMP service object.",
		InputSchema: objectSchema([]string{"name", "icmp_type"}, map[string]prop{
			"adom":      {Type: "string", Desc: "ADOM name"},
			"name":      {Type: "string", Desc: "Service object name"},
			"icmp_type": {Type: "integer", Desc: "ICMP type number"},
			"icmp_code": {Type: "integer", Desc: "ICMP code number"},
			"comment":   {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service")
			if err != nil {
				return errResult(err)
			}
			service := map[string]any{
				"name":     name,
				"protocol": "ICMP",
				"icmptype": args.Int("icmp_type"),
			}
			if args.Has("icmp_code") {
				service["icmpcode"] = args.Int("icmp_code")
			}
			if comment := args.String("comment"); comment != "" {
				service["comment"] = comment
			}
			result, err := r.api.CreateService(ctx, adom, service)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "update_service",
		Description: "Update fields of an existing service object.",
		InputSchema: objectSchema([]string{"name", "data"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Service object name"},
			"data": {Type: "object", Desc: "Fields to change"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service")
			if err != nil {
				return errResult(err)
			}
			result, err := r.api.UpdateService(ctx, adom, name, args.Map("data"))
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_service",
		Description: "Delete a custom service object.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Service object name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteService(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "service " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "list_service_groups",
		Description: "List service groups in an ADOM.",
		InputSchema: objectSchema(nil, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			groups, err := r.api.ListServiceGroups(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"groups": groups, "count": len(groups)})
		},
	})

	r.register(Tool{
		Name:        "create_service_group",
		Description: "Create a service group from existing service objects.",
		InputSchema: objectSchema([]string{"name", "members"}, map[string]prop{
			"adom":    {Type: "string", Desc: "ADOM name"},
			"name":    {Type: "string", Desc: "Group name"},
			"members": {Type: "array", Items: "string", Desc: "Member service names"},
			"comment": {Type: "string", Desc: "Optional comment"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service group")
			if err != nil {
				return errResult(err)
			}
			group := map[string]any{"name": name, "member": args.StringSlice("members")}
			if comment := args.String("comment"); comment != "" {
				group["comment"] = comment
			}
			result, err := r.api.CreateServiceGroup(ctx, adom, group)
			if err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"result": rawField(result)})
		},
	})

	r.register(Tool{
		Name:        "delete_service_group",
		Description: "Delete a service group.",
		InputSchema: objectSchema([]string{"name"}, map[string]prop{
			"adom": {Type: "string", Desc: "ADOM name"},
			"name": {Type: "string", Desc: "Group name"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			name, err := validation.ObjectName(args.String("name"), "service group")
			if err != nil {
				return errResult(err)
			}
			if err := r.api.DeleteServiceGroup(ctx, adom, name); err != nil {
				return errResult(err)
			}
			return okResult(map[string]any{"message": "service group " + name + " deleted"})
		},
	})

	r.register(Tool{
		Name:        "search_objects",
		Description: "Search address and service objects by name substring.",
		InputSchema: objectSchema([]string{"query"}, map[string]prop{
			"adom":  {Type: "string", Desc: "ADOM name"},
			"query": {Type: "string", Desc: "Case-insensitive substring to match"},
		}),
		handler: func(ctx context.Context, args Args) map[string]any {
			adom, err := r.adom(args)
			if err != nil {
				return errResult(err)
			}
			query := strings.ToLower(args.String("query"))

			match := func(entries []map[string]any) []map[string]any {
				out := make([]map[string]any, 0)
				for _, e := range entries {
					if name, ok := e["name"].(string); ok && strings.Contains(strings.ToLower(name), query) {
						out = append(out, e)
					}
				}
				return out
			}

			addresses, err := r.api.ListAddresses(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}
			services, err := r.api.ListServices(ctx, adom, nil)
			if err != nil {
				return errResult(err)
			}

			matchedAddresses := match(addresses)
			matchedServices := match(services)
			return okResult(map[string]any{
				"addresses": matchedAddresses,
				"services":  matchedServices,
				"count":     len(matchedAddresses) + len(matchedServices),
			})
		},
	})
}
