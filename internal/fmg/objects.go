package fmg

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListAddresses lists firewall address objects in an ADOM.
//
// FNDN: GET /pm/config/adom/{adom}/obj/firewall/address
func (c *Client) ListAddresses(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/address", adom), opts.params(false))
}

// GetAddress fetches one address object.
func (c *Client) GetAddress(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/address/%s", adom, name), nil)
}

// CreateAddress creates an address object. The map uses vendor field
// names (name, type, subnet, fqdn, start-ip, end-ip, ...).
func (c *Client) CreateAddress(ctx context.Context, adom string, address map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/address", adom), map[string]any{"data": address})
}

// UpdateAddress updates fields on an address object.
func (c *Client) UpdateAddress(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error) {
	return c.Update(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/address/%s", adom, name), map[string]any{"data": data})
}

// DeleteAddress removes an address object.
func (c *Client) DeleteAddress(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/address/%s", adom, name), nil)
	return err
}

// ListAddressGroups lists firewall address groups.
//
// FNDN: GET /pm/config/adom/{adom}/obj/firewall/addrgrp
func (c *Client) ListAddressGroups(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/addrgrp", adom), opts.params(false))
}

// GetAddressGroup fetches one address group.
func (c *Client) GetAddressGroup(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/addrgrp/%s", adom, name), nil)
}

// CreateAddressGroup creates an address group.
func (c *Client) CreateAddressGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/addrgrp", adom), map[string]any{"data": group})
}

// UpdateAddressGroup updates fields on an address group.
func (c *Client) UpdateAddressGroup(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error) {
	return c.Update(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/addrgrp/%s", adom, name), map[string]any{"data": data})
}

// DeleteAddressGroup removes an address group.
func (c *Client) DeleteAddressGroup(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/addrgrp/%s", adom, name), nil)
	return err
}

// ListServices lists custom service objects.
//
// FNDN: GET /pm/config/adom/{adom}/obj/firewall/service/custom
func (c *Client) ListServices(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/custom", adom), opts.params(false))
}

// GetService fetches one custom service object.
func (c *Client) GetService(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/custom/%s", adom, name), nil)
}

// CreateService creates a custom service object.
func (c *Client) CreateService(ctx context.Context, adom string, service map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/custom", adom), map[string]any{"data": service})
}

// UpdateService updates fields on a service object.
func (c *Client) UpdateService(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error) {
	return c.Update(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/custom/%s", adom, name), map[string]any{"data": data})
}

// DeleteService removes a service object.
func (c *Client) DeleteService(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/custom/%s", adom, name), nil)
	return err
}

// ListServiceGroups lists service groups.
//
// FNDN: GET /pm/config/adom/{adom}/obj/firewall/service/group
func (c *Client) ListServiceGroups(ctx context.Context, adom string, opts *QueryOptions) ([]map[string]any, error) {
	return c.getList(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/group", adom), opts.params(false))
}

// GetServiceGroup fetches one service group.
func (c *Client) GetServiceGroup(ctx context.Context, adom, name string) (json.RawMessage, error) {
	return c.Get(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/group/%s", adom, name), nil)
}

// CreateServiceGroup creates a service group.
func (c *Client) CreateServiceGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error) {
	return c.Add(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/group", adom), map[string]any{"data": group})
}

// DeleteServiceGroup removes a service group.
func (c *Client) DeleteServiceGroup(ctx context.Context, adom, name string) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/pm/config/adom/%s/obj/firewall/service/group/%s", adom, name), nil)
	return err
}
