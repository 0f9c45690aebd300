// Package tools exposes the FortiManager API surface as independently
// callable, schema-described tools. Inputs are validated against each
// tool's JSON schema before the handler runs; handlers receive the API
// client by injection rather than through package-level state.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"fmg-mcp/internal/fmg"
	"fmg-mcp/internal/logger"
	"fmg-mcp/internal/validation"
)

// API is the client capability surface the tool handlers consume.
// *fmg.Client satisfies it; tests substitute fakes.
type API interface {
	GetSystemStatus(ctx context.Context) (json.RawMessage, error)
	GetHAStatus(ctx context.Context) (json.RawMessage, error)
	ListADOMs(ctx context.Context, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetADOM(ctx context.Context, name string, loadSub int) (json.RawMessage, error)
	ListTasks(ctx context.Context, filter []any) ([]map[string]any, error)
	GetTask(ctx context.Context, taskID int) (json.RawMessage, error)
	GetTaskLines(ctx context.Context, taskID int) ([]map[string]any, error)
	LockADOM(ctx context.Context, adom string) error
	UnlockADOM(ctx context.Context, adom string) error
	CommitADOM(ctx context.Context, adom string) error
	ProxyCall(ctx context.Context, action, resource string, target []string, data map[string]any) (json.RawMessage, error)

	ListDevices(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetDevice(ctx context.Context, adom, device string, loadSub int) (json.RawMessage, error)
	ListDeviceVDOMs(ctx context.Context, adom, device string) ([]map[string]any, error)
	ListDeviceGroups(ctx context.Context, adom string) ([]map[string]any, error)
	GetDeviceStatus(ctx context.Context, adom, device string) ([]map[string]any, error)
	AddDevice(ctx context.Context, adom string, device map[string]any, flags []string) (json.RawMessage, error)
	DeleteDevice(ctx context.Context, adom, device string, flags []string) (json.RawMessage, error)
	AddDeviceList(ctx context.Context, adom string, devices []map[string]any, flags []string) (json.RawMessage, error)
	DeleteDeviceList(ctx context.Context, adom string, devices []map[string]any, flags []string) (json.RawMessage, error)
	UpdateDevice(ctx context.Context, adom, device string, data map[string]any) (json.RawMessage, error)
	ReloadDeviceList(ctx context.Context, adom string) error

	ListPackages(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetPackage(ctx context.Context, adom, pkg string, loadSub int) (json.RawMessage, error)
	CreatePackage(ctx context.Context, adom, name string, settings map[string]any) (json.RawMessage, error)
	DeletePackage(ctx context.Context, adom, pkg string) error
	ClonePackage(ctx context.Context, adom, pkg, newName string) (json.RawMessage, error)
	AssignPackage(ctx context.Context, adom, pkg string, scope []fmg.Scope) (json.RawMessage, error)
	InstallPackage(ctx context.Context, adom, pkg string, scope []fmg.Scope, flags []string) (json.RawMessage, error)
	InstallDevice(ctx context.Context, adom string, scope []fmg.Scope, flags []string) (json.RawMessage, error)
	InstallPreview(ctx context.Context, adom string, scope []fmg.Scope, flags []string) (json.RawMessage, error)
	GetPreviewResult(ctx context.Context, adom string, scope []fmg.Scope) (json.RawMessage, error)
	ListFirewallPolicies(ctx context.Context, adom, pkg string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetFirewallPolicy(ctx context.Context, adom, pkg string, policyID, loadSub int) (json.RawMessage, error)
	GetFirewallPolicyCount(ctx context.Context, adom, pkg string) (int, error)
	CreateFirewallPolicy(ctx context.Context, adom, pkg string, policy map[string]any) (json.RawMessage, error)
	UpdateFirewallPolicy(ctx context.Context, adom, pkg string, policyID int, data map[string]any) (json.RawMessage, error)
	DeleteFirewallPolicy(ctx context.Context, adom, pkg string, policyID int) error
	DeleteFirewallPolicies(ctx context.Context, adom, pkg string, policyIDs []int) error
	MoveFirewallPolicy(ctx context.Context, adom, pkg string, policyID, target int, option string) (json.RawMessage, error)

	ListAddresses(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetAddress(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateAddress(ctx context.Context, adom string, address map[string]any) (json.RawMessage, error)
	UpdateAddress(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error)
	DeleteAddress(ctx context.Context, adom, name string) error
	ListAddressGroups(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetAddressGroup(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateAddressGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error)
	UpdateAddressGroup(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error)
	DeleteAddressGroup(ctx context.Context, adom, name string) error
	ListServices(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetService(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateService(ctx context.Context, adom string, service map[string]any) (json.RawMessage, error)
	UpdateService(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error)
	DeleteService(ctx context.Context, adom, name string) error
	ListServiceGroups(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetServiceGroup(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateServiceGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error)
	DeleteServiceGroup(ctx context.Context, adom, name string) error

	ListScripts(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetScript(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateScript(ctx context.Context, adom string, script map[string]any) (json.RawMessage, error)
	UpdateScript(ctx context.Context, adom, name string, data map[string]any) (json.RawMessage, error)
	DeleteScript(ctx context.Context, adom, name string) error
	ExecuteScript(ctx context.Context, adom, script string, scope []fmg.Scope, pkg any) (json.RawMessage, error)
	GetScriptLogLatest(ctx context.Context, adom, device string) (json.RawMessage, error)
	GetScriptLogSummary(ctx context.Context, adom, device string) ([]map[string]any, error)
	GetScriptLogOutput(ctx context.Context, adom string, logID int, device string) (json.RawMessage, error)

	ListTemplates(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetTemplate(ctx context.Context, adom, name string) (json.RawMessage, error)
	ListSystemTemplates(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetSystemTemplate(ctx context.Context, adom, name string) (json.RawMessage, error)
	AssignSystemTemplate(ctx context.Context, adom, template string, scope []fmg.Scope) (json.RawMessage, error)
	UnassignSystemTemplate(ctx context.Context, adom, template string, scope []fmg.Scope) error
	ListCLITemplateGroups(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetCLITemplateGroup(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateCLITemplateGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error)
	DeleteCLITemplateGroup(ctx context.Context, adom, name string) error
	ListTemplateGroups(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetTemplateGroup(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateTemplateGroup(ctx context.Context, adom string, group map[string]any) (json.RawMessage, error)
	AssignTemplateGroup(ctx context.Context, adom, group string, scope []fmg.Scope) (json.RawMessage, error)
	ValidateTemplate(ctx context.Context, adom, pkg string, scope []fmg.Scope) (json.RawMessage, error)
	ListSDWANTemplates(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error)
	GetSDWANTemplate(ctx context.Context, adom, name string) (json.RawMessage, error)
	CreateSDWANTemplate(ctx context.Context, adom string, template map[string]any) (json.RawMessage, error)
	DeleteSDWANTemplate(ctx context.Context, adom, name string) error
	AssignSDWANTemplate(ctx context.Context, adom, template string, scope []fmg.Scope) (json.RawMessage, error)
	UnassignSDWANTemplate(ctx context.Context, adom, template string, scope []fmg.Scope) error
}

// Handler executes one tool call with validated arguments.
type Handler func(ctx context.Context, args Args) map[string]any

// Tool is a schema-described operation.
type Tool struct {
	Name        string
	Description string
	InputSchema string

	handler  Handler
	compiled *jsonschema.Schema
}

// Options carries the tunables the tool handlers need beyond the client.
type Options struct {
	DefaultADOM      string
	TaskTimeout      time.Duration
	TaskPollInterval time.Duration
}

// Registry holds the registered tools and the injected API client.
type Registry struct {
	api  API
	opts Options

	tools map[string]*Tool
}

// New builds a registry with all tool sets registered.
func New(api API, opts Options) *Registry {
	if opts.DefaultADOM == "" {
		opts.DefaultADOM = "root"
	}
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = 300 * time.Second
	}
	if opts.TaskPollInterval <= 0 {
		opts.TaskPollInterval = 5 * time.Second
	}
	r := &Registry{
		api:   api,
		opts:  opts,
		tools: make(map[string]*Tool),
	}
	registerSystemTools(r)
	registerDeviceTools(r)
	registerPolicyTools(r)
	registerObjectTools(r)
	registerScriptTools(r)
	registerTemplateTools(r)
	registerSDWANTools(r)
	return r
}

// register compiles the tool's schema and adds it to the registry.
// Registration failures are programming errors and panic.
func (r *Registry) register(t Tool) {
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("tools: duplicate tool name %q", t.Name))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(t.Name+".json", strings.NewReader(t.InputSchema)); err != nil {
		panic(fmt.Sprintf("tools: invalid schema for %q: %v", t.Name, err))
	}
	compiled, err := compiler.Compile(t.Name + ".json")
	if err != nil {
		panic(fmt.Sprintf("tools: schema for %q does not compile: %v", t.Name, err))
	}

	t.compiled = compiled
	r.tools[t.Name] = &t
}

// Get returns a registered tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all tools sorted by name.
func (r *Registry) List() []*Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]*Tool, 0, len(names))
	for _, name := range names {
		list = append(list, r.tools[name])
	}
	return list
}

// Call validates args against the tool's input schema and invokes the
// handler. Unknown tools and schema violations are errors; handler
// failures are reported inside the result envelope with status "error".
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}

	if args == nil {
		args = map[string]any{}
	}

	// Round-trip through JSON so typed argument values validate the
	// same way wire input would.
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("arguments for %q are not serializable: %w", name, err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("arguments for %q are not valid JSON: %w", name, err)
	}

	if err := t.compiled.Validate(decoded); err != nil {
		return nil, fmt.Errorf("invalid arguments for %q: %w", name, err)
	}

	logger.Debug("Calling tool %s", name)
	return t.handler(ctx, Args(decoded.(map[string]any))), nil
}

// adom resolves the effective ADOM for a call, validating the value.
func (r *Registry) adom(args Args) (string, error) {
	return validation.ADOM(args.StringOr("adom", r.opts.DefaultADOM))
}

// errResult builds the error envelope every tool shares.
func errResult(err error) map[string]any {
	return map[string]any{"status": "error", "message": err.Error()}
}

// okResult builds a success envelope with extra fields merged in.
func okResult(fields map[string]any) map[string]any {
	result := map[string]any{"status": "success"}
	for k, v := range fields {
		result[k] = v
	}
	return result
}

// rawField re-decodes a raw API payload so it can live in a result map.
func rawField(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}
