package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmg-mcp/internal/fmg"
)

// fakeAPI satisfies API through embedding; tests override only the
// methods a tool exercises.
type fakeAPI struct {
	API

	systemStatus    json.RawMessage
	systemStatusErr error

	taskPayloads []json.RawMessage
	taskCalls    int

	devices     []map[string]any
	devicesADOM string

	statusEntries []map[string]any
}

func (f *fakeAPI) GetSystemStatus(ctx context.Context) (json.RawMessage, error) {
	return f.systemStatus, f.systemStatusErr
}

func (f *fakeAPI) GetTask(ctx context.Context, taskID int) (json.RawMessage, error) {
	idx := f.taskCalls
	f.taskCalls++
	if idx >= len(f.taskPayloads) {
		idx = len(f.taskPayloads) - 1
	}
	return f.taskPayloads[idx], nil
}

func (f *fakeAPI) ListDevices(ctx context.Context, adom string, opts *fmg.QueryOptions) ([]map[string]any, error) {
	f.devicesADOM = adom
	return f.devices, nil
}

func (f *fakeAPI) GetDeviceStatus(ctx context.Context, adom, device string) ([]map[string]any, error) {
	return f.statusEntries, nil
}

func newTestRegistry(api API) *Registry {
	return New(api, Options{
		DefaultADOM:      "root",
		TaskTimeout:      time.Second,
		TaskPollInterval: time.Millisecond,
	})
}

func TestRegistrySchemasCompile(t *testing.T) {
	// New panics if any registered schema is malformed.
	registry := newTestRegistry(&fakeAPI{})
	assert.NotEmpty(t, registry.List())
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := newTestRegistry(&fakeAPI{})
	list := registry.List()

	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}

	_, ok := registry.Get("wait_for_task")
	assert.True(t, ok)
}

func TestCallUnknownTool(t *testing.T) {
	registry := newTestRegistry(&fakeAPI{})

	_, err := registry.Call(context.Background(), "no_such_tool", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_tool")
}

func TestCallRejectsInvalidArguments(t *testing.T) {
	registry := newTestRegistry(&fakeAPI{})

	// Missing required argument.
	_, err := registry.Call(context.Background(), "wait_for_task", map[string]any{})
	assert.Error(t, err)

	// Wrong type.
	_, err = registry.Call(context.Background(), "wait_for_task", map[string]any{
		"task_id": "fifty",
	})
	assert.Error(t, err)

	// Unknown keys are rejected.
	_, err = registry.Call(context.Background(), "wait_for_task", map[string]any{
		"task_id": 1,
		"bogus":   true,
	})
	assert.Error(t, err)
}

func TestCallGetSystemStatus(t *testing.T) {
	api := &fakeAPI{systemStatus: json.RawMessage(`{"Version":"v7.4.3","Hostname":"fmg-lab"}`)}
	registry := newTestRegistry(api)

	result, err := registry.Call(context.Background(), "get_system_status", nil)
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])

	status, ok := result["system_status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fmg-lab", status["Hostname"])
}

func TestCallHandlerErrorsGoIntoEnvelope(t *testing.T) {
	api := &fakeAPI{systemStatusErr: errors.New("connection refused")}
	registry := newTestRegistry(api)

	result, err := registry.Call(context.Background(), "get_system_status", nil)
	require.NoError(t, err, "handler failures are reported in the envelope, not as errors")
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["message"], "connection refused")
}

func TestCallWaitForTaskSuccess(t *testing.T) {
	api := &fakeAPI{taskPayloads: []json.RawMessage{
		json.RawMessage(`{"id":7,"state":"running","percent":50}`),
		json.RawMessage(`{"id":7,"state":"done","percent":100}`),
	}}
	registry := newTestRegistry(api)

	result, err := registry.Call(context.Background(), "wait_for_task", map[string]any{
		"task_id": 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, true, result["completed"])
	assert.Equal(t, "done", result["state"])
	assert.Equal(t, 2, api.taskCalls)
}

func TestCallWaitForTaskFailureState(t *testing.T) {
	api := &fakeAPI{taskPayloads: []json.RawMessage{
		json.RawMessage(`{"id":8,"state":"error","percent":100}`),
	}}
	registry := newTestRegistry(api)

	result, err := registry.Call(context.Background(), "wait_for_task", map[string]any{
		"task_id": 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
	assert.Equal(t, true, result["completed"], "a failed task still completed")
	assert.Equal(t, "error", result["state"])
}

func TestCallWaitForTaskTimeout(t *testing.T) {
	api := &fakeAPI{taskPayloads: []json.RawMessage{
		json.RawMessage(`{"id":9,"state":"running","percent":10}`),
	}}
	registry := New(api, Options{
		DefaultADOM:      "root",
		TaskTimeout:      20 * time.Millisecond,
		TaskPollInterval: 5 * time.Millisecond,
	})

	result, err := registry.Call(context.Background(), "wait_for_task", map[string]any{
		"task_id": 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
	assert.Equal(t, false, result["completed"])
	assert.Contains(t, result["message"], "timed out")
}

func TestCallListDevicesUsesDefaultADOM(t *testing.T) {
	api := &fakeAPI{devices: []map[string]any{{"name": "fw-1"}}}
	registry := newTestRegistry(api)

	result, err := registry.Call(context.Background(), "list_devices", nil)
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "root", api.devicesADOM)

	result, err = registry.Call(context.Background(), "list_devices", map[string]any{
		"adom": "customer_a",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "customer_a", api.devicesADOM)
}

func TestCallListDevicesRejectsBadADOM(t *testing.T) {
	registry := newTestRegistry(&fakeAPI{})

	result, err := registry.Call(context.Background(), "list_devices", map[string]any{
		"adom": "bad adom name!",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
}

func TestCallGetDeviceStatusDecodesLabels(t *testing.T) {
	api := &fakeAPI{statusEntries: []map[string]any{{
		"name":        "fw-1",
		"conn_status": float64(1),
		"conf_status": float64(2),
		"db_status":   float64(1),
		"dev_status":  float64(4),
	}}}
	registry := newTestRegistry(api)

	result, err := registry.Call(context.Background(), "get_device_status", nil)
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])

	devices, ok := result["devices"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, devices, 1)

	device := devices[0]
	assert.Equal(t, "up", device["conn_status_label"])
	assert.Equal(t, "out_of_sync", device["conf_status_label"])
	assert.Equal(t, "no_changes", device["db_status_label"])
	assert.Equal(t, "installed", device["dev_status_label"])
	assert.Equal(t, float64(1), device["conn_status"], "raw codes are preserved")
}

func TestDecodeStatusLabelUnrecognizedCode(t *testing.T) {
	assert.Equal(t, "unrecognized (9)", decodeStatusLabel(float64(9), connStatusLabels))
	assert.Equal(t, "up", decodeStatusLabel("up", connStatusLabels), "strings pass through")
}
