package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeForLoggingMasksCredentialFields(t *testing.T) {
	input := map[string]any{
		"user":      "admin",
		"passwd":    "hunter2",
		"adm_pass":  "device-secret",
		"Session":   "abc",
		"api-token": "tok",
		"count":     3,
	}

	out, ok := SanitizeForLogging(input).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "admin", out["user"])
	assert.Equal(t, "***REDACTED***", out["passwd"])
	assert.Equal(t, "***REDACTED***", out["adm_pass"])
	assert.Equal(t, "***REDACTED***", out["Session"])
	assert.Equal(t, "***REDACTED***", out["api-token"])
	assert.Equal(t, 3, out["count"])
}

func TestSanitizeForLoggingTraversesNestedStructures(t *testing.T) {
	input := map[string]any{
		"data": map[string]any{
			"user":   "admin",
			"passwd": "hunter2",
		},
		"devices": []any{
			map[string]any{"name": "fw-1", "adm_pass": "x"},
		},
	}

	out := SanitizeForLogging(input).(map[string]any)
	data := out["data"].(map[string]any)
	assert.Equal(t, "***REDACTED***", data["passwd"])
	assert.Equal(t, "admin", data["user"])

	device := out["devices"].([]any)[0].(map[string]any)
	assert.Equal(t, "fw-1", device["name"])
	assert.Equal(t, "***REDACTED***", device["adm_pass"])
}

func TestSanitizeForLoggingDoesNotMutateInput(t *testing.T) {
	input := map[string]any{"passwd": "hunter2"}
	SanitizeForLogging(input)
	assert.Equal(t, "hunter2", input["passwd"])
}

func TestSanitizeForLoggingMasksLongHexStrings(t *testing.T) {
	token := strings.Repeat("a1", 16)
	out := SanitizeForLogging(map[string]any{"note": token}).(map[string]any)
	assert.Equal(t, "***REDACTED***", out["note"])

	out = SanitizeForLogging(map[string]any{"note": "deadbeef"}).(map[string]any)
	assert.Equal(t, "deadbeef", out["note"], "short hex strings pass through")
}

func TestSanitizeForLoggingDepthLimit(t *testing.T) {
	deep := map[string]any{}
	current := deep
	for i := 0; i < 20; i++ {
		next := map[string]any{}
		current["nested"] = next
		current = next
	}
	current["value"] = "leaf"

	assert.NotPanics(t, func() { SanitizeForLogging(deep) })
}

func TestSanitizeJSONForLoggingHandlesTypedValues(t *testing.T) {
	type login struct {
		User   string `json:"user"`
		Passwd string `json:"passwd"`
	}

	out := SanitizeJSONForLogging(map[string]any{
		"data": login{User: "admin", Passwd: "hunter2"},
	})

	assert.Contains(t, out, "admin")
	assert.Contains(t, out, "***REDACTED***")
	assert.NotContains(t, out, "hunter2")
}

func TestSanitizeJSONForLoggingUnserializable(t *testing.T) {
	assert.Equal(t, "<unserializable>", SanitizeJSONForLogging(make(chan int)))
}
