package tools

import (
	"encoding/json"
	"fmt"
	"math"

	"fmg-mcp/internal/fmg"
)

// Args is the schema-validated argument map handed to a tool handler.
// Getters tolerate the loose typing JSON decoding produces; schema
// validation has already rejected wrong types, so the zero value paths
// only cover absent optional keys.
type Args map[string]any

// String returns the string value for key, or "" when absent.
func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

// StringOr returns the string value for key, or def when absent or empty.
func (a Args) StringOr(key, def string) string {
	if v, ok := a[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Int returns the integer value for key, or 0 when absent.
func (a Args) Int(key string) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}

// IntOr returns the integer value for key, or def when absent.
func (a Args) IntOr(key string, def int) int {
	if _, ok := a[key]; !ok {
		return def
	}
	return a.Int(key)
}

// Float returns the numeric value for key, or 0 when absent.
func (a Args) Float(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the boolean value for key, or false when absent.
func (a Args) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// Has reports whether key is present.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// StringSlice returns the string array value for key, or nil when absent.
func (a Args) StringSlice(key string) []string {
	raw, ok := a[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AnySlice returns the untyped array value for key, or nil when absent.
func (a Args) AnySlice(key string) []any {
	raw, _ := a[key].([]any)
	return raw
}

// Map returns the object value for key, or nil when absent.
func (a Args) Map(key string) map[string]any {
	v, _ := a[key].(map[string]any)
	return v
}

// MapSlice returns the array-of-objects value for key, or nil when absent.
func (a Args) MapSlice(key string) []map[string]any {
	raw, ok := a[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Scopes converts the array-of-objects value for key into installation
// targets. Each entry carries "name" and, optionally, "vdom".
func (a Args) Scopes(key string) []fmg.Scope {
	entries := a.MapSlice(key)
	if len(entries) == 0 {
		return nil
	}
	scopes := make([]fmg.Scope, 0, len(entries))
	for _, entry := range entries {
		name, _ := entry["name"].(string)
		vdom, _ := entry["vdom"].(string)
		scopes = append(scopes, fmg.Scope{Name: name, VDOM: vdom})
	}
	return scopes
}

// IntSlice returns the integer array value for key, or nil when absent.
func (a Args) IntSlice(key string) []int {
	raw, ok := a[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		if f, ok := item.(float64); ok && f == math.Trunc(f) {
			out = append(out, int(f))
		}
	}
	return out
}

// prop describes one property in a tool's input schema.
type prop struct {
	Type  string
	Desc  string
	Items string
	Enum  []string
}

// objectSchema renders a JSON schema document for an object with the
// given properties. Unknown argument keys are rejected.
func objectSchema(required []string, props map[string]prop) string {
	properties := make(map[string]any, len(props))
	for name, p := range props {
		entry := map[string]any{"type": p.Type}
		if p.Desc != "" {
			entry["description"] = p.Desc
		}
		if p.Items != "" {
			if p.Items == "scope" {
				entry["items"] = map[string]any{
					"type":     "object",
					"required": []string{"name"},
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
						"vdom": map[string]any{"type": "string"},
					},
				}
			} else {
				entry["items"] = map[string]any{"type": p.Items}
			}
		}
		if len(p.Enum) > 0 {
			entry["enum"] = p.Enum
		}
		properties[name] = entry
	}

	doc := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("tools: schema construction failed: %v", err))
	}
	return string(raw)
}
