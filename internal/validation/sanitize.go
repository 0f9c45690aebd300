package validation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Field names whose values must never reach the logs.
var sensitiveFields = []string{
	"password", "passwd", "pass", "adm_pass", "adm_passwd",
	"api_token", "apikey", "token", "session", "sid",
	"authorization", "auth", "secret", "key", "credential",
}

const maskValue = "***REDACTED***"

const maxSanitizeDepth = 10

var hexTokenPattern = regexp.MustCompile(`^[a-fA-F0-9]+$`)

// SanitizeForLogging returns a copy of data with credential-bearing
// fields masked. Maps and slices are traversed recursively up to a
// fixed depth; long hex strings are masked as likely session tokens.
func SanitizeForLogging(data any) any {
	return sanitize(data, 0)
}

func sanitize(data any, depth int) any {
	if depth > maxSanitizeDepth {
		return "<MAX_DEPTH>"
	}

	switch v := data.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			if isSensitiveKey(key) {
				result[key] = maskValue
			} else {
				result[key] = sanitize(value, depth+1)
			}
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = sanitize(item, depth+1)
		}
		return result
	case string:
		if len(v) > 20 && hexTokenPattern.MatchString(v) {
			return maskValue
		}
		return v
	default:
		return data
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(key)
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, s := range sensitiveFields {
		if strings.Contains(normalized, s) {
			return true
		}
	}
	return false
}

// SanitizeJSONForLogging sanitizes data and renders it as compact JSON.
// The value is round-tripped through JSON first so that typed slices and
// structs are traversed like plain maps.
func SanitizeJSONForLogging(data any) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return "<unserializable>"
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "<unserializable>"
	}

	out, err := json.Marshal(SanitizeForLogging(decoded))
	if err != nil {
		return "<unserializable>"
	}
	return string(out)
}
