package input

import (
	"strconv"
	"strings"
)

// GetString extracts a string value from the map with a default fallback.
// Returns defaultVal if the key doesn't exist, the value is nil, or not a string.
func GetString(m map[string]any, key string, defaultVal string) string {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	str, ok := val.(string)
	if !ok {
		return defaultVal
	}

	return str
}

// GetInt extracts an int value from the map with type coercion and default fallback.
// Handles int, int64, float64, and string types.
// Returns defaultVal if the key doesn't exist, the value is nil, or cannot be converted.
func GetInt(m map[string]any, key string, defaultVal int) int {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return defaultVal
	default:
		return defaultVal
	}
}

// GetOptionalBool extracts a bool value from the map, keeping "not set"
// distinguishable from false. Returns nil if the key doesn't exist, the
// value is nil, or not a bool.
func GetOptionalBool(m map[string]any, key string) *bool {
	if m == nil {
		return nil
	}

	b, ok := m[key].(bool)
	if !ok {
		return nil
	}

	return &b
}

// GetMap extracts a nested map[string]any from the map.
// Returns nil if the key doesn't exist, the value is nil, or not a map.
func GetMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}

	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	nested, ok := val.(map[string]any)
	if !ok {
		return nil
	}

	return nested
}

func toFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
