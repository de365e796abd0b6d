package normalization

import (
	"strconv"
	"strings"
	"time"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

// AsInt coerces numeric values decoded from JSON or YAML into Go ints.
// Numeric strings are accepted; anything else yields 0.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(typed)); err == nil {
			return parsed
		}
	}
	return 0
}

// AsTime parses RFC 3339 strings and passes through time.Time values (YAML timestamps).
func AsTime(value any) time.Time {
	switch typed := value.(type) {
	case time.Time:
		return typed
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return time.Time{}
		}
		if parsed, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
			return parsed
		}
	case float64:
		// epoch milliseconds
		return time.UnixMilli(int64(typed)).UTC()
	}
	return time.Time{}
}

// AsMap returns value as a string-keyed map, converting YAML's map[any]any shapes.
func AsMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, entry := range typed {
			if k, ok := key.(string); ok {
				converted[k] = entry
			}
		}
		return converted, true
	default:
		return nil, false
	}
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload unwraps common envelope structures (e.g. {"data": {...}})
// into a plain map. A bare list is wrapped as {"items": [...]}.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if list := AsInterfaceSlice(value); list != nil {
		return map[string]any{"items": list}
	}
	typed, ok := AsMap(value)
	if !ok {
		return nil
	}
	if data, ok := AsMap(typed["data"]); ok {
		return data
	}
	if list := AsInterfaceSlice(typed["data"]); list != nil {
		return map[string]any{"items": list}
	}
	return typed
}
