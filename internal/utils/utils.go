package utils

import (
	"encoding/json"
	"strings"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// PreviewJSON renders v as compact JSON truncated for logging. Values that
// cannot be marshalled yield an empty string.
func PreviewJSON(v any, limit int) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return TruncateForLog(string(data), limit)
}
