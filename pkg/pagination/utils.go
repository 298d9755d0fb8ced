package pagination

import "strings"

// traverse digs into nested maps via a dotted path ("data" is already
// stripped by the caller; key names the connection, e.g. "products").
func traverse(data map[string]interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}

	// Simple case - no dots
	if !strings.Contains(path, ".") {
		value, ok := data[path]
		return value, ok
	}

	// Nested case - walk the path
	parts := strings.Split(path, ".")
	var current interface{} = data

	for _, part := range parts {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = currentMap[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
