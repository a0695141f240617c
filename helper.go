// File: lazyconf/helper.go
package lazyconf

import (
	"fmt"
	"strings"
)

// setNestedValue sets a value in a nested map using a dot-notation path.
// Intermediate levels are created on demand; a segment holding a non-map
// value is overwritten with a fresh map before descending, discarding
// whatever was there.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		if next, exists := current[segment]; exists {
			if nextMap, isMap := next.(map[string]any); isMap {
				current = nextMap
				continue
			}
		}

		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// flattenMap converts a nested map to a flat map with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap && len(nestedMap) > 0 {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// deepCopyTree returns a recursive copy of a configuration tree. Only the
// map structure is duplicated; leaf values are shared.
func deepCopyTree(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, value := range src {
		if nestedMap, isMap := value.(map[string]any); isMap {
			dst[key] = deepCopyTree(nestedMap)
		} else {
			dst[key] = value
		}
	}
	return dst
}

// validateKey rejects empty keys and keys with empty segments ("a..b",
// ".a", "a."). Segment content is otherwise unrestricted; the store is
// format-agnostic.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for _, segment := range strings.Split(key, ".") {
		if segment == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// navigateToPath traverses a nested map to reach the given dot path,
// returning nil when any segment is missing or not a map.
func navigateToPath(nested map[string]any, path string) any {
	if path == "" {
		return nested
	}

	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	segments := strings.Split(path, ".")
	current := any(nested)

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}
