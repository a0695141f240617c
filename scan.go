// File: lazyconf/scan.go
package lazyconf

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at basePath into target, which must be a non-nil
// pointer to a struct or map. An empty basePath (or ".") decodes the whole
// tree; a trailing dot is tolerated. It uses the "toml" struct tag and
// weakly typed input, so string values convert to durations, slices, and
// numeric fields where possible. A basePath whose namespace has not been
// loaded yet is pulled in first, same as Get.
func (s *Store) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	basePath = strings.TrimSuffix(basePath, ".")
	if basePath != "" {
		// Touch the base path so a not-yet-loaded namespace loads lazily.
		s.Get(basePath)
	}

	sectionData := navigateToPath(s.All(), basePath)

	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData == nil {
			// Absent section decodes as empty
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("configuration path %q refers to non-map value (type %T)", basePath, sectionData)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to decode section %q: %w", basePath, err)
	}

	return nil
}
