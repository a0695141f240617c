// File: lazyconf/source.go
package lazyconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Artifact is the result of reading one configuration source. Exactly one of
// Value or Producer is set: Value carries the data directly, Producer defers
// it to a zero-argument function the loader invokes once at load time.
type Artifact struct {
	Value    any
	Producer func() any
}

// Source supplies raw configuration content for artifact paths. It owns all
// format-specific parsing; the loader never inspects file contents itself.
// Load reports ErrArtifactNotFound (possibly wrapped) when path does not
// resolve to a readable artifact, which sends the loader into search mode.
type Source interface {
	Load(path string) (Artifact, error)
}

// FileSource reads configuration artifacts from the local filesystem,
// parsing TOML, JSON, or YAML content into nested maps. Format is detected
// from the file extension first, then by content sniffing.
type FileSource struct{}

// Load reads and parses the file at path.
func (FileSource) Load(path string) (Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return Artifact{}, fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}
	if info.IsDir() {
		return Artifact{}, fmt.Errorf("%w: '%s' is a directory", ErrArtifactNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return Artifact{}, fmt.Errorf("unable to determine config format for file '%s'", path)
		}
	}

	value := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &value); err != nil {
			return Artifact{}, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&value); err != nil {
			return Artifact{}, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &value); err != nil {
			return Artifact{}, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
	}

	return Artifact{Value: value}, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML; YAML accepts nearly anything
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
