// File: lazyconf/loader.go
package lazyconf

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
)

// PostLoad transforms a raw loaded value before it is merged into the store.
// At most one is active per loader; installing a new one replaces the old.
type PostLoad func(value any) any

// DefaultExtension is appended to namespace identifiers during search-path
// resolution.
const DefaultExtension = ".toml"

// Loader locates configuration artifacts for namespaces across an ordered
// list of search directories and loads each identifier at most once.
//
// Resolution has two modes. Direct: an identifier that resolves as given
// (typically an absolute file path) is loaded immediately and merged under
// its base name. Search: otherwise the identifier is normalized to a
// filename and every configured directory is probed in order; all matches
// load, with later directories deep-merged over earlier ones.
type Loader struct {
	mutex    sync.Mutex
	source   Source
	paths    []string
	loaded   map[string]bool
	postLoad PostLoad
	ext      string
}

// NewLoader creates a Loader reading artifacts through source. A nil source
// defaults to FileSource.
func NewLoader(source Source) *Loader {
	if source == nil {
		source = FileSource{}
	}
	return &Loader{
		source: source,
		loaded: make(map[string]bool),
		ext:    DefaultExtension,
	}
}

// SetPath replaces the whole search list with the single given directory.
// Trailing path separators are stripped.
func (l *Loader) SetPath(path string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.paths = []string{trimTrailingSeparators(path)}
}

// AddPath appends a search directory, preserving the order of prior entries.
// Trailing path separators are stripped.
func (l *Loader) AddPath(path string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.paths = append(l.paths, trimTrailingSeparators(path))
}

// SearchPaths returns the configured search directories in probe order.
func (l *Loader) SearchPaths() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string(nil), l.paths...)
}

// SetCallback installs the post-load transform applied to every raw loaded
// value. It overwrites any previously installed callback; pass nil to
// remove it.
func (l *Loader) SetCallback(fn PostLoad) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.postLoad = fn
}

// SetExtension changes the filename extension appended during search-path
// resolution. A leading dot is added when missing.
func (l *Loader) SetExtension(ext string) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.ext = ext
}

// Loaded reports whether identifier has already been loaded.
func (l *Loader) Loaded(identifier string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.loaded[identifier]
}

// load resolves identifier and merges the result into store. Each identifier
// loads at most once for the lifetime of the loader, and is marked loaded
// only after its content was successfully obtained: an absent or failing
// artifact stays eligible for a later attempt.
func (l *Loader) load(store *Store, identifier string) error {
	l.mutex.Lock()
	if l.loaded[identifier] {
		l.mutex.Unlock()
		return nil
	}
	source := l.source
	paths := append([]string(nil), l.paths...)
	ext := l.ext
	postLoad := l.postLoad
	l.mutex.Unlock()

	// Direct mode: the identifier resolves as given.
	value, err := loadArtifact(source, postLoad, identifier)
	if err == nil {
		l.markLoaded(identifier)
		if value != nil {
			return store.Set(baseName(identifier), value)
		}
		return nil
	}
	if !errors.Is(err, ErrArtifactNotFound) {
		return err
	}

	// Search mode: probe every directory with the normalized filename. All
	// matches load; a later directory overrides an earlier one key by key.
	name := trimSeparators(identifier)
	if name == "" {
		return fmt.Errorf("%w: %q", ErrArtifactNotFound, identifier)
	}
	filename := name + ext

	var final any
	matched := false
	for _, dir := range paths {
		full := filepath.Join(dir, filename)

		value, err := loadArtifact(source, postLoad, full)
		if err != nil {
			if errors.Is(err, ErrArtifactNotFound) {
				continue
			}
			return err
		}
		matched = true
		l.markLoaded(full)

		if value == nil {
			continue
		}
		valueMap, isMap := value.(map[string]any)
		finalMap, finalIsMap := final.(map[string]any)
		if isMap && finalIsMap {
			if err := mergo.Map(&finalMap, valueMap, mergo.WithOverride); err != nil {
				return fmt.Errorf("failed to merge config for namespace %q from '%s': %w", name, full, err)
			}
			final = finalMap
		} else {
			// Non-map artifacts cannot merge; the last match wins.
			final = value
		}
	}

	if !matched {
		return fmt.Errorf("%w: no artifact for %q in search paths", ErrArtifactNotFound, name)
	}

	l.markLoaded(identifier)
	if final != nil {
		return store.Set(name, final)
	}
	return nil
}

// loadArtifact reads one artifact and reduces it to its final value: a
// Producer variant is invoked to obtain the raw value, then the post-load
// transform, when installed, applies to the result.
func loadArtifact(source Source, postLoad PostLoad, path string) (any, error) {
	artifact, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	value := artifact.Value
	if artifact.Producer != nil {
		value = artifact.Producer()
	}
	if postLoad != nil {
		value = postLoad(value)
	}
	return value, nil
}

func (l *Loader) markLoaded(identifier string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.loaded[identifier] = true
}

// baseName derives the store key for a directly loaded artifact: the file
// name without directory or extension.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// trimTrailingSeparators strips trailing slashes and backslashes.
func trimTrailingSeparators(path string) string {
	return strings.TrimRight(path, `/\`)
}

// trimSeparators strips leading and trailing slashes and backslashes.
func trimSeparators(path string) string {
	return strings.Trim(path, `/\`)
}
