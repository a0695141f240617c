// File: lazyconf/store.go
package lazyconf

import (
	"sort"
	"strings"
	"sync"
)

// Store holds nested configuration data addressed by dot-separated paths.
// The first segment of a path names a namespace, which usually corresponds
// to one loadable source file. A store built with a loader populates
// namespaces on demand: the first miss on a key triggers a single load
// attempt for its namespace before the lookup is retried.
type Store struct {
	mutex  sync.RWMutex
	tree   map[string]any
	loader *Loader
}

// New creates an empty Store with no loader attached. Get never performs
// implicit loading on such a store.
func New() *Store {
	return &Store{
		tree: make(map[string]any),
	}
}

// NewWithLoader creates a Store whose cache misses trigger the given loader.
func NewWithLoader(l *Loader) *Store {
	s := New()
	s.loader = l
	return s
}

// resolve looks up key without any loading. Direct full-string match wins
// over dot-segment traversal, so top-level keys containing literal dots stay
// addressable. The caller must hold at least a read lock.
func (s *Store) resolve(key string) (any, bool) {
	if val, exists := s.tree[key]; exists {
		return val, true
	}

	segments := strings.Split(key, ".")
	current := any(s.tree)

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// Get retrieves the value at a dot-separated key. On a miss it asks the
// attached loader to load the key's namespace (the first dot-segment), then
// retries exactly once; load failures degrade to a plain miss here, use Load
// when the error matters. The boolean reports presence: a key explicitly
// stored as nil yields (nil, true).
func (s *Store) Get(key string) (any, bool) {
	s.mutex.RLock()
	val, ok := s.resolve(key)
	s.mutex.RUnlock()
	if ok {
		return val, true
	}

	if s.loader == nil {
		return nil, false
	}

	namespace := key
	if idx := strings.Index(key, "."); idx >= 0 {
		namespace = key[:idx]
	}
	// One implicit attempt per call; an unresolvable namespace stays a miss.
	_ = s.loader.load(s, namespace)

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.resolve(key)
}

// GetOr retrieves key, returning def when the key is missing or stored as
// nil. The two cases are deliberately indistinguishable here; use Get to
// tell them apart.
func (s *Store) GetOr(key string, def any) any {
	if val, ok := s.Get(key); ok && val != nil {
		return val
	}
	return def
}

// GetOrElse is GetOr with a lazily computed default: fn runs only when the
// key is missing or stored as nil.
func (s *Store) GetOrElse(key string, fn func() any) any {
	if val, ok := s.Get(key); ok && val != nil {
		return val
	}
	if fn == nil {
		return nil
	}
	return fn()
}

// GetMany resolves each key, mapping it to its value or nil when absent.
// The result contains exactly the requested keys; iterate the input slice
// when ordering matters, Go maps are unordered.
func (s *Store) GetMany(keys ...string) map[string]any {
	result := make(map[string]any, len(keys))
	for _, key := range keys {
		val, _ := s.Get(key)
		result[key] = val
	}
	return result
}

// GetManyOr resolves every key in defaults, substituting the per-key default
// when the key is missing or stored as nil.
func (s *Store) GetManyOr(defaults map[string]any) map[string]any {
	result := make(map[string]any, len(defaults))
	for key, def := range defaults {
		result[key] = s.GetOr(key, def)
	}
	return result
}

// Has reports whether every given key resolves to an existing entry,
// short-circuiting on the first miss. It checks presence only (a stored nil
// counts as present) and never triggers loading.
func (s *Store) Has(keys ...string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, key := range keys {
		if _, ok := s.resolve(key); !ok {
			return false
		}
	}
	return true
}

// Set stores value at a dot-separated key, creating intermediate maps as
// needed. An intermediate segment holding a non-map value is overwritten
// with a fresh map, discarding the previous value; this auto-vivification
// is lossy by contract, not an error.
func (s *Store) Set(key string, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	setNestedValue(s.tree, key, value)
	return nil
}

// SetAll applies every key/value pair in values as a Set. All keys are
// validated up front, so either every entry applies or none does.
func (s *Store) SetAll(values map[string]any) error {
	for key := range values {
		if err := validateKey(key); err != nil {
			return err
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for key, value := range values {
		setNestedValue(s.tree, key, value)
	}
	return nil
}

// All returns a deep copy of the configuration tree. The copy is detached:
// mutating it never affects the store. Leaf values are shared, so treat
// contained slices and pointers as read-only.
func (s *Store) All() map[string]any {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return deepCopyTree(s.tree)
}

// Paths returns every leaf of the tree as a sorted dot-separated path.
func (s *Store) Paths() []string {
	s.mutex.RLock()
	flat := flattenMap(s.tree, "")
	s.mutex.RUnlock()

	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Remove deletes the given top-level entries and returns the store for
// chaining. Removal is shallow: it unsets root keys only, a nested dot-path
// is a no-op. A removed namespace stays marked loaded, so a later Get on it
// does not reload the source.
func (s *Store) Remove(keys ...string) *Store {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, key := range keys {
		delete(s.tree, key)
	}
	return s
}

// Load explicitly loads the namespace or file named by identifier through
// the attached loader. Unlike the implicit load inside Get, artifact errors
// (unparseable content, I/O failures) are returned to the caller; an
// identifier with no matching artifact reports ErrArtifactNotFound.
func (s *Store) Load(identifier string) error {
	if s.loader == nil {
		return ErrNoLoader
	}
	return s.loader.load(s, identifier)
}

// Loader returns the attached loader, or nil.
func (s *Store) Loader() *Loader {
	return s.loader
}
