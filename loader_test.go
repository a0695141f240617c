// File: lazyconf/loader_test.go
package lazyconf

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource serves fixed artifacts keyed by exact path.
type mapSource map[string]Artifact

func (m mapSource) Load(path string) (Artifact, error) {
	artifact, ok := m[path]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
	}
	return artifact, nil
}

// countingSource wraps another Source and counts reads per path.
type countingSource struct {
	inner Source
	reads map[string]int
}

func newCountingSource(inner Source) *countingSource {
	return &countingSource{inner: inner, reads: make(map[string]int)}
}

func (c *countingSource) Load(path string) (Artifact, error) {
	c.reads[path]++
	return c.inner.Load(path)
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLazyLoadOnMiss covers the central contract: a miss on "db.host"
// triggers a load of the "db" namespace from the search path.
func TestLazyLoadOnMiss(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "db.toml", `host = "localhost"`+"\n"+`port = 3306`)

	store := NewBuilder().WithSearchPath(tmpDir).MustBuild()

	val, ok := store.Get("db.host")
	assert.True(t, ok)
	assert.Equal(t, "localhost", val)

	// The namespace is now resident; Has sees it without loading.
	assert.True(t, store.Has("db.port"))
	assert.True(t, store.Loader().Loaded("db"))
}

func TestLoadIdempotent(t *testing.T) {
	source := newCountingSource(mapSource{
		"/etc/app/db.toml": {Value: map[string]any{"host": "localhost"}},
	})

	loader := NewLoader(source)
	loader.SetPath("/etc/app")
	store := NewWithLoader(loader)

	require.NoError(t, store.Load("db"))
	require.NoError(t, store.Load("db"))
	store.Get("db.host")

	assert.Equal(t, 1, source.reads["/etc/app/db.toml"], "artifact must be read once")

	val, ok := store.Get("db.host")
	assert.True(t, ok)
	assert.Equal(t, "localhost", val)
}

func TestMissingNamespaceDegradesToDefault(t *testing.T) {
	source := newCountingSource(mapSource{})
	loader := NewLoader(source)
	loader.SetPath("/etc/app")
	store := NewWithLoader(loader)

	assert.Equal(t, "fallback", store.GetOr("ghost.key", "fallback"))
	// Mark-on-success policy: nothing was obtained, so the namespace stays
	// unmarked and a later miss probes again.
	assert.False(t, loader.Loaded("ghost"))
	assert.Equal(t, "fallback", store.GetOr("ghost.key", "fallback"))
	assert.Equal(t, 2, source.reads["/etc/app/ghost.toml"])

	err := store.Load("ghost")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

// TestLoadedButRemoved exercises the documented edge case: removing a loaded
// namespace does not unmark it, so a later get finds nothing and the source
// is not consulted again.
func TestLoadedButRemoved(t *testing.T) {
	source := newCountingSource(mapSource{
		"/etc/app/db.toml": {Value: map[string]any{"host": "localhost"}},
	})
	loader := NewLoader(source)
	loader.SetPath("/etc/app")
	store := NewWithLoader(loader)

	val, ok := store.Get("db.host")
	require.True(t, ok)
	require.Equal(t, "localhost", val)

	store.Remove("db")

	_, ok = store.Get("db.host")
	assert.False(t, ok)
	assert.Equal(t, "gone", store.GetOr("db.host", "gone"))
	assert.Equal(t, 1, source.reads["/etc/app/db.toml"])
}

// TestMultiPathMerge verifies that every search path holding a same-named
// file is consulted, with later paths overriding earlier ones key by key.
func TestMultiPathMerge(t *testing.T) {
	baseDir := t.TempDir()
	overlayDir := t.TempDir()
	writeConfig(t, baseDir, "db.toml", `host = "localhost"`+"\n"+`port = 3306`)
	writeConfig(t, overlayDir, "db.toml", `host = "db.internal"`)

	store := NewBuilder().WithSearchPath(baseDir, overlayDir).MustBuild()

	host, _ := store.Get("db.host")
	assert.Equal(t, "db.internal", host, "later path overrides")

	port, ok := store.Get("db.port")
	assert.True(t, ok, "keys absent from the overlay survive the merge")
	assert.Equal(t, int64(3306), port)
}

func TestSearchPathConfiguration(t *testing.T) {
	loader := NewLoader(mapSource{})

	loader.SetPath("/etc/app/")
	loader.AddPath(`C:\configs\`)
	assert.Equal(t, []string{"/etc/app", `C:\configs`}, loader.SearchPaths())

	// SetPath replaces the whole list.
	loader.SetPath("/opt/app")
	assert.Equal(t, []string{"/opt/app"}, loader.SearchPaths())
}

func TestPostLoadCallback(t *testing.T) {
	t.Run("AppliedToLoadedValue", func(t *testing.T) {
		loader := NewLoader(mapSource{
			"/etc/app/db.toml": {Value: map[string]any{"host": "localhost"}},
		})
		loader.SetPath("/etc/app")
		loader.SetCallback(func(value any) any {
			m := value.(map[string]any)
			m["wrapped"] = true
			return m
		})
		store := NewWithLoader(loader)

		require.NoError(t, store.Load("db"))
		val, _ := store.Get("db.wrapped")
		assert.Equal(t, true, val)
	})

	t.Run("NewCallbackReplacesOld", func(t *testing.T) {
		loader := NewLoader(mapSource{
			"/etc/app/db.toml": {Value: map[string]any{"host": "localhost"}},
		})
		loader.SetPath("/etc/app")
		loader.SetCallback(func(value any) any { return map[string]any{"first": true} })
		loader.SetCallback(func(value any) any { return map[string]any{"second": true} })
		store := NewWithLoader(loader)

		require.NoError(t, store.Load("db"))
		assert.False(t, store.Has("db.first"))
		assert.True(t, store.Has("db.second"))
	})

	t.Run("NilResultMergesNothing", func(t *testing.T) {
		loader := NewLoader(mapSource{
			"/etc/app/db.toml": {Value: map[string]any{"host": "localhost"}},
		})
		loader.SetPath("/etc/app")
		loader.SetCallback(func(value any) any { return nil })
		store := NewWithLoader(loader)

		require.NoError(t, store.Load("db"))
		assert.False(t, store.Has("db"))
		assert.True(t, loader.Loaded("db"), "content was obtained, namespace is marked")
	})
}

func TestProducerArtifact(t *testing.T) {
	invocations := 0
	loader := NewLoader(mapSource{
		"/etc/app/db.toml": {Producer: func() any {
			invocations++
			return map[string]any{"host": "produced"}
		}},
	})
	loader.SetPath("/etc/app")
	store := NewWithLoader(loader)

	require.NoError(t, store.Load("db"))
	require.NoError(t, store.Load("db"))

	assert.Equal(t, 1, invocations, "producer runs once per load, loads happen once")
	val, _ := store.Get("db.host")
	assert.Equal(t, "produced", val)
}

func TestDirectLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, "database.toml", `host = "direct"`)

	// No search paths configured; the identifier resolves as given and the
	// value merges under the file's base name.
	store := NewBuilder().MustBuild()
	require.NoError(t, store.Load(path))

	val, ok := store.Get("database.host")
	assert.True(t, ok)
	assert.Equal(t, "direct", val)
	assert.True(t, store.Loader().Loaded(path))
}

func TestFormatDetection(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("JSONByExtension", func(t *testing.T) {
		path := writeConfig(t, tmpDir, "app.json", `{"name": "svc"}`)
		store := NewBuilder().MustBuild()
		require.NoError(t, store.Load(path))
		val, _ := store.Get("app.name")
		assert.Equal(t, "svc", val)
	})

	t.Run("YAMLByExtension", func(t *testing.T) {
		path := writeConfig(t, tmpDir, "queue.yaml", "driver: redis\nworkers: 4\n")
		store := NewBuilder().MustBuild()
		require.NoError(t, store.Load(path))
		val, _ := store.Get("queue.driver")
		assert.Equal(t, "redis", val)
	})

	t.Run("ContentSniffing", func(t *testing.T) {
		path := writeConfig(t, tmpDir, "noext", `{"kind": "json"}`)
		store := NewBuilder().MustBuild()
		require.NoError(t, store.Load(path))
		val, _ := store.Get("noext.kind")
		assert.Equal(t, "json", val)
	})

	t.Run("SearchWithCustomExtension", func(t *testing.T) {
		writeConfig(t, tmpDir, "mail.yaml", "driver: smtp\n")
		store := NewBuilder().WithSearchPath(tmpDir).WithExtension("yaml").MustBuild()
		val, ok := store.Get("mail.driver")
		assert.True(t, ok)
		assert.Equal(t, "smtp", val)
	})
}

func TestMalformedArtifact(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "broken.toml", `host = broken toml`)

	store := NewBuilder().WithSearchPath(tmpDir).MustBuild()

	err := store.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
	assert.False(t, store.Loader().Loaded("broken"), "failed loads must not mark the namespace")

	// Implicit loading swallows the error into a plain miss.
	assert.Equal(t, "fallback", store.GetOr("broken.host", "fallback"))
}

func TestIdentifierNormalization(t *testing.T) {
	source := newCountingSource(mapSource{
		"/etc/app/db.toml": {Value: map[string]any{"host": "localhost"}},
	})
	loader := NewLoader(source)
	loader.SetPath("/etc/app")
	store := NewWithLoader(loader)

	// Leading and trailing separators are stripped before the search.
	require.NoError(t, store.Load(`/db/`))
	val, _ := store.Get("db.host")
	assert.Equal(t, "localhost", val)
}
