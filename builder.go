// File: lazyconf/builder.go
package lazyconf

import "fmt"

// Builder provides a fluent interface for assembling a Store with its Loader.
type Builder struct {
	source Source
	paths  []string
	ext    string
	post   PostLoad
	seed   map[string]any
}

// NewBuilder creates a new store builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSource sets the artifact source. Defaults to FileSource.
func (b *Builder) WithSource(source Source) *Builder {
	b.source = source
	return b
}

// WithSearchPath appends search directories in probe order.
func (b *Builder) WithSearchPath(paths ...string) *Builder {
	b.paths = append(b.paths, paths...)
	return b
}

// WithExtension overrides the default artifact extension used during
// search-path resolution.
func (b *Builder) WithExtension(ext string) *Builder {
	b.ext = ext
	return b
}

// WithPostLoad installs the post-load transform applied to every loaded value.
func (b *Builder) WithPostLoad(fn PostLoad) *Builder {
	b.post = fn
	return b
}

// WithSeed pre-populates the store with dot-path keyed values. Repeated
// calls accumulate.
func (b *Builder) WithSeed(values map[string]any) *Builder {
	if b.seed == nil {
		b.seed = make(map[string]any, len(values))
	}
	for key, value := range values {
		b.seed[key] = value
	}
	return b
}

// Build assembles the Store and its Loader with all specified options.
func (b *Builder) Build() (*Store, error) {
	loader := NewLoader(b.source)
	for _, path := range b.paths {
		loader.AddPath(path)
	}
	if b.ext != "" {
		loader.SetExtension(b.ext)
	}
	if b.post != nil {
		loader.SetCallback(b.post)
	}

	store := NewWithLoader(loader)
	if len(b.seed) > 0 {
		if err := store.SetAll(b.seed); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	return store, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Store {
	store, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("store build failed: %v", err))
	}
	return store
}
