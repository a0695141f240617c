// File: lazyconf/errors.go
package lazyconf

import "errors"

var (
	// ErrArtifactNotFound reports that an identifier did not resolve to a
	// readable artifact, directly or through the search paths. A cache miss
	// caused by this error is a normal outcome for Get.
	ErrArtifactNotFound = errors.New("config artifact not found")

	// ErrInvalidKey reports a structurally invalid dot-path: an empty key or
	// a key containing an empty segment.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrNoLoader reports an explicit Load on a store without a loader.
	ErrNoLoader = errors.New("no loader attached to store")
)
