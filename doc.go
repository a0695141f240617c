// File: lazyconf/doc.go

// Package lazyconf provides a lazy-loading, hierarchical key-value
// configuration container. Nested configuration data is addressed with
// dot-separated paths ("database.connections.mysql.host"); loading of
// configuration sources is deferred until a requested key is not yet in
// memory, at which point the attached loader searches an ordered list of
// directories for a matching source file and merges it into the store.
//
// Features:
//   - Dot-path access: Has, Get, GetOr, GetMany, Set, All, Remove
//   - Lazy per-namespace loading with at-most-once reads
//   - Ordered search paths; same-named files deep-merge across paths
//   - Pluggable artifact sources (TOML, JSON, and YAML files built in)
//   - Optional post-load transform applied to every loaded value
//   - Typed getters and struct decoding via mapstructure
//   - Thread-safe operations using sync.RWMutex
//
// Quick Start:
//
//	store := lazyconf.NewBuilder().
//	    WithSearchPath("/etc/app", "./config").
//	    MustBuild()
//
//	// First access to the "database" namespace loads database.toml
//	// from the search paths, then resolves the key.
//	host := store.GetOr("database.connections.mysql.host", "localhost")
//
// A missing key is a normal outcome, never an error: Get reports presence
// with its second return value, GetOr falls back to the given default, and
// Has answers pure presence. After one failed load attempt per call, Get
// degrades to the miss result.
//
// Loading is idempotent per namespace for the lifetime of the store. A
// namespace is marked loaded only after its content was obtained, so a
// transient read failure does not permanently poison it. Reloading requires
// constructing a fresh store.
//
// Thread Safety:
// All operations are thread-safe. The store uses a read-write mutex to allow
// concurrent reads while protecting writes; the loader guards its own state
// and never holds a lock across artifact reads.
package lazyconf
