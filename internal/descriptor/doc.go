// Package descriptor defines the declarative application descriptor that
// drives plan resolution and rendering.
//
// A Descriptor records everything deploygen needs to know about one hosted
// application: the domain and path prefix it is reachable under, and the
// backend serving it. Backends come in two kinds:
//   - static: files served directly from a document root
//   - proxy: a local port a long-running process listens on
//
// Proxy descriptors may additionally carry supervisor fields (Command,
// WorkingDir, Restart) used when generating process-manager units.
//
// Descriptors are treated as immutable once constructed: the planner and
// the renderers only read them. Path prefixes are compared and emitted in
// normalized form, see NormalizePath.
package descriptor
