// Package thread provides owning, move-only handles over goroutines.
// A handle owns at most one execution context, reports a stable identity
// for it, and guarantees the context is joined before the handle is
// released (Close, or Group.Wait for many handles at once).
package thread
