// Package helper provides test doubles for the observability interfaces of the library manager and
// the journal: a slog.Handler spy, a contextual logger spy, a metrics collector spy and a tracing
// collector spy. All spies are safe for concurrent use.
package helper
