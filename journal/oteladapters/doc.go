// Package oteladapters implements the journal observability interfaces (and so the library
// manager's, which alias them) on top of OpenTelemetry metrics, tracing and logging.
package oteladapters
