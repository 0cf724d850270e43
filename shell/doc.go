// Package shell holds the infrastructure glue between the pure catalog/lending core and the
// outside world: mapping domain events to and from journal.StorableEvent, event metadata,
// and the logging, metrics and tracing helpers used by library.Manager.
//
// In Hexagonal Architecture terminology, this would be the 'adapters' layer.
package shell
