package library

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/lending"
	"github.com/AntonStoeckl/library-catalog-go/shell"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets a basic logger. It is only used when no contextual logger is set.
func WithLogger(logger shell.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithContextualLogger sets a context-aware logger, e.g. a *slog.Logger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(m *Manager) {
		m.contextualLogger = logger
	}
}

// WithMetrics sets the collector for command metrics.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(m *Manager) {
		m.metricsCollector = collector
	}
}

// WithTracing sets the collector for command spans.
func WithTracing(collector shell.TracingCollector) Option {
	return func(m *Manager) {
		m.tracingCollector = collector
	}
}

// WithPolicy replaces lending.DefaultPolicy.
func WithPolicy(policy lending.Policy) Option {
	return func(m *Manager) {
		m.policy = policy
	}
}

// WithClock sets the time source for event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithJournal lets the Manager record into an existing Journal.
func WithJournal(j *journal.Journal) Option {
	return func(m *Manager) {
		if j != nil {
			m.journal = j
		}
	}
}
