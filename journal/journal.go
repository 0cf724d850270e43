package journal

import (
	"context"
	"slices"
	"sync"
)

// Journal is an in-memory, append-only event log.
// It assigns gapless sequence numbers starting at 1. A Journal is safe for concurrent use.
type Journal struct {
	mu               sync.RWMutex
	events           StorableEvents
	sequence         uint
	logger           ContextualLogger
	metricsCollector MetricsCollector
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger logs every append at debug level.
func WithLogger(logger ContextualLogger) Option {
	return func(j *Journal) {
		j.logger = logger
	}
}

// WithMetrics reports the number of events after every append.
func WithMetrics(collector MetricsCollector) Option {
	return func(j *Journal) {
		j.metricsCollector = collector
	}
}

// New creates an empty Journal.
func New(opts ...Option) *Journal {
	j := &Journal{
		events: make(StorableEvents, 0),
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

// Append adds the events in order and returns the sequence number of the last one.
func (j *Journal) Append(ctx context.Context, events ...StorableEvent) uint {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, event := range events {
		j.sequence++
		event.SequenceNumber = j.sequence
		j.events = append(j.events, event)

		if j.logger != nil {
			j.logger.DebugContext(ctx, logMsgAppended, "event_type", event.EventType, "sequence", event.SequenceNumber)
		}
	}

	if j.metricsCollector != nil {
		j.metricsCollector.RecordValue(JournalEventsMetric, float64(len(j.events)), nil)
	}

	return j.sequence
}

// Query returns the events matching filter in sequence order, together with the highest
// sequence number among them (0 if none match).
func (j *Journal) Query(filter Filter) (StorableEvents, MaxSequenceNumberUint) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	found := make(StorableEvents, 0)
	maxSequence := MaxSequenceNumberUint(0)

	for _, event := range j.events {
		if filter.Matches(event) {
			found = append(found, event)
			maxSequence = event.SequenceNumber
		}
	}

	return slices.Clip(found), maxSequence
}

// Len returns the number of appended events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}
