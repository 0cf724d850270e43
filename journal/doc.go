// Package journal provides an in-memory, append-only log of catalog events.
//
// It keeps the event store abstractions of a dynamic event stream (filters, storable events,
// sequence numbers) but holds everything in process memory for the lifetime of the Journal.
// Nothing is written to durable storage.
//
// Common usage pattern:
//
//	filter := journal.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			catalog.BookCopyCheckedOutEventType,
//			catalog.BookCopyReturnedEventType).
//		AndAnyPredicateOf(journal.P("Title", "Java Programming")).
//		Finalize()
//
//	events, maxSeq := j.Query(filter)
//
//	newEvent, err := journal.BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	seq := j.Append(ctx, newEvent)
package journal
