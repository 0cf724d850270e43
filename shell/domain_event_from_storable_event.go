package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents journal.StorableEvents) (catalog.DomainEvents, error) {
	domainEvents := make(catalog.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (catalog.DomainEvent, error) {
	switch storableEvent.EventType {
	case catalog.BookAddedToCatalogEventType:
		return unmarshal[catalog.BookAddedToCatalog](storableEvent.PayloadJSON)

	case catalog.BookRemovedFromCatalogEventType:
		return unmarshal[catalog.BookRemovedFromCatalog](storableEvent.PayloadJSON)

	case catalog.BookReservedEventType:
		return unmarshal[catalog.BookReserved](storableEvent.PayloadJSON)

	case catalog.BookCopyCheckedOutEventType:
		return unmarshal[catalog.BookCopyCheckedOut](storableEvent.PayloadJSON)

	case catalog.BookCopyReturnedEventType:
		return unmarshal[catalog.BookCopyReturned](storableEvent.PayloadJSON)

	case catalog.LendingFailedEventType:
		return unmarshal[catalog.LendingFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E catalog.DomainEvent](payloadJSON []byte) (catalog.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
