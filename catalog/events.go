package catalog

import (
	"time"
)

const (
	BookAddedToCatalogEventType     = "BookAddedToCatalog"
	BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"
	BookReservedEventType           = "BookReserved"
	BookCopyCheckedOutEventType     = "BookCopyCheckedOut"
	BookCopyReturnedEventType       = "BookCopyReturned"
	LendingFailedEventType          = "LendingFailed"
)

// BookAddedToCatalog is recorded when a book enters the catalog.
type BookAddedToCatalog struct {
	BookID     BookIDString
	Title      string
	TitleKey   string
	Kind       Kind
	Copies     int
	OccurredAt OccurredAtTS
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(book Book, occurredAt time.Time) BookAddedToCatalog {
	return BookAddedToCatalog{
		BookID:     book.id.String(),
		Title:      book.title,
		TitleKey:   TitleKey(book.title),
		Kind:       book.kind,
		Copies:     book.copies,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookAddedToCatalog) EventType() string        { return BookAddedToCatalogEventType }
func (e BookAddedToCatalog) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookAddedToCatalog) IsErrorEvent() bool       { return false }

// BookRemovedFromCatalog is recorded when a book leaves the catalog.
type BookRemovedFromCatalog struct {
	BookID     BookIDString
	Title      string
	TitleKey   string
	OccurredAt OccurredAtTS
}

// BuildBookRemovedFromCatalog creates a new BookRemovedFromCatalog event.
func BuildBookRemovedFromCatalog(book Book, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		BookID:     book.id.String(),
		Title:      book.title,
		TitleKey:   TitleKey(book.title),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookRemovedFromCatalog) EventType() string        { return BookRemovedFromCatalogEventType }
func (e BookRemovedFromCatalog) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookRemovedFromCatalog) IsErrorEvent() bool       { return false }

// BookReserved is recorded when an available book gets reserved.
type BookReserved struct {
	BookID     BookIDString
	Title      string
	TitleKey   string
	OccurredAt OccurredAtTS
}

// BuildBookReserved creates a new BookReserved event.
func BuildBookReserved(book Book, occurredAt time.Time) BookReserved {
	return BookReserved{
		BookID:     book.id.String(),
		Title:      book.title,
		TitleKey:   TitleKey(book.title),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookReserved) EventType() string        { return BookReservedEventType }
func (e BookReserved) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookReserved) IsErrorEvent() bool       { return false }

// BookCopyCheckedOut is recorded when a copy leaves the library.
// FromReservation is true when the checkout fulfilled a reservation.
type BookCopyCheckedOut struct {
	BookID          BookIDString
	Title           string
	TitleKey        string
	FromReservation bool
	OccurredAt      OccurredAtTS
}

// BuildBookCopyCheckedOut creates a new BookCopyCheckedOut event.
func BuildBookCopyCheckedOut(book Book, occurredAt time.Time) BookCopyCheckedOut {
	return BookCopyCheckedOut{
		BookID:          book.id.String(),
		Title:           book.title,
		TitleKey:        TitleKey(book.title),
		FromReservation: book.status == StatusReserved,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

func (e BookCopyCheckedOut) EventType() string        { return BookCopyCheckedOutEventType }
func (e BookCopyCheckedOut) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookCopyCheckedOut) IsErrorEvent() bool       { return false }

// BookCopyReturned is recorded when a checked out copy comes back.
type BookCopyReturned struct {
	BookID     BookIDString
	Title      string
	TitleKey   string
	OccurredAt OccurredAtTS
}

// BuildBookCopyReturned creates a new BookCopyReturned event.
func BuildBookCopyReturned(book Book, occurredAt time.Time) BookCopyReturned {
	return BookCopyReturned{
		BookID:     book.id.String(),
		Title:      book.title,
		TitleKey:   TitleKey(book.title),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopyReturned) EventType() string        { return BookCopyReturnedEventType }
func (e BookCopyReturned) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookCopyReturned) IsErrorEvent() bool       { return false }

// LendingFailed is recorded when a lending command is rejected by a business rule.
type LendingFailed struct {
	BookID      BookIDString
	Title       string
	TitleKey    string
	CommandType string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildLendingFailed creates a new LendingFailed event.
func BuildLendingFailed(book Book, commandType string, failureInfo string, occurredAt time.Time) LendingFailed {
	return LendingFailed{
		BookID:      book.id.String(),
		Title:       book.title,
		TitleKey:    TitleKey(book.title),
		CommandType: commandType,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e LendingFailed) EventType() string        { return LendingFailedEventType }
func (e LendingFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e LendingFailed) IsErrorEvent() bool       { return true }
