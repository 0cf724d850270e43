package catalog

import "errors"

var (
	// ErrNotFound is returned when no book matches a title.
	ErrNotFound = errors.New("book not found")

	// ErrDuplicateTitle is returned when a book with the same title is already in the catalog.
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrInvalidTransition is returned when a lending event is not allowed in the current status.
	ErrInvalidTransition = errors.New("invalid lending transition")

	// ErrUnavailable is returned when a checkout finds no copy to hand out.
	ErrUnavailable = errors.New("book is unavailable")

	// ErrCopyFailure is returned when a book could not be duplicated.
	ErrCopyFailure = errors.New("book copy failed")

	// ErrInvalidBook is returned by the constructors for incomplete or inconsistent input.
	ErrInvalidBook = errors.New("invalid book")
)
