package library

import (
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/shell"
)

// ErrorKind classifies why a command failed.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindNotFound          ErrorKind = "not_found"
	KindDuplicateTitle    ErrorKind = "duplicate_title"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindUnavailable       ErrorKind = "unavailable"
	KindCopyFailure       ErrorKind = "copy_failure"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindCanceled          ErrorKind = "canceled"
	KindInternal          ErrorKind = "internal"
)

// Result is the outcome of a Manager command.
//
// Book, Books and Events are payloads; which one is set depends on the command.
// Book values are copies: changing them does not change the catalog.
type Result struct {
	OK      bool
	Message string
	Err     error
	Book    *catalog.Book
	Books   []catalog.Book
	Events  catalog.DomainEvents
}

// Kind maps Err to an ErrorKind. It returns KindNone for successful results.
func (r Result) Kind() ErrorKind {
	switch {
	case r.Err == nil:
		return KindNone
	case errors.Is(r.Err, catalog.ErrNotFound):
		return KindNotFound
	case errors.Is(r.Err, catalog.ErrDuplicateTitle):
		return KindDuplicateTitle
	case errors.Is(r.Err, catalog.ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(r.Err, catalog.ErrUnavailable):
		return KindUnavailable
	case errors.Is(r.Err, catalog.ErrCopyFailure):
		return KindCopyFailure
	case errors.Is(r.Err, catalog.ErrInvalidBook):
		return KindInvalidInput
	case shell.IsCancellationError(r.Err):
		return KindCanceled
	default:
		return KindInternal
	}
}

func succeed(message string) Result {
	return Result{OK: true, Message: message}
}

func succeedWithBook(message string, book catalog.Book) Result {
	return Result{OK: true, Message: message, Book: &book}
}

func fail(err error) Result {
	return Result{OK: false, Message: err.Error(), Err: err}
}
