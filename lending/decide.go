package lending

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	failureReasonNotAvailableForReservation = "book is not available for reservation"
	failureReasonNoCopiesLeft               = "no copies left"
	failureReasonAlreadyCheckedOut          = "book is already checked out"
	failureReasonReservedCheckoutForbidden  = "checkout of reserved books is not allowed"
	failureReasonNotCheckedOut              = "book is not checked out"
)

// ErrUnknownCommand is returned for commands Decide does not handle.
var ErrUnknownCommand = errors.New("unknown lending command")

// Decide determines whether the command may change the lending state of book.
// It has no side effects; book is not modified.
func Decide(book catalog.Book, command Command, policy Policy) catalog.DecisionResult {
	switch c := command.(type) {
	case Reserve:
		return decideReserve(book, c)

	case Checkout:
		return decideCheckout(book, c, policy)

	case Return:
		return decideReturn(book, c)
	}

	event := catalog.BuildLendingFailed(book, command.CommandType(), ErrUnknownCommand.Error(), command.HasOccurredAt())

	return catalog.ErrorDecision(event, ErrUnknownCommand)
}

func decideReserve(book catalog.Book, command Reserve) catalog.DecisionResult {
	if book.Status() != catalog.StatusAvailable {
		return reject(book, command, catalog.ErrInvalidTransition, failureReasonNotAvailableForReservation)
	}

	return catalog.SuccessDecision(catalog.BuildBookReserved(book, command.OccurredAt))
}

func decideCheckout(book catalog.Book, command Checkout, policy Policy) catalog.DecisionResult {
	if book.CopiesAvailable() <= 0 {
		return reject(book, command, catalog.ErrUnavailable, failureReasonNoCopiesLeft)
	}

	switch book.Status() {
	case catalog.StatusCheckedOut:
		return reject(book, command, catalog.ErrUnavailable, failureReasonAlreadyCheckedOut)

	case catalog.StatusReserved:
		if !policy.AllowCheckoutFromReserved {
			return reject(book, command, catalog.ErrInvalidTransition, failureReasonReservedCheckoutForbidden)
		}
	}

	return catalog.SuccessDecision(catalog.BuildBookCopyCheckedOut(book, command.OccurredAt))
}

func decideReturn(book catalog.Book, command Return) catalog.DecisionResult {
	if book.Status() != catalog.StatusCheckedOut {
		return reject(book, command, catalog.ErrInvalidTransition, failureReasonNotCheckedOut)
	}

	return catalog.SuccessDecision(catalog.BuildBookCopyReturned(book, command.OccurredAt))
}

func reject(book catalog.Book, command Command, kind error, reason string) catalog.DecisionResult {
	event := catalog.BuildLendingFailed(book, command.CommandType(), reason, command.HasOccurredAt())

	return catalog.ErrorDecision(event, fmt.Errorf("%w: %s: %s", kind, book.Title(), reason))
}
