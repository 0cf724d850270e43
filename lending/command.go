package lending

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	ReserveCommandType  = "ReserveBook"
	CheckoutCommandType = "CheckoutBook"
	ReturnCommandType   = "ReturnBook"
)

// Command is implemented by all lending commands.
type Command interface {
	CommandType() string
	BookTitle() string
	HasOccurredAt() time.Time
}

// Reserve represents the intent to reserve a book.
type Reserve struct {
	Title      string
	OccurredAt catalog.OccurredAtTS
}

// BuildReserve creates a new Reserve command.
func BuildReserve(title string, occurredAt time.Time) Reserve {
	return Reserve{Title: title, OccurredAt: catalog.ToOccurredAt(occurredAt)}
}

func (c Reserve) CommandType() string      { return ReserveCommandType }
func (c Reserve) BookTitle() string        { return c.Title }
func (c Reserve) HasOccurredAt() time.Time { return c.OccurredAt }

// Checkout represents the intent to hand out a copy of a book.
type Checkout struct {
	Title      string
	OccurredAt catalog.OccurredAtTS
}

// BuildCheckout creates a new Checkout command.
func BuildCheckout(title string, occurredAt time.Time) Checkout {
	return Checkout{Title: title, OccurredAt: catalog.ToOccurredAt(occurredAt)}
}

func (c Checkout) CommandType() string      { return CheckoutCommandType }
func (c Checkout) BookTitle() string        { return c.Title }
func (c Checkout) HasOccurredAt() time.Time { return c.OccurredAt }

// Return represents the intent to bring a checked out copy back.
type Return struct {
	Title      string
	OccurredAt catalog.OccurredAtTS
}

// BuildReturn creates a new Return command.
func BuildReturn(title string, occurredAt time.Time) Return {
	return Return{Title: title, OccurredAt: catalog.ToOccurredAt(occurredAt)}
}

func (c Return) CommandType() string      { return ReturnCommandType }
func (c Return) BookTitle() string        { return c.Title }
func (c Return) HasOccurredAt() time.Time { return c.OccurredAt }
