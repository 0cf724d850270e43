package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Status is the lending status of a book.
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"
	StatusReserved   Status = "RESERVED"
	StatusCheckedOut Status = "CHECKED_OUT"
)

// Kind tells printed books and e-books apart.
type Kind string

const (
	KindPrinted    Kind = "PRINTED"
	KindElectronic Kind = "ELECTRONIC"
)

// ElectronicDetails holds the fields only an e-book has.
type ElectronicDetails struct {
	Format string
	SizeMB float64
}

// Record is the read-only view every book variant offers.
// The catalog index and the copy functions only rely on this view where they can.
type Record interface {
	Title() string
	Author() *Author
	Year() int
	Describe() string
}

// Book is a catalog entry, either printed or electronic.
//
// Book is a value: the lending status and the copy count only change through Evolve,
// which returns a new value.
type Book struct {
	id         uuid.UUID
	title      string
	author     *Author
	category   *Category
	year       int
	copies     int
	status     Status
	kind       Kind
	electronic ElectronicDetails
}

var _ Record = Book{}

// NewBook creates a printed book with status Available.
func NewBook(title string, author *Author, category *Category, year int, copies int) (Book, error) {
	b := Book{
		id:       uuid.New(),
		title:    strings.TrimSpace(title),
		author:   author,
		category: category,
		year:     year,
		copies:   copies,
		status:   StatusAvailable,
		kind:     KindPrinted,
	}

	if err := b.validate(); err != nil {
		return Book{}, err
	}

	return b, nil
}

// NewEBook creates an electronic book with status Available.
func NewEBook(
	title string,
	author *Author,
	category *Category,
	year int,
	copies int,
	format string,
	sizeMB float64,
) (Book, error) {
	b := Book{
		id:         uuid.New(),
		title:      strings.TrimSpace(title),
		author:     author,
		category:   category,
		year:       year,
		copies:     copies,
		status:     StatusAvailable,
		kind:       KindElectronic,
		electronic: ElectronicDetails{Format: format, SizeMB: sizeMB},
	}

	if err := b.validate(); err != nil {
		return Book{}, err
	}

	return b, nil
}

// Validate checks the invariants the constructors enforce. Books built with NewBook or NewEBook
// and their copies always pass; a zero Book does not.
func (b Book) Validate() error {
	return b.validate()
}

// Detached returns b with its lending state cleared: status Available, available copies kept.
// Books entering a catalog start from this state.
func Detached(b Book) Book {
	b.status = StatusAvailable

	return b
}

func (b Book) validate() error {
	switch {
	case b.title == "":
		return fmt.Errorf("%w: empty title", ErrInvalidBook)
	case b.author == nil:
		return fmt.Errorf("%w: missing author for %q", ErrInvalidBook, b.title)
	case b.category == nil:
		return fmt.Errorf("%w: missing category for %q", ErrInvalidBook, b.title)
	case b.copies < 0:
		return fmt.Errorf("%w: negative copies for %q", ErrInvalidBook, b.title)
	case b.kind == KindElectronic && b.electronic.SizeMB < 0:
		return fmt.Errorf("%w: negative file size %.2f for %q", ErrInvalidBook, b.electronic.SizeMB, b.title)
	}

	return nil
}

func (b Book) ID() uuid.UUID         { return b.id }
func (b Book) Title() string         { return b.title }
func (b Book) Author() *Author       { return b.author }
func (b Book) Category() *Category   { return b.category }
func (b Book) Year() int             { return b.year }
func (b Book) CopiesAvailable() int  { return b.copies }
func (b Book) Status() Status        { return b.status }
func (b Book) Kind() Kind            { return b.kind }
func (b Book) IsElectronic() bool    { return b.kind == KindElectronic }
func (b Book) IsZero() bool          { return b.id == uuid.Nil && b.title == "" }

// Electronic returns the e-book fields. ok is false for printed books.
func (b Book) Electronic() (details ElectronicDetails, ok bool) {
	if b.kind != KindElectronic {
		return ElectronicDetails{}, false
	}

	return b.electronic, true
}
