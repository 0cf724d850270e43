package library

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// BookSpec describes a book to add. A non-nil EBook makes it an electronic book.
type BookSpec struct {
	Title    string
	Author   *catalog.Author
	Category *catalog.Category
	Year     int
	Copies   int
	EBook    *EBookSpec
}

// EBookSpec holds the e-book specific fields of a BookSpec.
type EBookSpec struct {
	Format string
	SizeMB float64
}

func (s BookSpec) build() (catalog.Book, error) {
	if s.EBook != nil {
		return catalog.NewEBook(s.Title, s.Author, s.Category, s.Year, s.Copies, s.EBook.Format, s.EBook.SizeMB)
	}

	return catalog.NewBook(s.Title, s.Author, s.Category, s.Year, s.Copies)
}

// CloneMode selects the duplication used by Manager.CloneBook.
type CloneMode int

const (
	// Shallow clones share author and category with the original.
	Shallow CloneMode = iota

	// Deep clones get their own author and category.
	Deep
)

func (m CloneMode) String() string {
	if m == Deep {
		return "deep"
	}

	return "shallow"
}
