package index

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Index holds the books of a catalog.
type Index struct {
	books    map[string]catalog.Book
	order    []string
	inserted uint
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		books: make(map[string]catalog.Book),
		order: make([]string, 0),
	}
}

// Insert adds a book at the end of the catalog order.
// It returns catalog.ErrDuplicateTitle if a book with the same title key exists.
func (ix *Index) Insert(book catalog.Book) error {
	key := TitleKey(book.Title())

	if _, exists := ix.books[key]; exists {
		return fmt.Errorf("%w: %q", catalog.ErrDuplicateTitle, book.Title())
	}

	ix.books[key] = book
	ix.order = append(ix.order, key)
	ix.inserted++

	return nil
}

// FindByTitle returns the book with the given title, ignoring letter case.
func (ix *Index) FindByTitle(title string) (catalog.Book, error) {
	book, ok := ix.books[TitleKey(title)]
	if !ok {
		return catalog.Book{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, title)
	}

	return book, nil
}

// FindByAuthor returns all books whose author's name, surname or full name contains name,
// in catalog order. Case and accents are ignored. The result may be empty.
func (ix *Index) FindByAuthor(name string) []catalog.Book {
	needle := searchKey(name)
	found := make([]catalog.Book, 0)

	if needle == "" {
		return found
	}

	for _, key := range ix.order {
		book := ix.books[key]
		if matchesAuthor(book, needle) {
			found = append(found, book)
		}
	}

	return found
}

func matchesAuthor(r catalog.Record, needle string) bool {
	author := r.Author()
	if author == nil {
		return false
	}

	return strings.Contains(searchKey(author.FullName()), needle)
}

// Replace swaps the stored value for the book with the same title.
func (ix *Index) Replace(book catalog.Book) error {
	key := TitleKey(book.Title())

	if _, exists := ix.books[key]; !exists {
		return fmt.Errorf("%w: %q", catalog.ErrNotFound, book.Title())
	}

	ix.books[key] = book

	return nil
}

// Remove deletes the book with the given title and returns it.
func (ix *Index) Remove(title string) (catalog.Book, error) {
	key := TitleKey(title)

	book, exists := ix.books[key]
	if !exists {
		return catalog.Book{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, title)
	}

	delete(ix.books, key)
	ix.order = slices.DeleteFunc(ix.order, func(k string) bool { return k == key })

	return book, nil
}

// All returns the books in catalog order.
func (ix *Index) All() []catalog.Book {
	all := make([]catalog.Book, 0, len(ix.order))
	for _, key := range ix.order {
		all = append(all, ix.books[key])
	}

	return all
}

// Len returns the number of books in the index.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Inserted returns how many books were ever inserted, removed ones included.
func (ix *Index) Inserted() uint {
	return ix.inserted
}
