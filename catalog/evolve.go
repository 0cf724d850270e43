package catalog

// Evolve applies a lending event to a book and returns the resulting value.
// Events that do not change the lending state, or that belong to another book, leave it unchanged.
//
// Evolve trusts that the event was decided against book; it still never lets the copy count drop below zero.
func Evolve(book Book, event DomainEvent) Book {
	switch e := event.(type) {
	case BookReserved:
		if e.BookID == book.id.String() {
			book.status = StatusReserved
		}

	case BookCopyCheckedOut:
		if e.BookID == book.id.String() && book.copies > 0 {
			book.copies--
			book.status = StatusCheckedOut
		}

	case BookCopyReturned:
		if e.BookID == book.id.String() {
			book.copies++
			book.status = StatusAvailable
		}
	}

	return book
}
