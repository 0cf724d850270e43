package catalog

import (
	"fmt"

	"github.com/google/uuid"
)

// ShallowCopy returns a new Book with the same scalar and variant fields as b.
// The copy shares b's Author and Category. It gets a fresh id.
func ShallowCopy(b Book) Book {
	clone := b
	clone.id = uuid.New()

	return clone
}

// DeepCopy returns a new Book whose Author and Category are independent duplicates of b's.
// When b has no author or category to duplicate it returns ErrCopyFailure and a zero Book.
func DeepCopy(b Book) (Book, error) {
	if b.author == nil || b.category == nil {
		return Book{}, fmt.Errorf("%w: %q has no author or category to duplicate", ErrCopyFailure, b.title)
	}

	clone := ShallowCopy(b)
	clone.author = b.author.duplicate()
	clone.category = b.category.duplicate()

	return clone, nil
}
