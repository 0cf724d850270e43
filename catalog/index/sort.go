package index

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// SortByYear orders the catalog by publication year, oldest first.
// Books with the same year keep their relative order.
func (ix *Index) SortByYear() {
	ix.sortStable(func(a, b catalog.Record) int {
		return cmp.Compare(a.Year(), b.Year())
	})
}

// SortByTitle orders the catalog by title key. The order slice already holds the keys.
func (ix *Index) SortByTitle() {
	slices.SortStableFunc(ix.order, cmp.Compare[string])
}

// sortStable reorders the title sequence only; the title to book mapping is untouched.
func (ix *Index) sortStable(compare func(a, b catalog.Record) int) {
	slices.SortStableFunc(ix.order, func(ka, kb string) int {
		return compare(ix.books[ka], ix.books[kb])
	})
}
