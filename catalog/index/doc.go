// Package index keeps the books of one catalog: a title-keyed map for lookups and an
// ordered sequence of titles for listing and sorting.
//
// Titles are compared case-insensitively (Unicode case folding after NFC normalization),
// so "Java Programming" and "JAVA programming" are the same key. Author search additionally
// ignores accents.
//
// An Index is not safe for concurrent use. The library.Manager owns it and serializes access.
package index
