// Package library is the entry point for callers of the catalog.
//
// A Manager owns the catalog index, the lending policy and the journal of domain events.
// Every command takes a context.Context (used for logging and tracing only, no command blocks)
// and returns a Result; commands never panic.
//
// Example:
//
//	m := library.NewManager(library.WithContextualLogger(slog.Default()))
//	res := m.AddBook(ctx, library.BookSpec{Title: "Java Programming", Author: author, Category: category, Year: 2023, Copies: 10})
//	if !res.OK {
//		// res.Kind() tells NotFound, DuplicateTitle, ... apart
//	}
package library
