package main

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library"
)

// step is one entry of the demo session.
type step struct {
	Heading string
	Result  library.Result
	Detail  func(catalog.Book) string
}

// runScenario plays the demo session and returns every step, failed ones included.
func runScenario(ctx context.Context, m *library.Manager) []step {
	author := catalog.NewAuthor("John", "Doe", "01.01.1980")
	category := catalog.NewCategory("Programming", "Books about software development")

	summary := catalog.Book.Summary
	describe := catalog.Book.Describe

	steps := []step{
		{
			Heading: "Printed book",
			Result:  m.AddBook(ctx, library.BookSpec{Title: "Java Programming", Author: author, Category: category, Year: 2023, Copies: 10}),
			Detail:  summary,
		},
		{
			Heading: "Shallow clone",
			Result:  m.CloneBook(ctx, "Java Programming", library.Shallow),
			Detail:  summary,
		},
		{
			Heading: "Deep clone",
			Result:  m.CloneBook(ctx, "Java Programming", library.Deep),
			Detail:  summary,
		},
		{
			Heading: "E-book, full listing",
			Result: m.AddBook(ctx, library.BookSpec{
				Title: "Advanced Java", Author: author, Category: category, Year: 2022, Copies: 5,
				EBook: &library.EBookSpec{Format: "EPUB", SizeMB: 2.5},
			}),
			Detail: summary,
		},
		{
			Heading: "E-book, short listing",
			Result:  m.Search(ctx, "advanced java"),
			Detail:  describe,
		},
		{
			Heading: "Printed book, details",
			Result:  m.AddBook(ctx, library.BookSpec{Title: "Printed Java", Author: author, Category: category, Year: 2021, Copies: 15}),
			Detail:  describe,
		},
		{Heading: "Reserve", Result: m.Reserve(ctx, "Java Programming"), Detail: describe},
		{Heading: "Checkout of the reserved book", Result: m.Checkout(ctx, "Java Programming"), Detail: describe},
		{Heading: "Second checkout", Result: m.Checkout(ctx, "Java Programming"), Detail: describe},
		{Heading: "Return", Result: m.ReturnBook(ctx, "Java Programming"), Detail: describe},
		{Heading: "Return again", Result: m.ReturnBook(ctx, "Java Programming"), Detail: describe},
		{Heading: "Books by doe", Result: m.SearchByAuthor(ctx, "doe"), Detail: describe},
		{Heading: "Sort by year", Result: m.SortByYear(ctx)},
		{Heading: "Catalog", Result: m.List(ctx), Detail: describe},
		{Heading: "History of Java Programming", Result: m.History(ctx, "Java Programming")},
	}

	return steps
}
