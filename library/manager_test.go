package library_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/lending"
	"github.com/AntonStoeckl/library-catalog-go/library"
	"github.com/AntonStoeckl/library-catalog-go/shell"
	"github.com/AntonStoeckl/library-catalog-go/testutil/helper"
)

func Test_Checkout_ThenReturn_RestoresCopies(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)

	// act
	checkedOut := m.Checkout(ctx, "Java Programming")
	returned := m.ReturnBook(ctx, "Java Programming")

	// assert
	require.True(t, checkedOut.OK, checkedOut.Message)
	assert.Equal(t, catalog.StatusCheckedOut, checkedOut.Book.Status())
	assert.Equal(t, 9, checkedOut.Book.CopiesAvailable())

	require.True(t, returned.OK, returned.Message)
	assert.Equal(t, catalog.StatusAvailable, returned.Book.Status())
	assert.Equal(t, 10, returned.Book.CopiesAvailable())

	found := m.Search(ctx, "java programming")
	require.True(t, found.OK)
	assert.Equal(t, 10, found.Book.CopiesAvailable())
}

func Test_Checkout_LastCopy_ThenUnavailable(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "X", 2020, 1)

	// act
	first := m.Checkout(ctx, "X")
	second := m.Checkout(ctx, "X")

	// assert
	require.True(t, first.OK, first.Message)
	assert.Zero(t, first.Book.CopiesAvailable())

	assert.False(t, second.OK)
	assert.ErrorIs(t, second.Err, catalog.ErrUnavailable)
	assert.Equal(t, library.KindUnavailable, second.Kind())
	require.NotNil(t, second.Book)
	assert.Zero(t, second.Book.CopiesAvailable())
}

func Test_CloneBook_Deep_PreservesEBookDetails(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	added := m.AddBook(ctx, library.BookSpec{
		Title:    "Advanced Java",
		Author:   catalog.NewAuthor("Jane", "Smith", "02.02.1985"),
		Category: catalog.NewCategory("Programming", "Books about software development"),
		Year:     2024,
		Copies:   5,
		EBook:    &library.EBookSpec{Format: "EPUB", SizeMB: 2.5},
	})
	require.True(t, added.OK, added.Message)

	// act
	result := m.CloneBook(ctx, "Advanced Java", library.Deep)

	// assert
	require.True(t, result.OK, result.Message)
	clone := result.Book

	details, ok := clone.Electronic()
	require.True(t, ok)
	assert.Equal(t, "EPUB", details.Format)
	assert.InDelta(t, 2.5, details.SizeMB, 0)

	assert.NotSame(t, added.Book.Author(), clone.Author())
	assert.NotSame(t, added.Book.Category(), clone.Category())
	assert.Equal(t, *added.Book.Author(), *clone.Author())

	list := m.List(ctx)
	assert.Len(t, list.Books, 1, "a clone is not added to the catalog")
}

func Test_CloneBook_Shallow_SharesAuthor(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	original := givenBookWasAdded(t, m, "Java Programming", 2023, 10)

	// act
	result := m.CloneBook(ctx, "Java Programming", library.Shallow)

	// assert
	require.True(t, result.OK, result.Message)
	assert.Same(t, original.Author(), result.Book.Author())
	assert.Contains(t, result.Message, "shallow")
}

func Test_CloneBook_NotFound(t *testing.T) {
	result := library.NewManager().CloneBook(context.Background(), "missing", library.Deep)

	assert.False(t, result.OK)
	assert.Equal(t, library.KindNotFound, result.Kind())
}

func Test_AddBook_RejectsTitleDifferingOnlyInCase(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)

	// act
	result := m.AddBook(ctx, givenSpec("JAVA PROGRAMMING", 2020, 1))

	// assert
	assert.False(t, result.OK)
	assert.ErrorIs(t, result.Err, catalog.ErrDuplicateTitle)
	assert.Equal(t, library.KindDuplicateTitle, result.Kind())
	assert.Len(t, m.List(ctx).Books, 1)
}

func Test_AddBook_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		spec library.BookSpec
	}{
		{name: "empty title", spec: givenSpec("  ", 2020, 1)},
		{name: "negative copies", spec: givenSpec("X", 2020, -1)},
		{name: "missing author", spec: library.BookSpec{Title: "X", Category: catalog.NewCategory("c", "d")}},
		{name: "negative file size", spec: func() library.BookSpec {
			s := givenSpec("X", 2020, 1)
			s.EBook = &library.EBookSpec{Format: "PDF", SizeMB: -1}
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := library.NewManager()

			result := m.AddBook(context.Background(), tt.spec)

			assert.False(t, result.OK)
			assert.Equal(t, library.KindInvalidInput, result.Kind())
			assert.Zero(t, m.Journal().Len())
		})
	}
}

func Test_AddExisting_RejectsCloneWithTitleAlreadyInCatalog(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)
	clone := m.CloneBook(ctx, "Java Programming", library.Shallow)
	require.True(t, clone.OK)

	// act
	result := m.AddExisting(ctx, *clone.Book)

	// assert
	assert.Equal(t, library.KindDuplicateTitle, result.Kind())
	assert.Len(t, m.List(ctx).Books, 1)
}

func Test_AddExisting_AttachesCloneAsAvailable(t *testing.T) {
	// arrange
	ctx := context.Background()
	source := library.NewManager()
	target := library.NewManager()
	givenBookWasAdded(t, source, "X", 2020, 10)
	require.True(t, source.Checkout(ctx, "X").OK)

	clone := source.CloneBook(ctx, "X", library.Deep)
	require.True(t, clone.OK)
	require.Equal(t, catalog.StatusCheckedOut, clone.Book.Status())

	// act
	result := target.AddExisting(ctx, *clone.Book)

	// assert
	require.True(t, result.OK, result.Message)
	assert.Equal(t, catalog.StatusAvailable, result.Book.Status())
	assert.Equal(t, 9, result.Book.CopiesAvailable())

	found := target.Search(ctx, "x")
	require.True(t, found.OK)
	assert.Equal(t, catalog.StatusAvailable, found.Book.Status())
	assert.Equal(t, clone.Book.ID(), found.Book.ID())

	history := target.History(ctx, "X")
	require.Len(t, history.Events, 1)
	assert.IsType(t, catalog.BookAddedToCatalog{}, history.Events[0])

	assert.Equal(t, library.KindInvalidTransition, target.ReturnBook(ctx, "X").Kind())
}

func Test_AddExisting_AttachesCloneAfterRemoval(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "X", 2020, 1)
	clone := m.CloneBook(ctx, "X", library.Shallow)
	require.True(t, m.RemoveBook(ctx, "X").OK)

	// act
	result := m.AddExisting(ctx, *clone.Book)

	// assert
	require.True(t, result.OK, result.Message)
	assert.Len(t, m.List(ctx).Books, 1)
}

func Test_AddExisting_RejectsInvalidBooks(t *testing.T) {
	tests := []struct {
		name string
		book catalog.Book
	}{
		{name: "zero book", book: catalog.Book{}},
		{name: "copy of a zero book", book: catalog.ShallowCopy(catalog.Book{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			m := library.NewManager()

			// act
			result := m.AddExisting(ctx, tt.book)

			// assert
			assert.False(t, result.OK)
			assert.Equal(t, library.KindInvalidInput, result.Kind())
			assert.Empty(t, m.List(ctx).Books)
			assert.Equal(t, library.KindNotFound, m.Search(ctx, "").Kind())
			assert.Zero(t, m.Journal().Len())
		})
	}
}

func Test_Reserve_ThenCheckout_FollowsPolicy(t *testing.T) {
	tests := []struct {
		name         string
		opts         []library.Option
		expectedKind library.ErrorKind
	}{
		{name: "default policy", opts: nil, expectedKind: library.KindNone},
		{
			name:         "policy forbidding checkout of reserved books",
			opts:         []library.Option{library.WithPolicy(lending.Policy{AllowCheckoutFromReserved: false})},
			expectedKind: library.KindInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			m := library.NewManager(tt.opts...)
			givenBookWasAdded(t, m, "Java Programming", 2023, 10)

			reserved := m.Reserve(ctx, "Java Programming")
			require.True(t, reserved.OK, reserved.Message)
			assert.Equal(t, catalog.StatusReserved, reserved.Book.Status())

			// act
			result := m.Checkout(ctx, "Java Programming")

			// assert
			assert.Equal(t, tt.expectedKind, result.Kind())
		})
	}
}

func Test_Reserve_And_Return_RejectInvalidTransitions(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)

	// act
	returnedTooEarly := m.ReturnBook(ctx, "Java Programming")
	_ = m.Checkout(ctx, "Java Programming")
	reservedWhileCheckedOut := m.Reserve(ctx, "Java Programming")

	// assert
	assert.Equal(t, library.KindInvalidTransition, returnedTooEarly.Kind())
	assert.Equal(t, library.KindInvalidTransition, reservedWhileCheckedOut.Kind())
}

func Test_LendingCommands_NotFound(t *testing.T) {
	ctx := context.Background()
	m := library.NewManager()

	for _, result := range []library.Result{
		m.Checkout(ctx, "missing"),
		m.Reserve(ctx, "missing"),
		m.ReturnBook(ctx, "missing"),
		m.Search(ctx, "missing"),
		m.RemoveBook(ctx, "missing"),
		m.History(ctx, "missing"),
	} {
		assert.False(t, result.OK)
		assert.Equal(t, library.KindNotFound, result.Kind(), result.Message)
	}
}

func Test_SearchByAuthor(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)
	givenBookWasAdded(t, m, "Go Programming", 2021, 3)

	// act
	found := m.SearchByAuthor(ctx, "DOE")
	none := m.SearchByAuthor(ctx, "nobody")

	// assert
	require.True(t, found.OK)
	assert.Len(t, found.Books, 2)

	assert.True(t, none.OK)
	assert.Empty(t, none.Books)
}

func Test_SortByYear_And_SortByTitle(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "b", 2020, 1)
	givenBookWasAdded(t, m, "C", 2010, 1)
	givenBookWasAdded(t, m, "a", 2020, 1)

	// act & assert
	require.True(t, m.SortByYear(ctx).OK)
	assert.Equal(t, []string{"C", "b", "a"}, titles(m.List(ctx).Books))

	require.True(t, m.SortByTitle(ctx).OK)
	assert.Equal(t, []string{"a", "b", "C"}, titles(m.List(ctx).Books))
}

func Test_RemoveBook_KeepsHistory(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)
	_ = m.Checkout(ctx, "Java Programming")

	// act
	removed := m.RemoveBook(ctx, "JAVA programming")
	history := m.History(ctx, "Java Programming")

	// assert
	require.True(t, removed.OK, removed.Message)
	assert.Equal(t, library.KindNotFound, m.Search(ctx, "Java Programming").Kind())

	require.True(t, history.OK, history.Message)
	require.Len(t, history.Events, 3)
	assert.IsType(t, catalog.BookAddedToCatalog{}, history.Events[0])
	assert.IsType(t, catalog.BookCopyCheckedOut{}, history.Events[1])
	assert.IsType(t, catalog.BookRemovedFromCatalog{}, history.Events[2])
}

func Test_History_RecordsRejections(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "X", 2020, 1)
	givenBookWasAdded(t, m, "Y", 2020, 1)
	_ = m.Checkout(ctx, "X")
	_ = m.Checkout(ctx, "X")

	// act
	history := m.History(ctx, "x")

	// assert
	require.True(t, history.OK)
	require.Len(t, history.Events, 3)

	failed, ok := history.Events[2].(catalog.LendingFailed)
	require.True(t, ok)
	assert.Equal(t, lending.CheckoutCommandType, failed.CommandType)
	assert.True(t, failed.IsErrorEvent())
}

func Test_History_OfRemovedBook_IgnoresCase(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	givenBookWasAdded(t, m, "Java Programming", 2023, 10)
	require.True(t, m.RemoveBook(ctx, "Java Programming").OK)

	// act
	lower := m.History(ctx, "java programming")
	exact := m.History(ctx, "Java Programming")

	// assert
	require.True(t, lower.OK, lower.Message)
	require.Len(t, lower.Events, 2)
	assert.Equal(t, exact.Events, lower.Events)
}

func Test_History_KeepsRemovedAndReaddedTitlesApart(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()
	first := givenBookWasAdded(t, m, "Java Programming", 2023, 10)
	require.True(t, m.Checkout(ctx, "Java Programming").OK)
	require.True(t, m.RemoveBook(ctx, "Java Programming").OK)
	second := givenBookWasAdded(t, m, "JAVA PROGRAMMING", 2024, 3)

	// act
	history := m.History(ctx, "java programming")

	// assert
	require.True(t, history.OK, history.Message)
	require.Len(t, history.Events, 1)

	added, ok := history.Events[0].(catalog.BookAddedToCatalog)
	require.True(t, ok)
	assert.Equal(t, second.ID().String(), added.BookID)
	assert.NotEqual(t, first.ID().String(), added.BookID)

	require.True(t, m.RemoveBook(ctx, "Java Programming").OK)
	assert.Len(t, m.History(ctx, "Java Programming").Events, 2)
}

func Test_Commands_RecordEventMetadata(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := journal.New()
	m := library.NewManager(library.WithJournal(j))
	givenBookWasAdded(t, m, "X", 2020, 1)

	// act
	_ = m.Reserve(ctx, "X")

	// assert
	events, maxSequence := j.Query(journal.BuildEventFilter().MatchingAnyEvent())
	require.Len(t, events, 2)
	assert.Equal(t, uint(2), maxSequence)

	metadata, err := shell.EventMetadataFrom(events[1])
	require.NoError(t, err)
	assert.Equal(t, lending.ReserveCommandType, metadata.CommandType)
	assert.NotEmpty(t, metadata.MessageID)
	assert.NotEqual(t, metadata.MessageID, metadata.CausationID)
}

func Test_WithClock_StampsEvents(t *testing.T) {
	// arrange
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := library.NewManager(library.WithClock(func() time.Time { return fixed }))
	givenBookWasAdded(t, m, "X", 2020, 1)

	// act
	history := m.History(ctx, "X")

	// assert
	require.Len(t, history.Events, 1)
	assert.Equal(t, fixed, history.Events[0].HasOccurredAt())
}

func Test_CanceledContext_ShortCircuits(t *testing.T) {
	// arrange
	m := library.NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	result := m.AddBook(ctx, givenSpec("X", 2020, 1))

	// assert
	assert.False(t, result.OK)
	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, library.KindCanceled, result.Kind())
	assert.Zero(t, m.Journal().Len())
}

func Test_Observability_WithSpies(t *testing.T) {
	// arrange
	ctx := context.Background()
	logSpy := helper.NewLogHandlerSpy(false)
	metricsSpy := helper.NewMetricsCollectorSpy(true)
	tracingSpy := helper.NewTracingCollectorSpy(true)

	m := library.NewManager(
		library.WithLogger(slog.New(logSpy)),
		library.WithMetrics(metricsSpy),
		library.WithTracing(tracingSpy),
	)
	givenBookWasAdded(t, m, "X", 2020, 1)

	// act
	_ = m.Checkout(ctx, "X")
	_ = m.Checkout(ctx, "X")

	// assert
	assert.True(t, metricsSpy.HasDurationRecordForMetric(shell.CommandDurationMetric).
		WithLabel(shell.LogAttrCommandType, lending.CheckoutCommandType).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(shell.CommandRejectionsMetric).
		WithLabel(shell.LogAttrErrorKind, string(library.KindUnavailable)).
		Assert())
	assert.Equal(t, 3, metricsSpy.CountRecordsForMetric(helper.SpyCounter, shell.CommandCallsMetric))

	assert.True(t, tracingSpy.HasSpanRecordForName(shell.SpanNameCommand).
		WithStartAttribute(shell.LogAttrTitle, "X").
		WithStatus(shell.StatusRejected).
		WithEndAttributeKey(shell.LogAttrError).
		Assert())

	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
		WithAttr(shell.LogAttrCommandType, library.AddBookCommandType).
		WithDurationMS().
		Assert())
	assert.True(t, logSpy.HasWarnLogWithMessage(shell.LogMsgCommandRejected).
		WithAttr(shell.LogAttrCommandType, lending.CheckoutCommandType).
		Assert())
}

func Test_Observability_WithContextualLogger(t *testing.T) {
	// arrange
	contextualSpy := helper.NewContextualLoggerSpy(true)
	m := library.NewManager(library.WithContextualLogger(contextualSpy))

	// act
	_ = m.Search(context.Background(), "missing")

	// assert
	assert.True(t, contextualSpy.HasRecord("debug", shell.LogMsgCommandStarted))
	assert.True(t, contextualSpy.HasRecord("warn", shell.LogMsgCommandRejected))
}

func Test_ConcurrentCheckouts_NeverOverdraw(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := library.NewManager()

	const books = 5
	for i := range books {
		givenBookWasAdded(t, m, fmt.Sprintf("Book %d", i), 2000+i, 1)
	}

	var g errgroup.Group

	results := make([]library.Result, books*4)

	// act
	for i := range results {
		g.Go(func() error {
			results[i] = m.Checkout(ctx, fmt.Sprintf("Book %d", i%books))
			return nil
		})
	}

	require.NoError(t, g.Wait())

	// assert
	succeeded := 0
	for _, result := range results {
		if result.OK {
			succeeded++
			continue
		}

		assert.Equal(t, library.KindUnavailable, result.Kind())
	}

	assert.Equal(t, books, succeeded)

	for _, book := range m.List(ctx).Books {
		assert.Zero(t, book.CopiesAvailable())
	}
}

func givenSpec(title string, year int, copies int) library.BookSpec {
	return library.BookSpec{
		Title:    title,
		Author:   catalog.NewAuthor("John", "Doe", "01.01.1980"),
		Category: catalog.NewCategory("Programming", "Books about software development"),
		Year:     year,
		Copies:   copies,
	}
}

func givenBookWasAdded(t *testing.T, m *library.Manager, title string, year int, copies int) catalog.Book {
	t.Helper()

	result := m.AddBook(context.Background(), givenSpec(title, year, copies))
	require.True(t, result.OK, result.Message)
	require.NotNil(t, result.Book)

	return *result.Book
}

func titles(books []catalog.Book) []string {
	found := make([]string, 0, len(books))
	for _, book := range books {
		found = append(found, book.Title())
	}

	return found
}
