package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/index"
	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/lending"
	"github.com/AntonStoeckl/library-catalog-go/shell"
)

const (
	AddBookCommandType        = "AddBook"
	AddExistingCommandType    = "AddExistingBook"
	SearchCommandType         = "SearchBook"
	SearchByAuthorCommandType = "SearchBooksByAuthor"
	SortByYearCommandType     = "SortBooksByYear"
	SortByTitleCommandType    = "SortBooksByTitle"
	CloneCommandType          = "CloneBook"
	RemoveCommandType         = "RemoveBook"
	ListCommandType           = "ListBooks"
	HistoryCommandType        = "BookHistory"
)

// Manager is the facade over the catalog index, the lending rules and the journal.
// A Manager is safe for concurrent use; all commands are serialized.
type Manager struct {
	mu      sync.Mutex
	index   *index.Index
	journal *journal.Journal
	policy  lending.Policy
	clock   func() time.Time

	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
}

// NewManager creates a Manager with an empty catalog and lending.DefaultPolicy.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		index:  index.New(),
		policy: lending.DefaultPolicy(),
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.journal == nil {
		m.journal = journal.New()
	}

	return m
}

// Journal returns the journal the Manager records into.
func (m *Manager) Journal() *journal.Journal {
	return m.journal
}

// AddBook creates a book from spec and adds it to the catalog.
func (m *Manager) AddBook(ctx context.Context, spec BookSpec) Result {
	return m.observe(ctx, AddBookCommandType, spec.Title, func(ctx context.Context) Result {
		book, err := spec.build()
		if err != nil {
			return fail(err)
		}

		return m.insert(ctx, AddBookCommandType, book)
	})
}

// AddExisting adds an already constructed book, e.g. a clone returned by CloneBook, possibly taken
// from another Manager. The book must pass Validate. It enters the catalog Available, keeping its copies.
func (m *Manager) AddExisting(ctx context.Context, book catalog.Book) Result {
	return m.observe(ctx, AddExistingCommandType, book.Title(), func(ctx context.Context) Result {
		if err := book.Validate(); err != nil {
			return fail(err)
		}

		return m.insert(ctx, AddExistingCommandType, catalog.Detached(book))
	})
}

func (m *Manager) insert(ctx context.Context, commandType string, book catalog.Book) Result {
	if _, err := m.index.FindByTitle(book.Title()); err == nil {
		return fail(fmt.Errorf("%w: %q", catalog.ErrDuplicateTitle, book.Title()))
	}

	if err := m.record(ctx, commandType, catalog.BuildBookAddedToCatalog(book, m.clock())); err != nil {
		return fail(err)
	}

	if err := m.index.Insert(book); err != nil {
		return fail(err)
	}

	return succeedWithBook(fmt.Sprintf("book added: %q", book.Title()), book)
}

// Search finds a book by title, ignoring letter case.
func (m *Manager) Search(ctx context.Context, title string) Result {
	return m.observe(ctx, SearchCommandType, title, func(context.Context) Result {
		book, err := m.index.FindByTitle(title)
		if err != nil {
			return fail(err)
		}

		return succeedWithBook(fmt.Sprintf("book found: %q", book.Title()), book)
	})
}

// SearchByAuthor returns the books whose author matches name. An empty match is not an error.
func (m *Manager) SearchByAuthor(ctx context.Context, name string) Result {
	return m.observe(ctx, SearchByAuthorCommandType, "", func(context.Context) Result {
		books := m.index.FindByAuthor(name)

		result := succeed(fmt.Sprintf("%d book(s) found for author %q", len(books), name))
		result.Books = books

		return result
	})
}

// Checkout hands out one copy of the book.
func (m *Manager) Checkout(ctx context.Context, title string) Result {
	return m.lend(ctx, lending.BuildCheckout(title, m.clock()))
}

// Reserve reserves an available book.
func (m *Manager) Reserve(ctx context.Context, title string) Result {
	return m.lend(ctx, lending.BuildReserve(title, m.clock()))
}

// ReturnBook brings a checked out copy back.
func (m *Manager) ReturnBook(ctx context.Context, title string) Result {
	return m.lend(ctx, lending.BuildReturn(title, m.clock()))
}

func (m *Manager) lend(ctx context.Context, command lending.Command) Result {
	return m.observe(ctx, command.CommandType(), command.BookTitle(), func(ctx context.Context) Result {
		book, err := m.index.FindByTitle(command.BookTitle())
		if err != nil {
			return fail(err)
		}

		decision := lending.Decide(book, command, m.policy)

		if err = m.record(ctx, command.CommandType(), decision.Event); err != nil {
			return fail(errors.Join(decision.HasError(), err))
		}

		if err = decision.HasError(); err != nil {
			result := fail(err)
			result.Book = &book

			return result
		}

		book = catalog.Evolve(book, decision.Event)

		if err = m.index.Replace(book); err != nil {
			return fail(err)
		}

		return succeedWithBook(lendingMessage(book), book)
	})
}

func lendingMessage(book catalog.Book) string {
	switch book.Status() {
	case catalog.StatusReserved:
		return fmt.Sprintf("book reserved: %q", book.Title())
	case catalog.StatusCheckedOut:
		return fmt.Sprintf("book checked out: %q, copies left %d", book.Title(), book.CopiesAvailable())
	default:
		return fmt.Sprintf("book returned: %q, copies available %d", book.Title(), book.CopiesAvailable())
	}
}

// SortByYear orders the catalog by year, oldest first; books of the same year keep their order.
func (m *Manager) SortByYear(ctx context.Context) Result {
	return m.observe(ctx, SortByYearCommandType, "", func(context.Context) Result {
		m.index.SortByYear()

		return succeed("catalog sorted by year")
	})
}

// SortByTitle orders the catalog by title, ignoring letter case.
func (m *Manager) SortByTitle(ctx context.Context) Result {
	return m.observe(ctx, SortByTitleCommandType, "", func(context.Context) Result {
		m.index.SortByTitle()

		return succeed("catalog sorted by title")
	})
}

// CloneBook returns a copy of the book without adding it to the catalog.
// The clone keeps the title, so AddExisting only accepts it in a catalog that lacks that title,
// e.g. another Manager or this one after RemoveBook.
func (m *Manager) CloneBook(ctx context.Context, title string, mode CloneMode) Result {
	return m.observe(ctx, CloneCommandType, title, func(context.Context) Result {
		book, err := m.index.FindByTitle(title)
		if err != nil {
			return fail(err)
		}

		clone := catalog.ShallowCopy(book)

		if mode == Deep {
			if clone, err = catalog.DeepCopy(book); err != nil {
				return fail(err)
			}
		}

		return succeedWithBook(fmt.Sprintf("%s clone created: %q", mode, clone.Title()), clone)
	})
}

// RemoveBook removes the book from the catalog.
func (m *Manager) RemoveBook(ctx context.Context, title string) Result {
	return m.observe(ctx, RemoveCommandType, title, func(ctx context.Context) Result {
		book, err := m.index.FindByTitle(title)
		if err != nil {
			return fail(err)
		}

		if err = m.record(ctx, RemoveCommandType, catalog.BuildBookRemovedFromCatalog(book, m.clock())); err != nil {
			return fail(err)
		}

		if _, err = m.index.Remove(title); err != nil {
			return fail(err)
		}

		return succeedWithBook(fmt.Sprintf("book removed: %q", book.Title()), book)
	})
}

// List returns all books in catalog order.
func (m *Manager) List(ctx context.Context) Result {
	return m.observe(ctx, ListCommandType, "", func(context.Context) Result {
		books := m.index.All()

		result := succeed(fmt.Sprintf("%d book(s) in catalog", len(books)))
		result.Books = books

		return result
	})
}

// History returns the recorded events of the book with the given title, oldest first, ignoring letter case.
// For a removed title it reports the last book recorded under it. Books that shared a title before a
// RemoveBook and a new AddBook keep separate histories.
func (m *Manager) History(ctx context.Context, title string) Result {
	return m.observe(ctx, HistoryCommandType, title, func(context.Context) Result {
		key := catalog.TitleKey(title)
		if key == "" {
			return fail(fmt.Errorf("%w: %q", catalog.ErrNotFound, title))
		}

		bookID, found := m.lastBookIDFor(key)
		if !found {
			return fail(fmt.Errorf("%w: %q", catalog.ErrNotFound, title))
		}

		filter := journal.BuildEventFilter().
			Matching().
			AllPredicatesOf(journal.P("TitleKey", key), journal.P("BookID", bookID)).
			Finalize()

		storableEvents, _ := m.journal.Query(filter)

		events, err := shell.DomainEventsFrom(storableEvents)
		if err != nil {
			return fail(err)
		}

		result := succeed(fmt.Sprintf("%d event(s) recorded for %q", len(events), title))
		result.Events = events

		return result
	})
}

// lastBookIDFor returns the id of the book in the catalog under key, or else of the book
// that was last recorded under it.
func (m *Manager) lastBookIDFor(key string) (string, bool) {
	if book, err := m.index.FindByTitle(key); err == nil {
		return book.ID().String(), true
	}

	filter := journal.BuildEventFilter().
		Matching().
		AnyPredicateOf(journal.P("TitleKey", key)).
		Finalize()

	storableEvents, _ := m.journal.Query(filter)
	if len(storableEvents) == 0 {
		return "", false
	}

	return jsoniter.Get(storableEvents[len(storableEvents)-1].PayloadJSON, "BookID").ToString(), true
}

// record appends the events to the journal. All events of one call share a causation id.
func (m *Manager) record(ctx context.Context, commandType string, events ...catalog.DomainEvent) error {
	causationID := uuid.New()
	storableEvents := make(journal.StorableEvents, 0, len(events))

	for _, event := range events {
		metadata := shell.BuildEventMetadata(uuid.New(), causationID, commandType)

		storableEvent, err := shell.StorableEventFrom(event, metadata)
		if err != nil {
			m.logJournalMappingFailure(ctx, commandType, err)
			return err
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	m.journal.Append(ctx, storableEvents...)

	return nil
}

func (m *Manager) logJournalMappingFailure(ctx context.Context, commandType string, err error) {
	if m.contextualLogger != nil {
		m.contextualLogger.ErrorContext(ctx, shell.LogMsgJournalMappingFailed, shell.LogAttrCommandType, commandType, shell.LogAttrError, err.Error())
	} else if m.logger != nil {
		m.logger.Error(shell.LogMsgJournalMappingFailed, shell.LogAttrCommandType, commandType, shell.LogAttrError, err.Error())
	}
}
