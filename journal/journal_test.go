package journal_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/testutil/helper"
)

func Test_Journal_Append_AssignsGaplessSequenceNumbers(t *testing.T) {
	// arrange
	j := journal.New()
	ctx := context.Background()

	// act
	first := j.Append(ctx, givenStorableEvent(t, "BookAddedToCatalog", `{"Title":"A"}`))
	last := j.Append(ctx,
		givenStorableEvent(t, "BookReserved", `{"Title":"A"}`),
		givenStorableEvent(t, "BookCopyCheckedOut", `{"Title":"A"}`),
	)

	// assert
	assert.Equal(t, uint(1), first)
	assert.Equal(t, uint(3), last)
	assert.Equal(t, 3, j.Len())

	events, maxSequence := j.Query(journal.BuildEventFilter().MatchingAnyEvent())
	require.Len(t, events, 3)
	assert.Equal(t, uint(3), maxSequence)

	for i, event := range events {
		assert.Equal(t, uint(i+1), event.SequenceNumber)
	}
}

func Test_Journal_Query_WithFilter(t *testing.T) {
	// arrange
	j := journal.New()
	ctx := context.Background()
	j.Append(ctx,
		givenStorableEvent(t, "BookAddedToCatalog", `{"Title":"A"}`),
		givenStorableEvent(t, "BookAddedToCatalog", `{"Title":"B"}`),
		givenStorableEvent(t, "BookReserved", `{"Title":"A"}`),
		givenStorableEvent(t, "BookReserved", `{"Title":"B"}`),
	)

	filter := journal.BuildEventFilter().
		Matching().
		AnyPredicateOf(journal.P("Title", "A")).
		Finalize()

	// act
	events, maxSequence := j.Query(filter)

	// assert
	require.Len(t, events, 2)
	assert.Equal(t, "BookAddedToCatalog", events[0].EventType)
	assert.Equal(t, "BookReserved", events[1].EventType)
	assert.Equal(t, uint(3), maxSequence)
}

func Test_Journal_Query_NothingMatches(t *testing.T) {
	// arrange
	j := journal.New()
	j.Append(context.Background(), givenStorableEvent(t, "BookAddedToCatalog", `{"Title":"A"}`))

	filter := journal.BuildEventFilter().Matching().AnyEventTypeOf("BookReserved").Finalize()

	// act
	events, maxSequence := j.Query(filter)

	// assert
	assert.Empty(t, events)
	assert.Zero(t, maxSequence)
}

func Test_Journal_WithObservability(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy(false)
	metricsSpy := helper.NewMetricsCollectorSpy(true)

	j := journal.New(
		journal.WithLogger(slog.New(logSpy)),
		journal.WithMetrics(metricsSpy),
	)

	// act
	j.Append(context.Background(),
		givenStorableEvent(t, "BookAddedToCatalog", `{"Title":"A"}`),
		givenStorableEvent(t, "BookReserved", `{"Title":"A"}`),
	)

	// assert
	assert.Equal(t, 2, logSpy.GetRecordCount())
	assert.True(t, logSpy.HasDebugLogWithMessage("journal event appended").
		WithAttr("event_type", "BookReserved").
		Assert())

	assert.True(t, metricsSpy.HasValueRecordForMetric(journal.JournalEventsMetric).
		WithValue(2).
		Assert())
}

func Test_Journal_ConcurrentAppends(t *testing.T) {
	// arrange
	j := journal.New()
	ctx := context.Background()
	event := givenStorableEvent(t, "BookReserved", `{"Title":"A"}`)

	var wg sync.WaitGroup

	// act
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			j.Append(ctx, event)
		}()
	}

	wg.Wait()

	// assert
	events, maxSequence := j.Query(journal.BuildEventFilter().MatchingAnyEvent())
	assert.Len(t, events, 50)
	assert.Equal(t, uint(50), maxSequence)
}
