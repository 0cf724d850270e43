package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

func Test_ShallowCopy_SharesAuthorAndCategory(t *testing.T) {
	// arrange
	original := givenPrintedBook(t, "Java Programming", 2023, 10)

	// act
	clone := catalog.ShallowCopy(original)

	// assert
	assert.NotEqual(t, original.ID(), clone.ID())
	assert.Same(t, original.Author(), clone.Author())
	assert.Same(t, original.Category(), clone.Category())
	assertSameFields(t, original, clone)
}

func Test_DeepCopy_DuplicatesAuthorAndCategory(t *testing.T) {
	// arrange
	original := givenEBook(t, "Advanced Java")

	// act
	clone, err := catalog.DeepCopy(original)

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, original.ID(), clone.ID())
	assert.NotSame(t, original.Author(), clone.Author())
	assert.NotSame(t, original.Category(), clone.Category())
	assert.Equal(t, *original.Author(), *clone.Author())
	assert.Equal(t, *original.Category(), *clone.Category())
	assertSameFields(t, original, clone)

	details, ok := clone.Electronic()
	require.True(t, ok)
	assert.Equal(t, "EPUB", details.Format)
}

func Test_DeepCopy_FailsWithoutAuthor(t *testing.T) {
	// act
	clone, err := catalog.DeepCopy(catalog.Book{})

	// assert
	assert.ErrorIs(t, err, catalog.ErrCopyFailure)
	assert.True(t, clone.IsZero())
}

func assertSameFields(t *testing.T, expected, actual catalog.Book) {
	t.Helper()

	assert.Equal(t, expected.Title(), actual.Title())
	assert.Equal(t, expected.Year(), actual.Year())
	assert.Equal(t, expected.CopiesAvailable(), actual.CopiesAvailable())
	assert.Equal(t, expected.Status(), actual.Status())
	assert.Equal(t, expected.Kind(), actual.Kind())
}
