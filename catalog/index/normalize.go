package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// TitleKey returns the lookup key for a title, see catalog.TitleKey.
func TitleKey(title string) string {
	return catalog.TitleKey(title)
}

// searchKey folds case and strips combining marks, so "Dvořák" matches "dvorak".
func searchKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = s
	}

	return cases.Fold().String(stripped)
}
