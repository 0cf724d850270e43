package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// TitleKey returns the lookup key for a title: trimmed, NFC normalised and case folded.
// Two titles with the same key name the same catalog entry.
func TitleKey(title string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(title)))
}
