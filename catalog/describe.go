package catalog

import "fmt"

// Describe returns the detail line of a book. Printed books and e-books report differently.
func (b Book) Describe() string {
	switch b.kind {
	case KindElectronic:
		return fmt.Sprintf(
			"E-book: %s, format %s, file size %s MB",
			b.title, b.electronic.Format, formatSize(b.electronic.SizeMB),
		)

	default:
		return fmt.Sprintf(
			"Printed book: %s, year %d, copies available %d",
			b.title, b.year, b.copies,
		)
	}
}

// Summary is the full listing of a book including author and category.
// E-books append their file details.
func (b Book) Summary() string {
	s := fmt.Sprintf("Book: %s, year %d, copies available %d", b.title, b.year, b.copies)

	if b.author != nil {
		s += fmt.Sprintf("; author: %s, born %s", b.author.FullName(), b.author.birthdate)
	}

	if b.category != nil {
		s += fmt.Sprintf("; category: %s (%s)", b.category.name, b.category.description)
	}

	if b.kind == KindElectronic {
		s += fmt.Sprintf("; file format: %s, file size: %s MB", b.electronic.Format, formatSize(b.electronic.SizeMB))
	}

	return s
}

func formatSize(sizeMB float64) string {
	return fmt.Sprintf("%g", sizeMB)
}
