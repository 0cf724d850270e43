package catalog

import "strings"

// Author wrote one or more books. It is shared by pointer between the books that reference it.
type Author struct {
	name      string
	surname   string
	birthdate string
}

// NewAuthor creates an Author. The birthdate is kept as given.
func NewAuthor(name, surname, birthdate string) *Author {
	return &Author{
		name:      name,
		surname:   surname,
		birthdate: birthdate,
	}
}

func (a *Author) Name() string      { return a.name }
func (a *Author) Surname() string   { return a.surname }
func (a *Author) Birthdate() string { return a.birthdate }

// FullName joins name and surname, skipping empty parts.
func (a *Author) FullName() string {
	return strings.TrimSpace(a.name + " " + a.surname)
}

func (a *Author) duplicate() *Author {
	clone := *a
	return &clone
}
