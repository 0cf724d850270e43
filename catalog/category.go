package catalog

// Category groups books by subject. Like Author, it is shared by pointer.
type Category struct {
	name        string
	description string
}

// NewCategory creates a Category.
func NewCategory(name, description string) *Category {
	return &Category{
		name:        name,
		description: description,
	}
}

func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }

func (c *Category) duplicate() *Category {
	clone := *c
	return &clone
}
