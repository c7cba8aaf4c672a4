package domain

// Category groups entries. Only name and description are user supplied.
type Category struct {
	ID          *int32 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategory returns a blank category, the starting state of a creation form
func NewCategory() *Category {
	return &Category{}
}

// Identity implements Resource
func (c *Category) Identity() (int32, bool) {
	return identity(c.ID)
}

// IDValue returns the id or 0 when the category is not persisted yet
func (c *Category) IDValue() int32 {
	id, _ := c.Identity()
	return id
}
