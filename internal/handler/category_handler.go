package handler

import (
	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
)

// CategoryInput is the category form
type CategoryInput struct {
	Name        string `form:"name" validate:"required,min=2,max=255"`
	Description string `form:"description" validate:"max=255"`
}

// CategoryHandler serves the category pages
type CategoryHandler struct {
	*ResourceHandler[*domain.Category, CategoryInput]
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories resource.Remote[*domain.Category], flash *Flash) *CategoryHandler {
	return &CategoryHandler{
		ResourceHandler: NewResourceHandler(ResourceConfig[*domain.Category, CategoryInput]{
			Name:      "categories",
			BasePath:  "/categories",
			ListTitle: "Categories",
			Remote:    categories,
			New:       domain.NewCategory,
			Titles: resource.Titles[*domain.Category]{
				Creation: "New category",
				Edition: func(c *domain.Category) string {
					return "Editing category: " + c.Name
				},
			},
			Label: func(c *domain.Category) string { return c.Name },
			ToInput: func(c *domain.Category) CategoryInput {
				return CategoryInput{Name: c.Name, Description: c.Description}
			},
			Apply: applyCategoryInput,
		}, flash),
	}
}

func applyCategoryInput(in *CategoryInput, target *domain.Category) map[string]string {
	target.Name = in.Name
	target.Description = in.Description
	return nil
}
