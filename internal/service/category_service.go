package service

import (
	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
)

// DefaultCategoriesPath is the REST base path of categories
const DefaultCategoriesPath = "categories"

// CategoryService handles category remote operations
type CategoryService struct {
	*resource.Service[*domain.Category]
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(client resource.Doer, path string) *CategoryService {
	if path == "" {
		path = DefaultCategoriesPath
	}
	return &CategoryService{
		Service: resource.NewService(client, path, domain.NewCategory),
	}
}
