package service

import (
	"context"
	"fmt"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
)

// DefaultEntriesPath is the REST base path of entries
const DefaultEntriesPath = "entries"

// CategoryLookup resolves a category by id
type CategoryLookup interface {
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
}

// EntryService handles entry remote operations. Create and Update attach
// the referenced category before the request is sent.
type EntryService struct {
	*resource.Service[*domain.Entry]
	categories CategoryLookup
}

// NewEntryService creates a new EntryService
func NewEntryService(client resource.Doer, path string, categories CategoryLookup) *EntryService {
	if path == "" {
		path = DefaultEntriesPath
	}
	return &EntryService{
		Service:    resource.NewService(client, path, func() *domain.Entry { return new(domain.Entry) }),
		categories: categories,
	}
}

// Create creates an entry after resolving its category
func (s *EntryService) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if err := s.attachCategory(ctx, entry); err != nil {
		return nil, err
	}
	return s.Service.Create(ctx, entry)
}

// Update updates an entry after resolving its category
func (s *EntryService) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if err := s.attachCategory(ctx, entry); err != nil {
		return nil, err
	}
	return s.Service.Update(ctx, entry)
}

func (s *EntryService) attachCategory(ctx context.Context, entry *domain.Entry) error {
	if entry.CategoryID == nil {
		return domain.ErrCategoryRequired
	}
	categoryID := *entry.CategoryID
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("resolve category %d: %w", categoryID, err)
	}
	entry.Category = category
	return nil
}
