package handler

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
	"github.com/rs/zerolog/log"
)

// EntryInput is the entry form
type EntryInput struct {
	Name        string `form:"name" validate:"required,min=2,max=255"`
	Description string `form:"description" validate:"max=255"`
	Type        string `form:"type" validate:"required,oneof=income expense"`
	Amount      string `form:"amount" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Paid        bool   `form:"paid"`
	CategoryID  string `form:"categoryId" validate:"required"`
}

// CategoryLister lists every category
type CategoryLister interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
}

// CategoryNames resolves the category name shown next to an entry
type CategoryNames map[int32]string

// Name returns the name of category id, or "-" when it is unknown
func (n CategoryNames) Name(id int32) string {
	if name, ok := n[id]; ok {
		return name
	}
	return "-"
}

// EntryFormOptions holds the select options of the entry form
type EntryFormOptions struct {
	Types      []domain.Option
	Categories []domain.Option
}

// EntryHandler serves the entry pages
type EntryHandler struct {
	*ResourceHandler[*domain.Entry, EntryInput]
	categories CategoryLister
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entries resource.Remote[*domain.Entry], categories CategoryLister, flash *Flash) *EntryHandler {
	h := &EntryHandler{categories: categories}
	h.ResourceHandler = NewResourceHandler(ResourceConfig[*domain.Entry, EntryInput]{
		Name:      "entries",
		BasePath:  "/entries",
		ListTitle: "Entries",
		Remote:    entries,
		New:       domain.NewEntry,
		Titles: resource.Titles[*domain.Entry]{
			Creation: "New entry",
			Edition: func(e *domain.Entry) string {
				return "Editing entry: " + e.Name
			},
		},
		Label: func(e *domain.Entry) string {
			return e.Name + " (" + e.Amount.StringFixed(2) + ")"
		},
		ToInput:   entryToInput,
		Apply:     applyEntryInput,
		ListExtra: h.categoryNames,
		FormExtra: h.formOptions,
	}, flash)
	return h
}

func (h *EntryHandler) loadCategories(ctx context.Context) []*domain.Category {
	categories, err := h.categories.GetAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load categories for entries")
		return nil
	}
	return categories
}

func (h *EntryHandler) categoryNames(ctx context.Context) any {
	names := make(CategoryNames)
	for _, c := range h.loadCategories(ctx) {
		if id, ok := c.Identity(); ok {
			names[id] = c.Name
		}
	}
	return names
}

func (h *EntryHandler) formOptions(ctx context.Context) any {
	categories := h.loadCategories(ctx)
	slices.SortFunc(categories, func(a, b *domain.Category) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	opts := EntryFormOptions{Types: domain.EntryTypeOptions()}
	for _, c := range categories {
		if id, ok := c.Identity(); ok {
			opts.Categories = append(opts.Categories, domain.Option{
				Value: strconv.FormatInt(int64(id), 10),
				Text:  c.Name,
			})
		}
	}
	return opts
}

func entryToInput(e *domain.Entry) EntryInput {
	in := EntryInput{
		Name:        e.Name,
		Description: e.Description,
		Type:        string(e.Type),
		Date:        e.Date,
		Paid:        e.Paid,
	}
	if _, persisted := e.Identity(); persisted || !e.Amount.IsZero() {
		in.Amount = e.Amount.StringFixed(2)
	}
	if e.CategoryID != nil {
		in.CategoryID = strconv.FormatInt(int64(*e.CategoryID), 10)
	}
	return in
}

func applyEntryInput(in *EntryInput, target *domain.Entry) map[string]string {
	amount, err := domain.ParseAmount(in.Amount)
	if err != nil {
		return map[string]string{"amount": "Must be a valid amount"}
	}
	categoryID, err := strconv.ParseInt(in.CategoryID, 10, 32)
	if err != nil {
		return map[string]string{"categoryId": "Must be a number"}
	}

	target.Name = in.Name
	target.Description = in.Description
	target.Type = domain.EntryType(in.Type)
	target.Amount = amount
	target.Date = in.Date
	target.Paid = in.Paid
	target.CategoryID = domain.Int32Ptr(int32(categoryID))
	return nil
}
