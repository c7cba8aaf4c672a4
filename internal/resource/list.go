package resource

import (
	"cmp"
	"context"
	"slices"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/rs/zerolog/log"
)

// Confirmer asks the user a blocking yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// List is the state of a list page: every remote item, newest id first
type List[T Item] struct {
	remote Remote[T]
	items  []T
	Toast  *Toast
}

// NewList creates an empty list bound to remote
func NewList[T Item](remote Remote[T]) *List[T] {
	return &List[T]{remote: remote}
}

// Load fetches all items and sorts them by id, descending. On failure the
// list stays empty and carries an error toast.
func (l *List[T]) Load(ctx context.Context) error {
	items, err := l.remote.GetAll(ctx)
	if err != nil {
		l.items = nil
		l.Toast = ErrorToast(MsgLoadListError)
		return err
	}
	SortByIDDesc(items)
	l.items = items
	return nil
}

// Items returns the current local state
func (l *List[T]) Items() []T {
	return l.items
}

// Find returns the loaded item with the given id
func (l *List[T]) Find(id int32) (T, bool) {
	for _, item := range l.items {
		if itemID, ok := item.Identity(); ok && itemID == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Delete asks for confirmation, deletes item remotely and only then drops it
// from the local state. It reports whether the remote delete was performed.
func (l *List[T]) Delete(ctx context.Context, item T, confirm Confirmer) (bool, error) {
	if !confirm.Confirm(MsgConfirmDelete) {
		return false, nil
	}

	id, ok := item.Identity()
	if !ok {
		return false, domain.ErrResourceNotPersisted
	}

	if err := l.remote.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int32("id", id).Msg("Failed to delete item")
		l.Toast = ErrorToast(MsgDeleteError)
		return false, err
	}

	l.items = slices.DeleteFunc(l.items, func(element T) bool {
		return element == item
	})
	l.Toast = SuccessToast()
	return true, nil
}

// SortByIDDesc orders items by id, highest first. Items without an id sort last.
func SortByIDDesc[T Item](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		aID, aOK := a.Identity()
		bID, bOK := b.Identity()
		switch {
		case aOK && !bOK:
			return -1
		case !aOK && bOK:
			return 1
		}
		return cmp.Compare(bID, aID)
	})
}
