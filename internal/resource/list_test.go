package resource

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ids(items []*domain.Category) []int32 {
	out := make([]int32, len(items))
	for i, it := range items {
		out[i] = it.IDValue()
	}
	return out
}

func TestList_Load_SortsDescendingByID(t *testing.T) {
	ctx := context.Background()
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return([]*domain.Category{
		category(3, "c"), category(10, "j"), category(1, "a"), category(7, "g"),
	}, nil)

	list := NewList[*domain.Category](remote)
	require.NoError(t, list.Load(ctx))

	assert.Equal(t, []int32{10, 7, 3, 1}, ids(list.Items()))
	assert.Nil(t, list.Toast)
	remote.AssertExpectations(t)
}

func TestSortByIDDesc_AnyPermutationIsStrictlyDescending(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		n := r.Intn(20)
		items := make([]*domain.Category, n)
		for i, id := range r.Perm(n) {
			items[i] = category(int32(id+1), "x")
		}

		SortByIDDesc(items)

		for i := 1; i < len(items); i++ {
			assert.Greater(t, items[i-1].IDValue(), items[i].IDValue())
		}
	}
}

func TestSortByIDDesc_UnpersistedLast(t *testing.T) {
	items := []*domain.Category{domain.NewCategory(), category(2, "b"), category(5, "e")}

	SortByIDDesc(items)

	assert.Equal(t, int32(5), items[0].IDValue())
	assert.Equal(t, int32(2), items[1].IDValue())
	_, ok := items[2].Identity()
	assert.False(t, ok)
}

func TestList_Load_Failure(t *testing.T) {
	ctx := context.Background()
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return(nil, errors.New("connection refused"))

	list := NewList[*domain.Category](remote)
	err := list.Load(ctx)

	assert.Error(t, err)
	assert.Empty(t, list.Items())
	require.NotNil(t, list.Toast)
	assert.Equal(t, ToastError, list.Toast.Kind)
	assert.Equal(t, MsgLoadListError, list.Toast.Message)
}

func TestList_Find(t *testing.T) {
	ctx := context.Background()
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return([]*domain.Category{category(1, "a"), category(2, "b")}, nil)

	list := NewList[*domain.Category](remote)
	require.NoError(t, list.Load(ctx))

	found, ok := list.Find(2)
	assert.True(t, ok)
	assert.Equal(t, "b", found.Name)

	_, ok = list.Find(99)
	assert.False(t, ok)
}

func TestList_Delete_RemovesAfterRemoteSuccess(t *testing.T) {
	ctx := context.Background()
	a, b, c := category(1, "a"), category(2, "b"), category(3, "c")
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return([]*domain.Category{a, b, c}, nil)
	remote.On("Delete", ctx, int32(2)).Return(nil)

	list := NewList[*domain.Category](remote)
	require.NoError(t, list.Load(ctx))

	var prompt string
	removed, err := list.Delete(ctx, b, ConfirmFunc(func(p string) bool {
		prompt = p
		return true
	}))

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, MsgConfirmDelete, prompt)
	assert.Equal(t, []int32{3, 1}, ids(list.Items()))
	assert.Equal(t, ToastSuccess, list.Toast.Kind)
	remote.AssertExpectations(t)
}

func TestList_Delete_FiltersByReference(t *testing.T) {
	ctx := context.Background()
	loaded := category(4, "d")
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return([]*domain.Category{loaded}, nil)
	remote.On("Delete", ctx, int32(4)).Return(nil)

	list := NewList[*domain.Category](remote)
	require.NoError(t, list.Load(ctx))

	// same id, different instance: the remote call happens, local state keeps the loaded item
	copyOf := category(4, "d")
	removed, err := list.Delete(ctx, copyOf, ConfirmFunc(func(string) bool { return true }))

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, list.Items(), 1)
}

func TestList_Delete_DeclinedDoesNothing(t *testing.T) {
	ctx := context.Background()
	a := category(1, "a")
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return([]*domain.Category{a}, nil)

	list := NewList[*domain.Category](remote)
	require.NoError(t, list.Load(ctx))

	removed, err := list.Delete(ctx, a, ConfirmFunc(func(string) bool { return false }))

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, list.Items(), 1)
	remote.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestList_Delete_RemoteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	a := category(1, "a")
	remote := new(mockRemote)
	remote.On("GetAll", ctx).Return([]*domain.Category{a}, nil)
	remote.On("Delete", ctx, int32(1)).Return(errors.New("timeout"))

	list := NewList[*domain.Category](remote)
	require.NoError(t, list.Load(ctx))

	removed, err := list.Delete(ctx, a, ConfirmFunc(func(string) bool { return true }))

	assert.Error(t, err)
	assert.False(t, removed)
	assert.Len(t, list.Items(), 1)
	assert.Equal(t, MsgDeleteError, list.Toast.Message)
}

func TestList_Delete_UnpersistedItem(t *testing.T) {
	list := NewList[*domain.Category](new(mockRemote))

	_, err := list.Delete(context.Background(), domain.NewCategory(), ConfirmFunc(func(string) bool { return true }))

	assert.ErrorIs(t, err, domain.ErrResourceNotPersisted)
}
