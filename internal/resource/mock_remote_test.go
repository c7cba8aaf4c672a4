package resource

import (
	"context"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}

func (m *mockRemote) GetAll(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*domain.Category)
	return cs, args.Error(1)
}

func (m *mockRemote) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*domain.Category)
	return out, args.Error(1)
}

func (m *mockRemote) Update(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*domain.Category)
	return out, args.Error(1)
}

func (m *mockRemote) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func category(id int32, name string) *domain.Category {
	return &domain.Category{ID: domain.Int32Ptr(id), Name: name}
}
