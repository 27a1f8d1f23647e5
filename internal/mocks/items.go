package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/foodtrace/backend/internal/models"
)

// MockItemStore is a mock implementation of store.ItemStore
type MockItemStore struct {
	mock.Mock
}

// GetAll mocks the GetAll method
func (m *MockItemStore) GetAll(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

// GetByID mocks the GetByID method
func (m *MockItemStore) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

// Create mocks the Create method
func (m *MockItemStore) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

// Update mocks the Update method
func (m *MockItemStore) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockItemStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
