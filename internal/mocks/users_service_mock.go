package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/user-service/internal/domain/models"
	"github.com/unifiedui/user-service/internal/services/users"
)

// MockUsersService is a mock implementation of users.Service.
type MockUsersService struct {
	mock.Mock
}

// Create creates a user.
func (m *MockUsersService) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Get retrieves a user by ID.
func (m *MockUsersService) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetByName retrieves a user by name.
func (m *MockUsersService) GetByName(ctx context.Context, name string) (*models.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// List lists users.
func (m *MockUsersService) List(ctx context.Context, opts *users.ListOptions) (*users.ListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.ListResult), args.Error(1)
}

// UpdateField updates a user field.
func (m *MockUsersService) UpdateField(ctx context.Context, id, field, value string) (bool, error) {
	args := m.Called(ctx, id, field, value)
	return args.Bool(0), args.Error(1)
}

// UpdateFieldByName updates a field of the user with the given name.
func (m *MockUsersService) UpdateFieldByName(ctx context.Context, name, field, value string) (bool, error) {
	args := m.Called(ctx, name, field, value)
	return args.Bool(0), args.Error(1)
}

// Delete deletes a user.
func (m *MockUsersService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteAll deletes every user.
func (m *MockUsersService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// CreateIndex creates an index on a user field.
func (m *MockUsersService) CreateIndex(ctx context.Context, field string) (string, error) {
	args := m.Called(ctx, field)
	return args.String(0), args.Error(1)
}

// Healthy reports database reachability.
func (m *MockUsersService) Healthy(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
