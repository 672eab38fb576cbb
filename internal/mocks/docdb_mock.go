// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unifiedui/user-service/internal/core/docdb"
	"github.com/unifiedui/user-service/internal/domain/models"
)

// MockCollection is a mock implementation of docdb.Collection.
type MockCollection struct {
	mock.Mock
}

// Name returns the collection name.
func (m *MockCollection) Name() string {
	args := m.Called()
	return args.String(0)
}

// InsertOne inserts a single document.
func (m *MockCollection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	args := m.Called(ctx, document)
	return args.Get(0), args.Error(1)
}

// FindOne finds a single document.
func (m *MockCollection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(docdb.SingleResult)
}

// Find finds multiple documents.
func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(docdb.Cursor), args.Error(1)
}

// UpdateOne updates a single document.
func (m *MockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.UpdateResult), args.Error(1)
}

// DeleteOne deletes a single document.
func (m *MockCollection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.DeleteResult), args.Error(1)
}

// DeleteMany deletes multiple documents.
func (m *MockCollection) DeleteMany(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.DeleteResult), args.Error(1)
}

// CountDocuments counts documents matching the filter.
func (m *MockCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// CreateIndex creates an index.
func (m *MockCollection) CreateIndex(ctx context.Context, model docdb.IndexModel) (string, error) {
	args := m.Called(ctx, model)
	return args.String(0), args.Error(1)
}

// MockDatabase is a mock implementation of docdb.Database.
type MockDatabase struct {
	mock.Mock
}

// Name returns the database name.
func (m *MockDatabase) Name() string {
	args := m.Called()
	return args.String(0)
}

// Collection returns a collection from the database.
func (m *MockDatabase) Collection(name string) docdb.Collection {
	args := m.Called(name)
	return args.Get(0).(docdb.Collection)
}

// ListCollectionNames lists all collection names.
func (m *MockDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockUsersCollection is a mock implementation of docdb.UsersCollection.
type MockUsersCollection struct {
	mock.Mock
}

// CheckConnection reports whether the database is reachable.
func (m *MockUsersCollection) CheckConnection(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// InsertUser inserts a user.
func (m *MockUsersCollection) InsertUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetUserByID retrieves a user by ID.
func (m *MockUsersCollection) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetAllUsers returns all users.
func (m *MockUsersCollection) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// GetUsersByField returns users matching a field value.
func (m *MockUsersCollection) GetUsersByField(ctx context.Context, field models.UserField, value string) ([]*models.User, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// GetUserByName returns the first user with the given name.
func (m *MockUsersCollection) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetUsersPage returns a page of users.
func (m *MockUsersCollection) GetUsersPage(ctx context.Context, offset, count int64) ([]*models.User, error) {
	args := m.Called(ctx, offset, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// CountUsers counts users.
func (m *MockUsersCollection) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// UpdateUser updates a single user field.
func (m *MockUsersCollection) UpdateUser(ctx context.Context, id primitive.ObjectID, field models.UserField, value string) (bool, error) {
	args := m.Called(ctx, id, field, value)
	return args.Bool(0), args.Error(1)
}

// DeleteUserByID deletes a user.
func (m *MockUsersCollection) DeleteUserByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteAllUsers deletes every user.
func (m *MockUsersCollection) DeleteAllUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// CreateIndexOnField creates an index on a collection field.
func (m *MockUsersCollection) CreateIndexOnField(ctx context.Context, collection docdb.Collection, field string) (string, error) {
	args := m.Called(ctx, collection, field)
	return args.String(0), args.Error(1)
}

// CreateIndexOnNameField creates an index on the name field.
func (m *MockUsersCollection) CreateIndexOnNameField(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	usersCollection    *MockUsersCollection
	usersRawCollection *MockCollection
	database           *MockDatabase
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		usersCollection:    &MockUsersCollection{},
		usersRawCollection: &MockCollection{},
		database:           &MockDatabase{},
	}
}

// Database returns the database.
func (m *MockDocDBClient) Database() docdb.Database {
	return m.database
}

// Users returns the typed users collection.
func (m *MockDocDBClient) Users() docdb.UsersCollection {
	return m.usersCollection
}

// UsersRaw returns the raw users collection.
func (m *MockDocDBClient) UsersRaw() docdb.Collection {
	return m.usersRawCollection
}

// Ping checks the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// EnsureIndexes creates indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetMockUsersCollection returns the mock users collection for setting expectations.
func (m *MockDocDBClient) GetMockUsersCollection() *MockUsersCollection {
	return m.usersCollection
}

// GetMockUsersRawCollection returns the mock raw users collection.
func (m *MockDocDBClient) GetMockUsersRawCollection() *MockCollection {
	return m.usersRawCollection
}

// GetMockDatabase returns the mock database.
func (m *MockDocDBClient) GetMockDatabase() *MockDatabase {
	return m.database
}
