// Package docdb provides the users collection interface.
package docdb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unifiedui/user-service/internal/domain/models"
)

// UsersCollection defines the interface for users collection operations.
//
// Not-found conditions are never errors: single lookups return a nil user,
// multi-result reads return an empty slice and mutations report false or 0.
type UsersCollection interface {
	// CheckConnection reports whether the database answers a collection listing.
	// Failures are swallowed and reported as false.
	CheckConnection(ctx context.Context) bool

	// InsertUser persists a user without an ID and sets the generated ID on it.
	InsertUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID, or nil if it does not exist.
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// GetAllUsers returns every stored user in storage order.
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	// GetUsersByField returns all users whose field equals value.
	GetUsersByField(ctx context.Context, field models.UserField, value string) ([]*models.User, error)

	// GetUserByName returns the first user with the given name, or nil.
	GetUserByName(ctx context.Context, name string) (*models.User, error)

	// GetUsersPage skips offset users and returns at most count of the rest.
	// Ordering is whatever the storage engine yields.
	GetUsersPage(ctx context.Context, offset, count int64) ([]*models.User, error)

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)

	// UpdateUser sets a single field to value. It returns true if a document changed,
	// false if none matched or the value was already equal.
	UpdateUser(ctx context.Context, id primitive.ObjectID, field models.UserField, value string) (bool, error)

	// DeleteUserByID removes a user and reports whether one was removed.
	DeleteUserByID(ctx context.Context, id primitive.ObjectID) (bool, error)

	// DeleteAllUsers removes every user and returns how many were removed.
	DeleteAllUsers(ctx context.Context) (int64, error)

	// CreateIndexOnField creates an ascending index on field of the given collection.
	CreateIndexOnField(ctx context.Context, collection Collection, field string) (string, error)

	// CreateIndexOnNameField creates an ascending index on the users name field.
	CreateIndexOnNameField(ctx context.Context) (string, error)
}
