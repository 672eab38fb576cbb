// Package mongodb provides the users collection implementation.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unifiedui/user-service/internal/core/docdb"
	"github.com/unifiedui/user-service/internal/domain/models"
)

const (
	// UsersCollectionName is the name of the users collection.
	UsersCollectionName = "users"
)

// UsersCollection implements the docdb.UsersCollection interface for MongoDB.
type UsersCollection struct {
	database   docdb.Database
	collection docdb.Collection
}

// NewUsersCollection creates a new users collection wrapper.
// An empty name selects UsersCollectionName.
func NewUsersCollection(db *mongo.Database, name string) *UsersCollection {
	if name == "" {
		name = UsersCollectionName
	}
	database := NewDatabase(db)
	return &UsersCollection{
		database:   database,
		collection: database.Collection(name),
	}
}

// CheckConnection lists the database collections to prove the server is reachable.
func (c *UsersCollection) CheckConnection(ctx context.Context) bool {
	if _, err := c.database.ListCollectionNames(ctx); err != nil {
		log.Debug().Err(err).Str("database", c.database.Name()).Msg("connection check failed")
		return false
	}
	return true
}

// InsertUser inserts a user and stores the generated ID on it.
func (c *UsersCollection) InsertUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	if !user.ID.IsZero() {
		return fmt.Errorf("user ID is assigned on insert, got %s", user.ID.Hex())
	}

	insertedID, err := c.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted ID type %T", insertedID)
	}
	user.ID = id

	return nil
}

// GetUserByID retrieves a user by ID.
func (c *UsersCollection) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := c.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetAllUsers returns every user in the collection.
func (c *UsersCollection) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := c.find(ctx, bson.D{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUsersByField returns users whose field exactly equals value.
func (c *UsersCollection) GetUsersByField(ctx context.Context, field models.UserField, value string) ([]*models.User, error) {
	converted, err := field.Convert(value)
	if err != nil {
		return nil, err
	}

	users, err := c.find(ctx, bson.D{{Key: field.String(), Value: converted}}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by %s: %w", field, err)
	}
	return users, nil
}

// GetUserByName returns the first user with the given name.
func (c *UsersCollection) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	user, err := c.findOne(ctx, bson.M{models.UserFieldName.String(): name})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}
	return user, nil
}

// GetUsersPage returns at most count users after skipping offset.
func (c *UsersCollection) GetUsersPage(ctx context.Context, offset, count int64) ([]*models.User, error) {
	if offset < 0 || count < 0 {
		return nil, fmt.Errorf("offset and count must not be negative, got %d and %d", offset, count)
	}
	if count == 0 {
		return []*models.User{}, nil
	}

	users, err := c.find(ctx, bson.D{}, &docdb.FindOptions{Skip: offset, Limit: count})
	if err != nil {
		return nil, fmt.Errorf("failed to get users page: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of users.
func (c *UsersCollection) CountUsers(ctx context.Context) (int64, error) {
	count, err := c.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateUser sets field to value on the user with the given ID.
func (c *UsersCollection) UpdateUser(ctx context.Context, id primitive.ObjectID, field models.UserField, value string) (bool, error) {
	converted, err := field.Convert(value)
	if err != nil {
		return false, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: field.String(), Value: converted}}}}

	result, err := c.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	return result.ModifiedCount == 1, nil
}

// DeleteUserByID removes the user with the given ID.
func (c *UsersCollection) DeleteUserByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := c.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return result.DeletedCount == 1, nil
}

// DeleteAllUsers removes every user.
func (c *UsersCollection) DeleteAllUsers(ctx context.Context) (int64, error) {
	result, err := c.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}
	return result.DeletedCount, nil
}

// CreateIndexOnField creates an ascending index on field of collection.
func (c *UsersCollection) CreateIndexOnField(ctx context.Context, collection docdb.Collection, field string) (string, error) {
	if collection == nil {
		return "", fmt.Errorf("collection is required")
	}
	return collection.CreateIndex(ctx, docdb.IndexModel{
		Field: field,
		Order: docdb.SortOrderAsc,
	})
}

// CreateIndexOnNameField creates an ascending index on the name field.
func (c *UsersCollection) CreateIndexOnNameField(ctx context.Context) (string, error) {
	return c.CreateIndexOnField(ctx, c.collection, models.UserFieldName.String())
}

func (c *UsersCollection) findOne(ctx context.Context, filter interface{}) (*models.User, error) {
	var user models.User
	err := c.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (c *UsersCollection) find(ctx context.Context, filter interface{}, findOpts *docdb.FindOptions) ([]*models.User, error) {
	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]*models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
