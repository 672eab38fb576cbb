// Package mongodb provides MongoDB database implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifiedui/user-service/internal/core/docdb"
)

// Collection adapts a *mongo.Collection to docdb.Collection.
type Collection struct {
	collection *mongo.Collection
}

// NewCollection creates a new MongoDB collection wrapper.
func NewCollection(collection *mongo.Collection) *Collection {
	return &Collection{collection: collection}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.collection.Name()
}

// InsertOne inserts document and returns the ID the server stored.
func (c *Collection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	result, err := c.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.Name(), err)
	}
	return result.InsertedID, nil
}

// FindOne finds the first document matching filter.
func (c *Collection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	return c.collection.FindOne(ctx, filter)
}

// Find returns a cursor over the documents matching filter.
func (c *Collection) Find(ctx context.Context, filter interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	findOpts := options.Find()
	if opts != nil {
		if opts.Skip > 0 {
			findOpts.SetSkip(opts.Skip)
		}
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
	}

	cur, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.Name(), err)
	}
	return cur, nil
}

// UpdateOne applies update to the first document matching filter.
func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	result, err := c.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("update in %s: %w", c.Name(), err)
	}
	return &docdb.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

// DeleteOne removes the first document matching filter.
func (c *Collection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	result, err := c.collection.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", c.Name(), err)
	}
	return &docdb.DeleteResult{DeletedCount: result.DeletedCount}, nil
}

// DeleteMany removes every document matching filter.
func (c *Collection) DeleteMany(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	result, err := c.collection.DeleteMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete many from %s: %w", c.Name(), err)
	}
	return &docdb.DeleteResult{DeletedCount: result.DeletedCount}, nil
}

// CountDocuments counts the documents matching filter.
func (c *Collection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := c.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", c.Name(), err)
	}
	return count, nil
}

// CreateIndex creates a single-field index on the collection.
func (c *Collection) CreateIndex(ctx context.Context, model docdb.IndexModel) (string, error) {
	if model.Field == "" {
		return "", fmt.Errorf("index field is required")
	}

	order := 1
	if model.Order == docdb.SortOrderDesc {
		order = -1
	}

	indexOpts := options.Index()
	if model.Name != "" {
		indexOpts.SetName(model.Name)
	}
	if model.Unique {
		indexOpts.SetUnique(true)
	}

	name, err := c.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: model.Field, Value: order}},
		Options: indexOpts,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create index on %s.%s: %w", c.Name(), model.Field, err)
	}
	return name, nil
}

// Database adapts a *mongo.Database to docdb.Database.
type Database struct {
	database *mongo.Database
}

// NewDatabase creates a new MongoDB database wrapper.
func NewDatabase(database *mongo.Database) *Database {
	return &Database{database: database}
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.database.Name()
}

// Collection returns the named collection of the database.
func (d *Database) Collection(name string) docdb.Collection {
	return NewCollection(d.database.Collection(name))
}

// ListCollectionNames lists the collection names of the database.
func (d *Database) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := d.database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections of %s: %w", d.Name(), err)
	}
	return names, nil
}
