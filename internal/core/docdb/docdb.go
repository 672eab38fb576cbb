// Package docdb defines the document database interface.
package docdb

import (
	"context"
)

// SingleResult represents the result of a FindOne operation.
type SingleResult interface {
	// Decode decodes the result into v. A missing document surfaces as the driver's no-documents error.
	Decode(v interface{}) error
}

// Cursor represents the results of a Find operation.
type Cursor interface {
	// All decodes all remaining documents into results and closes the cursor.
	All(ctx context.Context, results interface{}) error
	// Close closes the cursor.
	Close(ctx context.Context) error
}

// SortOrder represents the sort direction.
type SortOrder string

const (
	// SortOrderAsc represents ascending order.
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc represents descending order.
	SortOrderDesc SortOrder = "desc"
)

// FindOptions limits the documents a Find returns. Zero values mean no limit.
type FindOptions struct {
	Skip  int64
	Limit int64
}

// IndexModel describes a single-field index.
type IndexModel struct {
	Field  string
	Order  SortOrder // defaults to ascending
	Name   string    // generated by the engine when empty
	Unique bool
}

// UpdateResult represents the result of an update operation.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// DeleteResult represents the result of a delete operation.
type DeleteResult struct {
	DeletedCount int64
}

// Collection defines the interface for document collection operations.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// InsertOne inserts a single document and returns its ID.
	InsertOne(ctx context.Context, document interface{}) (interface{}, error)

	// FindOne finds a single document.
	FindOne(ctx context.Context, filter interface{}) SingleResult

	// Find finds multiple documents.
	Find(ctx context.Context, filter interface{}, opts *FindOptions) (Cursor, error)

	// UpdateOne updates a single document.
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*UpdateResult, error)

	// DeleteOne deletes a single document.
	DeleteOne(ctx context.Context, filter interface{}) (*DeleteResult, error)

	// DeleteMany deletes multiple documents.
	DeleteMany(ctx context.Context, filter interface{}) (*DeleteResult, error)

	// CountDocuments counts documents matching the filter.
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)

	// CreateIndex creates an index and returns its name.
	// Creating an index that already exists is not an error.
	CreateIndex(ctx context.Context, model IndexModel) (string, error)
}

// Database defines the interface for database operations.
type Database interface {
	// Name returns the database name.
	Name() string

	// Collection returns a collection by name.
	Collection(name string) Collection

	// ListCollectionNames lists all collection names.
	ListCollectionNames(ctx context.Context) ([]string, error)
}
