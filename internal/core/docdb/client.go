// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
// A Client owns its connection; callers release it with Close.
type Client interface {
	// Database returns the database interface.
	Database() Database

	// Users returns the typed users collection.
	Users() UsersCollection

	// UsersRaw returns the users collection for direct operations.
	UsersRaw() Collection

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// EnsureIndexes creates the indexes every collection needs.
	EnsureIndexes(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
