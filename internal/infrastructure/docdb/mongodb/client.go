// Package mongodb provides MongoDB client implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/unifiedui/user-service/internal/core/docdb"
)

const (
	// DefaultDatabaseName is the database holding the users collection.
	DefaultDatabaseName = "blog"
)

// Client implements the docdb.Client interface for MongoDB.
type Client struct {
	client          *mongo.Client
	database        *Database
	usersCollection *UsersCollection
}

// ClientConfig holds MongoDB connection configuration.
type ClientConfig struct {
	URI                    string
	DatabaseName           string
	UsersCollectionName    string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	// VerifyConnection pings the server before NewClient returns.
	// Without it an unreachable server only surfaces on the first operation.
	VerifyConnection bool
}

// NewClient creates a new MongoDB client.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}

	databaseName := config.DatabaseName
	if databaseName == "" {
		databaseName = DefaultDatabaseName
	}

	clientOpts := options.Client().ApplyURI(config.URI)
	if config.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(config.ConnectTimeout)
	}
	if config.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(config.ServerSelectionTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if config.VerifyConnection {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to ping mongodb: %w", err)
		}
	}

	db := client.Database(databaseName)

	return &Client{
		client:          client,
		database:        NewDatabase(db),
		usersCollection: NewUsersCollection(db, config.UsersCollectionName),
	}, nil
}

// Database returns the database interface.
func (c *Client) Database() docdb.Database {
	return c.database
}

// Users returns the typed users collection with domain methods.
func (c *Client) Users() docdb.UsersCollection {
	return c.usersCollection
}

// UsersRaw returns the raw users collection for direct operations.
func (c *Client) UsersRaw() docdb.Collection {
	return c.usersCollection.collection
}

// Ping verifies the connection to MongoDB.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes creates all necessary indexes for all collections.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	if _, err := c.usersCollection.CreateIndexOnNameField(ctx); err != nil {
		return fmt.Errorf("failed to ensure users indexes: %w", err)
	}
	return nil
}
