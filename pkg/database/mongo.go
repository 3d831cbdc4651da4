// Package database manages the MongoDB connection shared by the app.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/infernolabs/scmflow/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection, verifies it with a ping, and
// bootstraps the unique indexes the app relies on. Returns an error instead
// of calling log.Fatal so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	var err error
	client, err = mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		client = nil
		return fmt.Errorf("database: ping: %w", err)
	}

	db = client.Database(config.MongoDB())

	if err := ensureIndexes(ctx); err != nil {
		return fmt.Errorf("database: indexes: %w", err)
	}

	return nil
}

// ensureIndexes creates the unique constraints registration and stock
// upserts depend on. Idempotent; Mongo ignores existing identical indexes.
func ensureIndexes(ctx context.Context) error {
	users := db.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users.username: %w", err)
	}

	products := db.Collection("products")
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("products.productId: %w", err)
	}

	return nil
}

// DB returns the app database handle.
// Panics if Connect has not been called; this is a programming error.
func DB() *mongo.Database {
	if db == nil {
		panic("database: DB called before Connect")
	}
	return db
}

// Collection returns a handle to a named collection in the app database.
// Panics if Connect has not been called; this is a programming error.
func Collection(name string) *mongo.Collection {
	if db == nil {
		panic("database: Collection called before Connect")
	}
	return db.Collection(name)
}

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
