package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/pkg/database"
	"github.com/infernolabs/scmflow/pkg/metrics"
)

// UserRepository handles the "users" collection.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) col() *mongo.Collection {
	return database.Collection("users")
}

// Create inserts a new user. A username collision (unique index) returns
// ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveStoreOp("users", "insert", time.Now())

	res, err := r.col().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("users: insert: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByUsername looks up a user by the unique username.
// Returns ErrNotFound when no such user exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	defer metrics.ObserveStoreOp("users", "find", time.Now())

	var user models.User
	err := r.col().FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("users: find %q: %w", username, err)
	}
	return user, nil
}
