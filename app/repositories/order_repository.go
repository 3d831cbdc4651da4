package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/pkg/database"
	"github.com/infernolabs/scmflow/pkg/metrics"
)

// OrderRepository handles the "orders" collection. Orders are append-only;
// no update or delete operation exists.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) col() *mongo.Collection {
	return database.Collection("orders")
}

// Insert stores an order verbatim and fills in its generated ID.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveStoreOp("orders", "insert", time.Now())

	res, err := r.col().InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// All returns orders without filtering. page/limit are optional: limit <= 0
// returns the whole collection (the dashboard's contract); insertion order
// is not guaranteed.
func (r *OrderRepository) All(ctx context.Context, page, limit int) ([]models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "find", time.Now())

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
		if page > 1 {
			opts.SetSkip(int64((page - 1) * limit))
		}
	}

	cur, err := r.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}
