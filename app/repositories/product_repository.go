package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/pkg/database"
	"github.com/infernolabs/scmflow/pkg/metrics"
)

// ProductRepository handles the "products" collection.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection("products")
}

// All returns products without filtering. limit <= 0 returns everything.
func (r *ProductRepository) All(ctx context.Context, page, limit int) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("products", "find", time.Now())

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
		if page > 1 {
			opts.SetSkip(int64((page - 1) * limit))
		}
	}

	cur, err := r.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("products: find: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

// UpsertStock sets the stock for productID in a single atomic operation.
// When the productId is unseen, the record is created with the given name
// and price; on an existing record only stock changes. Concurrent updates
// for the same productId cannot lose the insert; last stock write wins,
// which is the intended semantics.
//
// Returns the stored record and whether it was created.
func (r *ProductRepository) UpsertStock(ctx context.Context, productID string, stock int, name string, price float64) (models.Product, bool, error) {
	defer metrics.ObserveStoreOp("products", "upsert", time.Now())

	filter := bson.M{"productId": productID}
	update := bson.M{
		"$set": bson.M{"stock": stock},
		"$setOnInsert": bson.M{
			"productId": productID,
			"name":      name,
			"price":     price,
		},
	}

	res, err := r.col().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return models.Product{}, false, fmt.Errorf("products: upsert %q: %w", productID, err)
	}
	created := res.UpsertedCount > 0

	// Follow-up read is for the response body only; the write above is the
	// atomic part.
	var product models.Product
	if err := r.col().FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, created, ErrNotFound
		}
		return models.Product{}, created, fmt.Errorf("products: reload %q: %w", productID, err)
	}

	return product, created, nil
}
