package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Defaults applied when a stock update references an unseen productId.
const (
	DefaultProductName  = "Unnamed Product"
	DefaultProductPrice = 0
)

// Product is an inventory record in the "products" collection, keyed by the
// unique productId. Records are created implicitly by the first stock
// update for an unseen productId; only stock changes on subsequent updates.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	ProductID string             `bson:"productId" json:"productId"`
	Price     float64            `bson:"price" json:"price"`
	Stock     int                `bson:"stock" json:"stock"`
}
