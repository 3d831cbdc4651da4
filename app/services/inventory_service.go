package services

import (
	"context"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/repositories"
)

// ProductStore is the slice of the product repository the inventory
// service needs.
type ProductStore interface {
	All(ctx context.Context, page, limit int) ([]models.Product, error)
	UpsertStock(ctx context.Context, productID string, stock int, name string, price float64) (models.Product, bool, error)
}

// InventoryService lists products and applies stock updates.
type InventoryService struct {
	products ProductStore
}

func NewInventoryService() *InventoryService {
	return &InventoryService{products: repositories.NewProductRepository()}
}

// NewInventoryServiceWith injects a custom store (tests).
func NewInventoryServiceWith(products ProductStore) *InventoryService {
	return &InventoryService{products: products}
}

// List returns all products; limit <= 0 means everything.
func (s *InventoryService) List(ctx context.Context, page, limit int) ([]models.Product, error) {
	return s.products.All(ctx, page, limit)
}

// UpsertStock overwrites the stock for productID, creating the record with
// defaults ("Unnamed Product", price 0) when the productId is unseen.
// Name and price are ignored on existing records. Returns the stored
// record and whether it was created.
func (s *InventoryService) UpsertStock(ctx context.Context, productID string, stock int, name string, price float64) (models.Product, bool, error) {
	if name == "" {
		name = models.DefaultProductName
	}
	if price < 0 {
		price = models.DefaultProductPrice
	}
	return s.products.UpsertStock(ctx, productID, stock, name, price)
}
