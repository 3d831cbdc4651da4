package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/services"
)

// memProducts is an in-memory ProductStore with upsert semantics keyed by
// productId.
type memProducts struct {
	products map[string]models.Product
}

func newMemProducts() *memProducts {
	return &memProducts{products: make(map[string]models.Product)}
}

func (m *memProducts) All(_ context.Context, page, limit int) ([]models.Product, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) UpsertStock(_ context.Context, productID string, stock int, name string, price float64) (models.Product, bool, error) {
	existing, ok := m.products[productID]
	if ok {
		existing.Stock = stock
		m.products[productID] = existing
		return existing, false, nil
	}

	created := models.Product{ProductID: productID, Name: name, Price: price, Stock: stock}
	m.products[productID] = created
	return created, true, nil
}

func TestUpsertStockCreatesWithDefaults(t *testing.T) {
	svc := services.NewInventoryServiceWith(newMemProducts())

	product, created, err := svc.UpsertStock(context.Background(), "P-9", 50, "", -1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.DefaultProductName, product.Name)
	assert.Equal(t, float64(models.DefaultProductPrice), product.Price)
	assert.Equal(t, 50, product.Stock)
}

func TestUpsertStockOverwritesExisting(t *testing.T) {
	store := newMemProducts()
	svc := services.NewInventoryServiceWith(store)

	_, created, err := svc.UpsertStock(context.Background(), "P-1", 10, "Bolts", 4.5)
	require.NoError(t, err)
	require.True(t, created)

	// Second write: stock changes, identity fields stay.
	product, created, err := svc.UpsertStock(context.Background(), "P-1", 99, "Renamed", 100)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 99, product.Stock)
	assert.Equal(t, "Bolts", product.Name)
	assert.Equal(t, 4.5, product.Price)
}

func TestListProducts(t *testing.T) {
	store := newMemProducts()
	svc := services.NewInventoryServiceWith(store)

	_, _, err := svc.UpsertStock(context.Background(), "P-1", 10, "Bolts", 4.5)
	require.NoError(t, err)

	products, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
