package controllers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/app/controllers"
	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/graphql"
	"github.com/infernolabs/scmflow/pkg/testkit"
)

func TestGraphQLOrdersQuery(t *testing.T) {
	orders := &memOrders{}
	require.NoError(t, orders.Insert(context.Background(), &models.Order{
		Product: "Bolts", City: "Mumbai", Quantity: "5",
		DeliveryStatus: models.StatusInTransit,
	}))

	products := &memProducts{products: map[string]models.Product{
		"P-1": {ProductID: "P-1", Name: "Bolts", Price: 4.5, Stock: 10},
	}}

	schema, err := controllers.NewQuerySchema(
		services.NewOrderServiceWith(orders, nil, time.Now),
		services.NewInventoryServiceWith(products),
	)
	require.NoError(t, err)

	handler := graphql.Handler(schema)

	rec := testkit.DoJSON(t, handler, http.MethodPost, "/graphql", map[string]string{
		"query": `{ orders { product city deliveryStatus } products { productId stock } }`,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Data struct {
			Orders []struct {
				Product        string `json:"product"`
				City           string `json:"city"`
				DeliveryStatus string `json:"deliveryStatus"`
			} `json:"orders"`
			Products []struct {
				ProductID string `json:"productId"`
				Stock     int    `json:"stock"`
			} `json:"products"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	testkit.DecodeJSON(t, rec, &result)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Data.Orders, 1)
	assert.Equal(t, "Bolts", result.Data.Orders[0].Product)
	assert.Equal(t, "In Transit", result.Data.Orders[0].DeliveryStatus)
	require.Len(t, result.Data.Products, 1)
	assert.Equal(t, 10, result.Data.Products[0].Stock)
}

func TestGraphQLMalformedRequest(t *testing.T) {
	schema, err := controllers.NewQuerySchema(
		services.NewOrderServiceWith(&memOrders{}, nil, time.Now),
		services.NewInventoryServiceWith(&memProducts{products: map[string]models.Product{}}),
	)
	require.NoError(t, err)

	rec := testkit.DoJSON(t, graphql.Handler(schema), http.MethodPost, "/graphql", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
