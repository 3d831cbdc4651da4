package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/app/controllers"
	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/repositories"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/geocode"
	"github.com/infernolabs/scmflow/pkg/middleware"
	"github.com/infernolabs/scmflow/pkg/router"
	"github.com/infernolabs/scmflow/pkg/testkit"
)

// In-memory stores mirroring the repository contracts.

type memUsers struct{ users map[string]models.User }

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repositories.ErrDuplicate
	}
	m.users[user.Username] = *user
	return nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

type memOrders struct{ orders []models.Order }

func (m *memOrders) Insert(_ context.Context, order *models.Order) error {
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memOrders) All(_ context.Context, page, limit int) ([]models.Order, error) {
	return append([]models.Order(nil), m.orders...), nil
}

type memProducts struct{ products map[string]models.Product }

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

// newTestAPI wires the API route table onto in-memory stores.
func newTestAPI(geocodeURL string) http.Handler {
	users := &memUsers{users: map[string]models.User{}}
	orders := &memOrders{}
	products := &memProducts{products: map[string]models.Product{}}

	authController := controllers.NewAuthControllerWith(services.NewAuthServiceWith(users))
	orderController := controllers.NewOrderControllerWith(services.NewOrderServiceWith(orders, nil, time.Now))
	inventoryController := controllers.NewInventoryControllerWith(services.NewInventoryServiceWith(products))
	analyticsController := controllers.NewAnalyticsControllerWith(
		services.NewAnalyticsServiceWith(orders, geocode.NewResolverWith(geocodeURL, 0)))

	r := router.New()
	r.Post("/register", "auth.register", authController.Register)
	r.Post("/login", "auth.login", authController.Login)
	r.Get("/protected", "auth.protected", authController.Protected, middleware.Auth)

	api := r.Group("/api")
	api.Get("/orders", "orders.list", orderController.List)
	api.Post("/orders", "orders.create", orderController.Create, middleware.Auth)
	api.Get("/products", "products.list", inventoryController.List)
	api.Put("/products/{productId}", "products.upsert", inventoryController.UpsertStock, middleware.Auth)
	api.Get("/analytics/summary", "analytics.summary", analyticsController.Summary)
	api.Get("/analytics/markers/stream", "analytics.markers.stream", analyticsController.StreamMarkers)

	return r.Handler()
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI("http://127.0.0.1:0")
	creds := map[string]string{"username": "alice", "password": "s3cret"}

	// Register.
	rec := testkit.DoJSON(t, api, http.MethodPost, "/register", creds, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, "User registered successfully", body["message"])

	// Duplicate registration is an opaque 500.
	rec = testkit.DoJSON(t, api, http.MethodPost, "/register", creds, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, "User registration failed", body["error"])

	// Unknown username vs wrong password.
	rec = testkit.DoJSON(t, api, http.MethodPost, "/login",
		map[string]string{"username": "bob", "password": "s3cret"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, "User not found", body["error"])

	rec = testkit.DoJSON(t, api, http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, "Invalid credentials", body["error"])

	// Successful login returns a token.
	rec = testkit.DoJSON(t, api, http.MethodPost, "/login", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeJSON(t, rec, &body)
	token := body["token"]
	require.NotEmpty(t, token)

	// Probe with and without the token.
	rec = testkit.DoJSON(t, api, http.MethodGet, "/protected", nil,
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)

	var probe struct {
		Message string `json:"message"`
		User    struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	testkit.DecodeJSON(t, rec, &probe)
	assert.Equal(t, "Access granted", probe.Message)
	assert.Equal(t, "alice", probe.User.Username)

	rec = testkit.DoJSON(t, api, http.MethodGet, "/protected", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, "No token provided", body["error"])
}

func authToken(t *testing.T, api http.Handler) string {
	t.Helper()
	creds := map[string]string{"username": "ops", "password": "pw"}

	rec := testkit.DoJSON(t, api, http.MethodPost, "/register", creds, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testkit.DoJSON(t, api, http.MethodPost, "/login", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	testkit.DecodeJSON(t, rec, &body)
	return body["token"]
}

func TestOrderCreateAndList(t *testing.T) {
	api := newTestAPI("http://127.0.0.1:0")
	token := authToken(t, api)
	auth := map[string]string{"Authorization": "Bearer " + token}

	order := map[string]any{
		"product": "Bolts", "productId": "P-1", "shipper": "BlueDart",
		"customer": "Acme", "city": "Mumbai", "quantity": "5",
	}

	// Creation requires a token.
	rec := testkit.DoJSON(t, api, http.MethodPost, "/api/orders", order, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = testkit.DoJSON(t, api, http.MethodPost, "/api/orders", order, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, "Order added successfully!", body["message"])

	// Listing is public and returns a bare array.
	rec = testkit.DoJSON(t, api, http.MethodGet, "/api/orders", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["),
		"orders list must be a bare JSON array")

	var orders []models.Order
	testkit.DecodeJSON(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "Bolts", orders[0].Product)
	assert.Equal(t, models.StatusPending, orders[0].DeliveryStatus, "status defaults server-side")
	assert.False(t, orders[0].Date.IsZero(), "submission date is stamped server-side")
}

func TestStockUpsertStatusCodes(t *testing.T) {
	api := newTestAPI("http://127.0.0.1:0")
	token := authToken(t, api)
	auth := map[string]string{"Authorization": "Bearer " + token}

	// Unseen productId: created with defaults, 201.
	rec := testkit.DoJSON(t, api, http.MethodPut, "/api/products/P-77",
		map[string]any{"stock": 30}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string         `json:"message"`
		Product models.Product `json:"product"`
	}
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, models.DefaultProductName, body.Product.Name)
	assert.Equal(t, 30, body.Product.Stock)

	// Same productId again: plain update, 200, last write wins.
	rec = testkit.DoJSON(t, api, http.MethodPut, "/api/products/P-77",
		map[string]any{"stock": 12}, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeJSON(t, rec, &body)
	assert.Equal(t, 12, body.Product.Stock)

	// No token, no write.
	rec = testkit.DoJSON(t, api, http.MethodPut, "/api/products/P-77",
		map[string]any{"stock": 1}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalyticsSummaryEndpoint(t *testing.T) {
	api := newTestAPI("http://127.0.0.1:0")
	token := authToken(t, api)
	auth := map[string]string{"Authorization": "Bearer " + token}

	for _, q := range []string{"3", "4"} {
		rec := testkit.DoJSON(t, api, http.MethodPost, "/api/orders",
			map[string]any{"product": "Bolts", "quantity": q, "city": "Pune"}, auth)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := testkit.DoJSON(t, api, http.MethodGet, "/api/analytics/summary", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary services.Summary
	testkit.DecodeJSON(t, rec, &summary)
	assert.Equal(t, 7, summary.QuantityByProduct["Bolts"])
	assert.Equal(t, 2, summary.StatusDistribution[models.StatusPending])
	assert.Equal(t, 0, summary.StatusDistribution[models.StatusDelivered])
}

func TestMarkerStreamEmitsSSE(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latt":"18.52","longt":"73.85"}`)
	}))
	defer srv.Close()

	api := newTestAPI(srv.URL)
	token := authToken(t, api)
	auth := map[string]string{"Authorization": "Bearer " + token}

	rec := testkit.DoJSON(t, api, http.MethodPost, "/api/orders",
		map[string]any{"product": "Bolts", "quantity": "1", "city": "Pune"}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testkit.DoJSON(t, api, http.MethodGet, "/api/analytics/markers/stream", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := rec.Body.String()
	assert.Contains(t, events, "event: marker")
	assert.Contains(t, events, `"city":"Pune"`)
	assert.Contains(t, events, "event: done")
}
