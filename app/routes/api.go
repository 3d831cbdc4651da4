// Package routes wires the HTTP surface: controllers, middleware and
// route names.
package routes

import (
	"net/http"
	"time"

	"github.com/infernolabs/scmflow/app/controllers"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/graphql"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/metrics"
	"github.com/infernolabs/scmflow/pkg/middleware"
	"github.com/infernolabs/scmflow/pkg/response"
	"github.com/infernolabs/scmflow/pkg/router"
	"github.com/infernolabs/scmflow/pkg/ws"
)

// RegisterAPI mounts every route. Reads stay public to match the
// dashboard's unauthenticated fetches; every mutating route requires a
// token.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	orderController := controllers.NewOrderController()
	inventoryController := controllers.NewInventoryController()
	analyticsController := controllers.NewAnalyticsController()

	// Credential endpoints take the brunt of brute forcing; throttle them.
	loginLimit := middleware.RateLimit(30, time.Minute)
	r.Post("/register", "auth.register", authController.Register, loginLimit)
	r.Post("/login", "auth.login", authController.Login, loginLimit)
	r.Get("/protected", "auth.protected", authController.Protected, middleware.Auth)

	api := r.Group("/api")
	api.Get("/orders", "orders.list", orderController.List)
	api.Post("/orders", "orders.create", orderController.Create, middleware.Auth)
	api.Post("/orders/export", "orders.export", orderController.Export, middleware.Auth)

	api.Get("/products", "products.list", inventoryController.List)
	api.Put("/products/{productId}", "products.upsert", inventoryController.UpsertStock, middleware.Auth)

	api.Get("/analytics/summary", "analytics.summary", analyticsController.Summary)
	api.Get("/analytics/markers", "analytics.markers", analyticsController.Markers)
	api.Get("/analytics/markers/stream", "analytics.markers.stream", analyticsController.StreamMarkers)

	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, ws.OrderHub)
	})

	schema, err := controllers.NewQuerySchema(services.NewOrderService(), services.NewInventoryService())
	if err != nil {
		logger.Error("graphql schema build failed", "error", err)
	} else {
		r.Post("/graphql", "graphql.query", graphql.Handler(schema))
	}

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
