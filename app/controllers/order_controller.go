package controllers

import (
	"net/http"
	"strconv"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/bind"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// NewOrderControllerWith injects a custom service (tests).
func NewOrderControllerWith(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create stores a new shipment order. The body is taken at face value;
// only deliveryStatus and date are defaulted server-side.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := bind.JSON(r, &order); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order payload.")
		return
	}

	if err := c.service.Create(r.Context(), &order); err != nil {
		logger.WithCtx(r.Context()).Error("order create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to add order.")
		return
	}

	response.Message(w, http.StatusCreated, "Order added successfully!")
}

// List returns orders as a bare JSON array. Without ?page and ?limit the
// whole collection is returned, which is what the dashboard expects.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	orders, err := c.service.List(r.Context(), page, limit)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	response.JSON(w, http.StatusOK, orders)
}

// Export writes the order list as CSV to the configured storage disk.
func (c *OrderController) Export(w http.ResponseWriter, r *http.Request) {
	path, err := c.service.ExportCSV(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("order export failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to export orders.")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{
		"message": "Orders exported successfully!",
		"path":    path,
	})
}

// pageParams reads the optional ?page and ?limit query parameters.
// Absent or malformed values mean "no pagination".
func pageParams(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return page, limit
}
