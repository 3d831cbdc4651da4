package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/bind"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/response"
)

type InventoryController struct {
	service *services.InventoryService
}

func NewInventoryController() *InventoryController {
	return &InventoryController{service: services.NewInventoryService()}
}

// NewInventoryControllerWith injects a custom service (tests).
func NewInventoryControllerWith(service *services.InventoryService) *InventoryController {
	return &InventoryController{service: service}
}

// List returns products as a bare JSON array, optionally paginated.
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	products, err := c.service.List(r.Context(), page, limit)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to fetch products.")
		return
	}

	response.JSON(w, http.StatusOK, products)
}

type stockUpdate struct {
	Stock int     `json:"stock"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// UpsertStock overwrites the stock for the productId in the URL, creating
// the product with defaults when unseen. 201 on create, 200 on update.
func (c *InventoryController) UpsertStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var body stockUpdate
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid stock payload.")
		return
	}

	product, created, err := c.service.UpsertStock(r.Context(), productID, body.Stock, body.Name, body.Price)
	if err != nil {
		logger.WithCtx(r.Context()).Error("stock upsert failed", "productId", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to update stock.")
		return
	}

	status := http.StatusOK
	message := "Stock updated successfully!"
	if created {
		status = http.StatusCreated
		message = "Product created successfully!"
	}

	response.JSON(w, status, map[string]any{
		"message": message,
		"product": product,
	})
}
