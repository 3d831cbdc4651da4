package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/repositories"
	"github.com/infernolabs/scmflow/pkg/storage"
	"github.com/infernolabs/scmflow/pkg/ws"
)

// OrderStore is the slice of the order repository the services need.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	All(ctx context.Context, page, limit int) ([]models.Order, error)
}

// Broadcaster delivers order events to connected dashboards.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// OrderService creates and lists shipment orders.
type OrderService struct {
	orders OrderStore
	feed   Broadcaster
	now    func() time.Time
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders: repositories.NewOrderRepository(),
		feed:   ws.OrderHub,
		now:    time.Now,
	}
}

// NewOrderServiceWith injects custom dependencies (tests).
func NewOrderServiceWith(orders OrderStore, feed Broadcaster, now func() time.Time) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{orders: orders, feed: feed, now: now}
}

// Create stores the order verbatim, defaulting deliveryStatus to Pending
// and stamping the submission date. The stored record is broadcast on the
// order feed.
func (s *OrderService) Create(ctx context.Context, order *models.Order) error {
	if order.DeliveryStatus == "" {
		order.DeliveryStatus = models.StatusPending
	}
	if order.Date.IsZero() {
		order.Date = s.now().UTC()
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return err
	}

	if s.feed != nil {
		s.feed.BroadcastJSON(map[string]any{"event": "order.created", "order": order})
	}
	return nil
}

// List returns all orders; limit <= 0 means everything.
func (s *OrderService) List(ctx context.Context, page, limit int) ([]models.Order, error) {
	return s.orders.All(ctx, page, limit)
}

// ExportCSV writes the full order list as CSV to the default storage disk
// and returns the stored path.
func (s *OrderService) ExportCSV(ctx context.Context) (string, error) {
	orders, err := s.orders.All(ctx, 0, 0)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"product", "productId", "shipper", "customer", "customerId",
		"house", "city", "state", "pincode", "country",
		"deliveryStatus", "quantity", "date",
	})
	for _, o := range orders {
		_ = w.Write([]string{
			o.Product, o.ProductID, o.Shipper, o.Customer, o.CustomerID,
			o.House, o.City, o.State, o.Pincode, o.Country,
			o.DeliveryStatus, o.Quantity, o.Date.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("orders: write csv: %w", err)
	}

	path := "exports/orders-" + s.now().UTC().Format("20060102-150405") + ".csv"
	if err := storage.Put(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("orders: store export: %w", err)
	}

	return path, nil
}

// parseQuantity converts the string quantity field for aggregation.
// Unparsable values contribute zero.
func parseQuantity(q string) int {
	n, err := strconv.Atoi(q)
	if err != nil {
		return 0
	}
	return n
}
