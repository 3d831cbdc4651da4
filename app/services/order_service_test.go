package services_test

import (
	"context"
	"encoding/csv"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/storage"
)

// memOrders is an in-memory OrderStore.
type memOrders struct {
	orders []models.Order
}

func (m *memOrders) Insert(_ context.Context, order *models.Order) error {
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memOrders) All(_ context.Context, page, limit int) ([]models.Order, error) {
	return append([]models.Order(nil), m.orders...), nil
}

// memFeed records broadcast payloads.
type memFeed struct {
	events []any
}

func (m *memFeed) BroadcastJSON(v any) { m.events = append(m.events, v) }

// memDisk is an in-memory storage.Disk.
type memDisk struct {
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: make(map[string][]byte)} }

func (d *memDisk) Put(p string, content []byte) error {
	d.files[p] = append([]byte(nil), content...)
	return nil
}

func (d *memDisk) Get(p string) ([]byte, error) { return d.files[p], nil }
func (d *memDisk) Exists(p string) bool         { _, ok := d.files[p]; return ok }
func (d *memDisk) Delete(p string) error        { delete(d.files, p); return nil }

func (d *memDisk) Files(dir string) ([]string, error) {
	var out []string
	for p := range d.files {
		if path.Dir(p) == strings.TrimSuffix(dir, "/") {
			out = append(out, p)
		}
	}
	return out, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
}

func TestCreateDefaultsStatusAndDate(t *testing.T) {
	store := &memOrders{}
	feed := &memFeed{}
	svc := services.NewOrderServiceWith(store, feed, fixedNow)

	order := models.Order{Product: "Bolts", City: "Mumbai", Quantity: "5"}
	require.NoError(t, svc.Create(context.Background(), &order))

	require.Len(t, store.orders, 1)
	got := store.orders[0]
	assert.Equal(t, models.StatusPending, got.DeliveryStatus)
	assert.Equal(t, fixedNow(), got.Date)
	assert.Len(t, feed.events, 1, "order creation should hit the feed")
}

func TestCreateKeepsProvidedStatus(t *testing.T) {
	store := &memOrders{}
	svc := services.NewOrderServiceWith(store, nil, fixedNow)

	order := models.Order{Product: "Wire", DeliveryStatus: models.StatusInTransit}
	require.NoError(t, svc.Create(context.Background(), &order))

	assert.Equal(t, models.StatusInTransit, store.orders[0].DeliveryStatus)
}

func TestListReturnsEverything(t *testing.T) {
	store := &memOrders{}
	svc := services.NewOrderServiceWith(store, nil, fixedNow)

	for _, product := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Create(context.Background(), &models.Order{Product: product}))
	}

	orders, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestExportCSV(t *testing.T) {
	disk := newMemDisk()
	storage.RegisterDisk("mem", disk)

	store := &memOrders{}
	svc := services.NewOrderServiceWith(store, nil, fixedNow)
	require.NoError(t, svc.Create(context.Background(), &models.Order{
		Product: "Bolts", ProductID: "P-1", City: "Mumbai", Quantity: "5",
	}))

	p, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "exports/orders-"))
	require.True(t, disk.Exists(p))

	content, err := disk.Get(p)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one order")
	assert.Equal(t, "product", rows[0][0])
	assert.Equal(t, "Bolts", rows[1][0])
	assert.Equal(t, "Pending", rows[1][10])
}
