package services_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/geocode"
)

func sampleOrders() []models.Order {
	day1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	return []models.Order{
		{Product: "Bolts", Shipper: "BlueDart", Customer: "Acme", City: "Mumbai",
			DeliveryStatus: models.StatusDelivered, Quantity: "10", Date: day1},
		{Product: "Bolts", Shipper: "Delhivery", Customer: "Acme", City: "Pune",
			DeliveryStatus: models.StatusPending, Quantity: "5", Date: day2},
		{Product: "Wire", Shipper: "BlueDart", Customer: "Volt", City: "Mumbai",
			DeliveryStatus: models.StatusPending, Quantity: "bad", Date: day2},
	}
}

func TestSummarize(t *testing.T) {
	s := services.Summarize(sampleOrders())

	assert.Equal(t, map[string]int{"Bolts": 15, "Wire": 0}, s.QuantityByProduct)
	assert.Equal(t, map[string]int{"BlueDart": 10, "Delhivery": 5}, s.QuantityByShipper)
	assert.Equal(t, map[string]int{"Acme": 15, "Volt": 0}, s.QuantityByCustomer)
	assert.Equal(t, map[string]int{"2026-08-27": 1, "2026-08-28": 2}, s.VolumeByDate)
}

func TestStatusDistributionPreSeedsAllStatuses(t *testing.T) {
	dist := services.StatusDistribution(sampleOrders())

	assert.Equal(t, 2, dist[models.StatusPending])
	assert.Equal(t, 1, dist[models.StatusDelivered])
	assert.Contains(t, dist, models.StatusInTransit, "empty status still present for the pie chart")
	assert.Equal(t, 0, dist[models.StatusInTransit])
}

func TestVolumeByDateSkipsZeroDates(t *testing.T) {
	orders := []models.Order{{Product: "Bolts"}}
	assert.Empty(t, services.VolumeByDate(orders))
}

func TestCitiesUniqueFirstSeen(t *testing.T) {
	orders := append(sampleOrders(), models.Order{City: ""})
	assert.Equal(t, []string{"Mumbai", "Pune"}, services.Cities(orders))
}

func TestMarkersResolveDistinctCities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latt":"19.0","longt":"72.8"}`)
	}))
	defer srv.Close()

	store := &memOrders{orders: sampleOrders()}
	svc := services.NewAnalyticsServiceWith(store, geocode.NewResolverWith(srv.URL, 0))

	markers, err := svc.Markers(context.Background())
	require.NoError(t, err)
	require.Len(t, markers, 2, "three orders but two distinct cities")
	assert.Equal(t, "Mumbai", markers[0].City)
	assert.Equal(t, geocode.Coordinates{72.8, 19.0}, markers[0].Coordinates)
}

func TestStreamMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latt":"19.0","longt":"72.8"}`)
	}))
	defer srv.Close()

	store := &memOrders{orders: sampleOrders()}
	svc := services.NewAnalyticsServiceWith(store, geocode.NewResolverWith(srv.URL, 0))

	ch, err := svc.StreamMarkers(context.Background())
	require.NoError(t, err)

	var got []geocode.Marker
	for m := range ch {
		got = append(got, m)
	}
	assert.Len(t, got, 2)
}
