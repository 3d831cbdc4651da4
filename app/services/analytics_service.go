package services

import (
	"context"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/repositories"
	"github.com/infernolabs/scmflow/pkg/collection"
	"github.com/infernolabs/scmflow/pkg/geocode"
)

// Summary is the aggregate set behind the dashboard charts.
type Summary struct {
	QuantityByProduct  map[string]int `json:"quantityByProduct"`
	QuantityByShipper  map[string]int `json:"quantityByShipper"`
	QuantityByCustomer map[string]int `json:"quantityByCustomer"`
	StatusDistribution map[string]int `json:"statusDistribution"`
	VolumeByDate       map[string]int `json:"volumeByDate"`
}

// AnalyticsService derives chart aggregates and map markers from the
// order list.
type AnalyticsService struct {
	orders   OrderStore
	resolver *geocode.Resolver
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{
		orders:   repositories.NewOrderRepository(),
		resolver: geocode.NewResolver(),
	}
}

// NewAnalyticsServiceWith injects custom dependencies (tests).
func NewAnalyticsServiceWith(orders OrderStore, resolver *geocode.Resolver) *AnalyticsService {
	return &AnalyticsService{orders: orders, resolver: resolver}
}

// Summary fetches all orders and computes every chart series in one pass
// over the store.
func (s *AnalyticsService) Summary(ctx context.Context) (Summary, error) {
	orders, err := s.orders.All(ctx, 0, 0)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(orders), nil
}

// Summarize computes the chart aggregates for a fetched order list.
func Summarize(orders []models.Order) Summary {
	return Summary{
		QuantityByProduct:  QuantityBy(orders, func(o models.Order) string { return o.Product }),
		QuantityByShipper:  QuantityBy(orders, func(o models.Order) string { return o.Shipper }),
		QuantityByCustomer: QuantityBy(orders, func(o models.Order) string { return o.Customer }),
		StatusDistribution: StatusDistribution(orders),
		VolumeByDate:       VolumeByDate(orders),
	}
}

// QuantityBy sums order quantities grouped by the given key.
func QuantityBy(orders []models.Order, key func(models.Order) string) map[string]int {
	out := make(map[string]int)
	for k, group := range collection.GroupBy(orders, key) {
		out[k] = collection.Reduce(group, 0, func(acc int, o models.Order) int {
			return acc + parseQuantity(o.Quantity)
		})
	}
	return out
}

// StatusDistribution counts orders per delivery status. The three known
// statuses are pre-seeded at zero so the pie chart always shows all
// segments.
func StatusDistribution(orders []models.Order) map[string]int {
	out := make(map[string]int, len(models.DeliveryStatuses))
	for _, status := range models.DeliveryStatuses {
		out[status] = 0
	}
	for _, o := range orders {
		out[o.DeliveryStatus]++
	}
	return out
}

// VolumeByDate counts orders per submission day (UTC). Orders without a
// stored date (pre-dating the field) are skipped.
func VolumeByDate(orders []models.Order) map[string]int {
	out := make(map[string]int)
	for _, o := range orders {
		if o.Date.IsZero() {
			continue
		}
		out[o.Date.UTC().Format("2006-01-02")]++
	}
	return out
}

// Cities returns the distinct order cities in first-seen order, blanks
// removed.
func Cities(orders []models.Order) []string {
	cities := collection.Map(orders, func(o models.Order) string { return o.City })
	cities = collection.Filter(cities, func(c string) bool { return c != "" })
	return collection.Unique(cities)
}

// Markers resolves every distinct order city to a map marker. Resolution
// is sequential and rate limited; unresolvable cities get the placeholder
// coordinate rather than an error.
func (s *AnalyticsService) Markers(ctx context.Context) ([]geocode.Marker, error) {
	orders, err := s.orders.All(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveAll(ctx, Cities(orders))
}

// StreamMarkers resolves cities in the background, delivering each marker
// as it completes. The channel closes when done or when ctx is cancelled.
func (s *AnalyticsService) StreamMarkers(ctx context.Context) (<-chan geocode.Marker, error) {
	orders, err := s.orders.All(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return s.resolver.Stream(ctx, Cities(orders)), nil
}
