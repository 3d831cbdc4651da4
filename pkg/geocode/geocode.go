// Package geocode resolves city names to map coordinates through an
// external geocoding API (geocode.xyz shape: {"latt": ..., "longt": ...}).
//
// The upstream service is rate limited, so resolution is strictly
// sequential with a fixed pause before every external call. Failures never
// surface to the caller: a city that cannot be resolved gets the (0,0)
// placeholder so the map still renders a marker for it. Resolved
// coordinates are cached so repeat dashboard loads skip the external call
// and the pause entirely.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/infernolabs/scmflow/config"
	"github.com/infernolabs/scmflow/pkg/cache"
	"github.com/infernolabs/scmflow/pkg/httpclient"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/metrics"
)

// Coordinates is a [longitude, latitude] pair, in the order the map
// widget consumes.
type Coordinates [2]float64

// Fallback is the placeholder used when a city cannot be resolved.
var Fallback = Coordinates{0, 0}

// Marker is one city pin on the analytics map.
type Marker struct {
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
}

// Resolver turns city names into coordinates.
type Resolver struct {
	baseURL  string
	delay    time.Duration
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewResolver builds a Resolver from config.
func NewResolver() *Resolver {
	return &Resolver{
		baseURL:  config.GeocodeBaseURL(),
		delay:    config.GeocodeDelay(),
		timeout:  10 * time.Second,
		cacheTTL: config.GeocodeCacheTTL(),
	}
}

// NewResolverWith builds a Resolver with explicit settings (tests).
func NewResolverWith(baseURL string, delay time.Duration) *Resolver {
	return &Resolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		delay:    delay,
		timeout:  10 * time.Second,
		cacheTTL: time.Hour,
	}
}

// geoResponse is the upstream payload. latt/longt arrive as strings on
// success and as error-text strings on throttling, so both are parsed
// leniently.
type geoResponse struct {
	Latt  json.RawMessage `json:"latt"`
	Longt json.RawMessage `json:"longt"`
}

// Resolve returns the coordinates for one city: cache first, then one
// delayed external call. The boolean reports whether real coordinates were
// found (false means the Fallback placeholder).
func (r *Resolver) Resolve(ctx context.Context, city string) (Coordinates, bool, error) {
	key := cacheKey(city)

	var cached Coordinates
	if cache.Get(key, &cached) {
		metrics.GeocodeCacheHits.Inc()
		return cached, true, nil
	}

	// Mandatory pause before every external call; cancellable.
	if err := sleep(ctx, r.delay); err != nil {
		return Fallback, false, err
	}

	coords, ok := r.fetch(ctx, city)
	if ctx.Err() != nil {
		return Fallback, false, ctx.Err()
	}
	if !ok {
		metrics.GeocodeRequests.WithLabelValues("fallback").Inc()
		return Fallback, false, nil
	}

	metrics.GeocodeRequests.WithLabelValues("ok").Inc()
	if err := cache.Set(key, coords, r.cacheTTL); err != nil {
		logger.Warn("geocode: cache write failed", "city", city, "error", err)
	}
	return coords, true, nil
}

// ResolveAll resolves each city in order. A city that fails resolves to the
// placeholder and the loop continues; cancellation returns the markers
// gathered so far together with the context error.
func (r *Resolver) ResolveAll(ctx context.Context, cities []string) ([]Marker, error) {
	markers := make([]Marker, 0, len(cities))

	for _, city := range cities {
		coords, ok, err := r.Resolve(ctx, city)
		if err != nil {
			return markers, err
		}
		if !ok {
			logger.Warn("geocode: no coordinates, using placeholder", "city", city)
		}
		markers = append(markers, Marker{City: city, Coordinates: coords})
	}

	return markers, nil
}

// Stream resolves cities in the background and delivers each marker as it
// completes. The channel is closed when all cities are done or ctx is
// cancelled, so a disconnecting client stops the loop.
func (r *Resolver) Stream(ctx context.Context, cities []string) <-chan Marker {
	out := make(chan Marker)

	go func() {
		defer close(out)
		for _, city := range cities {
			coords, _, err := r.Resolve(ctx, city)
			if err != nil {
				return
			}
			select {
			case out <- Marker{City: city, Coordinates: coords}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (r *Resolver) fetch(ctx context.Context, city string) (Coordinates, bool) {
	endpoint := fmt.Sprintf("%s/%s?json=1", r.baseURL, url.PathEscape(city))

	resp, err := httpclient.Get(endpoint).
		Timeout(r.timeout).
		WithContext(ctx).
		Send()
	if err != nil {
		logger.Warn("geocode: request failed", "city", city, "error", err)
		return Fallback, false
	}

	var body geoResponse
	if err := resp.JSON(&body); err != nil {
		logger.Warn("geocode: bad payload", "city", city, "error", err)
		return Fallback, false
	}

	lat, latErr := parseCoord(body.Latt)
	lng, lngErr := parseCoord(body.Longt)
	if latErr != nil || lngErr != nil {
		return Fallback, false
	}

	return Coordinates{lng, lat}, true
}

// parseCoord accepts a JSON number or a numeric string; anything else
// (including the upstream's throttle messages) is an error.
func parseCoord(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("geocode: empty coordinate")
	}
	s = strings.Trim(s, `"`)
	return strconv.ParseFloat(s, 64)
}

func cacheKey(city string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(city))
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
